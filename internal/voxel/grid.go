package voxel

import "fmt"

const (
	ChunkWidth  = 16
	ChunkHeight = 128
)

// ChunkCoord addresses a chunk in chunk space.
type ChunkCoord struct {
	X, Y, Z int
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

func (c ChunkCoord) Add(o ChunkCoord) ChunkCoord {
	return ChunkCoord{c.X + o.X, c.Y + o.Y, c.Z + o.Z}
}

// Neighbor returns the chunk adjacent to c across face f.
func (c ChunkCoord) Neighbor(f Face) ChunkCoord {
	o := FaceOffsets[f]
	return ChunkCoord{c.X + o[0], c.Y + o[1], c.Z + o[2]}
}

// LessCoord orders coordinates by X, then Z, then Y.
func LessCoord(a, b ChunkCoord) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Z != b.Z {
		return a.Z < b.Z
	}
	return a.Y < b.Y
}

// Grid stores the block ids of one chunk, width x height x width.
type Grid struct {
	width  int
	height int
	blocks []BlockType
}

func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		blocks: make([]BlockType, width*height*width),
	}
}

func (g *Grid) Width() int {
	return g.width
}

func (g *Grid) Height() int {
	return g.height
}

func (g *Grid) Contains(x, y, z int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height && z >= 0 && z < g.width
}

func (g *Grid) index(x, y, z int) int {
	return (y*g.width+z)*g.width + x
}

// Get returns the block at local coordinates, or Air outside the grid.
func (g *Grid) Get(x, y, z int) BlockType {
	if !g.Contains(x, y, z) {
		return Air
	}
	return g.blocks[g.index(x, y, z)]
}

// Set overwrites the block at local coordinates. Out-of-range coordinates and
// unregistered ids leave the grid untouched and report false.
func (g *Grid) Set(x, y, z int, b BlockType) bool {
	if !g.Contains(x, y, z) || !b.Valid() {
		return false
	}
	g.blocks[g.index(x, y, z)] = b
	return true
}

func (g *Grid) Fill(b BlockType) {
	if !b.Valid() {
		return
	}
	for i := range g.blocks {
		g.blocks[i] = b
	}
}

// Count returns how many cells hold b.
func (g *Grid) Count(b BlockType) int {
	n := 0
	for _, v := range g.blocks {
		if v == b {
			n++
		}
	}
	return n
}

// Solid returns the number of non-air cells.
func (g *Grid) Solid() int {
	return len(g.blocks) - g.Count(Air)
}

// Bytes returns a copy of the raw block ids.
func (g *Grid) Bytes() []byte {
	out := make([]byte, len(g.blocks))
	for i, b := range g.blocks {
		out[i] = byte(b)
	}
	return out
}

func (g *Grid) Equal(o *Grid) bool {
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.blocks {
		if g.blocks[i] != o.blocks[i] {
			return false
		}
	}
	return true
}

// FloorDiv divides rounding towards negative infinity.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

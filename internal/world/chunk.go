package world

import (
	"GopherVoxel/internal/mesher"
	"GopherVoxel/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
)

// Chunk owns one grid and the last mesh built from it. Mesh is nil when no
// face is visible.
type Chunk struct {
	Coord voxel.ChunkCoord
	Grid  *voxel.Grid
	Mesh  *mesher.Geometry

	// MeshVersion counts mesh builds, including the first one.
	MeshVersion int
}

// Origin is the world position of the chunk's local (0,0,0).
func (c *Chunk) Origin() mgl32.Vec3 {
	w, h := c.Grid.Width(), c.Grid.Height()
	return mgl32.Vec3{
		float32(c.Coord.X * w),
		float32(c.Coord.Y * h),
		float32(c.Coord.Z * w),
	}
}

// OnHorizontalBoundary reports whether local (x, z) touches one of the four
// vertical sides of the chunk.
func (c *Chunk) OnHorizontalBoundary(x, z int) bool {
	last := c.Grid.Width() - 1
	return x == 0 || x == last || z == 0 || z == last
}

// Package world keeps the sparse chunk map of a voxel world. It generates and
// meshes chunks, applies block edits and rebuilds the meshes an edit touches.
//
// A World is not safe for concurrent use; callers serialize edits.
package world

import (
	"fmt"
	"math"
	"sort"
	"time"

	"GopherVoxel/internal/config"
	"GopherVoxel/internal/logger"
	"GopherVoxel/internal/mesher"
	"GopherVoxel/internal/renderer"
	"GopherVoxel/internal/terrain"
	"GopherVoxel/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// editNudge pushes a hit point on a cell boundary into one cell before flooring.
const editNudge = 0.01

// MeshSink receives every freshly built chunk mesh. A nil geom means the chunk
// has nothing to draw and its renderable must go.
type MeshSink interface {
	Present(coord voxel.ChunkCoord, origin mgl32.Vec3, geom *mesher.Geometry, material *renderer.Material)
}

type Stats struct {
	Chunks       int
	MeshedChunks int
	Quads        int
	Rebuilds     int
	SkippedEdits int
}

type World struct {
	id     uuid.UUID
	seed   int64
	width  int
	height int
	chunks map[voxel.ChunkCoord]*Chunk

	generator *terrain.Generator
	noise     terrain.HeightNoise
	catalog   *voxel.Catalog
	builder   *mesher.Builder
	material  *renderer.Material
	sink      MeshSink
	place     voxel.BlockType
	log       *zap.Logger

	rebuilds int
	skipped  int
}

type Option func(*World)

func WithSink(sink MeshSink) Option {
	return func(w *World) { w.sink = sink }
}

func WithNoise(noise terrain.HeightNoise) Option {
	return func(w *World) { w.noise = noise }
}

func WithLogger(log *zap.Logger) Option {
	return func(w *World) { w.log = log }
}

func WithMaterial(m *renderer.Material) Option {
	return func(w *World) { w.material = m }
}

func WithCatalog(c *voxel.Catalog) Option {
	return func(w *World) { w.catalog = c }
}

// New builds an empty world from cfg. No chunk exists until CreateChunk or
// GenerateWorld is called.
func New(cfg config.Config, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	place, err := voxel.ParseBlockType(cfg.PlaceBlock)
	if err != nil {
		return nil, fmt.Errorf("place_block: %w", err)
	}
	if !place.Properties().Placeable {
		return nil, fmt.Errorf("place_block: %s is not placeable", place)
	}

	w := &World{
		id:        uuid.New(),
		seed:      cfg.Seed,
		width:     cfg.ChunkWidth,
		height:    cfg.ChunkHeight,
		chunks:    make(map[voxel.ChunkCoord]*Chunk),
		generator: terrain.NewGenerator(cfg),
		catalog:   voxel.NewCatalog(cfg.AtlasTiles),
		material:  renderer.NewMaterial(cfg.Material.Name, cfg.Material.Texture),
		place:     place,
		log:       logger.Log,
	}
	for _, opt := range opts {
		opt(w)
	}

	if w.noise == nil {
		if w.noise, err = terrain.NewNoise(cfg.Noise); err != nil {
			return nil, err
		}
	}
	w.log = w.log.With(zap.String("world_id", w.id.String()))
	w.builder = mesher.New(w.catalog, w.log)
	return w, nil
}

func (w *World) ID() uuid.UUID {
	return w.id
}

func (w *World) Seed() int64 {
	return w.seed
}

// CreateChunk generates, meshes and stores the chunk at coord. It returns false
// and changes nothing when the chunk already exists. GenerateWorld only creates
// chunks with Y == 0, but any coord is accepted here so that vertical
// neighbours can be loaded explicitly.
func (w *World) CreateChunk(coord voxel.ChunkCoord) bool {
	if _, ok := w.chunks[coord]; ok {
		w.log.Debug("Chunk already exists", zap.Stringer("chunk", coord))
		return false
	}

	c := &Chunk{
		Coord: coord,
		Grid:  w.generator.Generate(coord, w.seed, w.noise),
	}
	w.remesh(c)
	w.chunks[coord] = c
	return true
}

// GenerateWorld creates the size x size layer of chunks starting at the origin.
func (w *World) GenerateWorld(size int) {
	start := time.Now()
	created := 0
	for x := 0; x < size; x++ {
		for z := 0; z < size; z++ {
			if w.CreateChunk(voxel.ChunkCoord{X: x, Y: 0, Z: z}) {
				created++
			}
		}
	}

	st := w.Stats()
	w.log.Info("World generated",
		zap.Int64("seed", w.seed),
		zap.Int("created", created),
		zap.Int("chunks", st.Chunks),
		zap.Int("quads", st.Quads),
		zap.Duration("elapsed", time.Since(start)))
}

// ModifyVoxel breaks the block behind point, or places the configured block in
// front of it, where normal is the outward normal of the face that was hit.
// The owning chunk is rebuilt, and when the voxel lies on a vertical side of
// its chunk every present face neighbour is rebuilt too. Edits that address a
// missing chunk or a height outside the chunk change nothing and return false;
// they rebuild neither the owner nor its neighbours.
func (w *World) ModifyVoxel(point, normal mgl32.Vec3, breaking bool) bool {
	nudge := normal.Mul(editNudge)
	if breaking {
		point = point.Sub(nudge)
	} else {
		point = point.Add(nudge)
	}

	vx := int(math.Floor(float64(point.X())))
	vy := int(math.Floor(float64(point.Y())))
	vz := int(math.Floor(float64(point.Z())))

	coord := voxel.ChunkCoord{X: voxel.FloorDiv(vx, w.width), Y: 0, Z: voxel.FloorDiv(vz, w.width)}
	c, ok := w.chunks[coord]
	if !ok {
		w.skip("Edit outside loaded chunks", coord, vx, vy, vz)
		return false
	}

	lx := vx - coord.X*w.width
	lz := vz - coord.Z*w.width
	block := w.place
	if breaking {
		block = voxel.Air
	}
	if !c.Grid.Set(lx, vy, lz, block) {
		w.skip("Edit outside chunk bounds", coord, vx, vy, vz)
		return false
	}

	w.remesh(c)
	if c.OnHorizontalBoundary(lx, lz) {
		for f := voxel.Face(0); f < voxel.NumFaces; f++ {
			if n, ok := w.chunks[coord.Neighbor(f)]; ok {
				w.remesh(n)
			}
		}
	}
	return true
}

func (w *World) skip(msg string, coord voxel.ChunkCoord, x, y, z int) {
	w.skipped++
	w.log.Warn(msg,
		zap.Stringer("chunk", coord),
		zap.Int("x", x),
		zap.Int("y", y),
		zap.Int("z", z))
}

// RebuildChunk remeshes the chunk at coord. It reports false when the chunk is
// not loaded.
func (w *World) RebuildChunk(coord voxel.ChunkCoord) bool {
	c, ok := w.chunks[coord]
	if !ok {
		return false
	}
	w.remesh(c)
	return true
}

func (w *World) remesh(c *Chunk) {
	c.Mesh = w.builder.Build(c.Grid)
	c.MeshVersion++
	w.rebuilds++

	if w.sink != nil {
		w.sink.Present(c.Coord, c.Origin(), c.Mesh, w.material)
	}
}

func (w *World) Chunk(coord voxel.ChunkCoord) *Chunk {
	return w.chunks[coord]
}

// ChunkAt returns the chunk whose column contains the world point, or nil.
func (w *World) ChunkAt(p mgl32.Vec3) *Chunk {
	vx := int(math.Floor(float64(p.X())))
	vz := int(math.Floor(float64(p.Z())))
	return w.chunks[voxel.ChunkCoord{X: voxel.FloorDiv(vx, w.width), Z: voxel.FloorDiv(vz, w.width)}]
}

// Block reads the block at a world voxel position. Unloaded space is Air.
func (w *World) Block(x, y, z int) voxel.BlockType {
	coord := voxel.ChunkCoord{X: voxel.FloorDiv(x, w.width), Z: voxel.FloorDiv(z, w.width)}
	c, ok := w.chunks[coord]
	if !ok {
		return voxel.Air
	}
	return c.Grid.Get(x-coord.X*w.width, y, z-coord.Z*w.width)
}

// Chunks returns the loaded coordinates in X, Z, Y order.
func (w *World) Chunks() []voxel.ChunkCoord {
	out := make([]voxel.ChunkCoord, 0, len(w.chunks))
	for c := range w.chunks {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return voxel.LessCoord(out[i], out[j])
	})
	return out
}

func (w *World) Stats() Stats {
	st := Stats{
		Chunks:       len(w.chunks),
		Rebuilds:     w.rebuilds,
		SkippedEdits: w.skipped,
	}
	for _, c := range w.chunks {
		if c.Mesh != nil {
			st.MeshedChunks++
			st.Quads += c.Mesh.QuadCount()
		}
	}
	return st
}

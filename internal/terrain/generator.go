package terrain

import (
	"math"

	"GopherVoxel/internal/config"
	"GopherVoxel/internal/voxel"
)

// Generator fills chunk grids with layered terrain: grass on the surface, a band
// of dirt below it and stone underneath.
type Generator struct {
	Width     int
	Height    int
	MinHeight int
	MaxHeight int
	DirtDepth int
}

func NewGenerator(cfg config.Config) *Generator {
	return &Generator{
		Width:     cfg.ChunkWidth,
		Height:    cfg.ChunkHeight,
		MinHeight: cfg.Terrain.MinHeight,
		MaxHeight: cfg.Terrain.MaxHeight,
		DirtDepth: cfg.Terrain.DirtDepth,
	}
}

// ColumnHeight is the first empty world Y of the column at (worldX, worldZ).
func (g *Generator) ColumnHeight(worldX, worldZ int, seed int64, noise HeightNoise) int {
	n := clamp(noise.Height(float64(worldX), float64(worldZ), seed))
	t := (n + 1) / 2
	return int(math.Round(lerp(t, float64(g.MinHeight), float64(g.MaxHeight))))
}

// BlockAt classifies world height y in a column whose terrain height is h.
func (g *Generator) BlockAt(y, h int) voxel.BlockType {
	switch {
	case y >= h:
		return voxel.Air
	case y == h-1:
		return voxel.Grass
	case y >= h-1-g.DirtDepth:
		return voxel.Dirt
	default:
		return voxel.Stone
	}
}

// Generate builds the grid of the chunk at coord. The result depends only on
// coord, seed and noise.
func (g *Generator) Generate(coord voxel.ChunkCoord, seed int64, noise HeightNoise) *voxel.Grid {
	grid := voxel.NewGrid(g.Width, g.Height)

	startX := coord.X * g.Width
	startY := coord.Y * g.Height
	startZ := coord.Z * g.Width

	for x := 0; x < g.Width; x++ {
		for z := 0; z < g.Width; z++ {
			h := g.ColumnHeight(startX+x, startZ+z, seed, noise)
			for y := 0; y < g.Height; y++ {
				if b := g.BlockAt(startY+y, h); b != voxel.Air {
					grid.Set(x, y, z, b)
				}
			}
		}
	}
	return grid
}

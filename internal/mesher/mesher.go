// Package mesher turns chunk grids into face-culled triangle meshes.
package mesher

import (
	"GopherVoxel/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Builder meshes grids against a catalog. The zero value is not usable, use New.
type Builder struct {
	catalog *voxel.Catalog
	log     *zap.Logger
}

func New(catalog *voxel.Catalog, log *zap.Logger) *Builder {
	if catalog == nil {
		catalog = voxel.DefaultCatalog()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{catalog: catalog, log: log}
}

// Build meshes grid and logs the result at debug level.
func (b *Builder) Build(grid *voxel.Grid) *Geometry {
	geom := Build(grid, b.catalog)
	b.log.Debug("Chunk meshed",
		zap.Int("quads", geom.QuadCount()),
		zap.Int("vertices", geom.VertexCount()))
	return geom
}

// Build emits one quad for every face of a solid voxel whose neighbour inside
// the grid is Air. Faces on the grid boundary are always emitted since the
// neighbour lookup falls outside the grid. It returns nil when no face is
// visible.
func Build(grid *voxel.Grid, catalog *voxel.Catalog) *Geometry {
	if grid == nil {
		return nil
	}
	geom := &Geometry{}

	for y := 0; y < grid.Height(); y++ {
		for z := 0; z < grid.Width(); z++ {
			for x := 0; x < grid.Width(); x++ {
				block := grid.Get(x, y, z)
				if block == voxel.Air {
					continue
				}
				for f := voxel.Face(0); f < voxel.NumFaces; f++ {
					o := voxel.FaceOffsets[f]
					if grid.Get(x+o[0], y+o[1], z+o[2]) != voxel.Air {
						continue
					}
					geom.addFace(catalog, block, f, mgl32.Vec3{float32(x), float32(y), float32(z)})
				}
			}
		}
	}

	if len(geom.Positions) == 0 {
		return nil
	}
	return geom
}

func (g *Geometry) addFace(catalog *voxel.Catalog, block voxel.BlockType, f voxel.Face, at mgl32.Vec3) {
	base := int32(len(g.Positions))
	normal := f.Normal()
	uvs := FaceUV(catalog, block, f)

	for j, corner := range voxel.FaceCorners[f] {
		g.Positions = append(g.Positions, voxel.CubeCorners[corner].Add(at))
		g.Normals = append(g.Normals, normal)
		g.UVs = append(g.UVs, uvs[j])
	}
	g.Indices = append(g.Indices,
		base, base+3, base+2,
		base, base+2, base+1,
	)
}

// FaceUV returns the atlas UVs of a face in FaceCorners order. Grass side
// faces use the tile rotated by one corner so the grass edge sits on top.
func FaceUV(catalog *voxel.Catalog, block voxel.BlockType, f voxel.Face) [4]mgl32.Vec2 {
	tile := catalog.FaceAtlasCoord(block, f)
	s := catalog.TileSize()
	x := float32(tile.X) * s
	y := float32(tile.Y) * s

	p1 := mgl32.Vec2{x, y + s}
	p2 := mgl32.Vec2{x + s, y + s}
	p3 := mgl32.Vec2{x + s, y}
	p4 := mgl32.Vec2{x, y}

	if block == voxel.Grass && f.Lateral() {
		return [4]mgl32.Vec2{p2, p3, p4, p1}
	}
	return [4]mgl32.Vec2{p1, p2, p3, p4}
}

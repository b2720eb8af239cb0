package mesher

import "github.com/go-gl/mathgl/mgl32"

// Geometry holds the parallel buffers of one chunk mesh. Every face adds four
// vertices and six indices.
type Geometry struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []int32
}

func (g *Geometry) VertexCount() int {
	if g == nil {
		return 0
	}
	return len(g.Positions)
}

func (g *Geometry) TriangleCount() int {
	if g == nil {
		return 0
	}
	return len(g.Indices) / 3
}

// QuadCount is the number of voxel faces in the mesh.
func (g *Geometry) QuadCount() int {
	if g == nil {
		return 0
	}
	return len(g.Positions) / 4
}

func (g *Geometry) FlatPositions() []float32 {
	return flatten3(g.Positions)
}

func (g *Geometry) FlatNormals() []float32 {
	return flatten3(g.Normals)
}

func (g *Geometry) FlatUVs() []float32 {
	out := make([]float32, 0, len(g.UVs)*2)
	for _, uv := range g.UVs {
		out = append(out, uv[0], uv[1])
	}
	return out
}

// Interleaved packs each vertex as position, uv, normal (8 floats).
func (g *Geometry) Interleaved() []float32 {
	out := make([]float32, 0, len(g.Positions)*8)
	for i, p := range g.Positions {
		uv := g.UVs[i]
		n := g.Normals[i]
		out = append(out, p[0], p[1], p[2], uv[0], uv[1], n[0], n[1], n[2])
	}
	return out
}

// Bounds returns the axis aligned box around all positions. It returns zero
// vectors for an empty geometry.
func (g *Geometry) Bounds() (min, max mgl32.Vec3) {
	if g == nil || len(g.Positions) == 0 {
		return
	}
	min, max = g.Positions[0], g.Positions[0]
	for _, p := range g.Positions[1:] {
		for k := 0; k < 3; k++ {
			if p[k] < min[k] {
				min[k] = p[k]
			}
			if p[k] > max[k] {
				max[k] = p[k]
			}
		}
	}
	return min, max
}

func flatten3(vs []mgl32.Vec3) []float32 {
	out := make([]float32, 0, len(vs)*3)
	for _, v := range vs {
		out = append(out, v[0], v[1], v[2])
	}
	return out
}

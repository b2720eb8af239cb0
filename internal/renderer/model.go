package renderer

import (
	"fmt"
	"math"

	"GopherVoxel/internal/mesher"
	"GopherVoxel/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultMaterial provides a basic material to fall back on
var DefaultMaterial = &Material{
	Name:          "default",
	DiffuseColor:  [3]float32{1.0, 1.0, 1.0},
	SpecularColor: [3]float32{1.0, 1.0, 1.0},
	Shininess:     32.0,
	Roughness:     0.5,
	Exposure:      1.0,
	Alpha:         1.0,
}

type Material struct {
	DiffuseColor  [3]float32 // Base color for lighting
	SpecularColor [3]float32 // Specular highlight color
	Shininess     float32    // Specular exponent
	Metallic      float32    // 0.0 = dielectric, 1.0 = metallic
	Roughness     float32    // 0.0 = mirror, 1.0 = completely rough
	Exposure      float32    // HDR exposure control
	Alpha         float32    // Transparency (0.0 = transparent, 1.0 = opaque)

	Name        string // Material name for debugging
	TexturePath string // Path to the block atlas
}

// NewMaterial copies DefaultMaterial under a new name and atlas texture.
func NewMaterial(name, texturePath string) *Material {
	m := *DefaultMaterial
	m.Name = name
	m.TexturePath = texturePath
	return &m
}

// Model is the renderable of one chunk. Vertex data is local to the chunk and
// Position holds the chunk's world origin.
type Model struct {
	Position mgl32.Vec3 // Position in world space
	Material *Material  // Material properties pointer

	BoundingSphereCenter mgl32.Vec3 // World space, for raycast culling
	BoundingSphereRadius float32
	Min, Max             mgl32.Vec3 // Local axis aligned bounds

	Name            string
	Chunk           voxel.ChunkCoord
	Version         int       // Bumped on every replacement
	Vertices        []float32 // Vertex position data
	Normals         []float32 // Normal vectors
	TextureCoords   []float32 // Texture coordinates
	Faces           []int32   // Triangle indices
	InterleavedData []float32 // Combined vertex data
}

// NewChunkModel flattens geom into a model placed at origin.
func NewChunkModel(coord voxel.ChunkCoord, origin mgl32.Vec3, geom *mesher.Geometry, material *Material) *Model {
	if material == nil {
		material = DefaultMaterial
	}
	m := &Model{
		Name:            ChunkName(coord),
		Chunk:           coord,
		Position:        origin,
		Material:        material,
		Vertices:        geom.FlatPositions(),
		Normals:         geom.FlatNormals(),
		TextureCoords:   geom.FlatUVs(),
		Faces:           append([]int32(nil), geom.Indices...),
		InterleavedData: geom.Interleaved(),
	}
	m.Min, m.Max = geom.Bounds()
	m.CalculateBoundingSphere()
	return m
}

// ChunkName is the model name and export file stem of a chunk.
func ChunkName(c voxel.ChunkCoord) string {
	return fmt.Sprintf("chunk_%d_%d_%d", c.X, c.Y, c.Z)
}

func (m *Model) X() float32 {
	return m.Position[0]
}

func (m *Model) Y() float32 {
	return m.Position[1]
}

func (m *Model) Z() float32 {
	return m.Position[2]
}

func (m *Model) VertexCount() int {
	return len(m.Vertices) / 3
}

func (m *Model) TriangleCount() int {
	return len(m.Faces) / 3
}

func (m *Model) Vertex(i int) mgl32.Vec3 {
	return mgl32.Vec3{m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]}
}

func (m *Model) Normal(i int) mgl32.Vec3 {
	return mgl32.Vec3{m.Normals[i*3], m.Normals[i*3+1], m.Normals[i*3+2]}
}

// WorldVertex returns vertex i translated to world space.
func (m *Model) WorldVertex(i int) mgl32.Vec3 {
	return m.Vertex(i).Add(m.Position)
}

// CalculateBoundingSphere centres the sphere on the vertex average and sizes
// it to the farthest vertex.
func (m *Model) CalculateBoundingSphere() {
	numVertices := m.VertexCount()
	if numVertices == 0 {
		m.BoundingSphereCenter = m.Position
		m.BoundingSphereRadius = 0
		return
	}

	var center mgl32.Vec3
	for i := 0; i < numVertices; i++ {
		center = center.Add(m.WorldVertex(i))
	}
	center = center.Mul(1.0 / float32(numVertices))

	var maxDistanceSq float32
	for i := 0; i < numVertices; i++ {
		distanceSq := m.WorldVertex(i).Sub(center).LenSqr()
		if distanceSq > maxDistanceSq {
			maxDistanceSq = distanceSq
		}
	}

	m.BoundingSphereCenter = center
	m.BoundingSphereRadius = float32(math.Sqrt(float64(maxDistanceSq)))
}

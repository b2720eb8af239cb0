package renderer

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"GopherVoxel/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const (
	meshMagic   = 0x4D455348 // "MESH"
	meshVersion = 2
)

// Compression selects the codec wrapped around the binary mesh stream.
type Compression string

const (
	Gzip Compression = "gzip"
	Zstd Compression = "zstd"
)

// Extension is the file suffix used for meshes written with c.
func (c Compression) Extension() string {
	if c == Zstd {
		return ".mesh.zst"
	}
	return ".mesh.gz"
}

// SerializedMesh contains all data needed to reconstruct a chunk mesh
type SerializedMesh struct {
	Vertices        []float32 `json:"vertices,omitempty"`
	Normals         []float32 `json:"normals,omitempty"`
	TextureCoords   []float32 `json:"texture_coords,omitempty"`
	InterleavedData []float32 `json:"interleaved_data,omitempty"`
	Faces           []int32   `json:"faces,omitempty"`
}

// SerializedModel is the scene file entry of one chunk model
type SerializedModel struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Chunk [3]int `json:"chunk"`

	// Mesh data stored in a separate binary file
	MeshDataFile string `json:"mesh_data_file,omitempty"`

	Position  [3]float32 `json:"position"`
	Triangles int        `json:"triangles"`
	Version   int        `json:"version"`

	Material SerializedMaterial `json:"material"`
}

// SerializedMaterial contains all material properties
type SerializedMaterial struct {
	Name          string     `json:"name"`
	DiffuseColor  [3]float32 `json:"diffuse_color"`
	SpecularColor [3]float32 `json:"specular_color"`
	Shininess     float32    `json:"shininess"`
	Metallic      float32    `json:"metallic"`
	Roughness     float32    `json:"roughness"`
	Exposure      float32    `json:"exposure"`
	Alpha         float32    `json:"alpha"`
	TexturePath   string     `json:"texture_path,omitempty"`
}

// SerializeMesh converts a Model's mesh data to SerializedMesh
func SerializeMesh(model *Model) *SerializedMesh {
	return &SerializedMesh{
		Vertices:        model.Vertices,
		Normals:         model.Normals,
		TextureCoords:   model.TextureCoords,
		InterleavedData: model.InterleavedData,
		Faces:           model.Faces,
	}
}

// DeserializeMesh reconstructs a chunk Model from SerializedMesh
func DeserializeMesh(mesh *SerializedMesh, coord voxel.ChunkCoord, origin mgl32.Vec3) *Model {
	uniqueMaterial := *DefaultMaterial
	model := &Model{
		Name:            ChunkName(coord),
		Chunk:           coord,
		Position:        origin,
		Material:        &uniqueMaterial,
		Vertices:        mesh.Vertices,
		Normals:         mesh.Normals,
		TextureCoords:   mesh.TextureCoords,
		InterleavedData: mesh.InterleavedData,
		Faces:           mesh.Faces,
	}
	model.CalculateBoundingSphere()
	return model
}

// EncodeMesh writes mesh as little endian streams behind the given codec.
func EncodeMesh(mesh *SerializedMesh, c Compression) ([]byte, error) {
	var buf bytes.Buffer

	var w io.WriteCloser
	switch c {
	case Gzip, "":
		w = gzip.NewWriter(&buf)
	case Zstd:
		enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		w = enc
	default:
		return nil, fmt.Errorf("unknown mesh compression %q", c)
	}

	if err := writeMesh(w, mesh); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeMesh(w io.Writer, mesh *SerializedMesh) error {
	header := [2]uint32{meshMagic, meshVersion}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return err
	}
	for _, data := range [][]float32{mesh.Vertices, mesh.Normals, mesh.TextureCoords, mesh.InterleavedData} {
		if err := writeFloat32Slice(w, data); err != nil {
			return err
		}
	}
	return writeInt32Slice(w, mesh.Faces)
}

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// DecodeMeshBinary decodes a mesh written by EncodeMesh. The codec is detected
// from the stream header.
func DecodeMeshBinary(data []byte) (*SerializedMesh, error) {
	var r io.Reader
	if bytes.HasPrefix(data, zstdMagic) {
		dec, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		defer dec.Close()
		r = dec
	} else {
		gzReader, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzReader.Close()
		r = gzReader
	}

	var header [2]uint32
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if header[0] != meshMagic {
		return nil, fmt.Errorf("invalid mesh file magic: %x", header[0])
	}
	if header[1] != meshVersion {
		return nil, fmt.Errorf("unsupported mesh version: %d", header[1])
	}

	mesh := &SerializedMesh{}
	var err error
	for _, dst := range []*[]float32{&mesh.Vertices, &mesh.Normals, &mesh.TextureCoords, &mesh.InterleavedData} {
		if *dst, err = readFloat32Slice(r); err != nil {
			return nil, err
		}
	}
	if mesh.Faces, err = readInt32Slice(r); err != nil {
		return nil, err
	}
	return mesh, nil
}

// Helper functions for binary encoding
func writeFloat32Slice(w io.Writer, data []float32) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(data))); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, data)
}

func writeInt32Slice(w io.Writer, data []int32) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(data))); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, data)
}

func readCount(r io.Reader) (int, error) {
	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return 0, err
	}
	if count < 0 {
		return 0, fmt.Errorf("negative slice length %d", count)
	}
	return int(count), nil
}

func readFloat32Slice(r io.Reader) ([]float32, error) {
	count, err := readCount(r)
	if err != nil {
		return nil, err
	}
	data := make([]float32, count)
	if err := binary.Read(r, binary.LittleEndian, data); err != nil {
		return nil, err
	}
	return data, nil
}

func readInt32Slice(r io.Reader) ([]int32, error) {
	count, err := readCount(r)
	if err != nil {
		return nil, err
	}
	data := make([]int32, count)
	if err := binary.Read(r, binary.LittleEndian, data); err != nil {
		return nil, err
	}
	return data, nil
}

// SerializeModel builds the scene file entry of a model
func SerializeModel(model *Model, meshFile string) SerializedModel {
	serialized := SerializedModel{
		Name:         model.Name,
		Type:         "voxel_chunk",
		Chunk:        [3]int{model.Chunk.X, model.Chunk.Y, model.Chunk.Z},
		MeshDataFile: meshFile,
		Position:     [3]float32{model.X(), model.Y(), model.Z()},
		Triangles:    model.TriangleCount(),
		Version:      model.Version,
	}

	if model.Material != nil {
		serialized.Material = SerializedMaterial{
			Name:          model.Material.Name,
			DiffuseColor:  model.Material.DiffuseColor,
			SpecularColor: model.Material.SpecularColor,
			Shininess:     model.Material.Shininess,
			Metallic:      model.Material.Metallic,
			Roughness:     model.Material.Roughness,
			Exposure:      model.Material.Exposure,
			Alpha:         model.Material.Alpha,
			TexturePath:   model.Material.TexturePath,
		}
	}
	return serialized
}

// Material restores the material of a scene file entry.
func (m SerializedMaterial) Material() *Material {
	return &Material{
		Name:          m.Name,
		DiffuseColor:  m.DiffuseColor,
		SpecularColor: m.SpecularColor,
		Shininess:     m.Shininess,
		Metallic:      m.Metallic,
		Roughness:     m.Roughness,
		Exposure:      m.Exposure,
		Alpha:         m.Alpha,
		TexturePath:   m.TexturePath,
	}
}

// Coord returns the chunk coordinate of the entry.
func (m SerializedModel) Coord() voxel.ChunkCoord {
	return voxel.ChunkCoord{X: m.Chunk[0], Y: m.Chunk[1], Z: m.Chunk[2]}
}

package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"GopherVoxel/internal/logger"
	"GopherVoxel/internal/renderer"

	"go.uber.org/zap"
)

// LoadModel reads an OBJ file, typically a chunk written by the scene export.
func LoadModel(filename string) (*renderer.Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	model, err := ParseOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return model, nil
}

// ParseOBJ builds a model from OBJ text. Faces must reference positions, uvs and
// normals by the same index, which is how chunk exports are written. Positions
// stay in the coordinates of the file; Position is left at the origin.
func ParseOBJ(r io.Reader) (*renderer.Model, error) {
	uniqueMaterial := *renderer.DefaultMaterial
	model := &renderer.Model{Material: &uniqueMaterial}

	var vertices, textureCoords, normals []float32
	var faces []int32

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "o":
			if len(parts) >= 2 {
				model.Name = parts[1]
			}
		case "usemtl":
			if len(parts) >= 2 {
				model.Material.Name = parts[1]
			}
		case "v":
			vertex, err := parseFloats(parts[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("vertex: %w", err)
			}
			vertices = append(vertices, vertex...)
		case "vn":
			normal, err := parseFloats(parts[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("normal: %w", err)
			}
			normals = append(normals, normal...)
		case "vt":
			texCoord, err := parseFloats(parts[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("texture coordinate: %w", err)
			}
			textureCoords = append(textureCoords, texCoord...)
		case "f":
			face, err := parseFace(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("face: %w", err)
			}
			faces = append(faces, face...)
		default:
			logger.Log.Debug("Skipping OBJ statement", zap.String("statement", parts[0]))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	vertexCount := len(vertices) / 3
	for _, idx := range faces {
		if idx < 0 || int(idx) >= vertexCount {
			return nil, fmt.Errorf("face index %d out of range (%d vertices)", idx+1, vertexCount)
		}
	}
	for len(textureCoords)/2 < vertexCount {
		textureCoords = append(textureCoords, 0, 0)
	}
	for len(normals)/3 < vertexCount {
		normals = append(normals, 0, 0, 0)
	}

	interleavedData := make([]float32, 0, vertexCount*8)
	for i := 0; i < vertexCount; i++ {
		interleavedData = append(interleavedData, vertices[i*3:i*3+3]...)
		interleavedData = append(interleavedData, textureCoords[i*2:i*2+2]...)
		interleavedData = append(interleavedData, normals[i*3:i*3+3]...)
	}

	model.Vertices = vertices
	model.TextureCoords = textureCoords
	model.Normals = normals
	model.Faces = faces
	model.InterleavedData = interleavedData
	model.CalculateBoundingSphere()
	return model, nil
}

func parseFloats(parts []string, n int) ([]float32, error) {
	if len(parts) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(parts))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		val, err := strconv.ParseFloat(parts[i], 32)
		if err != nil {
			return nil, fmt.Errorf("invalid value %v: %w", parts[i], err)
		}
		out[i] = float32(val)
	}
	return out, nil
}

// parseFace returns 0-based vertex indices, fan-triangulating polygons.
func parseFace(parts []string) ([]int32, error) {
	if len(parts) < 3 {
		return nil, fmt.Errorf("face needs at least 3 vertices, got %d", len(parts))
	}

	face := make([]int32, 0, len(parts))
	for _, part := range parts {
		vals := strings.Split(part, "/")
		vertexIdx, err := strconv.ParseInt(vals[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid vertex index %v: %w", vals[0], err)
		}
		for _, other := range vals[1:] {
			if other != "" && other != vals[0] {
				return nil, fmt.Errorf("split indices %q are not supported", part)
			}
		}
		face = append(face, int32(vertexIdx-1)) // .obj indices start at 1, not 0
	}

	if len(face) == 3 {
		return face, nil
	}
	var triangulated []int32
	for i := 1; i < len(face)-1; i++ {
		triangulated = append(triangulated, face[0], face[i], face[i+1])
	}
	return triangulated, nil
}

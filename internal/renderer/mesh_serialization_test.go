package renderer

import (
	"encoding/json"
	"testing"

	"GopherVoxel/internal/mesher"
	"GopherVoxel/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	grid := voxel.NewGrid(4, 4)
	grid.Set(0, 0, 0, voxel.Grass)
	grid.Set(1, 0, 0, voxel.Stone)
	geom := mesher.Build(grid, voxel.DefaultCatalog())
	if geom == nil {
		t.Fatal("expected geometry")
	}
	return NewChunkModel(voxel.ChunkCoord{X: 2, Z: -1}, mgl32.Vec3{8, 0, -4}, geom, NewMaterial("voxel", "atlas.png"))
}

func TestMeshSerialization(t *testing.T) {
	original := testModel(t)

	mesh := SerializeMesh(original)
	if len(mesh.Vertices) != len(original.Vertices) {
		t.Errorf("Vertices length mismatch: got %d, want %d", len(mesh.Vertices), len(original.Vertices))
	}
	if len(mesh.Faces) != len(original.Faces) {
		t.Errorf("Faces length mismatch: got %d, want %d", len(mesh.Faces), len(original.Faces))
	}

	restored := DeserializeMesh(mesh, original.Chunk, original.Position)
	if restored.Name != original.Name {
		t.Errorf("Name mismatch: got %s, want %s", restored.Name, original.Name)
	}
	if restored.BoundingSphereRadius != original.BoundingSphereRadius {
		t.Errorf("Bounding sphere mismatch: got %f, want %f", restored.BoundingSphereRadius, original.BoundingSphereRadius)
	}
	if restored.Material == DefaultMaterial {
		t.Error("Restored model shares DefaultMaterial")
	}
}

func TestMeshBinaryEncoding(t *testing.T) {
	for _, c := range []Compression{Gzip, Zstd} {
		t.Run(string(c), func(t *testing.T) {
			mesh := SerializeMesh(testModel(t))

			data, err := EncodeMesh(mesh, c)
			if err != nil {
				t.Fatalf("EncodeMesh failed: %v", err)
			}
			if len(data) == 0 {
				t.Fatal("Encoded data is empty")
			}

			decoded, err := DecodeMeshBinary(data)
			if err != nil {
				t.Fatalf("DecodeMeshBinary failed: %v", err)
			}

			checkFloats(t, "vertices", decoded.Vertices, mesh.Vertices)
			checkFloats(t, "normals", decoded.Normals, mesh.Normals)
			checkFloats(t, "uvs", decoded.TextureCoords, mesh.TextureCoords)
			checkFloats(t, "interleaved", decoded.InterleavedData, mesh.InterleavedData)
			if len(decoded.Faces) != len(mesh.Faces) {
				t.Fatalf("Faces length mismatch: got %d, want %d", len(decoded.Faces), len(mesh.Faces))
			}
			for i := range mesh.Faces {
				if decoded.Faces[i] != mesh.Faces[i] {
					t.Fatalf("face %d: got %d, want %d", i, decoded.Faces[i], mesh.Faces[i])
				}
			}
		})
	}
}

func TestEmptyMeshEncoding(t *testing.T) {
	data, err := EncodeMesh(&SerializedMesh{}, Gzip)
	if err != nil {
		t.Fatalf("EncodeMesh failed: %v", err)
	}
	decoded, err := DecodeMeshBinary(data)
	if err != nil {
		t.Fatalf("DecodeMeshBinary failed: %v", err)
	}
	if len(decoded.Vertices) != 0 || len(decoded.Faces) != 0 {
		t.Error("expected empty mesh")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := DecodeMeshBinary([]byte("not a mesh")); err == nil {
		t.Error("expected error for garbage input")
	}
	if _, err := EncodeMesh(&SerializedMesh{}, "lz4"); err == nil {
		t.Error("expected error for unknown compression")
	}
}

func TestSerializeModelJSON(t *testing.T) {
	model := testModel(t)
	raw, err := json.Marshal(SerializeModel(model, ""))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var got SerializedModel
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got.Chunk != [3]int{2, 0, -1} {
		t.Errorf("chunk = %v", got.Chunk)
	}
	if got.Position != [3]float32{8, 0, -4} {
		t.Errorf("position = %v", got.Position)
	}
	if got.Material.TexturePath != "atlas.png" {
		t.Errorf("texture = %q", got.Material.TexturePath)
	}
	if got.Triangles != model.TriangleCount() {
		t.Errorf("triangles = %d, want %d", got.Triangles, model.TriangleCount())
	}
	if got.Coord() != model.Chunk {
		t.Errorf("coord = %v, want %v", got.Coord(), model.Chunk)
	}
	if *got.Material.Material() != *model.Material {
		t.Errorf("material = %+v, want %+v", got.Material.Material(), model.Material)
	}
}

func checkFloats(t *testing.T, name string, got, want []float32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s length mismatch: got %d, want %d", name, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s[%d]: got %f, want %f", name, i, got[i], want[i])
		}
	}
}

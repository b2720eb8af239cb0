package loader

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"GopherVoxel/internal/mesher"
	"GopherVoxel/internal/renderer"
	"GopherVoxel/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
)

func chunkModel(t *testing.T) *renderer.Model {
	t.Helper()
	grid := voxel.NewGrid(4, 4)
	grid.Set(0, 0, 0, voxel.Grass)
	grid.Set(0, 1, 0, voxel.Stone)
	geom := mesher.Build(grid, voxel.DefaultCatalog())
	return renderer.NewChunkModel(voxel.ChunkCoord{X: 1}, mgl32.Vec3{4, 0, 0}, geom, renderer.NewMaterial("voxel", "atlas.png"))
}

func TestOBJRoundTrip(t *testing.T) {
	original := chunkModel(t)

	var buf bytes.Buffer
	if err := renderer.WriteOBJ(&buf, original); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}

	loaded, err := ParseOBJ(&buf)
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if loaded.Name != original.Name {
		t.Errorf("name = %q, want %q", loaded.Name, original.Name)
	}
	if loaded.Material.Name != "voxel" {
		t.Errorf("material = %q", loaded.Material.Name)
	}
	if loaded.VertexCount() != original.VertexCount() {
		t.Fatalf("vertices = %d, want %d", loaded.VertexCount(), original.VertexCount())
	}
	if len(loaded.Faces) != len(original.Faces) {
		t.Fatalf("faces = %d, want %d", len(loaded.Faces), len(original.Faces))
	}
	// OBJ positions are written in world space.
	for i := 0; i < original.VertexCount(); i++ {
		if loaded.Vertex(i) != original.WorldVertex(i) {
			t.Fatalf("vertex %d = %v, want %v", i, loaded.Vertex(i), original.WorldVertex(i))
		}
	}
	for i := range original.TextureCoords {
		if loaded.TextureCoords[i] != original.TextureCoords[i] {
			t.Fatalf("uv %d = %f, want %f", i, loaded.TextureCoords[i], original.TextureCoords[i])
		}
	}
	if len(loaded.InterleavedData) != len(original.InterleavedData) {
		t.Errorf("interleaved = %d, want %d", len(loaded.InterleavedData), len(original.InterleavedData))
	}
}

func TestParseOBJQuadFace(t *testing.T) {
	src := `# unit quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`
	model, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	want := []int32{0, 1, 2, 0, 2, 3}
	if len(model.Faces) != len(want) {
		t.Fatalf("faces = %v, want %v", model.Faces, want)
	}
	for i := range want {
		if model.Faces[i] != want[i] {
			t.Fatalf("faces = %v, want %v", model.Faces, want)
		}
	}
	// Missing uvs and normals are padded.
	if len(model.TextureCoords) != 8 || len(model.Normals) != 12 {
		t.Errorf("padding: %d uvs, %d normals", len(model.TextureCoords), len(model.Normals))
	}
}

func TestParseOBJErrors(t *testing.T) {
	cases := map[string]string{
		"bad vertex":    "v 0 x 0\n",
		"short vertex":  "v 0 0\n",
		"bad index":     "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n",
		"split indices": "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/2/1 2/2/2 3/3/3\n",
		"short face":    "v 0 0 0\nf 1 1\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseOBJ(strings.NewReader(src)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadModelFromExport(t *testing.T) {
	scene := renderer.NewScene(nil)
	model := chunkModel(t)
	scene.AddModel(model)

	dir := t.TempDir()
	if _, err := scene.ExportScene(context.Background(), dir, renderer.ExportOptions{OBJ: true}); err != nil {
		t.Fatalf("ExportScene failed: %v", err)
	}

	loaded, err := LoadModel(filepath.Join(dir, model.Name+".obj"))
	if err != nil {
		t.Fatalf("LoadModel failed: %v", err)
	}
	if loaded.TriangleCount() != model.TriangleCount() {
		t.Errorf("triangles = %d, want %d", loaded.TriangleCount(), model.TriangleCount())
	}

	if _, err := LoadModel(filepath.Join(dir, "missing.obj")); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func exportScene(t *testing.T, opts renderer.ExportOptions) (*renderer.Scene, string) {
	t.Helper()
	scene := renderer.NewScene(nil)
	scene.WorldID = "reload"
	for x := 0; x < 2; x++ {
		grid := voxel.NewGrid(4, 4)
		grid.Set(x, 0, 0, voxel.Grass)
		grid.Set(0, 1, 0, voxel.Dirt)
		geom := mesher.Build(grid, voxel.DefaultCatalog())
		scene.Present(voxel.ChunkCoord{X: x}, mgl32.Vec3{float32(x * 4), 0, 0}, geom, renderer.NewMaterial("voxel", "atlas.png"))
	}
	dir := t.TempDir()
	if _, err := scene.ExportScene(context.Background(), dir, opts); err != nil {
		t.Fatalf("ExportScene failed: %v", err)
	}
	return scene, dir
}

func TestLoadScene(t *testing.T) {
	for _, opts := range []renderer.ExportOptions{
		{Compression: renderer.Gzip},
		{Compression: renderer.Zstd, OBJ: true, Workers: 2},
	} {
		t.Run(string(opts.Compression), func(t *testing.T) {
			scene, dir := exportScene(t, opts)

			reloaded := renderer.NewScene(nil)
			manifest, err := LoadScene(dir, reloaded)
			if err != nil {
				t.Fatalf("LoadScene failed: %v", err)
			}
			if manifest.WorldID != "reload" {
				t.Errorf("world id = %q", manifest.WorldID)
			}
			if reloaded.Len() != scene.Len() {
				t.Fatalf("models = %d, want %d", reloaded.Len(), scene.Len())
			}
			for _, want := range scene.Models() {
				got := reloaded.Model(want.Chunk)
				if got == nil {
					t.Fatalf("missing %s", want.Name)
				}
				if got.TriangleCount() != want.TriangleCount() {
					t.Errorf("%s triangles = %d, want %d", want.Name, got.TriangleCount(), want.TriangleCount())
				}
				if got.Position != want.Position {
					t.Errorf("%s position = %v, want %v", want.Name, got.Position, want.Position)
				}
				if *got.Material != *want.Material {
					t.Errorf("%s material = %+v", want.Name, got.Material)
				}
			}
		})
	}
}

func TestLoadSceneMismatch(t *testing.T) {
	_, dir := exportScene(t, renderer.ExportOptions{OBJ: true})

	// Drop one triangle from the first OBJ.
	manifest, err := renderer.LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest failed: %v", err)
	}
	objPath := filepath.Join(dir, manifest.Models[0].Name+".obj")
	raw, err := os.ReadFile(objPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	text := strings.TrimRight(string(raw), "\n")
	text = text[:strings.LastIndex(text, "\n")+1]
	if err := os.WriteFile(objPath, []byte(text), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := LoadScene(dir, renderer.NewScene(nil)); !errors.Is(err, ErrMismatch) {
		t.Errorf("expected ErrMismatch, got %v", err)
	}
}

func TestLoadSceneMissingManifest(t *testing.T) {
	if _, err := LoadScene(t.TempDir(), renderer.NewScene(nil)); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

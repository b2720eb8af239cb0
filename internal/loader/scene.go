package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"GopherVoxel/internal/logger"
	"GopherVoxel/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// ErrMismatch reports an exported chunk whose files disagree with scene.json.
var ErrMismatch = errors.New("export mismatch")

// LoadScene reads an export written by Scene.ExportScene and adds every chunk
// model to target. Each mesh must carry the triangle count recorded in the
// manifest; when an OBJ copy of the chunk is present it is loaded and checked
// too.
func LoadScene(dir string, target renderer.Render) (*renderer.SceneManifest, error) {
	manifest, err := renderer.LoadManifest(dir)
	if err != nil {
		return nil, err
	}

	objs := 0
	for _, entry := range manifest.Models {
		model, err := loadChunk(dir, entry)
		if err != nil {
			return nil, err
		}

		objPath := filepath.Join(dir, entry.Name+".obj")
		if _, err := os.Stat(objPath); err == nil {
			obj, err := LoadModel(objPath)
			if err != nil {
				return nil, err
			}
			if obj.TriangleCount() != entry.Triangles {
				return nil, fmt.Errorf("%w: %s has %d triangles, manifest says %d",
					ErrMismatch, objPath, obj.TriangleCount(), entry.Triangles)
			}
			objs++
		}

		target.AddModel(model)
	}

	logger.Log.Info("Scene loaded",
		zap.String("dir", dir),
		zap.String("world_id", manifest.WorldID),
		zap.Int("models", len(manifest.Models)),
		zap.Int("obj", objs))
	return manifest, nil
}

func loadChunk(dir string, entry renderer.SerializedModel) (*renderer.Model, error) {
	if entry.MeshDataFile == "" {
		return nil, fmt.Errorf("%w: %s has no mesh file", ErrMismatch, entry.Name)
	}
	data, err := os.ReadFile(filepath.Join(dir, entry.MeshDataFile))
	if err != nil {
		return nil, err
	}
	mesh, err := renderer.DecodeMeshBinary(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", entry.MeshDataFile, err)
	}

	model := renderer.DeserializeMesh(mesh, entry.Coord(), mgl32.Vec3(entry.Position))
	if model.Name != entry.Name {
		return nil, fmt.Errorf("%w: %s stored as chunk %v", ErrMismatch, entry.Name, entry.Chunk)
	}
	if model.TriangleCount() != entry.Triangles {
		return nil, fmt.Errorf("%w: %s has %d triangles, manifest says %d",
			ErrMismatch, entry.MeshDataFile, model.TriangleCount(), entry.Triangles)
	}
	model.Material = entry.Material.Material()
	model.Version = entry.Version
	return model, nil
}

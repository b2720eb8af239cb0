package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"
)

const ManifestFile = "scene.json"

// ExportOptions controls ExportScene.
type ExportOptions struct {
	Workers     int
	Compression Compression
	// OBJ also writes every model as a Wavefront OBJ file.
	OBJ bool
}

// SceneManifest is the JSON index written next to the exported meshes.
type SceneManifest struct {
	WorldID     string            `json:"world_id,omitempty"`
	Seed        int64             `json:"seed"`
	Compression Compression       `json:"compression"`
	ExportedAt  time.Time         `json:"exported_at"`
	Models      []SerializedModel `json:"models"`
}

// ExportScene writes one compressed mesh file per model and a scene.json
// manifest into dir. Meshes are encoded on a pool of workers.
func (s *Scene) ExportScene(ctx context.Context, dir string, opts ExportOptions) (*SceneManifest, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	c := opts.Compression
	if c == "" {
		c = Gzip
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	models := s.Models()
	manifest := &SceneManifest{
		WorldID:     s.WorldID,
		Seed:        s.Seed,
		Compression: c,
		ExportedAt:  time.Now().UTC(),
		Models:      make([]SerializedModel, len(models)),
	}

	pool := pond.NewPool(workers, pond.WithContext(ctx))
	defer pool.StopAndWait()

	group := pool.NewGroup()
	for i, m := range models {
		meshFile := m.Name + c.Extension()
		manifest.Models[i] = SerializeModel(m, meshFile)

		group.SubmitErr(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := EncodeMesh(SerializeMesh(m), c)
			if err != nil {
				return fmt.Errorf("encode %s: %w", m.Name, err)
			}
			if err := os.WriteFile(filepath.Join(dir, meshFile), data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", meshFile, err)
			}
			if opts.OBJ {
				return writeOBJFile(filepath.Join(dir, m.Name+".obj"), m)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	raw, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), raw, 0o644); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	s.log.Info("Scene exported",
		zap.String("dir", dir),
		zap.Int("models", len(models)),
		zap.String("compression", string(c)))
	return manifest, nil
}

func writeOBJFile(path string, m *Model) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteOBJ(f, m); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// LoadManifest reads a scene.json written by ExportScene.
func LoadManifest(dir string) (*SceneManifest, error) {
	raw, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, err
	}
	var m SceneManifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", ManifestFile, err)
	}
	return &m, nil
}

// Package renderer keeps the renderable side of a voxel world: one model per
// meshed chunk, ray queries against those models and export to disk.
package renderer

import (
	"sort"
	"sync"

	"GopherVoxel/internal/mesher"
	"GopherVoxel/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Render is the part of a backend that receives chunk models.
type Render interface {
	AddModel(model *Model)
	RemoveModel(model *Model)
}

var _ Render = (*Scene)(nil)

// Scene is an in-memory mesh sink. Every Present replaces the chunk's model.
type Scene struct {
	// WorldID and Seed are written to the export manifest.
	WorldID string
	Seed    int64

	mu     sync.RWMutex
	models map[voxel.ChunkCoord]*Model
	log    *zap.Logger
}

func NewScene(log *zap.Logger) *Scene {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scene{
		models: make(map[voxel.ChunkCoord]*Model),
		log:    log,
	}
}

// Present installs geom as the model of coord, or removes the model when geom
// is nil.
func (s *Scene) Present(coord voxel.ChunkCoord, origin mgl32.Vec3, geom *mesher.Geometry, material *Material) {
	if geom == nil {
		if m := s.Model(coord); m != nil {
			s.RemoveModel(m)
		}
		return
	}

	model := NewChunkModel(coord, origin, geom, material)
	if prev := s.Model(coord); prev != nil {
		model.Version = prev.Version + 1
	}
	s.AddModel(model)
}

func (s *Scene) AddModel(model *Model) {
	s.mu.Lock()
	s.models[model.Chunk] = model
	s.mu.Unlock()

	s.log.Debug("Model presented",
		zap.String("model", model.Name),
		zap.Int("triangles", model.TriangleCount()),
		zap.Int("version", model.Version))
}

func (s *Scene) RemoveModel(model *Model) {
	s.mu.Lock()
	if cur, ok := s.models[model.Chunk]; ok && cur == model {
		delete(s.models, model.Chunk)
	}
	s.mu.Unlock()

	s.log.Debug("Model removed", zap.String("model", model.Name))
}

func (s *Scene) Model(coord voxel.ChunkCoord) *Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.models[coord]
}

func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.models)
}

// Models returns the models ordered by chunk coordinate.
func (s *Scene) Models() []*Model {
	s.mu.RLock()
	out := make([]*Model, 0, len(s.models))
	for _, m := range s.models {
		out = append(out, m)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return voxel.LessCoord(out[i].Chunk, out[j].Chunk)
	})
	return out
}

// Package edit turns scripted rays into block edits: each ray is cast against
// the rendered chunks and the surface it hits is broken or built upon.
package edit

import (
	"fmt"
	"os"

	"GopherVoxel/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const DefaultReach = 64

// Request is one scripted edit.
type Request struct {
	Origin    [3]float32 `yaml:"origin"`
	Direction [3]float32 `yaml:"direction"`
	Break     bool       `yaml:"break"`
}

type Script struct {
	Reach float32   `yaml:"reach"`
	Edits []Request `yaml:"edits"`
}

// Target receives the resolved edits. world.World satisfies it.
type Target interface {
	ModifyVoxel(point, normal mgl32.Vec3, breaking bool) bool
}

// Caster resolves rays to surfaces. renderer.Scene satisfies it.
type Caster interface {
	Raycast(ray renderer.Ray, maxDist float32) (renderer.Hit, bool)
}

func LoadScript(path string) (*Script, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := &Script{Reach: DefaultReach}
	if err := yaml.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for i, e := range s.Edits {
		if mgl32.Vec3(e.Direction).Len() == 0 {
			return nil, fmt.Errorf("%s: edit %d has a zero direction", path, i)
		}
	}
	return s, nil
}

// Apply runs the edits in order and returns how many changed the world. Rays
// that miss and edits the target refuses are logged and skipped.
func (s *Script) Apply(target Target, caster Caster, log *zap.Logger) int {
	if log == nil {
		log = zap.NewNop()
	}
	applied := 0
	for i, e := range s.Edits {
		ray := renderer.Ray{
			Origin:    mgl32.Vec3(e.Origin),
			Direction: mgl32.Vec3(e.Direction).Normalize(),
		}
		hit, ok := caster.Raycast(ray, s.Reach)
		if !ok {
			log.Info("Edit ray missed", zap.Int("edit", i))
			continue
		}
		if !target.ModifyVoxel(hit.Point, hit.Normal, e.Break) {
			continue
		}
		applied++
		log.Debug("Edit applied",
			zap.Int("edit", i),
			zap.Bool("break", e.Break),
			zap.String("model", hit.Model.Name))
	}
	return applied
}

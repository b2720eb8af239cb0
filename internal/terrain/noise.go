package terrain

import (
	"fmt"

	"GopherVoxel/internal/config"

	perlin "github.com/aquilax/go-perlin"
)

// HeightNoise is a deterministic 2D noise source. Height must be a pure function
// of its arguments and return values in [-1, 1].
type HeightNoise interface {
	Height(worldX, worldZ float64, seed int64) float64
}

// HeightFunc adapts a plain function to HeightNoise.
type HeightFunc func(worldX, worldZ float64, seed int64) float64

func (f HeightFunc) Height(worldX, worldZ float64, seed int64) float64 {
	return f(worldX, worldZ, seed)
}

// FlatNoise returns the same value everywhere.
type FlatNoise float64

func (n FlatNoise) Height(_, _ float64, _ int64) float64 {
	return float64(n)
}

// PerlinNoise samples classic Perlin noise. A generator is built lazily for every
// seed it is asked about, so results only depend on the arguments.
type PerlinNoise struct {
	Frequency float64
	Alpha     float64
	Beta      float64
	Octaves   int32

	generators map[int64]*perlin.Perlin
}

func NewPerlinNoise(frequency, alpha, beta float64, octaves int) *PerlinNoise {
	return &PerlinNoise{
		Frequency:  frequency,
		Alpha:      alpha,
		Beta:       beta,
		Octaves:    int32(octaves),
		generators: make(map[int64]*perlin.Perlin),
	}
}

func (n *PerlinNoise) Height(worldX, worldZ float64, seed int64) float64 {
	p, ok := n.generators[seed]
	if !ok {
		p = perlin.NewPerlin(n.Alpha, n.Beta, n.Octaves, seed)
		n.generators[seed] = p
	}
	return clamp(p.Noise2D(worldX*n.Frequency, worldZ*n.Frequency))
}

// NewNoise builds the height source selected by the configuration.
func NewNoise(cfg config.NoiseConfig) (HeightNoise, error) {
	switch cfg.Type {
	case "perlin", "":
		return NewPerlinNoise(cfg.Frequency, cfg.Alpha, cfg.Beta, cfg.Octaves), nil
	case "improved":
		return NewImprovedNoise(cfg.Frequency, cfg.Octaves, 0.5), nil
	case "flat":
		return FlatNoise(0), nil
	}
	return nil, fmt.Errorf("unknown noise type %q", cfg.Type)
}

func clamp(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

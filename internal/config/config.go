package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Seed        int64 `yaml:"seed"`
	WorldSize   int   `yaml:"world_size"`
	ChunkWidth  int   `yaml:"chunk_width"`
	ChunkHeight int   `yaml:"chunk_height"`
	AtlasTiles  int   `yaml:"atlas_tiles"`

	Terrain  TerrainConfig  `yaml:"terrain"`
	Noise    NoiseConfig    `yaml:"noise"`
	Material MaterialConfig `yaml:"material"`
	Log      LogConfig      `yaml:"log"`
	Export   ExportConfig   `yaml:"export"`

	// PlaceBlock is the block name used when an edit places rather than breaks.
	PlaceBlock string `yaml:"place_block"`
}

type TerrainConfig struct {
	MinHeight int `yaml:"min_height"`
	MaxHeight int `yaml:"max_height"`
	DirtDepth int `yaml:"dirt_depth"`
}

type NoiseConfig struct {
	Type      string  `yaml:"type"` // "perlin", "improved" or "flat"
	Frequency float64 `yaml:"frequency"`
	Alpha     float64 `yaml:"alpha"`
	Beta      float64 `yaml:"beta"`
	Octaves   int     `yaml:"octaves"`
}

type MaterialConfig struct {
	Name    string `yaml:"name"`
	Texture string `yaml:"texture"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type ExportConfig struct {
	Workers     int    `yaml:"workers"`
	Compression string `yaml:"compression"` // "gzip" or "zstd"
	OBJ         bool   `yaml:"obj"`
}

func Default() Config {
	return Config{
		Seed:        1337,
		WorldSize:   8,
		ChunkWidth:  16,
		ChunkHeight: 128,
		AtlasTiles:  4,
		Terrain: TerrainConfig{
			MinHeight: 32,
			MaxHeight: 96,
			DirtDepth: 3,
		},
		Noise: NoiseConfig{
			Type:      "perlin",
			Frequency: 0.005,
			Alpha:     2,
			Beta:      2,
			Octaves:   3,
		},
		Material: MaterialConfig{
			Name:    "voxel",
			Texture: "textures/atlas.png",
		},
		Log: LogConfig{
			Level: "info",
		},
		Export: ExportConfig{
			Workers:     4,
			Compression: "gzip",
		},
		PlaceBlock: "dirt",
	}
}

// Load reads a YAML file on top of Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.WorldSize < 0:
		return fmt.Errorf("%w: world_size must not be negative", ErrInvalid)
	case c.ChunkWidth <= 0 || c.ChunkHeight <= 0:
		return fmt.Errorf("%w: chunk dimensions must be positive", ErrInvalid)
	case c.AtlasTiles <= 0:
		return fmt.Errorf("%w: atlas_tiles must be positive", ErrInvalid)
	case c.Terrain.MinHeight < 0 || c.Terrain.MinHeight >= c.Terrain.MaxHeight:
		return fmt.Errorf("%w: terrain band [%d,%d] is empty", ErrInvalid, c.Terrain.MinHeight, c.Terrain.MaxHeight)
	case c.Terrain.MaxHeight > c.ChunkHeight:
		return fmt.Errorf("%w: terrain max_height %d exceeds chunk_height %d", ErrInvalid, c.Terrain.MaxHeight, c.ChunkHeight)
	case c.Terrain.DirtDepth < 0:
		return fmt.Errorf("%w: dirt_depth must not be negative", ErrInvalid)
	case c.Export.Workers < 0:
		return fmt.Errorf("%w: export workers must not be negative", ErrInvalid)
	}
	switch c.Noise.Type {
	case "perlin", "improved", "flat":
	default:
		return fmt.Errorf("%w: unknown noise type %q", ErrInvalid, c.Noise.Type)
	}
	switch c.Export.Compression {
	case "gzip", "zstd":
	default:
		return fmt.Errorf("%w: unknown export compression %q", ErrInvalid, c.Export.Compression)
	}
	return nil
}

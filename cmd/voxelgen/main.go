package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"GopherVoxel/internal/config"
	"GopherVoxel/internal/edit"
	"GopherVoxel/internal/loader"
	"GopherVoxel/internal/logger"
	"GopherVoxel/internal/renderer"
	"GopherVoxel/internal/world"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		logger.Log.Error("voxelgen failed", zap.Error(err))
		logger.Sync()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Sync()
}

func run() error {
	configPath := flag.String("config", "", "Path to YAML config file")
	editsPath := flag.String("edits", "", "Path to YAML edit script applied after generation")
	exportDir := flag.String("export", "", "Directory to export chunk meshes and scene.json to")
	verify := flag.Bool("verify", false, "Reload the export and check it against the generated scene")

	cfg := config.Default()
	seed := flag.Int64("seed", cfg.Seed, "World seed")
	size := flag.Int("size", cfg.WorldSize, "World size in chunks along X and Z")
	logLevel := flag.String("log-level", "", "Log level override (debug, info, warn, error)")
	flag.Parse()

	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = *seed
		case "size":
			cfg.WorldSize = *size
		case "log-level":
			cfg.Log.Level = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		return err
	}

	scene := renderer.NewScene(logger.Log)
	w, err := world.New(cfg, world.WithSink(scene))
	if err != nil {
		return fmt.Errorf("create world: %w", err)
	}
	scene.WorldID = w.ID().String()
	scene.Seed = w.Seed()

	w.GenerateWorld(cfg.WorldSize)

	if *editsPath != "" {
		script, err := edit.LoadScript(*editsPath)
		if err != nil {
			return fmt.Errorf("load edits: %w", err)
		}
		applied := script.Apply(w, scene, logger.Log)
		logger.Log.Info("Edits applied",
			zap.Int("applied", applied),
			zap.Int("requested", len(script.Edits)))
	}

	if *exportDir != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if _, err := scene.ExportScene(ctx, *exportDir, renderer.ExportOptions{
			Workers:     cfg.Export.Workers,
			Compression: renderer.Compression(cfg.Export.Compression),
			OBJ:         cfg.Export.OBJ,
		}); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if *verify {
			if err := verifyExport(*exportDir, scene); err != nil {
				return fmt.Errorf("verify: %w", err)
			}
		}
	}

	st := w.Stats()
	logger.Log.Info("Done",
		zap.String("world_id", w.ID().String()),
		zap.Int("chunks", st.Chunks),
		zap.Int("meshed", st.MeshedChunks),
		zap.Int("quads", st.Quads),
		zap.Int("rebuilds", st.Rebuilds),
		zap.Int("skipped_edits", st.SkippedEdits))
	return nil
}

// verifyExport reloads dir into a fresh scene and compares it chunk by chunk
// with the scene that was exported.
func verifyExport(dir string, scene *renderer.Scene) error {
	reloaded := renderer.NewScene(logger.Log)
	if _, err := loader.LoadScene(dir, reloaded); err != nil {
		return err
	}
	if reloaded.Len() != scene.Len() {
		return fmt.Errorf("%w: %d models reloaded, %d exported", loader.ErrMismatch, reloaded.Len(), scene.Len())
	}
	for _, want := range scene.Models() {
		got := reloaded.Model(want.Chunk)
		if got == nil || got.TriangleCount() != want.TriangleCount() {
			return fmt.Errorf("%w: %s differs after reload", loader.ErrMismatch, want.Name)
		}
	}
	logger.Log.Info("Export verified", zap.String("dir", dir), zap.Int("models", reloaded.Len()))
	return nil
}

package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/shipgridgo/internal/ctxlog"
	"github.com/vk/shipgridgo/internal/model"
	"github.com/vk/shipgridgo/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	pipeline *model.Pipeline
	config   *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// The optional modules parameter overrides the built-in module set; this is
// primarily for testing.
func NewApp(outW io.Writer, appConfig *Config, modules ...registry.Module) *App {
	logger, err := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	if err != nil {
		// A misconfigured logger is a fatal startup error.
		panic(fmt.Errorf("failed to configure logger: %w", err))
	}
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Create and populate the registry with Go step modules.
	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All step modules registered.", "count", len(modules))

	// Load the pipeline into the in-memory model.
	pipeline, err := model.LoadPipelinesRecursively(ctx, appConfig.PipelinePath)
	if err != nil {
		// A failure to load the pipeline is a fatal startup error.
		panic(fmt.Errorf("failed to load pipeline: %w", err))
	}
	logger.Debug("Pipeline configuration loaded.", "steps", len(pipeline.Steps))

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		pipeline: pipeline,
		config:   appConfig,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Pipeline returns the loaded pipeline model. This is primarily for testing.
func (a *App) Pipeline() *model.Pipeline {
	return a.pipeline
}

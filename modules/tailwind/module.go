// Package tailwind validates the CSS utility-framework configuration that
// the frontend bundler consumes. It does not build CSS; it checks that the
// config's content globs actually match template files on disk and that the
// required plugins are declared, so a misconfigured scan path fails the
// pipeline instead of silently producing an empty stylesheet.
package tailwind

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/vk/shipgridgo/internal/ctxlog"
	"github.com/vk/shipgridgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the 'tailwind' step.
type Input struct {
	// Config is the path to the Tailwind configuration file.
	Config string `hcl:"config"`
	// Root is the directory content globs are resolved against. Defaults to
	// the config file's directory.
	Root string `hcl:"root,optional"`
	// RequirePlugins lists plugins that must be declared, e.g.
	// "@tailwindcss/typography".
	RequirePlugins []string `hcl:"require_plugins,optional"`
}

// OnRunTailwind is the handler for the 'tailwind' step's run event.
func OnRunTailwind(ctx context.Context, input *Input) (cty.Value, error) {
	logger := ctxlog.FromContext(ctx)

	cfg, err := ParseConfig(input.Config)
	if err != nil {
		return cty.NilVal, err
	}

	root := input.Root
	if root == "" {
		root = filepath.Dir(input.Config)
	}

	totalFiles := 0
	for _, glob := range cfg.ContentGlobs {
		pattern := glob
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(root, glob)
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return cty.NilVal, fmt.Errorf("invalid content glob %q: %w", glob, err)
		}
		if len(matches) == 0 {
			return cty.NilVal, fmt.Errorf("content glob %q matches no files under %s", glob, root)
		}
		logger.Debug("Content glob verified.", "glob", glob, "matches", len(matches))
		totalFiles += len(matches)
	}

	declared := make(map[string]bool, len(cfg.Plugins))
	for _, plugin := range cfg.Plugins {
		declared[plugin] = true
	}
	for _, required := range input.RequirePlugins {
		if !declared[required] {
			return cty.NilVal, fmt.Errorf("required plugin %q not declared in %s", required, input.Config)
		}
	}

	logger.Info("Tailwind config verified.", "globs", len(cfg.ContentGlobs), "files", totalFiles, "plugins", len(cfg.Plugins))

	return cty.ObjectVal(map[string]cty.Value{
		"globs": cty.NumberIntVal(int64(len(cfg.ContentGlobs))),
		"files": cty.NumberIntVal(int64(totalFiles)),
	}), nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRunner("tailwind", &registry.RegisteredRunner{
		NewInput: func() any { return new(Input) },
		Run: func(ctx context.Context, input any) (cty.Value, error) {
			return OnRunTailwind(ctx, input.(*Input))
		},
	})
}

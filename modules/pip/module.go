// Package pip installs backend dependencies by delegating to the Python
// package installer. Dependency resolution is entirely the installer's job;
// this module only builds the invocation.
package pip

import (
	"context"
	"fmt"

	"github.com/vk/shipgridgo/internal/registry"
	"github.com/vk/shipgridgo/internal/shell"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the 'pip' step.
type Input struct {
	// Requirements is the manifest file passed to `pip install -r`.
	Requirements string `hcl:"requirements,optional"`
	// Python, when set, runs the installer as `<python> -m pip` instead of
	// invoking a pip binary directly.
	Python string `hcl:"python,optional"`
	// Pip names the pip executable when Python is unset.
	Pip     string `hcl:"pip,optional"`
	Upgrade bool   `hcl:"upgrade,optional"`
	Dir     string `hcl:"dir,optional"`
}

// OnRunPip is the handler for the 'pip' step's run event.
func OnRunPip(ctx context.Context, input *Input) (cty.Value, error) {
	requirements := input.Requirements
	if requirements == "" {
		requirements = "requirements.txt"
	}

	cmd := shell.Command{Dir: input.Dir}
	if input.Python != "" {
		cmd.Name = input.Python
		cmd.Args = []string{"-m", "pip"}
	} else {
		cmd.Name = input.Pip
		if cmd.Name == "" {
			cmd.Name = "pip"
		}
	}
	cmd.Args = append(cmd.Args, "install", "-r", requirements)
	if input.Upgrade {
		cmd.Args = append(cmd.Args, "--upgrade")
	}

	if err := shell.Run(ctx, cmd); err != nil {
		return cty.NilVal, fmt.Errorf("pip install failed: %w", err)
	}

	return cty.ObjectVal(map[string]cty.Value{
		"requirements": cty.StringVal(requirements),
	}), nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRunner("pip", &registry.RegisteredRunner{
		NewInput: func() any { return new(Input) },
		Run: func(ctx context.Context, input any) (cty.Value, error) {
			return OnRunPip(ctx, input.(*Input))
		},
	})
}

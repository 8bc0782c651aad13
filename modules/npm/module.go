// Package npm drives the Node package manager for frontend dependency
// installation and asset builds. The bundler owns the build entirely; this
// module only sequences the calls.
package npm

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/shipgridgo/internal/registry"
	"github.com/vk/shipgridgo/internal/shell"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the 'npm' step.
type Input struct {
	// Action is one of "install", "ci", or "run".
	Action string `hcl:"action"`
	// Script is the package.json script invoked by the "run" action.
	// Defaults to "build".
	Script string `hcl:"script,optional"`
	Dir    string `hcl:"dir,optional"`
}

// OnRunNpm is the handler for the 'npm' step's run event.
func OnRunNpm(ctx context.Context, input *Input) (cty.Value, error) {
	cmd := shell.Command{Name: "npm", Dir: input.Dir}

	action := strings.ToLower(input.Action)
	switch action {
	case "install":
		cmd.Args = []string{"install"}
	case "ci":
		cmd.Args = []string{"ci"}
	case "run":
		script := input.Script
		if script == "" {
			script = "build"
		}
		cmd.Args = []string{"run", script}
	default:
		return cty.NilVal, fmt.Errorf("unknown npm action: '%s'", input.Action)
	}

	if err := shell.Run(ctx, cmd); err != nil {
		return cty.NilVal, fmt.Errorf("npm %s failed: %w", action, err)
	}

	return cty.ObjectVal(map[string]cty.Value{
		"action": cty.StringVal(action),
	}), nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRunner("npm", &registry.RegisteredRunner{
		NewInput: func() any { return new(Input) },
		Run: func(ctx context.Context, input any) (cty.Value, error) {
			return OnRunNpm(ctx, input.(*Input))
		},
	})
}

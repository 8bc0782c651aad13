// Package command is the generic escape hatch: it runs an arbitrary
// external command with an explicit argv. Deployment steps that have no
// dedicated module use this.
package command

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/shipgridgo/internal/registry"
	"github.com/vk/shipgridgo/internal/shell"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the 'command' step.
type Input struct {
	Command string            `hcl:"command"`
	Args    []string          `hcl:"args,optional"`
	Dir     string            `hcl:"dir,optional"`
	Env     map[string]string `hcl:"env,optional"`
}

// OnRunCommand is the handler for the 'command' step's run event.
func OnRunCommand(ctx context.Context, input *Input) (cty.Value, error) {
	cmd := shell.Command{
		Name: input.Command,
		Args: input.Args,
		Dir:  input.Dir,
	}

	// Sort env keys so repeated runs produce identical invocations.
	keys := make([]string, 0, len(input.Env))
	for k := range input.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cmd.Env = append(cmd.Env, k+"="+input.Env[k])
	}

	if err := shell.Run(ctx, cmd); err != nil {
		return cty.NilVal, fmt.Errorf("command failed: %w", err)
	}

	return cty.ObjectVal(map[string]cty.Value{
		"command": cty.StringVal(cmd.String()),
	}), nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRunner("command", &registry.RegisteredRunner{
		NewInput: func() any { return new(Input) },
		Run: func(ctx context.Context, input any) (cty.Value, error) {
			return OnRunCommand(ctx, input.(*Input))
		},
	})
}

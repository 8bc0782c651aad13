// Package django invokes a Django project's own management commands. Static
// file collection and schema migrations are framework subsystems; the module
// shells out to manage.py and surfaces its output verbatim.
package django

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

// Input defines the arguments for the 'django' step.
type Input struct {
	// Action is one of "collectstatic" or "migrate".
	Action string `hcl:"action"`
	// Manage is the path to manage.py. Defaults to "manage.py".
	Manage string `hcl:"manage,optional"`
	// Python is the interpreter used to run manage.py. Defaults to "python".
	Python string `hcl:"python,optional"`
	// Settings, when set, is exported as DJANGO_SETTINGS_MODULE.
	Settings string `hcl:"settings,optional"`
	// Database selects the alias for "migrate". Empty means the default.
	Database string `hcl:"database,optional"`
	Dir      string `hcl:"dir,optional"`
}

// OnRunDjango is the handler for the 'django' step's run event.
func OnRunDjango(ctx context.Context, input *Input) (cty.Value, error) {
	manage := input.Manage
	if manage == "" {
		manage = "manage.py"
	}
	python := input.Python
	if python == "" {
		python = "python"
	}

	cmd := shell.Command{Name: python, Dir: input.Dir}
	if input.Settings != "" {
		cmd.Env = []string{"DJANGO_SETTINGS_MODULE=" + input.Settings}
	}

	action := strings.ToLower(input.Action)
	switch action {
	case "collectstatic":
		// Non-interactive mode: collectstatic must never prompt during a
		// deployment run.
		cmd.Args = []string{manage, "collectstatic", "--noinput"}
	case "migrate":
		cmd.Args = []string{manage, "migrate", "--noinput"}
		if input.Database != "" {
			cmd.Args = append(cmd.Args, "--database", input.Database)
		}
	default:
		return cty.NilVal, fmt.Errorf("unknown django action: '%s'", input.Action)
	}

	if err := shell.Run(ctx, cmd); err != nil {
		return cty.NilVal, fmt.Errorf("django %s failed: %w", action, err)
	}

	return cty.ObjectVal(map[string]cty.Value{
		"action": cty.StringVal(action),
	}), nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRunner("django", &registry.RegisteredRunner{
		NewInput: func() any { return new(Input) },
		Run: func(ctx context.Context, input any) (cty.Value, error) {
			return OnRunDjango(ctx, input.(*Input))
		},
	})
}

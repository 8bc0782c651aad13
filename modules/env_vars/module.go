// Package env_vars exposes the process environment as a step output so later
// steps can pass it around or print it for deployment diagnostics.
package env_vars

import (
	"context"
	"os"
	"strings"

	"github.com/vk/shipgridgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnRunEnvVars is the handler for the 'env_vars' step.
func OnRunEnvVars(ctx context.Context) (cty.Value, error) {
	envMap := make(map[string]cty.Value)
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 {
			envMap[pair[0]] = cty.StringVal(pair[1])
		}
	}

	all := cty.MapValEmpty(cty.String)
	if len(envMap) > 0 {
		all = cty.MapVal(envMap)
	}

	return cty.ObjectVal(map[string]cty.Value{
		"all": all,
	}), nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRunner("env_vars", &registry.RegisteredRunner{
		// No 'arguments' block.
		NewInput: nil,
		Run: func(ctx context.Context, _ any) (cty.Value, error) {
			return OnRunEnvVars(ctx)
		},
	})
}

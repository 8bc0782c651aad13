// Package print echoes resolved values through the run's logger. It exists
// for pipeline debugging: referencing another step's output here proves the
// value made it through the evaluation context.
package print

import (
	"context"
	"sort"

	"github.com/vk/shipgridgo/internal/ctxlog"
	"github.com/vk/shipgridgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the 'print' step.
type Input struct {
	Value map[string]string `hcl:"value,optional"`
}

// OnRunPrint is the handler for the 'print' step's run event.
func OnRunPrint(ctx context.Context, input *Input) (cty.Value, error) {
	logger := ctxlog.FromContext(ctx)

	if input.Value == nil {
		logger.Info("print: (null)")
		return cty.NilVal, nil
	}

	// Sort keys for consistent output
	keys := make([]string, 0, len(input.Value))
	for k := range input.Value {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		logger.Info("print", "key", k, "value", input.Value[k])
	}

	return cty.NilVal, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRunner("print", &registry.RegisteredRunner{
		NewInput: func() any { return new(Input) },
		Run: func(ctx context.Context, input any) (cty.Value, error) {
			return OnRunPrint(ctx, input.(*Input))
		},
	})
}

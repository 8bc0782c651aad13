package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Module is the interface that all core modules must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// RegisteredRunner holds the compiled Go parts of a step module.
type RegisteredRunner struct {
	// NewInput returns a fresh pointer to the module's input struct. The
	// runner decodes the step's `arguments` block into it. Nil means the
	// module accepts no arguments.
	NewInput func() any

	// Run executes the step. The input is the decoded value produced by
	// NewInput. The returned value is exposed to later steps in the
	// evaluation context as `step.<type>.<name>`; cty.NilVal means the step
	// produces no output.
	Run func(ctx context.Context, input any) (cty.Value, error)
}

// Registry holds all the registered step runners for a single application
// instance.
type Registry struct {
	runners map[string]*RegisteredRunner
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		runners: make(map[string]*RegisteredRunner),
	}
}

// RegisterRunner registers a Go runner for a step type.
func (r *Registry) RegisterRunner(stepType string, runner *RegisteredRunner) {
	if _, exists := r.runners[stepType]; exists {
		panic(fmt.Sprintf("step runner with type '%s' already registered", stepType))
	}
	if runner == nil || runner.Run == nil {
		panic(fmt.Sprintf("step runner for type '%s' must provide a Run function", stepType))
	}
	slog.Debug("Registering step runner.", "type", stepType)
	r.runners[stepType] = runner
}

// Runner looks up the registered runner for a step type.
func (r *Registry) Runner(stepType string) (*RegisteredRunner, bool) {
	runner, ok := r.runners[stepType]
	return runner, ok
}

// Types returns the sorted list of registered step types.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.runners))
	for t := range r.runners {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

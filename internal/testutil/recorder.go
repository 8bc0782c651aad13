package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vk/shipgridgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Recorder collects the IDs of executed test steps in invocation order. It
// is how tests observe sequencing and fail-fast behavior from outside the
// runner.
type Recorder struct {
	mu    sync.Mutex
	calls []string
}

// Calls returns a copy of the recorded invocation order.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *Recorder) record(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, id)
}

// RecorderModule registers the 'test_recorder' step type backed by the
// given Recorder.
type RecorderModule struct {
	Recorder *Recorder
}

// RecorderInput defines the arguments for the 'test_recorder' step.
type RecorderInput struct {
	ID string `hcl:"id"`
	// Fail makes the step return an error after recording itself.
	Fail bool `hcl:"fail,optional"`
	// Sleep delays completion, for timeout tests. Duration string.
	Sleep string `hcl:"sleep,optional"`
}

// Register registers the handler with the engine.
func (m *RecorderModule) Register(r *registry.Registry) {
	r.RegisterRunner("test_recorder", &registry.RegisteredRunner{
		NewInput: func() any { return new(RecorderInput) },
		Run: func(ctx context.Context, input any) (cty.Value, error) {
			in := input.(*RecorderInput)
			m.Recorder.record(in.ID)

			if in.Sleep != "" {
				d, err := time.ParseDuration(in.Sleep)
				if err != nil {
					return cty.NilVal, err
				}
				select {
				case <-time.After(d):
				case <-ctx.Done():
					return cty.NilVal, ctx.Err()
				}
			}

			if in.Fail {
				return cty.NilVal, fmt.Errorf("intentional failure in step %q", in.ID)
			}

			return cty.ObjectVal(map[string]cty.Value{
				"id": cty.StringVal(in.ID),
			}), nil
		},
	})
}

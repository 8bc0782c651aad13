package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/vk/shipgridgo/internal/ctxlog"
	"github.com/vk/shipgridgo/internal/model"
	"github.com/vk/shipgridgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Runner executes the steps of a pipeline in order.
type Runner struct {
	registry *registry.Registry

	// outputs holds the results of completed steps, keyed by type then name,
	// and feeds the evaluation context of every subsequent step.
	outputs map[string]map[string]cty.Value
}

// New creates a Runner backed by the given registry.
func New(reg *registry.Registry) *Runner {
	return &Runner{
		registry: reg,
		outputs:  make(map[string]map[string]cty.Value),
	}
}

// Plan returns the IDs of the pipeline's steps in execution order without
// evaluating or running anything.
func (r *Runner) Plan(pipeline *model.Pipeline) []string {
	ids := make([]string, 0, len(pipeline.Steps))
	for _, step := range pipeline.Steps {
		ids = append(ids, step.ID())
	}
	return ids
}

// Run executes the pipeline. It returns the error of the first failing step;
// steps after a failure are never attempted.
func (r *Runner) Run(ctx context.Context, pipeline *model.Pipeline) error {
	logger := ctxlog.FromContext(ctx)

	for position, step := range pipeline.Steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("pipeline aborted before step %q: %w", step.ID(), err)
		}

		stepLogger := logger.With("step", step.ID(), "position", position+1, "total", len(pipeline.Steps))
		stepCtx := ctxlog.WithLogger(ctx, stepLogger)

		if err := r.runStep(stepCtx, step); err != nil {
			return fmt.Errorf("step %q (%s) failed: %w", step.ID(), step.FSInformation.FilePath, err)
		}
	}

	return nil
}

// runStep evaluates a single step's configuration and invokes its module.
func (r *Runner) runStep(ctx context.Context, step *model.Step) error {
	logger := ctxlog.FromContext(ctx)
	evalCtx := r.buildEvalContext()

	enabled, err := evalEnabled(step.Enabled, evalCtx)
	if err != nil {
		return err
	}
	if !enabled {
		logger.Info("⏭️ Step disabled, skipping.")
		return nil
	}

	runner, ok := r.registry.Runner(step.Type)
	if !ok {
		return fmt.Errorf("unknown step type %q (registered: %v)", step.Type, r.registry.Types())
	}

	var input any
	if runner.NewInput != nil {
		input = runner.NewInput()
		if diags := gohcl.DecodeBody(step.Arguments, evalCtx, input); diags.HasErrors() {
			return fmt.Errorf("failed to decode arguments: %w", diags)
		}
	}

	runCtx := ctx
	if timeout, err := evalTimeout(step.Timeout, evalCtx); err != nil {
		return err
	} else if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	logger.Info("▶️ Starting step.")
	started := time.Now()

	output, err := runner.Run(runCtx, input)
	if err != nil {
		return err
	}

	if output != cty.NilVal {
		if r.outputs[step.Type] == nil {
			r.outputs[step.Type] = make(map[string]cty.Value)
		}
		r.outputs[step.Type][step.Name] = output
	}

	logger.Info("✅ Finished step.", "duration", time.Since(started).Round(time.Millisecond).String())
	return nil
}

// evalEnabled resolves the optional `enabled` expression. Absent means true.
func evalEnabled(expr hcl.Expression, evalCtx *hcl.EvalContext) (bool, error) {
	if expr == nil {
		return true, nil
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return false, fmt.Errorf("failed to evaluate 'enabled': %w", diags)
	}
	val, err := convert.Convert(val, cty.Bool)
	if err != nil {
		return false, fmt.Errorf("'enabled' must be a boolean: %w", err)
	}
	if val.IsNull() {
		return false, fmt.Errorf("'enabled' must not be null")
	}
	return val.True(), nil
}

// evalTimeout resolves the optional `timeout` expression into a duration.
// Absent means no timeout.
func evalTimeout(expr hcl.Expression, evalCtx *hcl.EvalContext) (time.Duration, error) {
	if expr == nil {
		return 0, nil
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return 0, fmt.Errorf("failed to evaluate 'timeout': %w", diags)
	}
	val, err := convert.Convert(val, cty.String)
	if err != nil {
		return 0, fmt.Errorf("'timeout' must be a duration string: %w", err)
	}
	if val.IsNull() {
		return 0, fmt.Errorf("'timeout' must not be null")
	}
	timeout, err := time.ParseDuration(val.AsString())
	if err != nil {
		return 0, fmt.Errorf("invalid 'timeout': %w", err)
	}
	return timeout, nil
}

package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/shipgridgo/internal/model"
	"github.com/vk/shipgridgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// newStep builds a minimal in-memory step for runner tests, bypassing the
// HCL loader.
func newStep(stepType, name string) *model.Step {
	return &model.Step{
		Type:          stepType,
		Name:          name,
		FSInformation: model.NewFSInfo("test.hcl"),
		Arguments:     hcl.EmptyBody(),
	}
}

// expr parses a literal HCL expression for use in step attributes.
func expr(t *testing.T, src string) hcl.Expression {
	t.Helper()
	parsed, diags := hclsyntax.ParseExpression([]byte(src), "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())
	return parsed
}

// recordingRegistry registers one no-argument runner per step type that
// appends its invocation to calls.
func recordingRegistry(calls *[]string, failOn string) *registry.Registry {
	reg := registry.New()
	for _, stepType := range []string{"alpha", "beta", "gamma"} {
		stepType := stepType
		reg.RegisterRunner(stepType, &registry.RegisteredRunner{
			Run: func(ctx context.Context, _ any) (cty.Value, error) {
				*calls = append(*calls, stepType)
				if stepType == failOn {
					return cty.NilVal, errors.New("boom")
				}
				return cty.NilVal, nil
			},
		})
	}
	return reg
}

func TestRun_SequentialOrder(t *testing.T) {
	var calls []string
	r := New(recordingRegistry(&calls, ""))

	pipeline := &model.Pipeline{Steps: []*model.Step{
		newStep("alpha", "a"),
		newStep("beta", "b"),
		newStep("gamma", "c"),
	}}

	require.NoError(t, r.Run(context.Background(), pipeline))
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, calls)
}

func TestRun_FailFast(t *testing.T) {
	var calls []string
	r := New(recordingRegistry(&calls, "beta"))

	pipeline := &model.Pipeline{Steps: []*model.Step{
		newStep("alpha", "a"),
		newStep("beta", "b"),
		newStep("gamma", "c"),
	}}

	err := r.Run(context.Background(), pipeline)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `step "beta.b"`)
	assert.Contains(t, err.Error(), "test.hcl")
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, []string{"alpha", "beta"}, calls)
}

func TestRun_UnknownStepType(t *testing.T) {
	var calls []string
	r := New(recordingRegistry(&calls, ""))

	pipeline := &model.Pipeline{Steps: []*model.Step{
		newStep("delta", "d"),
	}}

	err := r.Run(context.Background(), pipeline)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown step type "delta"`)
}

func TestRun_DisabledStepIsSkipped(t *testing.T) {
	var calls []string
	r := New(recordingRegistry(&calls, ""))

	disabled := newStep("beta", "b")
	disabled.Enabled = expr(t, "false")

	pipeline := &model.Pipeline{Steps: []*model.Step{
		newStep("alpha", "a"),
		disabled,
		newStep("gamma", "c"),
	}}

	require.NoError(t, r.Run(context.Background(), pipeline))
	assert.Equal(t, []string{"alpha", "gamma"}, calls)
}

func TestRun_InvalidEnabledExpression(t *testing.T) {
	var calls []string
	r := New(recordingRegistry(&calls, ""))

	step := newStep("alpha", "a")
	step.Enabled = expr(t, `"not-a-bool"`)

	pipeline := &model.Pipeline{Steps: []*model.Step{step}}

	err := r.Run(context.Background(), pipeline)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'enabled' must be a boolean")
}

func TestRun_NullEnabledFailsTheRun(t *testing.T) {
	var calls []string
	r := New(recordingRegistry(&calls, ""))

	step := newStep("alpha", "a")
	step.Enabled = expr(t, "null")

	pipeline := &model.Pipeline{Steps: []*model.Step{step}}

	err := r.Run(context.Background(), pipeline)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'enabled' must not be null")
	assert.Empty(t, calls)
}

func TestRun_TimeoutCancelsStep(t *testing.T) {
	reg := registry.New()
	reg.RegisterRunner("sleeper", &registry.RegisteredRunner{
		Run: func(ctx context.Context, _ any) (cty.Value, error) {
			select {
			case <-time.After(5 * time.Second):
				return cty.NilVal, nil
			case <-ctx.Done():
				return cty.NilVal, ctx.Err()
			}
		},
	})
	r := New(reg)

	step := newStep("sleeper", "s")
	step.Timeout = expr(t, `"20ms"`)

	pipeline := &model.Pipeline{Steps: []*model.Step{step}}

	err := r.Run(context.Background(), pipeline)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRun_InvalidTimeout(t *testing.T) {
	var calls []string
	r := New(recordingRegistry(&calls, ""))

	step := newStep("alpha", "a")
	step.Timeout = expr(t, `"not-a-duration"`)

	pipeline := &model.Pipeline{Steps: []*model.Step{step}}

	err := r.Run(context.Background(), pipeline)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid 'timeout'")
	assert.Empty(t, calls)
}

func TestRun_NullTimeoutFailsTheRun(t *testing.T) {
	var calls []string
	r := New(recordingRegistry(&calls, ""))

	step := newStep("alpha", "a")
	step.Timeout = expr(t, "null")

	pipeline := &model.Pipeline{Steps: []*model.Step{step}}

	err := r.Run(context.Background(), pipeline)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'timeout' must not be null")
	assert.Empty(t, calls)
}

func TestRun_OutputsAccumulate(t *testing.T) {
	reg := registry.New()
	reg.RegisterRunner("producer", &registry.RegisteredRunner{
		Run: func(ctx context.Context, _ any) (cty.Value, error) {
			return cty.ObjectVal(map[string]cty.Value{
				"answer": cty.NumberIntVal(42),
			}), nil
		},
	})
	r := New(reg)

	pipeline := &model.Pipeline{Steps: []*model.Step{
		newStep("producer", "p"),
	}}
	require.NoError(t, r.Run(context.Background(), pipeline))

	evalCtx := r.buildEvalContext()
	stepVal := evalCtx.Variables["step"]
	answer := stepVal.GetAttr("producer").GetAttr("p").GetAttr("answer")
	n, _ := answer.AsBigFloat().Int64()
	assert.Equal(t, int64(42), n)
}

func TestRun_CanceledContextAborts(t *testing.T) {
	var calls []string
	r := New(recordingRegistry(&calls, ""))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pipeline := &model.Pipeline{Steps: []*model.Step{
		newStep("alpha", "a"),
	}}

	err := r.Run(ctx, pipeline)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, calls)
}

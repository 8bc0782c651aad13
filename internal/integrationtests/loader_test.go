package integrationtests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/shipgridgo/internal/app"
	"github.com/vk/shipgridgo/internal/testutil"
)

func TestLoader_DuplicateStepIDIsAStartupError(t *testing.T) {
	recorder := &testutil.Recorder{}
	result := testutil.RunPipelineTest(t,
		map[string]string{
			"a.hcl": `
				step "test_recorder" "same" {
					arguments { id = "first" }
				}
			`,
			"b.hcl": `
				step "test_recorder" "same" {
					arguments { id = "second" }
				}
			`,
		},
		&testutil.RecorderModule{Recorder: recorder},
	)

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "startup panicked")
	assert.Contains(t, result.Err.Error(), `duplicate step "test_recorder.same"`)
	assert.Empty(t, recorder.Calls())
}

func TestLoader_InvalidHCLIsAStartupError(t *testing.T) {
	result := testutil.RunPipelineTest(t,
		map[string]string{"main.hcl": `step "broken" {`},
		&testutil.RecorderModule{Recorder: &testutil.Recorder{}},
	)

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "startup panicked")
}

func TestDryRun_ListsStepsWithoutExecuting(t *testing.T) {
	pipelineHCL := `
		step "test_recorder" "one" {
			arguments { id = "one" }
		}
		step "test_recorder" "two" {
			arguments { id = "two" }
		}
	`
	recorder := &testutil.Recorder{}
	result := testutil.RunPipelineTestWithConfig(t,
		map[string]string{"main.hcl": pipelineHCL},
		func(cfg *app.Config) { cfg.DryRun = true },
		&testutil.RecorderModule{Recorder: recorder},
	)

	require.NoError(t, result.Err)
	assert.Empty(t, recorder.Calls())
	assert.Contains(t, result.LogOutput, "test_recorder.one")
	assert.Contains(t, result.LogOutput, "test_recorder.two")
}

package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_NoArgsPrintsUsageAndExitsCleanly(t *testing.T) {
	var out bytes.Buffer
	config, shouldExit, err := Parse(nil, &out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, config)
	assert.Contains(t, out.String(), "ShipGridGo")
	assert.Contains(t, out.String(), "PIPELINE_PATH")
}

func TestParse_PositionalPath(t *testing.T) {
	var out bytes.Buffer
	config, shouldExit, err := Parse([]string{"deploy/"}, &out)

	require.NoError(t, err)
	assert.False(t, shouldExit)
	require.NotNil(t, config)
	assert.Equal(t, "deploy/", config.PipelinePath)
	assert.Equal(t, "json", config.LogFormat)
	assert.Equal(t, "info", config.LogLevel)
	assert.False(t, config.DryRun)
}

func TestParse_Flags(t *testing.T) {
	var out bytes.Buffer
	config, shouldExit, err := Parse([]string{
		"-p", "pipeline.hcl",
		"-log-format", "text",
		"-log-level", "debug",
		"-healthcheck-port", "8080",
		"-dry-run",
	}, &out)

	require.NoError(t, err)
	assert.False(t, shouldExit)
	require.NotNil(t, config)
	assert.Equal(t, "pipeline.hcl", config.PipelinePath)
	assert.Equal(t, "text", config.LogFormat)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, 8080, config.HealthcheckPort)
	assert.True(t, config.DryRun)
}

func TestParse_PipelineFlagWinsOverPositional(t *testing.T) {
	var out bytes.Buffer
	config, _, err := Parse([]string{"-pipeline", "from-flag.hcl", "positional.hcl"}, &out)

	require.NoError(t, err)
	require.NotNil(t, config)
	assert.Equal(t, "from-flag.hcl", config.PipelinePath)
}

func TestParse_InvalidLogFormat(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-log-format", "xml", "pipeline.hcl"}, &out)

	require.Error(t, err)
	exitErr, ok := err.(*ExitError)
	require.True(t, ok)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "log-format")
}

func TestParse_InvalidLogLevel(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-log-level", "loud", "pipeline.hcl"}, &out)

	require.Error(t, err)
	exitErr, ok := err.(*ExitError)
	require.True(t, ok)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "log-level")
}

func TestParse_UnknownFlag(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-bogus"}, &out)

	require.Error(t, err)
	exitErr, ok := err.(*ExitError)
	require.True(t, ok)
	assert.Equal(t, 2, exitErr.Code)
}

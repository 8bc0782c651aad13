package env_vars

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestOnRunEnvVars(t *testing.T) {
	t.Setenv("SHIPGRID_ENV_TEST", "visible")

	output, err := OnRunEnvVars(context.Background())
	require.NoError(t, err)

	all := output.GetAttr("all")
	value := all.Index(cty.StringVal("SHIPGRID_ENV_TEST"))
	assert.Equal(t, "visible", value.AsString())
}

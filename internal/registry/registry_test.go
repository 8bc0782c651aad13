package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func noopRunner() *RegisteredRunner {
	return &RegisteredRunner{
		Run: func(ctx context.Context, input any) (cty.Value, error) {
			return cty.NilVal, nil
		},
	}
}

func TestRegisterAndLookup(t *testing.T) {
	r := New()
	r.RegisterRunner("pip", noopRunner())

	runner, ok := r.Runner("pip")
	require.True(t, ok)
	assert.NotNil(t, runner)

	_, ok = r.Runner("npm")
	assert.False(t, ok)
}

func TestRegisterRunner_DuplicatePanics(t *testing.T) {
	r := New()
	r.RegisterRunner("pip", noopRunner())

	assert.Panics(t, func() {
		r.RegisterRunner("pip", noopRunner())
	})
}

func TestRegisterRunner_MissingRunFuncPanics(t *testing.T) {
	r := New()
	assert.Panics(t, func() {
		r.RegisterRunner("broken", &RegisteredRunner{})
	})
}

func TestTypes_Sorted(t *testing.T) {
	r := New()
	r.RegisterRunner("npm", noopRunner())
	r.RegisterRunner("django", noopRunner())
	r.RegisterRunner("pip", noopRunner())

	assert.Equal(t, []string{"django", "npm", "pip"}, r.Types())
}

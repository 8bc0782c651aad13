package runner

import (
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// buildEvalContext assembles the variables visible to a step's expressions:
//
//   - env.<VAR>              process environment at the time the step runs
//   - step.<type>.<name>     output of a previously completed step
//
// A reference to a step that has not produced an output yet fails evaluation,
// which is the desired behavior in a strictly ordered pipeline: only earlier
// steps can be referenced.
func (r *Runner) buildEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env":  envValue(),
			"step": r.outputsValue(),
		},
	}
}

// envValue snapshots the process environment as a cty object.
func envValue() cty.Value {
	environ := os.Environ()
	vars := make(map[string]cty.Value, len(environ))
	for _, entry := range environ {
		pair := strings.SplitN(entry, "=", 2)
		if len(pair) == 2 {
			vars[pair[0]] = cty.StringVal(pair[1])
		}
	}
	if len(vars) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(vars)
}

// outputsValue exposes completed step outputs as a nested cty object.
func (r *Runner) outputsValue() cty.Value {
	if len(r.outputs) == 0 {
		return cty.EmptyObjectVal
	}
	byType := make(map[string]cty.Value, len(r.outputs))
	for stepType, byName := range r.outputs {
		names := make(map[string]cty.Value, len(byName))
		for name, output := range byName {
			names[name] = output
		}
		byType[stepType] = cty.ObjectVal(names)
	}
	return cty.ObjectVal(byType)
}

// SPDX-License-Identifier: MIT
//
// This file defines the Step structure, the atomic unit of work within a
// Pipeline. It represents a single, configured invocation of a step module.
//
// Why store raw hcl.Expression fields?
//
// The `enabled` and `timeout` fields are kept as expressions rather than
// resolved Go values. This lets a step's configuration be derived from the
// process environment or from the output of an earlier step, e.g.
// `enabled = env.DEPLOY_STATIC == "1"`. The runner resolves the expressions
// against a live evaluation context immediately before the step executes.
package model

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// Step is the in-memory representation of a `step` block.
type Step struct {
	// Type names the registered step module, e.g. "pip" or "django".
	Type string
	// Name distinguishes multiple steps of the same type.
	Name string

	FSInformation *FSInfo

	Enabled     hcl.Expression
	Description hcl.Expression
	Timeout     hcl.Expression

	// Arguments is the body of the optional `arguments` block, decoded by
	// the runner into the module's typed input struct.
	Arguments hcl.Body
}

// ID returns the step's unique address within the pipeline, "type.name".
func (s *Step) ID() string {
	return s.Type + "." + s.Name
}

// hclStep represents a single 'step' block for initial decoding from HCL.
type hclStep struct {
	Type string   `hcl:"type,label"`
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// stepBodySchema defines the expected structure of a `step` block's body.
var stepBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "enabled"},
		{Name: "description"},
		{Name: "timeout"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "arguments"},
	},
}

// NewStepFromHCL creates a new Step from a parsed HCL step block.
func NewStepFromHCL(parsedStep *hclStep, filePath string) (*Step, hcl.Diagnostics) {
	step := &Step{
		Type:          parsedStep.Type,
		Name:          parsedStep.Name,
		FSInformation: NewFSInfo(filePath),
	}

	bodyContent, diags := parsedStep.Body.Content(stepBodySchema)
	if diags.HasErrors() {
		return nil, diags
	}

	if attr, exists := bodyContent.Attributes["enabled"]; exists {
		step.Enabled = attr.Expr
	}
	if attr, exists := bodyContent.Attributes["description"]; exists {
		step.Description = attr.Expr
	}
	if attr, exists := bodyContent.Attributes["timeout"]; exists {
		step.Timeout = attr.Expr
	}

	argsBlock, blockDiags := findUniqueBlock(bodyContent.Blocks, "arguments")
	diags = append(diags, blockDiags...)
	if diags.HasErrors() {
		return nil, diags
	}
	if argsBlock != nil {
		step.Arguments = argsBlock.Body
	} else {
		step.Arguments = hcl.EmptyBody()
	}

	return step, diags
}

// findUniqueBlock returns the single block of the given type, nil when the
// block is absent, and a diagnostic when it appears more than once.
func findUniqueBlock(blocks hcl.Blocks, blockType string) (*hcl.Block, hcl.Diagnostics) {
	matched := blocks.OfType(blockType)
	switch len(matched) {
	case 0:
		return nil, nil
	case 1:
		return matched[0], nil
	default:
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Duplicate %q block", blockType),
			Detail:   fmt.Sprintf("Only one %q block is allowed per step.", blockType),
			Subject:  matched[1].DefRange.Ptr(),
		}}
	}
}

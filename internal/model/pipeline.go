// SPDX-License-Identifier: MIT
//
// This file defines the Pipeline structure, the root container for all
// configuration loaded from a user's .hcl files.
//
// Why have a Pipeline?
//
// A deployment plan may be split across many files and directories. The
// loading functions here discover every `step` block and consolidate them
// into a single ordered list. Order is the whole contract: files are visited
// in sorted path order and steps keep their in-file declaration order, so
// the resulting slice is exactly the sequence the runner will execute.
package model

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/shipgridgo/internal/ctxlog"
	"github.com/vk/shipgridgo/internal/fsutil"
)

// Pipeline represents the user's deployment plan: an ordered list of steps.
type Pipeline struct {
	Steps []*Step
}

// NewPipeline creates and returns an initialized, empty Pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{
		Steps: []*Step{},
	}
}

// hclPipelineFile represents the top-level structure of a pipeline file for
// decoding.
type hclPipelineFile struct {
	Steps []*hclStep `hcl:"step,block"`
}

// newStepsFromHCL parses a single HCL file and returns the Steps found
// within it, in declaration order.
func newStepsFromHCL(filePath string, parser *hclparse.Parser) ([]*Step, error) {
	hclFile, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
	}

	var parsedFile hclPipelineFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsedFile)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filePath, diags)
	}

	steps := make([]*Step, 0, len(parsedFile.Steps))
	for _, parsedStep := range parsedFile.Steps {
		step, stepDiags := NewStepFromHCL(parsedStep, filePath)
		if stepDiags.HasErrors() {
			return nil, fmt.Errorf("error parsing step in file %s: %w", filePath, stepDiags)
		}
		steps = append(steps, step)
	}

	return steps, nil
}

// LoadPipelinesRecursively finds and parses all HCL files in a given path
// into a Pipeline model. Step IDs (type.name) must be unique across the
// whole pipeline so that later steps can reference earlier outputs
// unambiguously.
func LoadPipelinesRecursively(ctx context.Context, pipelinePath string) (*Pipeline, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading pipeline from path", "path", pipelinePath)

	files, err := fsutil.FindFilesByExtension(pipelinePath, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to find pipeline files in %s: %w", pipelinePath, err)
	}

	pipeline := NewPipeline()
	if len(files) == 0 {
		logger.Warn("No .hcl pipeline files found in path, returning empty pipeline", "path", pipelinePath)
		return pipeline, nil
	}

	parser := hclparse.NewParser()
	seen := make(map[string]string) // step ID -> file it was declared in
	for _, file := range files {
		steps, err := newStepsFromHCL(file, parser)
		if err != nil {
			return nil, err
		}
		for _, step := range steps {
			if prev, exists := seen[step.ID()]; exists {
				return nil, fmt.Errorf("duplicate step %q in %s (first declared in %s)", step.ID(), file, prev)
			}
			seen[step.ID()] = file
		}
		pipeline.Steps = append(pipeline.Steps, steps...)
	}

	logger.Debug("Pipeline loaded.", "steps_found", len(pipeline.Steps))
	return pipeline, nil
}

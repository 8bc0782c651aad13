// Package nltk fetches fixed NLP data files by delegating to the NLTK
// corpus downloader. Packages come from an inline list or from a YAML
// manifest file; the module never resolves or fetches data itself.
package nltk

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/shipgridgo/internal/registry"
	"github.com/vk/shipgridgo/internal/shell"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the 'nltk' step.
type Input struct {
	// TargetDir is the NLTK data directory passed as `-d`.
	TargetDir string `hcl:"target_dir"`
	// Packages lists corpus packages explicitly.
	Packages []string `hcl:"packages,optional"`
	// Manifest is a YAML file with a top-level `packages` list, as an
	// alternative to the inline list.
	Manifest string `hcl:"manifest,optional"`
	// Python is the interpreter used to run the downloader module.
	// Defaults to "python".
	Python string `hcl:"python,optional"`
	Dir    string `hcl:"dir,optional"`
}

// manifestFile is the YAML structure of a corpus manifest.
type manifestFile struct {
	Packages []string `yaml:"packages"`
}

// resolvePackages merges the inline list with the manifest contents.
func resolvePackages(input *Input) ([]string, error) {
	packages := append([]string(nil), input.Packages...)

	if input.Manifest != "" {
		raw, err := os.ReadFile(input.Manifest)
		if err != nil {
			return nil, fmt.Errorf("failed to read corpus manifest %s: %w", input.Manifest, err)
		}
		var manifest manifestFile
		if err := yaml.Unmarshal(raw, &manifest); err != nil {
			return nil, fmt.Errorf("failed to parse corpus manifest %s: %w", input.Manifest, err)
		}
		packages = append(packages, manifest.Packages...)
	}

	if len(packages) == 0 {
		return nil, fmt.Errorf("no corpus packages given: set 'packages' or 'manifest'")
	}
	return packages, nil
}

// OnRunNltk is the handler for the 'nltk' step's run event.
func OnRunNltk(ctx context.Context, input *Input) (cty.Value, error) {
	packages, err := resolvePackages(input)
	if err != nil {
		return cty.NilVal, err
	}

	python := input.Python
	if python == "" {
		python = "python"
	}

	cmd := shell.Command{
		Name: python,
		Args: append([]string{"-m", "nltk.downloader", "-d", input.TargetDir}, packages...),
		Dir:  input.Dir,
	}

	if err := shell.Run(ctx, cmd); err != nil {
		return cty.NilVal, fmt.Errorf("nltk download failed: %w", err)
	}

	packageVals := make([]cty.Value, 0, len(packages))
	for _, pkg := range packages {
		packageVals = append(packageVals, cty.StringVal(pkg))
	}

	return cty.ObjectVal(map[string]cty.Value{
		"target_dir": cty.StringVal(input.TargetDir),
		"packages":   cty.ListVal(packageVals),
	}), nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRunner("nltk", &registry.RegisteredRunner{
		NewInput: func() any { return new(Input) },
		Run: func(ctx context.Context, input any) (cty.Value, error) {
			return OnRunNltk(ctx, input.(*Input))
		},
	})
}

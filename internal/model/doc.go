// SPDX-License-Identifier: MIT
//
// Package model provides the Go struct representation of the shipgridgo HCL
// configuration. Its core purpose is to create a strongly-typed, in-memory
// model of the user's pipeline definitions by parsing the raw HCL files.
//
// # Core Concepts
//
// The model is built around a few key structures:
//
//   - Pipeline: The root container representing an entire deployment plan. It
//     aggregates all steps parsed from one or more .hcl files, in their final
//     execution order.
//
//   - Step: A single configured invocation of a step module. It is the atomic
//     unit of work; steps run strictly one after another, in declaration
//     order, and the first failure aborts the run.
//
//   - FSInfo: Metadata that links every Step back to its source file. This is
//     critical for providing clear error messages when a pipeline spans many
//     files.
//
// Why store raw hcl expressions and bodies?
//
// A step's `enabled` attribute and its `arguments` block are kept unevaluated
// here. Evaluation is deferred to the runner, which supplies an evaluation
// context containing the process environment and the outputs of previously
// completed steps. The model captures the user's intent as expressions; the
// runner resolves them into concrete values at the moment the step runs.
package model

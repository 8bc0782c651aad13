// Package runner executes a loaded pipeline. Execution is strictly
// sequential and fail-fast: steps run one at a time in declaration order,
// each must complete successfully before the next begins, and the first
// failure aborts the run with the remaining steps untouched.
package runner

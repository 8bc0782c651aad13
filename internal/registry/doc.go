// Package registry holds the step modules compiled into the shipgridgo
// binary. A pipeline's `step "type" "name"` block is dispatched to the
// runner registered for that type; registration happens once at startup and
// duplicate or missing registrations are programmer errors.
package registry

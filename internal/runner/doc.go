// Package runner executes the external commands that follow a scaffold or
// update (version control init, dependency install, build) and reports each
// as a StepResult instead of an error. A failed step never aborts the
// surrounding operation.
package runner

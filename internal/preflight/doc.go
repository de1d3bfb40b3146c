// Package preflight validates the filesystem inputs and output location of a
// relabel run before anything is written.
//
// The run orchestration calls RunAll once per invocation; any failed check
// aborts the run as a configuration error. Each check returns a Result so the
// CLI can print every problem at once rather than stopping at the first.
package preflight

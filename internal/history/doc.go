// Package history persists a ledger of completed relabel runs in SQLite.
//
// Each run records its inputs, the unique suffix naming its outputs, and the
// remap and manifest counts, so earlier output directories and manifests can
// be traced back to the vocabularies that produced them. The database lives
// under the configured state directory and uses WAL mode with a short
// busy-retry loop, matching how concurrent CLI invocations touch it.
package history

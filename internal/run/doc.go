// Package run wires one relabel invocation end to end.
//
// A Runner resolves the input paths against the working directory, runs the
// preflight checks, loads both vocabularies, and takes an advisory lock on the
// output directory through a ".relabel.lock" file that is removed when the
// run ends. It then names the outputs with a fresh unique suffix,
// remaps the label directory into "<labels>_<suffix>", writes
// "train_<suffix>.txt", and finally records the run in the history database.
//
// Configuration problems surface as ErrConfig before anything is written.
// Data and I/O errors abort the run where they occur; files already written
// stay on disk because a run is not transactional.
package run

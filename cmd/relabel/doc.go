// Package main hosts the relabel CLI entrypoint and command graph.
//
// The root command remaps a YOLO/darknet label directory onto a target
// vocabulary and writes the matching training manifest. The history and
// config subcommands inspect the run ledger and scaffold configuration.
// Command handlers stay thin; the work lives in internal/run.
package main

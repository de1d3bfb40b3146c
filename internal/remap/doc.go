// Package remap rewrites darknet-style annotation files from a source class
// vocabulary to a target vocabulary.
//
// Each annotation line is "<class-index> <x> <y> <width> <height>". Only the
// leading class index is interpreted: it is resolved to a name through the
// source vocabulary and re-indexed through the target vocabulary. Lines whose
// class is absent from the target are dropped, and a label file whose every
// line is dropped produces no output file at all, which later excludes its
// image from the manifest.
//
// The remaining tokens are never parsed; they are copied byte for byte,
// including their separators and decimal formatting.
package remap

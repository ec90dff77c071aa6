// Package builder defines the target-builder surface the lowering passes
// emit into.
//
// The Builder interface is the boundary to the hardware code generator:
// passes hand it computed index chains and descriptor coordinates, never IR
// internals. Recorder is the in-tree implementation; it records emitted
// operations so the pipeline, its tests, and the CLI need no code
// generator.
package builder

// Package ir defines the intermediate representation consumed by the
// stage-lowering pipeline.
//
// A Module holds one shader translated from a source binary: a type arena,
// resource globals, and functions whose bodies are flat instruction lists.
// The translator leaves high-level placeholder instructions (resource
// accesses, runtime-array length queries, stage builtins) in function
// bodies; the lowering passes in package lower replace them with target
// builder operations.
package ir

// Package spvlower lowers single-shader IR modules for a hardware-target
// code generator.
//
// A module arrives from the upstream translator with placeholder
// instructions for resource accesses, runtime-array length queries, and
// stage builtins, plus an execution-model tag on its entry function. The
// lowering pipeline identifies the entry point and stage, then runs a
// fixed sequence of passes that replace every placeholder with
// target-builder operations.
//
// Example usage:
//
//	module, err := asm.ParseFile("shader.sir")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rec := builder.NewRecorder()
//	if err := spvlower.Lower(module, rec); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(rec.String())
//
// For control over validation, use LowerWithOptions. The individual
// pieces (entry resolution, the stage registry, access-path
// reconciliation) live in package lower.
package spvlower

import (
	"github.com/gogpu/spvlower/builder"
	"github.com/gogpu/spvlower/ir"
	"github.com/gogpu/spvlower/lower"
)

// Lower runs the lowering pipeline over the module with default options,
// emitting target operations into b.
func Lower(m *ir.Module, b builder.Builder) error {
	return LowerWithOptions(m, b, lower.DefaultOptions())
}

// LowerWithOptions runs the lowering pipeline with custom options.
//
// The module is mutated in place and must not be shared with another
// concurrent lowering run. On error the module is in an undefined
// partially-lowered state and must be discarded.
func LowerWithOptions(m *ir.Module, b builder.Builder, opts lower.Options) error {
	return lower.NewPipeline(opts).Run(m, b)
}

// DefaultOptions returns sensible default pipeline options.
func DefaultOptions() lower.Options {
	return lower.DefaultOptions()
}

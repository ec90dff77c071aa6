package builder

import "github.com/gogpu/spvlower/ir"

// OpID identifies an emitted target operation. 0 is never a valid id.
type OpID uint32

// Builder is the construction surface of the target code generator.
//
// All methods are stage-agnostic primitives; stage decisions stay in the
// lowering passes. Implementations allocate ids densely from 1.
type Builder interface {
	// ConstInt emits (or reuses) a 32-bit integer constant.
	ConstInt(v uint32) OpID

	// DescriptorLength emits a query for the element count of the
	// runtime-sized array addressed by indices inside the descriptor at
	// (group, binding).
	DescriptorLength(group, binding uint32, indices []OpID) OpID

	// AccessChain emits an address computation from a descriptor base
	// through the given indices.
	AccessChain(base OpID, indices []OpID) OpID

	// Descriptor emits the base address of the descriptor at
	// (group, binding).
	Descriptor(group, binding uint32) OpID

	// Load emits a load through a previously formed address.
	Load(ptr OpID) OpID

	// Store emits a store through a previously formed address.
	Store(ptr, value OpID)

	// ReadBuiltin emits a read of a stage builtin input.
	ReadBuiltin(b ir.BuiltinValue) OpID

	// Kill emits a fragment discard.
	Kill()
}

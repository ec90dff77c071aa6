package ir

// Instruction represents one instruction in a function body.
//
// The translator emits placeholder instructions that name resources and
// builtins symbolically; the lowering pipeline replaces each of them with a
// TargetOp carrying the id of the emitted target-builder operation.
type Instruction interface {
	instruction()
}

// ResourceLoad is a placeholder load from a resource global.
//
// Indices is the explicit index path recorded by the translator. It may be
// shorter than the full structural path when the source representation
// collapsed leading zero-offset steps; the resource pass reconciles the
// missing tail before emitting the address.
type ResourceLoad struct {
	Result  ValueHandle
	Global  GlobalHandle
	Indices []uint32
	Type    TypeHandle // type of the loaded element
}

func (ResourceLoad) instruction() {}

// ResourceStore is a placeholder store to a resource global.
type ResourceStore struct {
	Global  GlobalHandle
	Indices []uint32
	Value   ValueHandle
	Type    TypeHandle // type of the stored element
}

func (ResourceStore) instruction() {}

// ArrayLength is a placeholder query for the element count of a
// runtime-sized array reachable inside a resource global.
//
// Array names the runtime array type being measured. Indices is the
// explicit (possibly elided) path prefix from the global's type toward it.
type ArrayLength struct {
	Result  ValueHandle
	Global  GlobalHandle
	Indices []uint32
	Array   TypeHandle
}

func (ArrayLength) instruction() {}

// ElementPtr is a concrete addressing placeholder: the address of an
// element inside a resource global. The resource pass synthesizes these
// from loads and stores; the addressing pass lowers them.
type ElementPtr struct {
	Result  ValueHandle
	Global  GlobalHandle
	Indices []uint32
	Type    TypeHandle // element type the pointer refers to
}

func (ElementPtr) instruction() {}

// LoadPtr loads through a previously formed element pointer.
type LoadPtr struct {
	Result ValueHandle
	Ptr    ValueHandle
}

func (LoadPtr) instruction() {}

// StorePtr stores through a previously formed element pointer.
type StorePtr struct {
	Ptr   ValueHandle
	Value ValueHandle
}

func (StorePtr) instruction() {}

// BuiltinRead is a placeholder read of a stage builtin input.
type BuiltinRead struct {
	Result  ValueHandle
	Builtin BuiltinValue
}

func (BuiltinRead) instruction() {}

// Discard is the fragment-stage discard placeholder.
type Discard struct{}

func (Discard) instruction() {}

// Return ends the function, optionally yielding a value.
type Return struct {
	Value *ValueHandle
}

func (Return) instruction() {}

// TargetOp marks an instruction already lowered to a target-builder
// operation. Passes leave TargetOps untouched, which is what makes a
// second pipeline run over a lowered module a no-op.
type TargetOp struct {
	Result ValueHandle
	Op     uint32 // target-builder op id
}

func (TargetOp) instruction() {}

package ir

// Module represents a single shader in IR form.
//
// A module is owned by exactly one lowering run at a time; nothing in this
// package synchronizes concurrent mutation.
type Module struct {
	// Name labels the module in diagnostics. It has no semantic weight.
	Name string

	// Types is the deduplicated type arena for the module.
	Types *TypeRegistry

	// Globals holds module-scope resource variables
	Globals []GlobalVariable

	// Funcs holds all function definitions and declarations,
	// in declaration order
	Funcs []*Function
}

// NewModule creates an empty module with a fresh type arena.
func NewModule() *Module {
	return &Module{Types: NewTypeRegistry()}
}

// Handle types for referencing IR objects
type (
	TypeHandle   uint32
	GlobalHandle uint32

	// ValueHandle identifies the result of an instruction within one
	// function body. Handles are assigned by the translator in body order.
	ValueHandle uint32
)

// Linkage describes the visibility of a function.
type Linkage uint8

const (
	// LinkageInternal functions are only referenced within the module.
	LinkageInternal Linkage = iota

	// LinkageExternal marks the function visible outside the module.
	// A structurally valid single-shader module has exactly one defined
	// function with external linkage: the entry point.
	LinkageExternal
)

// Function represents a function definition or declaration.
type Function struct {
	Name    string
	Linkage Linkage

	// Body is the flat instruction list. Empty for declarations.
	Body []Instruction

	// meta holds named metadata attachments with integer operands.
	// The execution-model tag written by the translator lives here;
	// package lower owns its key and encoding.
	meta map[string]MetadataNode
}

// MetadataNode is a named metadata attachment: an ordered list of integer
// constant operands.
type MetadataNode struct {
	Operands []uint64
}

// Metadata returns the attachment with the given name, if present.
func (f *Function) Metadata(name string) (MetadataNode, bool) {
	node, ok := f.meta[name]
	return node, ok
}

// SetMetadata attaches (or overwrites) a named metadata node.
func (f *Function) SetMetadata(name string, node MetadataNode) {
	if f.meta == nil {
		f.meta = make(map[string]MetadataNode, 1)
	}
	f.meta[name] = node
}

// Defined reports whether the function has a body.
func (f *Function) Defined() bool {
	return len(f.Body) > 0
}

// GlobalVariable represents a module-scope resource variable.
type GlobalVariable struct {
	Name    string
	Space   AddressSpace
	Binding *ResourceBinding
	Type    TypeHandle
}

// ResourceBinding locates a resource in the descriptor binding model.
type ResourceBinding struct {
	Group   uint32
	Binding uint32
}

// AddressSpace represents memory address spaces.
type AddressSpace uint8

const (
	SpacePrivate AddressSpace = iota
	SpaceWorkGroup
	SpaceUniform
	SpaceStorage
	SpacePushConstant
	SpaceHandle
)

// BuiltinValue identifies a stage builtin input.
type BuiltinValue uint8

const (
	BuiltinPosition BuiltinValue = iota
	BuiltinVertexIndex
	BuiltinInstanceIndex
	BuiltinFrontFacing
	BuiltinFragDepth
	BuiltinLocalInvocationID
	BuiltinGlobalInvocationID
	BuiltinWorkGroupID
	BuiltinNumWorkGroups
)

// String returns the builtin's name as spelled in the textual form.
func (b BuiltinValue) String() string {
	switch b {
	case BuiltinPosition:
		return "position"
	case BuiltinVertexIndex:
		return "vertex_index"
	case BuiltinInstanceIndex:
		return "instance_index"
	case BuiltinFrontFacing:
		return "front_facing"
	case BuiltinFragDepth:
		return "frag_depth"
	case BuiltinLocalInvocationID:
		return "local_invocation_id"
	case BuiltinGlobalInvocationID:
		return "global_invocation_id"
	case BuiltinWorkGroupID:
		return "workgroup_id"
	case BuiltinNumWorkGroups:
		return "num_workgroups"
	}
	return "unknown"
}

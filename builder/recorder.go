package builder

import (
	"fmt"
	"strings"

	"github.com/gogpu/spvlower/ir"
)

// OpKind classifies a recorded operation.
type OpKind uint8

const (
	OpConstInt OpKind = iota
	OpDescriptor
	OpDescriptorLength
	OpAccessChain
	OpLoad
	OpStore
	OpReadBuiltin
	OpKill
)

func (k OpKind) String() string {
	switch k {
	case OpConstInt:
		return "const"
	case OpDescriptor:
		return "descriptor"
	case OpDescriptorLength:
		return "descriptor_length"
	case OpAccessChain:
		return "access_chain"
	case OpLoad:
		return "load"
	case OpStore:
		return "store"
	case OpReadBuiltin:
		return "read_builtin"
	case OpKill:
		return "kill"
	}
	return "unknown"
}

// Op is one recorded target operation. Args holds the operands in kind
// order: constants store the value, descriptor ops store group and binding
// followed by index ids, chains store the base followed by index ids.
type Op struct {
	Result OpID // 0 for ops without a result
	Kind   OpKind
	Args   []uint32
}

// Recorder implements Builder by recording every emitted operation.
type Recorder struct {
	ops    []Op
	consts map[uint32]OpID // value constants are deduplicated
	nextID OpID
}

// NewRecorder creates an empty recorder. Ids are allocated from 1.
func NewRecorder() *Recorder {
	return &Recorder{
		consts: make(map[uint32]OpID, 8),
		nextID: 1,
	}
}

func (r *Recorder) allocID() OpID {
	id := r.nextID
	r.nextID++
	return id
}

func (r *Recorder) record(kind OpKind, result OpID, args ...uint32) {
	r.ops = append(r.ops, Op{Result: result, Kind: kind, Args: args})
}

// ConstInt emits a deduplicated integer constant.
func (r *Recorder) ConstInt(v uint32) OpID {
	if id, ok := r.consts[v]; ok {
		return id
	}
	id := r.allocID()
	r.consts[v] = id
	r.record(OpConstInt, id, v)
	return id
}

// Descriptor emits the base address of a descriptor.
func (r *Recorder) Descriptor(group, binding uint32) OpID {
	id := r.allocID()
	r.record(OpDescriptor, id, group, binding)
	return id
}

// DescriptorLength emits a runtime-array length query.
func (r *Recorder) DescriptorLength(group, binding uint32, indices []OpID) OpID {
	id := r.allocID()
	args := []uint32{group, binding}
	for _, idx := range indices {
		args = append(args, uint32(idx))
	}
	r.record(OpDescriptorLength, id, args...)
	return id
}

// AccessChain emits an address computation.
func (r *Recorder) AccessChain(base OpID, indices []OpID) OpID {
	id := r.allocID()
	args := []uint32{uint32(base)}
	for _, idx := range indices {
		args = append(args, uint32(idx))
	}
	r.record(OpAccessChain, id, args...)
	return id
}

// Load emits a load through an address.
func (r *Recorder) Load(ptr OpID) OpID {
	id := r.allocID()
	r.record(OpLoad, id, uint32(ptr))
	return id
}

// Store emits a store through an address.
func (r *Recorder) Store(ptr, value OpID) {
	r.record(OpStore, 0, uint32(ptr), uint32(value))
}

// ReadBuiltin emits a stage builtin read.
func (r *Recorder) ReadBuiltin(b ir.BuiltinValue) OpID {
	id := r.allocID()
	r.record(OpReadBuiltin, id, uint32(b))
	return id
}

// Kill emits a fragment discard.
func (r *Recorder) Kill() {
	r.record(OpKill, 0)
}

// Ops returns the recorded operations in emission order.
func (r *Recorder) Ops() []Op {
	return r.ops
}

// Count returns the number of recorded operations.
func (r *Recorder) Count() int {
	return len(r.ops)
}

// CountKind returns the number of recorded operations of the given kind.
func (r *Recorder) CountKind(kind OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// String renders the recorded operations, one per line, in a stable
// textual form suitable for golden comparisons.
func (r *Recorder) String() string {
	var sb strings.Builder
	for _, op := range r.ops {
		if op.Result != 0 {
			fmt.Fprintf(&sb, "%%%d = ", op.Result)
		}
		sb.WriteString(op.Kind.String())
		switch op.Kind {
		case OpConstInt:
			fmt.Fprintf(&sb, " %d", op.Args[0])
		case OpDescriptor:
			fmt.Fprintf(&sb, " group=%d binding=%d", op.Args[0], op.Args[1])
		case OpDescriptorLength:
			fmt.Fprintf(&sb, " group=%d binding=%d indices=%s", op.Args[0], op.Args[1], formatIDs(op.Args[2:]))
		case OpAccessChain:
			fmt.Fprintf(&sb, " base=%%%d indices=%s", op.Args[0], formatIDs(op.Args[1:]))
		case OpLoad:
			fmt.Fprintf(&sb, " %%%d", op.Args[0])
		case OpStore:
			fmt.Fprintf(&sb, " %%%d, %%%d", op.Args[0], op.Args[1])
		case OpReadBuiltin:
			fmt.Fprintf(&sb, " %s", ir.BuiltinValue(op.Args[0]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func formatIDs(ids []uint32) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%%%d", id)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

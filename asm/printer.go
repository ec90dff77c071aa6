package asm

import (
	"fmt"
	"strings"

	"github.com/gogpu/spvlower/ir"
	"github.com/gogpu/spvlower/lower"
)

// Print renders a module in the textual form. Output for an unlowered
// module parses back to an equivalent module; lowered modules print their
// target ops in a form meant for inspection only.
func Print(m *ir.Module) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "shader %q\n", m.Name)

	for _, typ := range m.Types.Types() {
		st, ok := typ.Inner.(ir.StructType)
		if !ok || typ.Name == "" {
			continue
		}
		fmt.Fprintf(&sb, "\ntype %s = struct {", typ.Name)
		for _, member := range st.Members {
			fmt.Fprintf(&sb, " %s: %s,", member.Name, typeString(m.Types, member.Type))
		}
		sb.WriteString(" }\n")
	}

	if len(m.Globals) > 0 {
		sb.WriteByte('\n')
	}
	for _, global := range m.Globals {
		fmt.Fprintf(&sb, "var %s: %s", global.Name, typeString(m.Types, global.Type))
		if global.Binding != nil {
			fmt.Fprintf(&sb, " @group(%d) @binding(%d)", global.Binding.Group, global.Binding.Binding)
		}
		fmt.Fprintf(&sb, " %s\n", spaceString(global.Space))
	}

	entry, _ := lower.EntryPoint(m)
	stage, _ := lower.StageOf(m)

	for _, fn := range m.Funcs {
		sb.WriteByte('\n')
		fmt.Fprintf(&sb, "fn %s %s", fn.Name, linkageString(fn.Linkage))
		if fn == entry && stage != lower.StageInvalid {
			fmt.Fprintf(&sb, " stage(%s)", stage)
		}
		sb.WriteString(" {\n")
		for _, inst := range fn.Body {
			sb.WriteString("    ")
			sb.WriteString(instString(m, inst))
			sb.WriteByte('\n')
		}
		sb.WriteString("}\n")
	}

	return sb.String()
}

func instString(m *ir.Module, inst ir.Instruction) string {
	switch in := inst.(type) {
	case ir.ArrayLength:
		return fmt.Sprintf("%%%d = arraylength %s%s : %s",
			in.Result, globalName(m, in.Global), indexString(in.Indices), typeString(m.Types, in.Array))
	case ir.ResourceLoad:
		return fmt.Sprintf("%%%d = load %s%s : %s",
			in.Result, globalName(m, in.Global), indexString(in.Indices), typeString(m.Types, in.Type))
	case ir.ResourceStore:
		return fmt.Sprintf("store %s%s, %%%d : %s",
			globalName(m, in.Global), indexString(in.Indices), in.Value, typeString(m.Types, in.Type))
	case ir.ElementPtr:
		return fmt.Sprintf("%%%d = ptr %s%s : %s",
			in.Result, globalName(m, in.Global), indexString(in.Indices), typeString(m.Types, in.Type))
	case ir.LoadPtr:
		return fmt.Sprintf("%%%d = loadptr %%%d", in.Result, in.Ptr)
	case ir.StorePtr:
		return fmt.Sprintf("storeptr %%%d, %%%d", in.Ptr, in.Value)
	case ir.BuiltinRead:
		return fmt.Sprintf("%%%d = builtin %s", in.Result, in.Builtin)
	case ir.Discard:
		return "discard"
	case ir.Return:
		if in.Value != nil {
			return fmt.Sprintf("ret %%%d", *in.Value)
		}
		return "ret"
	case ir.TargetOp:
		return fmt.Sprintf("%%%d = target %d", in.Result, in.Op)
	}
	return fmt.Sprintf("<unknown %T>", inst)
}

func indexString(indices []uint32) string {
	if len(indices) == 0 {
		return ""
	}
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = fmt.Sprint(idx)
	}
	return " [" + strings.Join(parts, ", ") + "]"
}

func globalName(m *ir.Module, handle ir.GlobalHandle) string {
	if int(handle) < len(m.Globals) {
		return m.Globals[handle].Name
	}
	return fmt.Sprintf("<global %d>", handle)
}

func typeString(reg *ir.TypeRegistry, handle ir.TypeHandle) string {
	typ, ok := reg.Lookup(handle)
	if !ok {
		return fmt.Sprintf("<type %d>", handle)
	}
	if typ.Name != "" {
		return typ.Name
	}
	switch t := typ.Inner.(type) {
	case ir.ScalarType:
		return scalarString(t)
	case ir.VectorType:
		return fmt.Sprintf("vec%d<%s>", t.Size, scalarString(t.Scalar))
	case ir.ArrayType:
		if t.Size.Constant != nil {
			return fmt.Sprintf("[%d]%s", *t.Size.Constant, typeString(reg, t.Base))
		}
		return "[]" + typeString(reg, t.Base)
	default:
		return fmt.Sprintf("<%T>", typ.Inner)
	}
}

func scalarString(t ir.ScalarType) string {
	switch t.Kind {
	case ir.ScalarFloat:
		return "f32"
	case ir.ScalarSint:
		return "i32"
	case ir.ScalarUint:
		return "u32"
	case ir.ScalarBool:
		return "bool"
	}
	return "<scalar>"
}

func spaceString(space ir.AddressSpace) string {
	for name, s := range addressSpaces {
		if s == space {
			return name
		}
	}
	return "private"
}

func linkageString(l ir.Linkage) string {
	if l == ir.LinkageExternal {
		return "external"
	}
	return "internal"
}

package asm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/spvlower/ir"
	"github.com/gogpu/spvlower/lower"
)

// builder assembles an ir.Module from a parsed File.
type moduleBuilder struct {
	module  *ir.Module
	types   map[string]ir.TypeHandle   // named struct types
	globals map[string]ir.GlobalHandle // resource globals by name
}

func build(file *File) (*ir.Module, error) {
	b := &moduleBuilder{
		module:  ir.NewModule(),
		types:   make(map[string]ir.TypeHandle),
		globals: make(map[string]ir.GlobalHandle),
	}
	b.module.Name = strings.Trim(file.Shader, `"`)

	// Stage attributes apply once the function list is complete, since
	// the tag rides on the resolved entry point.
	var stage *lower.ShaderStage

	for _, decl := range file.Decls {
		switch {
		case decl.Type != nil:
			if err := b.addType(decl.Type); err != nil {
				return nil, err
			}
		case decl.Var != nil:
			if err := b.addGlobal(decl.Var); err != nil {
				return nil, err
			}
		case decl.Func != nil:
			s, err := b.addFunc(decl.Func)
			if err != nil {
				return nil, err
			}
			if s != nil {
				stage = s
			}
		}
	}

	if stage != nil {
		if err := lower.SetStage(b.module, *stage); err != nil {
			return nil, err
		}
	}
	return b.module, nil
}

func (b *moduleBuilder) addType(decl *TypeDecl) error {
	if _, exists := b.types[decl.Name]; exists {
		return fmt.Errorf("type %q declared twice", decl.Name)
	}
	members := make([]ir.StructMember, 0, len(decl.Fields))
	for _, field := range decl.Fields {
		handle, err := b.resolveType(field.Type)
		if err != nil {
			return err
		}
		members = append(members, ir.StructMember{
			Name: field.Name,
			Type: handle,
		})
	}
	handle := b.module.Types.GetOrCreate(decl.Name, ir.StructType{Members: members})
	b.types[decl.Name] = handle
	return nil
}

func (b *moduleBuilder) addGlobal(decl *VarDecl) error {
	if _, exists := b.globals[decl.Name]; exists {
		return fmt.Errorf("var %q declared twice", decl.Name)
	}
	handle, err := b.resolveType(decl.Type)
	if err != nil {
		return err
	}
	space, ok := addressSpaces[decl.Space]
	if !ok {
		return fmt.Errorf("var %q: unknown address space %q", decl.Name, decl.Space)
	}

	global := ir.GlobalVariable{
		Name:  decl.Name,
		Space: space,
		Type:  handle,
	}
	if decl.Group != nil && decl.Binding != nil {
		group, _ := strconv.ParseUint(*decl.Group, 10, 32)
		binding, _ := strconv.ParseUint(*decl.Binding, 10, 32)
		global.Binding = &ir.ResourceBinding{
			Group:   uint32(group),
			Binding: uint32(binding),
		}
	}

	b.globals[decl.Name] = ir.GlobalHandle(len(b.module.Globals))
	b.module.Globals = append(b.module.Globals, global)
	return nil
}

func (b *moduleBuilder) addFunc(decl *FuncDecl) (*lower.ShaderStage, error) {
	fn := &ir.Function{Name: decl.Name}
	if decl.Linkage == "external" {
		fn.Linkage = ir.LinkageExternal
	}

	for _, inst := range decl.Body {
		built, err := b.buildInst(inst)
		if err != nil {
			return nil, fmt.Errorf("fn %s: %w", decl.Name, err)
		}
		fn.Body = append(fn.Body, built)
	}
	b.module.Funcs = append(b.module.Funcs, fn)

	if decl.Stage == nil {
		return nil, nil
	}
	if fn.Linkage != ir.LinkageExternal {
		return nil, fmt.Errorf("fn %s: stage attribute on internal function", decl.Name)
	}
	stage, ok := lower.ParseStage(*decl.Stage)
	if !ok {
		return nil, fmt.Errorf("fn %s: unknown stage %q", decl.Name, *decl.Stage)
	}
	return &stage, nil
}

func (b *moduleBuilder) buildInst(inst *Inst) (ir.Instruction, error) {
	switch {
	case inst.ArrayLen != nil:
		in := inst.ArrayLen
		global, indices, err := b.resolveAccess(in.Global, in.Indices)
		if err != nil {
			return nil, err
		}
		typ, err := b.resolveType(in.Type)
		if err != nil {
			return nil, err
		}
		return ir.ArrayLength{
			Result:  valueHandle(in.Result),
			Global:  global,
			Indices: indices,
			Array:   typ,
		}, nil

	case inst.Load != nil:
		in := inst.Load
		global, indices, err := b.resolveAccess(in.Global, in.Indices)
		if err != nil {
			return nil, err
		}
		typ, err := b.resolveType(in.Type)
		if err != nil {
			return nil, err
		}
		return ir.ResourceLoad{
			Result:  valueHandle(in.Result),
			Global:  global,
			Indices: indices,
			Type:    typ,
		}, nil

	case inst.Store != nil:
		in := inst.Store
		global, indices, err := b.resolveAccess(in.Global, in.Indices)
		if err != nil {
			return nil, err
		}
		typ, err := b.resolveType(in.Type)
		if err != nil {
			return nil, err
		}
		return ir.ResourceStore{
			Global:  global,
			Indices: indices,
			Value:   valueHandle(in.Value),
			Type:    typ,
		}, nil

	case inst.Builtin != nil:
		in := inst.Builtin
		builtin, ok := builtins[in.Name]
		if !ok {
			return nil, fmt.Errorf("unknown builtin %q", in.Name)
		}
		return ir.BuiltinRead{
			Result:  valueHandle(in.Result),
			Builtin: builtin,
		}, nil

	case inst.Discard:
		return ir.Discard{}, nil

	case inst.Ret != nil:
		ret := ir.Return{}
		if inst.Ret.Value != nil {
			v := valueHandle(*inst.Ret.Value)
			ret.Value = &v
		}
		return ret, nil
	}
	return nil, fmt.Errorf("empty instruction")
}

func (b *moduleBuilder) resolveAccess(name string, set *IndexSet) (ir.GlobalHandle, []uint32, error) {
	global, ok := b.globals[name]
	if !ok {
		return 0, nil, fmt.Errorf("unknown var %q", name)
	}
	if set == nil {
		return global, nil, nil
	}
	indices := make([]uint32, 0, len(set.Indices))
	for _, raw := range set.Indices {
		idx, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return 0, nil, fmt.Errorf("bad index %q: %w", raw, err)
		}
		indices = append(indices, uint32(idx))
	}
	return global, indices, nil
}

func (b *moduleBuilder) resolveType(expr *TypeExpr) (ir.TypeHandle, error) {
	reg := b.module.Types
	switch {
	case expr.Array != nil:
		elem, err := b.resolveType(expr.Array.Elem)
		if err != nil {
			return 0, err
		}
		arr := ir.ArrayType{Base: elem}
		if expr.Array.Len != nil {
			n, err := strconv.ParseUint(*expr.Array.Len, 10, 32)
			if err != nil {
				return 0, fmt.Errorf("bad array length %q: %w", *expr.Array.Len, err)
			}
			count := uint32(n)
			arr.Size = ir.ArraySize{Constant: &count}
		}
		return reg.GetOrCreate("", arr), nil

	case expr.Vector != nil:
		scalar, ok := scalars[expr.Vector.Scalar]
		if !ok {
			return 0, fmt.Errorf("unknown scalar %q", expr.Vector.Scalar)
		}
		size := ir.VectorSize(expr.Vector.Size[len(expr.Vector.Size)-1] - '0')
		return reg.GetOrCreate("", ir.VectorType{Size: size, Scalar: scalar}), nil

	case expr.Scalar != nil:
		scalar, ok := scalars[*expr.Scalar]
		if !ok {
			return 0, fmt.Errorf("unknown scalar %q", *expr.Scalar)
		}
		return reg.GetOrCreate("", scalar), nil

	case expr.Named != nil:
		handle, ok := b.types[*expr.Named]
		if !ok {
			return 0, fmt.Errorf("unknown type %q", *expr.Named)
		}
		return handle, nil
	}
	return 0, fmt.Errorf("empty type expression")
}

// valueHandle strips the leading % from an operand token.
func valueHandle(raw string) ir.ValueHandle {
	n, _ := strconv.ParseUint(strings.TrimPrefix(raw, "%"), 10, 32)
	return ir.ValueHandle(n)
}

var scalars = map[string]ir.ScalarType{
	"f32":  {Kind: ir.ScalarFloat, Width: 4},
	"i32":  {Kind: ir.ScalarSint, Width: 4},
	"u32":  {Kind: ir.ScalarUint, Width: 4},
	"bool": {Kind: ir.ScalarBool, Width: 1},
}

var addressSpaces = map[string]ir.AddressSpace{
	"private":       ir.SpacePrivate,
	"workgroup":     ir.SpaceWorkGroup,
	"uniform":       ir.SpaceUniform,
	"storage":       ir.SpaceStorage,
	"push_constant": ir.SpacePushConstant,
	"handle":        ir.SpaceHandle,
}

var builtins = map[string]ir.BuiltinValue{
	"position":             ir.BuiltinPosition,
	"vertex_index":         ir.BuiltinVertexIndex,
	"instance_index":       ir.BuiltinInstanceIndex,
	"front_facing":         ir.BuiltinFrontFacing,
	"frag_depth":           ir.BuiltinFragDepth,
	"local_invocation_id":  ir.BuiltinLocalInvocationID,
	"global_invocation_id": ir.BuiltinGlobalInvocationID,
	"workgroup_id":         ir.BuiltinWorkGroupID,
	"num_workgroups":       ir.BuiltinNumWorkGroups,
}

package ir

import (
	"testing"
)

func validModule() *Module {
	m := NewModule()
	f32 := m.Types.GetOrCreate("", ScalarType{Kind: ScalarFloat, Width: 4})
	arr := m.Types.GetOrCreate("", ArrayType{Base: f32})
	block := m.Types.GetOrCreate("Block", StructType{Members: []StructMember{
		{Name: "data", Type: arr},
	}})

	m.Globals = append(m.Globals, GlobalVariable{
		Name:    "buf",
		Space:   SpaceStorage,
		Binding: &ResourceBinding{Group: 0, Binding: 0},
		Type:    block,
	})

	m.Funcs = append(m.Funcs, &Function{
		Name:    "main",
		Linkage: LinkageExternal,
		Body: []Instruction{
			ArrayLength{Result: 0, Global: 0, Array: arr},
			Return{},
		},
	})
	return m
}

func TestValidate_ValidModule(t *testing.T) {
	if errs := Validate(validModule()); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidate_DanglingGlobalType(t *testing.T) {
	m := validModule()
	m.Globals[0].Type = TypeHandle(99)

	errs := Validate(m)
	if len(errs) == 0 {
		t.Fatal("expected an error for a dangling global type handle")
	}
}

func TestValidate_DanglingGlobalHandle(t *testing.T) {
	m := validModule()
	m.Funcs[0].Body[0] = ArrayLength{Result: 0, Global: 7, Array: 1}

	errs := Validate(m)
	if len(errs) == 0 {
		t.Fatal("expected an error for a dangling global handle")
	}
}

func TestValidate_DuplicateEntryPoints(t *testing.T) {
	m := validModule()
	m.Funcs = append(m.Funcs, &Function{
		Name:    "main2",
		Linkage: LinkageExternal,
		Body:    []Instruction{Return{}},
	})

	errs := Validate(m)
	if len(errs) == 0 {
		t.Fatal("expected an error for duplicate entry points")
	}
}

func TestValidate_UseBeforeDefinition(t *testing.T) {
	m := validModule()
	m.Funcs[0].Body = []Instruction{
		LoadPtr{Result: 1, Ptr: 0}, // %0 is never defined
		Return{},
	}

	errs := Validate(m)
	if len(errs) == 0 {
		t.Fatal("expected an error for use of an undefined value")
	}
}

func TestValidate_DoubleDefinition(t *testing.T) {
	m := validModule()
	arr := m.Funcs[0].Body[0].(ArrayLength).Array
	m.Funcs[0].Body = []Instruction{
		ArrayLength{Result: 0, Global: 0, Array: arr},
		ArrayLength{Result: 0, Global: 0, Array: arr},
		Return{},
	}

	errs := Validate(m)
	if len(errs) == 0 {
		t.Fatal("expected an error for a value defined twice")
	}
}

func TestFunction_Metadata(t *testing.T) {
	fn := &Function{Name: "main"}

	if _, ok := fn.Metadata("execution_model"); ok {
		t.Fatal("expected no metadata on a fresh function")
	}

	fn.SetMetadata("execution_model", MetadataNode{Operands: []uint64{4}})
	node, ok := fn.Metadata("execution_model")
	if !ok || len(node.Operands) != 1 || node.Operands[0] != 4 {
		t.Fatalf("metadata round-trip failed: %v, %v", node, ok)
	}

	fn.SetMetadata("execution_model", MetadataNode{Operands: []uint64{5}})
	node, _ = fn.Metadata("execution_model")
	if node.Operands[0] != 5 {
		t.Fatalf("metadata overwrite failed: %v", node)
	}
}

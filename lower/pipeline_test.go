package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/spvlower/builder"
	"github.com/gogpu/spvlower/ir"
)

// lengthQueryModule is the descriptor-length scenario: a runtime-sized
// array nested two record levels deep inside one storage block, and a
// second block whose runtime array is the global's type directly.
func lengthQueryModule(t *testing.T) *ir.Module {
	t.Helper()
	m := ir.NewModule()
	f32 := m.Types.GetOrCreate("", ir.ScalarType{Kind: ir.ScalarFloat, Width: 4})
	runtimeArr := m.Types.GetOrCreate("", ir.ArrayType{Base: f32})
	inner := m.Types.GetOrCreate("Inner", ir.StructType{Members: []ir.StructMember{
		{Name: "data", Type: runtimeArr},
	}})
	block := m.Types.GetOrCreate("Block", ir.StructType{Members: []ir.StructMember{
		{Name: "inner", Type: inner},
	}})

	m.Globals = append(m.Globals,
		ir.GlobalVariable{
			Name:    "buf",
			Space:   ir.SpaceStorage,
			Binding: &ir.ResourceBinding{Group: 0, Binding: 2},
			Type:    block,
		},
		ir.GlobalVariable{
			Name:    "tail",
			Space:   ir.SpaceStorage,
			Binding: &ir.ResourceBinding{Group: 1, Binding: 0},
			Type:    runtimeArr,
		},
	)

	m.Funcs = append(m.Funcs, &ir.Function{
		Name:    "main",
		Linkage: ir.LinkageExternal,
		Body: []ir.Instruction{
			ir.ArrayLength{Result: 0, Global: 0, Array: runtimeArr},
			ir.ArrayLength{Result: 1, Global: 1, Array: runtimeArr},
			ir.Return{},
		},
	})
	require.NoError(t, SetStage(m, StageFragment))
	return m
}

func TestPipeline_PassOrder(t *testing.T) {
	p := NewPipeline(DefaultOptions())
	assert.Equal(t, []string{"resources", "builtins", "addressing", "fragment"}, p.Passes())
}

func TestPipeline_DescriptorLengthQueries(t *testing.T) {
	m := lengthQueryModule(t)
	rec := builder.NewRecorder()

	require.NoError(t, NewPipeline(DefaultOptions()).Run(m, rec))

	var lengths []builder.Op
	var consts []builder.Op
	for _, op := range rec.Ops() {
		switch op.Kind {
		case builder.OpDescriptorLength:
			lengths = append(lengths, op)
		case builder.OpConstInt:
			consts = append(consts, op)
		}
	}
	require.Len(t, lengths, 2, "one length query per array-length placeholder")

	// The nested query needs exactly two synthesized zero steps; the
	// zero constant is emitted once and reused.
	require.Len(t, consts, 1)
	assert.Equal(t, []uint32{0}, consts[0].Args)
	zero := uint32(consts[0].Result)

	nested := lengths[0]
	assert.Equal(t, uint32(0), nested.Args[0], "group")
	assert.Equal(t, uint32(2), nested.Args[1], "binding")
	assert.Equal(t, []uint32{zero, zero}, nested.Args[2:], "two zero indices down to the nested array")

	topLevel := lengths[1]
	assert.Equal(t, uint32(1), topLevel.Args[0], "group")
	assert.Equal(t, uint32(0), topLevel.Args[1], "binding")
	assert.Empty(t, topLevel.Args[2:], "the global's type is the array itself")

	// Both placeholders are gone from the module.
	for _, inst := range m.Funcs[0].Body {
		_, isLength := inst.(ir.ArrayLength)
		assert.False(t, isLength, "lowered module must not retain placeholders")
	}
}

func TestPipeline_Idempotent(t *testing.T) {
	m := lengthQueryModule(t)
	rec := builder.NewRecorder()
	p := NewPipeline(DefaultOptions())

	require.NoError(t, p.Run(m, rec))
	emitted := rec.Count()

	require.NoError(t, p.Run(m, rec))
	assert.Equal(t, emitted, rec.Count(), "second run over a lowered module emits nothing")
}

func TestPipeline_LoadStoreLowering(t *testing.T) {
	m := ir.NewModule()
	u32 := m.Types.GetOrCreate("", ir.ScalarType{Kind: ir.ScalarUint, Width: 4})
	f32 := m.Types.GetOrCreate("", ir.ScalarType{Kind: ir.ScalarFloat, Width: 4})
	runtimeArr := m.Types.GetOrCreate("", ir.ArrayType{Base: f32})
	block := m.Types.GetOrCreate("Block", ir.StructType{Members: []ir.StructMember{
		{Name: "data", Type: runtimeArr},
		{Name: "count", Type: u32},
	}})

	m.Globals = append(m.Globals, ir.GlobalVariable{
		Name:    "buf",
		Space:   ir.SpaceStorage,
		Binding: &ir.ResourceBinding{Group: 0, Binding: 0},
		Type:    block,
	})

	m.Funcs = append(m.Funcs, &ir.Function{
		Name:    "main",
		Linkage: ir.LinkageExternal,
		Body: []ir.Instruction{
			ir.BuiltinRead{Result: 0, Builtin: ir.BuiltinGlobalInvocationID},
			// Elided path: no explicit indices, element type f32 is
			// two first-element steps below Block.
			ir.ResourceLoad{Result: 1, Global: 0, Type: f32},
			ir.ResourceStore{Global: 0, Indices: []uint32{1}, Value: 0, Type: u32},
			ir.Return{},
		},
	})
	require.NoError(t, SetStage(m, StageCompute))

	rec := builder.NewRecorder()
	require.NoError(t, NewPipeline(DefaultOptions()).Run(m, rec))

	assert.Equal(t, 1, rec.CountKind(builder.OpReadBuiltin))
	assert.Equal(t, 2, rec.CountKind(builder.OpAccessChain))
	assert.Equal(t, 1, rec.CountKind(builder.OpLoad))
	assert.Equal(t, 1, rec.CountKind(builder.OpStore))

	var chains []builder.Op
	for _, op := range rec.Ops() {
		if op.Kind == builder.OpAccessChain {
			chains = append(chains, op)
		}
	}
	assert.Len(t, chains[0].Args[1:], 2, "elided load path reconciled to two zero steps")
	assert.Len(t, chains[1].Args[1:], 1, "explicit store path needs no reconciliation")

	// The store consumed its instruction; only value-producing
	// instructions and the return remain.
	require.Len(t, m.Funcs[0].Body, 5)
	for _, inst := range m.Funcs[0].Body[:4] {
		_, isTarget := inst.(ir.TargetOp)
		assert.True(t, isTarget)
	}
}

func TestPipeline_StageConditionalSkip(t *testing.T) {
	m := ir.NewModule()
	m.Funcs = append(m.Funcs, &ir.Function{
		Name:    "main",
		Linkage: ir.LinkageExternal,
		Body: []ir.Instruction{
			ir.Discard{},
			ir.Return{},
		},
	})
	require.NoError(t, SetStage(m, StageVertex))

	rec := builder.NewRecorder()
	require.NoError(t, NewPipeline(DefaultOptions()).Run(m, rec))

	assert.Equal(t, 0, rec.CountKind(builder.OpKill), "fragment pass must skip vertex modules")
	_, stillThere := m.Funcs[0].Body[0].(ir.Discard)
	assert.True(t, stillThere)
}

func TestPipeline_FragmentDiscard(t *testing.T) {
	m := ir.NewModule()
	m.Funcs = append(m.Funcs, &ir.Function{
		Name:    "main",
		Linkage: ir.LinkageExternal,
		Body: []ir.Instruction{
			ir.Discard{},
			ir.Return{},
		},
	})
	require.NoError(t, SetStage(m, StageFragment))

	rec := builder.NewRecorder()
	require.NoError(t, NewPipeline(DefaultOptions()).Run(m, rec))

	assert.Equal(t, 1, rec.CountKind(builder.OpKill))
	require.Len(t, m.Funcs[0].Body, 1)
	_, isReturn := m.Funcs[0].Body[0].(ir.Return)
	assert.True(t, isReturn)
}

func TestPipeline_UnclassifiedStageSkipsBuiltins(t *testing.T) {
	m := ir.NewModule()
	m.Funcs = append(m.Funcs, &ir.Function{
		Name:    "main",
		Linkage: ir.LinkageExternal,
		Body: []ir.Instruction{
			ir.BuiltinRead{Result: 0, Builtin: ir.BuiltinVertexIndex},
			ir.Return{},
		},
	})

	rec := builder.NewRecorder()
	require.NoError(t, NewPipeline(DefaultOptions()).Run(m, rec))

	assert.Equal(t, 0, rec.CountKind(builder.OpReadBuiltin), "builtin pass must skip unclassified modules")
}

func TestPipeline_WrongStageBuiltinFails(t *testing.T) {
	m := ir.NewModule()
	m.Funcs = append(m.Funcs, &ir.Function{
		Name:    "main",
		Linkage: ir.LinkageExternal,
		Body: []ir.Instruction{
			ir.BuiltinRead{Result: 0, Builtin: ir.BuiltinGlobalInvocationID},
			ir.Return{},
		},
	})
	require.NoError(t, SetStage(m, StageVertex))

	err := NewPipeline(DefaultOptions()).Run(m, builder.NewRecorder())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "builtins")
}

func TestPipeline_NoEntryPointAborts(t *testing.T) {
	m := ir.NewModule()

	err := NewPipeline(DefaultOptions()).Run(m, builder.NewRecorder())
	assert.ErrorIs(t, err, ErrNoEntryPoint)
}

func TestPipeline_InvalidModuleAborts(t *testing.T) {
	m := ir.NewModule()
	m.Funcs = append(m.Funcs, &ir.Function{
		Name:    "main",
		Linkage: ir.LinkageExternal,
		Body: []ir.Instruction{
			// Dangling global handle.
			ir.ArrayLength{Result: 0, Global: 9, Array: 0},
			ir.Return{},
		},
	})

	err := NewPipeline(DefaultOptions()).Run(m, builder.NewRecorder())
	require.Error(t, err)
}

func TestPipeline_UnboundResourceFails(t *testing.T) {
	m := ir.NewModule()
	f32 := m.Types.GetOrCreate("", ir.ScalarType{Kind: ir.ScalarFloat, Width: 4})
	runtimeArr := m.Types.GetOrCreate("", ir.ArrayType{Base: f32})

	m.Globals = append(m.Globals, ir.GlobalVariable{
		Name:  "buf",
		Space: ir.SpaceStorage,
		Type:  runtimeArr, // no binding
	})
	m.Funcs = append(m.Funcs, &ir.Function{
		Name:    "main",
		Linkage: ir.LinkageExternal,
		Body: []ir.Instruction{
			ir.ArrayLength{Result: 0, Global: 0, Array: runtimeArr},
			ir.Return{},
		},
	})

	err := NewPipeline(DefaultOptions()).Run(m, builder.NewRecorder())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no binding")
}

func TestPipeline_Retag(t *testing.T) {
	m := lengthQueryModule(t)
	p := NewPipeline(DefaultOptions())

	require.NoError(t, p.Retag(m, StageCompute))
	stage, err := StageOf(m)
	require.NoError(t, err)
	assert.Equal(t, StageCompute, stage)
}

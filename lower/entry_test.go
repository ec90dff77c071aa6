package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/spvlower/ir"
)

func TestEntryPoint_FindsExternalDefinedFunction(t *testing.T) {
	m := ir.NewModule()
	m.Funcs = append(m.Funcs,
		&ir.Function{Name: "decl", Linkage: ir.LinkageExternal}, // declaration only
		&ir.Function{Name: "helper", Linkage: ir.LinkageInternal, Body: []ir.Instruction{ir.Return{}}},
		&ir.Function{Name: "main", Linkage: ir.LinkageExternal, Body: []ir.Instruction{ir.Return{}}},
	)

	entry, err := EntryPoint(m)
	require.NoError(t, err)
	assert.Equal(t, "main", entry.Name)
}

func TestEntryPoint_DeclarationOrder(t *testing.T) {
	m := ir.NewModule()
	m.Funcs = append(m.Funcs,
		&ir.Function{Name: "first", Linkage: ir.LinkageExternal, Body: []ir.Instruction{ir.Return{}}},
		&ir.Function{Name: "second", Linkage: ir.LinkageExternal, Body: []ir.Instruction{ir.Return{}}},
	)

	entry, err := EntryPoint(m)
	require.NoError(t, err)
	assert.Equal(t, "first", entry.Name, "first match wins; uniqueness is an upstream guarantee")
}

func TestEntryPoint_NoEntryPoint(t *testing.T) {
	tests := []struct {
		name  string
		funcs []*ir.Function
	}{
		{"empty module", nil},
		{"only declarations", []*ir.Function{
			{Name: "decl", Linkage: ir.LinkageExternal},
		}},
		{"only internal functions", []*ir.Function{
			{Name: "helper", Linkage: ir.LinkageInternal, Body: []ir.Instruction{ir.Return{}}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ir.NewModule()
			m.Funcs = tt.funcs

			_, err := EntryPoint(m)
			assert.ErrorIs(t, err, ErrNoEntryPoint)
		})
	}
}

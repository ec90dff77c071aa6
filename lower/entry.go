package lower

import (
	"errors"

	"github.com/gogpu/spvlower/ir"
)

// ErrNoEntryPoint is returned when a module has no externally linked
// defined function. The upstream translator guarantees exactly one, so
// hitting this means the module is broken and the run must abort.
var ErrNoEntryPoint = errors.New("module has no externally linked defined function")

// EntryPoint returns the module's entry point: the first function, in
// declaration order, that is both defined and externally linked.
//
// Uniqueness is an upstream guarantee and is not re-checked here; the
// first match wins.
func EntryPoint(m *ir.Module) (*ir.Function, error) {
	for _, fn := range m.Funcs {
		if fn.Defined() && fn.Linkage == ir.LinkageExternal {
			return fn, nil
		}
	}
	return nil, ErrNoEntryPoint
}

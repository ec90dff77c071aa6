package lower

import (
	"errors"
	"fmt"

	"github.com/gogpu/spvlower/ir"
)

// ErrUnreconcilable is returned when a destination type cannot be reached
// from a source type by first-element nesting. Call sites only reconcile
// paths the source representation elided, so hitting this means the two
// types were never related and the run must abort.
var ErrUnreconcilable = errors.New("types not related by first-element nesting")

// firstElementer is implemented by the aggregate type variants that nest a
// first element: structs (first member), arrays (element), vectors
// (scalar).
type firstElementer interface {
	FirstElement(reg *ir.TypeRegistry) (ir.TypeHandle, bool)
}

// AppendZeroIndexes appends one zero index to chain per nesting level
// between src and dest, descending into the first element at every step
// until the reached type equals dest.
//
// This reconstructs addressing steps the source representation no longer
// encodes: with opaque pointers the intermediate pointee types of an
// address computation are erased, so a pass that still needs to address a
// deeply nested element must resynthesize the elided zero-offset path from
// type structure alone. Since the registry deduplicates structurally,
// handle equality is the type-equality test.
func AppendZeroIndexes(chain []uint32, dest, src ir.TypeHandle, reg *ir.TypeRegistry) ([]uint32, error) {
	cur := src
	for cur != dest {
		typ, ok := reg.Lookup(cur)
		if !ok {
			return nil, fmt.Errorf("reconcile: dangling type handle %d", cur)
		}
		inner, ok := typ.Inner.(firstElementer)
		if !ok {
			return nil, fmt.Errorf("%w: reached %T before destination", ErrUnreconcilable, typ.Inner)
		}
		next, ok := inner.FirstElement(reg)
		if !ok {
			return nil, fmt.Errorf("%w: %T has no first element", ErrUnreconcilable, typ.Inner)
		}
		chain = append(chain, 0)
		cur = next
	}
	return chain, nil
}

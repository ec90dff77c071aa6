package lower

import (
	"github.com/gogpu/spvlower/builder"
	"github.com/gogpu/spvlower/ir"
)

// resourcePass eliminates the generic resource placeholders. Length
// queries are lowered directly to descriptor-length builder ops; loads and
// stores are reshaped into concrete element pointers plus pointer
// load/store placeholders for the addressing pass.
type resourcePass struct{}

func (resourcePass) name() string { return "resources" }

func (resourcePass) applicable(stage ShaderStage) bool { return true }

func (resourcePass) run(pc *passContext) error {
	for _, fn := range pc.definedFuncs() {
		if err := lowerResources(pc, fn); err != nil {
			return err
		}
	}
	return nil
}

func lowerResources(pc *passContext, fn *ir.Function) error {
	reg := pc.module.Types
	next := nextValue(fn)

	out := make([]ir.Instruction, 0, len(fn.Body))
	for _, inst := range fn.Body {
		switch in := inst.(type) {
		case ir.ArrayLength:
			global, err := pc.globalAt(in.Global)
			if err != nil {
				return err
			}
			group, bind, err := binding(global)
			if err != nil {
				return err
			}

			// The recorded index prefix stops where the source
			// representation collapsed zero-offset steps; rebuild the
			// rest of the path down to the queried runtime array.
			reached, err := typeAfterIndexes(global, in.Indices, reg)
			if err != nil {
				return err
			}
			chain := append([]uint32(nil), in.Indices...)
			chain, err = AppendZeroIndexes(chain, in.Array, reached, reg)
			if err != nil {
				return err
			}

			ids := constIndexes(pc, chain)
			op := pc.builder.DescriptorLength(group, bind, ids)
			pc.ops[in.Result] = op
			out = append(out, ir.TargetOp{Result: in.Result, Op: uint32(op)})

		case ir.ResourceLoad:
			ptr := next
			next++
			out = append(out,
				ir.ElementPtr{Result: ptr, Global: in.Global, Indices: in.Indices, Type: in.Type},
				ir.LoadPtr{Result: in.Result, Ptr: ptr},
			)

		case ir.ResourceStore:
			ptr := next
			next++
			out = append(out,
				ir.ElementPtr{Result: ptr, Global: in.Global, Indices: in.Indices, Type: in.Type},
				ir.StorePtr{Ptr: ptr, Value: in.Value},
			)

		default:
			out = append(out, inst)
		}
	}
	fn.Body = out
	return nil
}

// constIndexes materializes an index chain as integer-constant builder
// ops.
func constIndexes(pc *passContext, chain []uint32) []builder.OpID {
	ids := make([]builder.OpID, len(chain))
	for i, idx := range chain {
		ids[i] = pc.builder.ConstInt(idx)
	}
	return ids
}

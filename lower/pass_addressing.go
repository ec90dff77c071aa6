package lower

import (
	"fmt"

	"github.com/gogpu/spvlower/ir"
)

// addressingPass eliminates concrete element pointers and the pointer
// loads/stores formed by the resource pass. It runs after that pass by
// construction; an ElementPtr it cannot trace to a resolved pointer op is
// a pipeline-ordering defect, not an input condition.
type addressingPass struct{}

func (addressingPass) name() string { return "addressing" }

func (addressingPass) applicable(stage ShaderStage) bool { return true }

func (addressingPass) run(pc *passContext) error {
	for _, fn := range pc.definedFuncs() {
		if err := lowerAddressing(pc, fn); err != nil {
			return err
		}
	}
	return nil
}

func lowerAddressing(pc *passContext, fn *ir.Function) error {
	reg := pc.module.Types

	out := make([]ir.Instruction, 0, len(fn.Body))
	for _, inst := range fn.Body {
		switch in := inst.(type) {
		case ir.ElementPtr:
			global, err := pc.globalAt(in.Global)
			if err != nil {
				return err
			}
			group, bind, err := binding(global)
			if err != nil {
				return err
			}

			reached, err := typeAfterIndexes(global, in.Indices, reg)
			if err != nil {
				return err
			}
			chain := append([]uint32(nil), in.Indices...)
			chain, err = AppendZeroIndexes(chain, in.Type, reached, reg)
			if err != nil {
				return err
			}

			base := pc.builder.Descriptor(group, bind)
			op := pc.builder.AccessChain(base, constIndexes(pc, chain))
			pc.ops[in.Result] = op
			out = append(out, ir.TargetOp{Result: in.Result, Op: uint32(op)})

		case ir.LoadPtr:
			ptr, ok := pc.ops[in.Ptr]
			if !ok {
				return fmt.Errorf("load through unlowered pointer %%%d", in.Ptr)
			}
			op := pc.builder.Load(ptr)
			pc.ops[in.Result] = op
			out = append(out, ir.TargetOp{Result: in.Result, Op: uint32(op)})

		case ir.StorePtr:
			ptr, ok := pc.ops[in.Ptr]
			if !ok {
				return fmt.Errorf("store through unlowered pointer %%%d", in.Ptr)
			}
			value, ok := pc.ops[in.Value]
			if !ok {
				return fmt.Errorf("store of unlowered value %%%d", in.Value)
			}
			pc.builder.Store(ptr, value)
			// Stores produce no value; the instruction is consumed.

		default:
			out = append(out, inst)
		}
	}
	fn.Body = out
	return nil
}

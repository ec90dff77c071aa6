package lower

import (
	"github.com/gogpu/spvlower/ir"
)

// fragmentPass lowers fragment-only constructs. It skips every other
// stage, including unclassified modules.
type fragmentPass struct{}

func (fragmentPass) name() string { return "fragment" }

func (fragmentPass) applicable(stage ShaderStage) bool {
	return stage == StageFragment
}

func (fragmentPass) run(pc *passContext) error {
	for _, fn := range pc.definedFuncs() {
		out := make([]ir.Instruction, 0, len(fn.Body))
		for _, inst := range fn.Body {
			if _, ok := inst.(ir.Discard); ok {
				pc.builder.Kill()
				// Kill produces no value; the instruction is consumed.
				continue
			}
			out = append(out, inst)
		}
		fn.Body = out
	}
	return nil
}

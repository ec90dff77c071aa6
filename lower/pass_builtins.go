package lower

import (
	"fmt"

	"github.com/gogpu/spvlower/ir"
)

// stageBuiltins lists the builtin inputs each stage may read. Modules for
// unclassified stages never reach this table; the pass skips itself.
var stageBuiltins = map[ShaderStage][]ir.BuiltinValue{
	StageVertex:      {ir.BuiltinVertexIndex, ir.BuiltinInstanceIndex},
	StageTessControl: {ir.BuiltinPosition},
	StageTessEval:    {ir.BuiltinPosition},
	StageGeometry:    {ir.BuiltinPosition},
	StageFragment:    {ir.BuiltinPosition, ir.BuiltinFrontFacing},
	StageCompute: {
		ir.BuiltinLocalInvocationID,
		ir.BuiltinGlobalInvocationID,
		ir.BuiltinWorkGroupID,
		ir.BuiltinNumWorkGroups,
	},
}

// builtinPass lowers stage builtin reads for the module's stage.
type builtinPass struct{}

func (builtinPass) name() string { return "builtins" }

func (builtinPass) applicable(stage ShaderStage) bool {
	return stage != StageInvalid
}

func (builtinPass) run(pc *passContext) error {
	allowed := stageBuiltins[pc.stage]

	for _, fn := range pc.definedFuncs() {
		for i, inst := range fn.Body {
			in, ok := inst.(ir.BuiltinRead)
			if !ok {
				continue
			}
			if !builtinAllowed(allowed, in.Builtin) {
				return fmt.Errorf("builtin %s is not readable in the %s stage", in.Builtin, pc.stage)
			}
			op := pc.builder.ReadBuiltin(in.Builtin)
			pc.ops[in.Result] = op
			fn.Body[i] = ir.TargetOp{Result: in.Result, Op: uint32(op)}
		}
	}
	return nil
}

func builtinAllowed(allowed []ir.BuiltinValue, b ir.BuiltinValue) bool {
	for _, a := range allowed {
		if a == b {
			return true
		}
	}
	return false
}

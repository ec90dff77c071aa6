package lower

import (
	"github.com/gogpu/spvlower/ir"
)

// ShaderStage identifies the graphics or compute stage a module
// implements.
type ShaderStage uint8

const (
	StageVertex ShaderStage = iota
	StageTessControl
	StageTessEval
	StageGeometry
	StageFragment
	StageCompute

	// StageInvalid means the module carries no recognizable stage tag.
	// It is a legitimate value, not an error; stage-conditional passes
	// skip themselves when they see it.
	StageInvalid
)

// execModelMetadata is the name of the metadata node the translator
// attaches to the entry function. Its single operand is the stage's
// execution-model encoding. The name and encoding are owned by this file;
// passes go through StageOf/SetStage so no divergent encoding can appear.
const execModelMetadata = "execution_model"

// Execution-model encodings, as produced by the upstream translator.
const (
	execModelVertex      = 0
	execModelTessControl = 1
	execModelTessEval    = 2
	execModelGeometry    = 3
	execModelFragment    = 4
	execModelCompute     = 5
)

// ExecutionModel returns the stage's execution-model encoding. It reports
// false for StageInvalid, which has no encoding.
func (s ShaderStage) ExecutionModel() (uint32, bool) {
	switch s {
	case StageVertex:
		return execModelVertex, true
	case StageTessControl:
		return execModelTessControl, true
	case StageTessEval:
		return execModelTessEval, true
	case StageGeometry:
		return execModelGeometry, true
	case StageFragment:
		return execModelFragment, true
	case StageCompute:
		return execModelCompute, true
	}
	return 0, false
}

// StageFromExecutionModel decodes an execution-model value. Unrecognized
// encodings yield StageInvalid; callers decide whether that matters.
func StageFromExecutionModel(v uint32) ShaderStage {
	switch v {
	case execModelVertex:
		return StageVertex
	case execModelTessControl:
		return StageTessControl
	case execModelTessEval:
		return StageTessEval
	case execModelGeometry:
		return StageGeometry
	case execModelFragment:
		return StageFragment
	case execModelCompute:
		return StageCompute
	}
	return StageInvalid
}

// String returns the stage's name as spelled in the textual form.
func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageTessControl:
		return "tess_control"
	case StageTessEval:
		return "tess_eval"
	case StageGeometry:
		return "geometry"
	case StageFragment:
		return "fragment"
	case StageCompute:
		return "compute"
	}
	return "invalid"
}

// ParseStage maps a stage name back to its enum value.
func ParseStage(name string) (ShaderStage, bool) {
	for s := StageVertex; s < StageInvalid; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return StageInvalid, false
}

// StageOf reads the stage tag from the module's entry function.
//
// An absent tag or an unrecognized encoding yields StageInvalid. The only
// error condition is a module without an entry point.
func StageOf(m *ir.Module) (ShaderStage, error) {
	entry, err := EntryPoint(m)
	if err != nil {
		return StageInvalid, err
	}
	return stageOfFunction(entry), nil
}

func stageOfFunction(fn *ir.Function) ShaderStage {
	node, ok := fn.Metadata(execModelMetadata)
	if !ok || len(node.Operands) == 0 {
		return StageInvalid
	}
	return StageFromExecutionModel(uint32(node.Operands[0]))
}

// SetStage writes (or overwrites) the stage tag on the module's entry
// function. Repeated calls with the same stage are equivalent to one call.
func SetStage(m *ir.Module, stage ShaderStage) error {
	entry, err := EntryPoint(m)
	if err != nil {
		return err
	}
	model, ok := stage.ExecutionModel()
	if !ok {
		// Re-tagging a module as unclassified removes the node, which
		// round-trips through StageOf as StageInvalid.
		entry.SetMetadata(execModelMetadata, ir.MetadataNode{})
		return nil
	}
	entry.SetMetadata(execModelMetadata, ir.MetadataNode{Operands: []uint64{uint64(model)}})
	return nil
}

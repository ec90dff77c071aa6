package lower

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/gogpu/spvlower/builder"
	"github.com/gogpu/spvlower/ir"
)

var log = commonlog.GetLogger("spvlower.lower")

// Options configures a pipeline.
type Options struct {
	// Validate runs structural validation after every pass.
	Validate bool
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{Validate: true}
}

// pass is one lowering transformation. Each pass eliminates one class of
// placeholder instruction and must leave the module structurally valid for
// the next pass.
type pass interface {
	name() string
	applicable(stage ShaderStage) bool
	run(pc *passContext) error
}

// passContext is the per-run state shared by the passes of one lowering
// run. A Pipeline keeps no state between runs, so one Pipeline may lower
// distinct modules concurrently.
type passContext struct {
	module  *ir.Module
	entry   *ir.Function
	stage   ShaderStage
	builder builder.Builder

	// ops maps lowered instruction results to their builder op ids, so a
	// later pass can reference operations emitted by an earlier one.
	ops map[ir.ValueHandle]builder.OpID
}

// Pipeline runs a fixed ordered list of lowering passes over one module.
type Pipeline struct {
	opts   Options
	passes []pass
}

// NewPipeline builds the pipeline with its fixed pass order:
// resources, builtins, addressing, fragment.
//
// Resource placeholders must be gone before the addressing pass, which
// only understands concrete element pointers. Builtin reads are lowered
// before addressing so that stored values already have builder op ids.
func NewPipeline(opts Options) *Pipeline {
	return &Pipeline{
		opts: opts,
		passes: []pass{
			resourcePass{},
			builtinPass{},
			addressingPass{},
			fragmentPass{},
		},
	}
}

// Passes returns the pass names in execution order.
func (p *Pipeline) Passes() []string {
	names := make([]string, len(p.passes))
	for i, ps := range p.passes {
		names[i] = ps.name()
	}
	return names
}

// Run lowers the module in place, emitting target operations into b.
//
// The entry point is resolved once and the stage tag read once; each pass
// then runs in order, skipping itself on inapplicable stages. Any pass
// failure aborts the run for this module. Running the pipeline again on an
// already-lowered module emits nothing further.
func (p *Pipeline) Run(m *ir.Module, b builder.Builder) error {
	entry, err := EntryPoint(m)
	if err != nil {
		return err
	}
	stage := stageOfFunction(entry)
	log.Infof("lowering %s (stage %s)", entry.Name, stage)

	if p.opts.Validate {
		if errs := ir.Validate(m); len(errs) > 0 {
			return fmt.Errorf("module invalid before lowering: %w", errs[0])
		}
	}

	pc := &passContext{
		module:  m,
		entry:   entry,
		stage:   stage,
		builder: b,
		ops:     make(map[ir.ValueHandle]builder.OpID),
	}

	for _, ps := range p.passes {
		if !ps.applicable(stage) {
			log.Debugf("pass %s: skipped for stage %s", ps.name(), stage)
			continue
		}
		if err := ps.run(pc); err != nil {
			return fmt.Errorf("pass %s: %w", ps.name(), err)
		}
		if p.opts.Validate {
			if errs := ir.Validate(m); len(errs) > 0 {
				return fmt.Errorf("pass %s left invalid module: %w", ps.name(), errs[0])
			}
		}
	}
	return nil
}

// Retag overwrites the module's stage tag. Used by orchestration when a
// transformation (such as stage merging) changes which stage a module
// implements.
func (p *Pipeline) Retag(m *ir.Module, stage ShaderStage) error {
	return SetStage(m, stage)
}

// definedFuncs yields the functions a pass transforms.
func (pc *passContext) definedFuncs() []*ir.Function {
	funcs := make([]*ir.Function, 0, len(pc.module.Funcs))
	for _, fn := range pc.module.Funcs {
		if fn.Defined() {
			funcs = append(funcs, fn)
		}
	}
	return funcs
}

// nextValue returns the first unused value handle of a function body.
func nextValue(fn *ir.Function) ir.ValueHandle {
	next := ir.ValueHandle(0)
	for _, inst := range fn.Body {
		if h, ok := instructionResult(inst); ok && h >= next {
			next = h + 1
		}
	}
	return next
}

func instructionResult(inst ir.Instruction) (ir.ValueHandle, bool) {
	switch in := inst.(type) {
	case ir.ResourceLoad:
		return in.Result, true
	case ir.ArrayLength:
		return in.Result, true
	case ir.ElementPtr:
		return in.Result, true
	case ir.LoadPtr:
		return in.Result, true
	case ir.BuiltinRead:
		return in.Result, true
	case ir.TargetOp:
		return in.Result, true
	}
	return 0, false
}

// typeAfterIndexes applies an explicit index prefix to a global's type,
// yielding the aggregate the remaining (elided) path starts from.
func typeAfterIndexes(global ir.GlobalVariable, indices []uint32, reg *ir.TypeRegistry) (ir.TypeHandle, error) {
	cur := global.Type
	for _, idx := range indices {
		next, ok := reg.ElementType(cur, idx)
		if !ok {
			return 0, fmt.Errorf("index %d does not apply to type handle %d of global %q", idx, cur, global.Name)
		}
		cur = next
	}
	return cur, nil
}

// globalAt fetches a resource global, guarding against dangling handles
// when validation is disabled.
func (pc *passContext) globalAt(handle ir.GlobalHandle) (ir.GlobalVariable, error) {
	if int(handle) >= len(pc.module.Globals) {
		return ir.GlobalVariable{}, fmt.Errorf("dangling global handle %d", handle)
	}
	return pc.module.Globals[handle], nil
}

// binding returns the descriptor coordinates of a resource global.
func binding(global ir.GlobalVariable) (group, bind uint32, err error) {
	if global.Binding == nil {
		return 0, 0, fmt.Errorf("resource global %q has no binding", global.Name)
	}
	return global.Binding.Group, global.Binding.Binding, nil
}

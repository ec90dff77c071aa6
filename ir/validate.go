package ir

import (
	"fmt"
)

// ValidationError represents a structural defect found in a module.
type ValidationError struct {
	Message string
	// Optional context
	Function    string
	Instruction int
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Function != "" {
		if e.Instruction >= 0 {
			return fmt.Sprintf("in function %s, instruction %d: %s", e.Function, e.Instruction, e.Message)
		}
		return fmt.Sprintf("in function %s: %s", e.Function, e.Message)
	}
	return e.Message
}

// Validator validates IR modules.
type Validator struct {
	module *Module
	errors []ValidationError
}

// Validate checks the module invariants every lowering pass must preserve:
// resolvable handles, single-assignment value results, no duplicate entry
// points. Returns the collected errors, or nil if the module is valid.
func Validate(module *Module) []ValidationError {
	v := &Validator{module: module}
	v.validateGlobals()
	v.validateFunctions()
	return v.errors
}

func (v *Validator) errorf(format string, args ...any) {
	v.errors = append(v.errors, ValidationError{
		Message:     fmt.Sprintf(format, args...),
		Instruction: -1,
	})
}

func (v *Validator) instErrorf(fn string, inst int, format string, args ...any) {
	v.errors = append(v.errors, ValidationError{
		Message:     fmt.Sprintf(format, args...),
		Function:    fn,
		Instruction: inst,
	})
}

func (v *Validator) validType(handle TypeHandle) bool {
	_, ok := v.module.Types.Lookup(handle)
	return ok
}

func (v *Validator) validateGlobals() {
	for i, global := range v.module.Globals {
		if !v.validType(global.Type) {
			v.errorf("global %q (%d): dangling type handle %d", global.Name, i, global.Type)
		}
	}
}

func (v *Validator) validateFunctions() {
	entryPoints := 0
	for _, fn := range v.module.Funcs {
		if fn.Defined() && fn.Linkage == LinkageExternal {
			entryPoints++
		}
		v.validateBody(fn)
	}
	if entryPoints > 1 {
		v.errorf("module has %d externally linked defined functions, want exactly 1", entryPoints)
	}
}

// validateBody checks handle references and single assignment of results.
func (v *Validator) validateBody(fn *Function) {
	defined := make(map[ValueHandle]bool, len(fn.Body))

	result := func(i int, h ValueHandle) {
		if defined[h] {
			v.instErrorf(fn.Name, i, "value %%%d defined twice", h)
		}
		defined[h] = true
	}
	use := func(i int, h ValueHandle) {
		if !defined[h] {
			v.instErrorf(fn.Name, i, "use of undefined value %%%d", h)
		}
	}
	global := func(i int, h GlobalHandle) {
		if int(h) >= len(v.module.Globals) {
			v.instErrorf(fn.Name, i, "dangling global handle %d", h)
		}
	}
	typ := func(i int, h TypeHandle) {
		if !v.validType(h) {
			v.instErrorf(fn.Name, i, "dangling type handle %d", h)
		}
	}

	for i, inst := range fn.Body {
		switch in := inst.(type) {
		case ResourceLoad:
			global(i, in.Global)
			typ(i, in.Type)
			result(i, in.Result)
		case ResourceStore:
			global(i, in.Global)
			typ(i, in.Type)
			use(i, in.Value)
		case ArrayLength:
			global(i, in.Global)
			typ(i, in.Array)
			result(i, in.Result)
		case ElementPtr:
			global(i, in.Global)
			typ(i, in.Type)
			result(i, in.Result)
		case LoadPtr:
			use(i, in.Ptr)
			result(i, in.Result)
		case StorePtr:
			use(i, in.Ptr)
			use(i, in.Value)
		case BuiltinRead:
			result(i, in.Result)
		case Return:
			if in.Value != nil {
				use(i, *in.Value)
			}
		case Discard:
			// no handles to check
		case TargetOp:
			result(i, in.Result)
		default:
			v.instErrorf(fn.Name, i, "unknown instruction %T", inst)
		}
	}
}

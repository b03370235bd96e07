package vm

import (
	"github.com/linkpy/neolang/internal/symbols"
	"github.com/linkpy/neolang/internal/types"
)

// StepKind classifies the outcome of one dispatched instruction.
type StepKind uint8

const (
	// StepNotFinished means execution continues with the next instruction.
	StepNotFinished StepKind = iota
	// StepFinished means the program terminated with a value.
	StepFinished
	// StepFailed means the program terminated with an error.
	StepFailed
)

// StepResult carries the outcome of one step.
type StepResult struct {
	Kind  StepKind
	Value types.Variant
	Err   *Error
}

func stepNext() StepResult {
	return StepResult{Kind: StepNotFinished}
}

func stepDone(v types.Variant) StepResult {
	return StepResult{Kind: StepFinished, Value: v}
}

func stepFail(err *Error) StepResult {
	return StepResult{Kind: StepFailed, Err: err}
}

// handler executes one instruction against the state.
type handler func(s *State, in Instr) StepResult

// dispatch is the function table indexed by opcode.
var dispatch = [opcodeCount]handler{
	OpNoop:       execNoop,
	OpLoadID:     execLoadID,
	OpLoadParam:  execLoadParam,
	OpLoadLocal:  execLoadLocal,
	OpLoadData:   execLoadData,
	OpWriteLocal: execWriteLocal,
	OpEnd:        execEnd,
	OpRet:        execRet,
	OpErr:        execErr,
	OpDrop:       execDrop,
	OpDup:        execDup,
	OpSwap:       execSwap,
	OpCastInt:    execCastInt,
	OpAddInt:     execIntBinary,
	OpSubInt:     execIntBinary,
	OpMulInt:     execIntBinary,
	OpDivInt:     execIntBinary,
	OpModInt:     execIntBinary,
	OpShlInt:     execIntBinary,
	OpShrInt:     execIntBinary,
	OpBandInt:    execIntBinary,
	OpBorInt:     execIntBinary,
	OpBxorInt:    execIntBinary,
	OpEqInt:      execIntCompare,
	OpNeInt:      execIntCompare,
	OpLtInt:      execIntCompare,
	OpLeInt:      execIntCompare,
	OpGtInt:      execIntCompare,
	OpGeInt:      execIntCompare,
	OpLand:       execBoolBinary,
	OpLor:        execBoolBinary,
}

// Step fetches the instruction at the code index, advances and dispatches.
func (s *State) Step() StepResult {
	if s.ip >= uint32(len(s.code)) {
		return stepFail(errInvalidData("instruction index %d out of bounds (%d instructions)", s.ip, len(s.code)))
	}
	in := s.code[s.ip]
	s.ip++
	h := dispatch[in.Op]
	if h == nil {
		return stepFail(errInvalidData("no handler for opcode %s", in.Op))
	}
	return h(s, in)
}

// Run loops until the program terminates.
func (s *State) Run() (types.Variant, *Error) {
	for {
		res := s.Step()
		switch res.Kind {
		case StepFinished:
			return res.Value, nil
		case StepFailed:
			return types.None(), res.Err
		}
	}
}

// ===== Handlers =====

func execNoop(*State, Instr) StepResult {
	return stepNext()
}

func execLoadID(s *State, in Instr) StepResult {
	entry := s.syms.Get(symbols.SymbolID(in.A))
	if entry == nil {
		return stepFail(errInvalidData("load_id: unknown identifier entry %d", in.A))
	}
	s.push(entry.Value)
	return stepNext()
}

func execLoadParam(s *State, in Instr) StepResult {
	if in.A >= uint32(len(s.params)) {
		return stepFail(errParamOOB(in.A, len(s.params)))
	}
	s.push(s.params[in.A])
	return stepNext()
}

func execLoadLocal(s *State, in Instr) StepResult {
	v, err := s.readLocal(in.A)
	if err != nil {
		return stepFail(err)
	}
	s.push(v)
	return stepNext()
}

func execLoadData(s *State, in Instr) StepResult {
	s.push(in.Data)
	return stepNext()
}

func execWriteLocal(s *State, in Instr) StepResult {
	v, err := s.pop()
	if err != nil {
		return stepFail(err)
	}
	s.writeLocal(in.A, v)
	return stepNext()
}

func execEnd(*State, Instr) StepResult {
	return stepDone(types.None())
}

func execRet(s *State, _ Instr) StepResult {
	v, err := s.pop()
	if err != nil {
		return stepFail(err)
	}
	return stepDone(v)
}

func execErr(*State, Instr) StepResult {
	return stepFail(errEvalFailed("explicit err instruction"))
}

func execDrop(s *State, in Instr) StepResult {
	for range in.A {
		if _, err := s.pop(); err != nil {
			return stepFail(err)
		}
	}
	return stepNext()
}

func execDup(s *State, in Instr) StepResult {
	if in.A == 0 {
		return stepFail(errInvalidData("dup with zero count"))
	}
	v, err := s.pop()
	if err != nil {
		return stepFail(err)
	}
	for range in.A {
		s.push(v)
	}
	return stepNext()
}

func execSwap(s *State, _ Instr) StepResult {
	a, b, err := s.pop2()
	if err != nil {
		return stepFail(err)
	}
	s.push(b)
	s.push(a)
	return stepNext()
}

func execCastInt(s *State, in Instr) StepResult {
	fromIdx, toIdx := UnpackCast(in.A)
	from, ok := types.IntFromIndex(fromIdx)
	if !ok {
		return stepFail(errBadIntType("cast_int: invalid source index %d", fromIdx))
	}
	to, ok := types.IntFromIndex(toIdx)
	if !ok {
		return stepFail(errBadIntType("cast_int: invalid destination index %d", toIdx))
	}
	v, err := s.pop()
	if err != nil {
		return stepFail(err)
	}
	if !v.IsInt() || !v.TypeOf().SameAs(from) {
		return stepFail(errBadIntType("cast_int: operand is %s, expected %s", v.Kind, from))
	}
	s.push(castInt(v, to))
	return stepNext()
}

func execIntBinary(s *State, in Instr) StepResult {
	t, ok := types.IntFromIndex(uint8(in.A)) //nolint:gosec // range-checked by IntFromIndex
	if !ok {
		return stepFail(errBadIntType("%s: invalid type index %d", s.code[s.ip-1].Op, in.A))
	}
	a, b, err := s.pop2()
	if err != nil {
		return stepFail(err)
	}
	if perr := checkIntOperands(t, a, b); perr != nil {
		return stepFail(perr)
	}
	res, aerr := intArith(s.code[s.ip-1].Op, t, a, b)
	if aerr != nil {
		return stepFail(aerr)
	}
	s.push(res)
	return stepNext()
}

func execIntCompare(s *State, in Instr) StepResult {
	t, ok := types.IntFromIndex(uint8(in.A)) //nolint:gosec // range-checked by IntFromIndex
	if !ok {
		return stepFail(errBadIntType("%s: invalid type index %d", s.code[s.ip-1].Op, in.A))
	}
	a, b, err := s.pop2()
	if err != nil {
		return stepFail(err)
	}
	if perr := checkIntOperands(t, a, b); perr != nil {
		return stepFail(perr)
	}
	s.push(types.BoolValue(intCompare(s.code[s.ip-1].Op, t, a, b)))
	return stepNext()
}

func execBoolBinary(s *State, in Instr) StepResult {
	a, b, err := s.pop2()
	if err != nil {
		return stepFail(err)
	}
	if a.Kind != types.VarBool || b.Kind != types.VarBool {
		return stepFail(errInvalidData("%s: operands are %s and %s, expected bool", s.code[s.ip-1].Op, a.Kind, b.Kind))
	}
	if s.code[s.ip-1].Op == OpLand {
		s.push(types.BoolValue(a.Bool && b.Bool))
	} else {
		s.push(types.BoolValue(a.Bool || b.Bool))
	}
	return stepNext()
}

func checkIntOperands(t types.Type, a, b types.Variant) *Error {
	if !a.IsInt() || !a.TypeOf().SameAs(t) {
		return errBadIntType("left operand is %s, expected %s", a.Kind, t)
	}
	if !b.IsInt() || !b.TypeOf().SameAs(t) {
		return errBadIntType("right operand is %s, expected %s", b.Kind, t)
	}
	return nil
}

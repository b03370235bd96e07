package vm

import (
	"github.com/linkpy/neolang/internal/symbols"
	"github.com/linkpy/neolang/internal/types"
)

// State is the runnable closure of one compiled expression. It owns its
// buffers and borrows identifier storage read-only; an Evaluator builds
// one, runs it and drops it.
type State struct {
	syms   *symbols.Table
	params []types.Variant
	locals []types.Variant
	stack  []types.Variant
	code   []Instr
	ip     uint32
}

// NewState builds a state over the given code and parameter vector.
func NewState(syms *symbols.Table, code []Instr, params []types.Variant) *State {
	return &State{
		syms:   syms,
		params: params,
		stack:  make([]types.Variant, 0, 16),
		code:   code,
	}
}

// Code returns the instruction vector (read-only).
func (s *State) Code() []Instr {
	return s.code
}

func (s *State) push(v types.Variant) {
	s.stack = append(s.stack, v)
}

func (s *State) pop() (types.Variant, *Error) {
	if len(s.stack) == 0 {
		return types.None(), errInvalidData("operand stack underflow at instruction %d", s.ip)
	}
	v := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return v, nil
}

func (s *State) pop2() (a, b types.Variant, err *Error) {
	b, err = s.pop()
	if err != nil {
		return
	}
	a, err = s.pop()
	return
}

func (s *State) writeLocal(idx uint32, v types.Variant) {
	for uint32(len(s.locals)) <= idx {
		s.locals = append(s.locals, types.None())
	}
	s.locals[idx] = v
}

func (s *State) readLocal(idx uint32) (types.Variant, *Error) {
	if idx >= uint32(len(s.locals)) {
		return types.None(), errInvalidData("local index %d out of bounds (%d locals)", idx, len(s.locals))
	}
	return s.locals[idx], nil
}

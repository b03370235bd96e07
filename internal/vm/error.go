package vm

import (
	"fmt"

	"github.com/linkpy/neolang/internal/diag"
)

// Error is a structured VM failure. It propagates up through the Evaluator
// which translates it into a semantic diagnostic anchored at the failing
// expression.
type Error struct {
	Code diag.Code
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
}

func errInvalidData(format string, args ...any) *Error {
	return &Error{Code: diag.VMInvalidData, Msg: fmt.Sprintf(format, args...)}
}

func errBadIntType(format string, args ...any) *Error {
	return &Error{Code: diag.VMBadIntType, Msg: fmt.Sprintf(format, args...)}
}

func errParamOOB(idx uint32, count int) *Error {
	return &Error{
		Code: diag.VMParamOutOfBounds,
		Msg:  fmt.Sprintf("parameter index %d out of bounds (%d parameters)", idx, count),
	}
}

func errDivByZero() *Error {
	return &Error{Code: diag.VMDivisionByZero, Msg: "division by zero"}
}

func errNotImplemented(what string) *Error {
	return &Error{Code: diag.VMNotImplemented, Msg: what + " is not implemented"}
}

func errEvalFailed(msg string) *Error {
	return &Error{Code: diag.VMEvalFailed, Msg: msg}
}

package diag

import (
	"fmt"
)

type Code uint16

const (
	// Unknown fallback
	UnknownCode Code = 0

	// Lexical
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002

	// Syntax
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynUnexpectedEOF    Code = 2002
	SynInvalidStmtFlag  Code = 2003
	SynExpectIdentifier Code = 2004
	SynExpectExpression Code = 2005
	SynUnknownIntFlag   Code = 2006
	SynExpectSemicolon  Code = 2007
	SynExpectEnd        Code = 2008

	// Name binding
	BindInfo           Code = 3000
	BindOvershadow     Code = 3001
	BindUndeclared     Code = 3002
	BindRecursiveUse   Code = 3003
	BindAlreadyExists  Code = 3004
	BindSegmentedNames Code = 3005

	// Semantic
	SemaInfo             Code = 4000
	SemaOperandMismatch  Code = 4001
	SemaUnsupportedUnary Code = 4002
	SemaCoerceFailed     Code = 4003
	SemaNotConstant      Code = 4004
	SemaNotAType         Code = 4005
	SemaEvalFailed       Code = 4006
	SemaNotImplemented   Code = 4007

	// Virtual machine
	VMInfo             Code = 5000
	VMInvalidData      Code = 5001
	VMEvalFailed       Code = 5002
	VMParamOutOfBounds Code = 5003
	VMBadIntType       Code = 5004
	VMDivisionByZero   Code = 5005
	VMNotImplemented   Code = 5006

	// I/O
	IOLoadFileError Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unrecognized input",
	LexUnterminatedString: "Unexpected end of string",
	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynUnexpectedEOF:      "Unexpected end of file",
	SynInvalidStmtFlag:    "Invalid statement flag",
	SynExpectIdentifier:   "Expect identifier",
	SynExpectExpression:   "Expect expression",
	SynUnknownIntFlag:     "Unknown integer type flag",
	SynExpectSemicolon:    "Expect semicolon",
	SynExpectEnd:          "Expect 'end'",
	BindInfo:              "Binding information",
	BindOvershadow:        "Overshadowing declaration",
	BindUndeclared:        "Undeclared identifier",
	BindRecursiveUse:      "Invalid recursive use",
	BindAlreadyExists:     "Binding already exists",
	BindSegmentedNames:    "Segmented identifiers are not implemented",
	SemaInfo:              "Semantic information",
	SemaOperandMismatch:   "Incompatible operand types",
	SemaUnsupportedUnary:  "Unsupported unary operation",
	SemaCoerceFailed:      "Coercion failure",
	SemaNotConstant:       "Constant expression required",
	SemaNotAType:          "Type expression required",
	SemaEvalFailed:        "Evaluation failed",
	SemaNotImplemented:    "Not implemented",
	VMInfo:                "VM information",
	VMInvalidData:         "Invalid instruction data",
	VMEvalFailed:          "Evaluation failed",
	VMParamOutOfBounds:    "Parameter index out of bounds",
	VMBadIntType:          "Unsupported integer type",
	VMDivisionByZero:      "Division by zero",
	VMNotImplemented:      "Not implemented",
	IOLoadFileError:       "I/O load file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("BND%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("VM%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo        Code = 1000
	LexUnknownChar Code = 1001
	LexIntOverflow Code = 1002
	LexTokenLimit  Code = 1003

	// Синтаксические
	SynInfo            Code = 2000
	SynBadExpr         Code = 2001
	SynUnexpectedToken Code = 2002
	SynUnclosedParen   Code = 2003

	// Вычисление
	EvalInfo        Code = 3000
	EvalArity       Code = 3001
	EvalCanceled    Code = 3003
	EvalUnknownFunc Code = 3004

	// Ввод-вывод
	IOReadError   Code = 4001
	IOConfigError Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:        "Unknown error",
	LexInfo:            "Lexical information",
	LexUnknownChar:     "Unknown character",
	LexIntOverflow:     "Integer literal out of range",
	LexTokenLimit:      "Token limit exceeded",
	SynInfo:            "Syntax information",
	SynBadExpr:         "Expected expression",
	SynUnexpectedToken: "Unexpected token",
	SynUnclosedParen:   "Unclosed parenthesis",
	EvalInfo:           "Evaluation information",
	EvalArity:          "Wrong number of arguments",
	EvalCanceled:       "Evaluation canceled",
	EvalUnknownFunc:    "Unknown function",
	IOReadError:        "Cannot read input",
	IOConfigError:      "Invalid configuration",
}

// Phase tells which pipeline stage a code belongs to.
type Phase uint8

const (
	PhaseUnknown Phase = iota
	PhaseLexer
	PhaseSyntax
	PhaseEval
	PhaseIO
)

func (p Phase) String() string {
	switch p {
	case PhaseLexer:
		return "lexer"
	case PhaseSyntax:
		return "syntax"
	case PhaseEval:
		return "eval"
	case PhaseIO:
		return "io"
	}
	return "unknown"
}

// Phase classifies the code by its numeric range.
func (c Code) Phase() Phase {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return PhaseLexer
	case ic >= 2000 && ic < 3000:
		return PhaseSyntax
	case ic >= 3000 && ic < 4000:
		return PhaseEval
	case ic >= 4000 && ic < 5000:
		return PhaseIO
	}
	return PhaseUnknown
}

func (c Code) ID() string {
	switch c.Phase() {
	case PhaseLexer:
		return fmt.Sprintf("LEX%04d", int(c))
	case PhaseSyntax:
		return fmt.Sprintf("SYN%04d", int(c))
	case PhaseEval:
		return fmt.Sprintf("EVL%04d", int(c))
	case PhaseIO:
		return fmt.Sprintf("IO%04d", int(c))
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

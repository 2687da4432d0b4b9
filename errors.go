package dynpeg

import (
	"fmt"
	"strings"
)

// ErrCode classifies why an evaluation or compilation failed.
type ErrCode int

// Error kinds produced by the evaluator (C2/C3) and the compiler (C8).
const (
	// LiteralMismatch is reported when a Literal atom does not match
	// the input starting at the current position.
	LiteralMismatch ErrCode = iota

	// UnexpectedEOF is reported when a Dot atom is evaluated at end
	// of input.
	UnexpectedEOF

	// ClassMismatch is reported when a Match atom's character class
	// rejects the next character.
	ClassMismatch

	// NegationMatched is reported when the inner expression of a Not
	// succeeds, which makes the Not itself fail.
	NegationMatched

	// TooFewRepetitions is reported when a Repeat stops with fewer
	// than its configured minimum number of accepted iterations, and
	// also when a Repeat would run past Config.MaxRepeat iterations.
	TooFewRepetitions

	// MissingRule is reported when a RuleRef names a rule absent
	// from the active rule set.
	MissingRule

	// CompileError is reported by the AST-to-Rules compiler (C8) when
	// the shape of a PEG AST node does not match what the compiler
	// expects for its rule name.
	CompileError

	// RecursionLimit is reported when nested RuleRef evaluation
	// exceeds Config.MaxRuleDepth.
	RecursionLimit

	// TrailingInput is reported by Parse under Config.StrictEOF when
	// a successful match of "main" does not consume the whole input.
	TrailingInput
)

func (c ErrCode) String() string {
	switch c {
	case LiteralMismatch:
		return "LiteralMismatch"
	case UnexpectedEOF:
		return "UnexpectedEOF"
	case ClassMismatch:
		return "ClassMismatch"
	case NegationMatched:
		return "NegationMatched"
	case TooFewRepetitions:
		return "TooFewRepetitions"
	case MissingRule:
		return "MissingRule"
	case CompileError:
		return "CompileError"
	case RecursionLimit:
		return "RecursionLimit"
	case TrailingInput:
		return "TrailingInput"
	default:
		return "UnknownError"
	}
}

// Error is a structured parse or compile failure: the Position it
// occurred at, a human-readable Descr, the ErrCode kind, and an
// optional Cause chain accumulated as the failure crosses rule
// boundaries (see RuleRef in expression.go) or Or alternatives are
// merged (see deepErr below).
type Error struct {
	Pos   Position
	Descr string
	Code  ErrCode
	Cause *Error
}

func newError(code ErrCode, pos Position, descr string) *Error {
	return &Error{Pos: pos, Descr: descr, Code: code}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s at %s: %s", e.Code, e.Pos, e.Descr)
	}
	return fmt.Sprintf("%s at %s: %s\n  caused by: %s", e.Code, e.Pos, e.Descr, e.Cause.Error())
}

// Unwrap exposes the cause chain to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	if e == nil || e.Cause == nil {
		return nil
	}
	return e.Cause
}

// pushCause returns a copy of e with name pushed onto the cause chain,
// used by RuleRef to record which named rule a failure propagated
// through.
func (e *Error) pushCause(name string) *Error {
	return &Error{
		Pos:   e.Pos,
		Descr: fmt.Sprintf("in rule %q", name),
		Code:  e.Code,
		Cause: e,
	}
}

// deepErr implements the "deepest failure wins" merge used by Or: the
// error with the greater Pos.N survives; on a tie the descriptions are
// concatenated while the position is preserved. A nil left-hand side
// always yields the right-hand side.
func deepErr(a, b *Error) *Error {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if b.Pos.Less(a.Pos) {
		return a
	}
	if a.Pos.Less(b.Pos) {
		return b
	}
	return &Error{
		Pos:   a.Pos,
		Descr: strings.Join([]string{a.Descr, b.Descr}, " / "),
		Code:  a.Code,
		Cause: a,
	}
}

// Errors aggregates multiple independent failures, used by RulesFromPeg
// when the AST→Rules compiler walks more than one rule and wants to
// report every rule that failed to compile rather than stopping at the
// first one (see SPEC_FULL.md, "Supplemented features").
type Errors []*Error

func (es Errors) Error() string {
	if len(es) == 0 {
		return "no errors"
	}
	if len(es) == 1 {
		return es[0].Error()
	}
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.Error()
	}
	return fmt.Sprintf("%d errors occurred:\n%s", len(es), strings.Join(parts, "\n"))
}

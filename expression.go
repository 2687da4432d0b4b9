package dynpeg

import (
	"fmt"
	"strings"

	"github.com/dynpeg/dynpeg/trace"
)

// ExprKind tags the variant of an Expression.
type ExprKind int

const (
	// ExprSimple wraps a terminal Atom.
	ExprSimple ExprKind = iota
	// ExprAnd is a sequence: every child must succeed in order.
	ExprAnd
	// ExprOr is ordered choice: the first child to succeed wins.
	ExprOr
	// ExprNot is negative lookahead: consumes nothing.
	ExprNot
	// ExprRepeat is bounded or unbounded repetition.
	ExprRepeat
	// ExprRuleRef names another rule in the active Rules set.
	ExprRuleRef
)

// Expression is a PEG expression: a terminal Atom, or a composite built
// from Atoms and other Expressions via And/Or/Not/Repeat/RuleRef.
type Expression struct {
	Kind     ExprKind
	Atom     Atom
	Children []Expression
	Inner    *Expression
	Min      int
	Max      *int
	Name     string
}

// Simple builds a terminal Expression from an Atom.
func Simple(a Atom) Expression {
	return Expression{Kind: ExprSimple, Atom: a}
}

// SeqAnd builds a sequence Expression: every child must succeed, left
// to right.
func SeqAnd(children ...Expression) Expression {
	return Expression{Kind: ExprAnd, Children: children}
}

// AltOr builds an ordered-choice Expression: the first child to
// succeed wins.
func AltOr(children ...Expression) Expression {
	return Expression{Kind: ExprOr, Children: children}
}

// Negate builds a negative-lookahead Expression.
func Negate(inner Expression) Expression {
	return Expression{Kind: ExprNot, Inner: &inner}
}

// Rep builds a bounded or unbounded repetition Expression. A nil max
// means unbounded.
func Rep(inner Expression, min int, max *int) Expression {
	return Expression{Kind: ExprRepeat, Inner: &inner, Min: min, Max: max}
}

// RefRule builds an Expression that refers to another rule by name.
func RefRule(name string) Expression {
	return Expression{Kind: ExprRuleRef, Name: name}
}

// Bound returns a pointer to n, for use as a Repeat Max.
func Bound(n int) *int {
	return &n
}

func (e Expression) String() string {
	switch e.Kind {
	case ExprSimple:
		return e.Atom.String()
	case ExprAnd:
		return "(" + joinExprs(e.Children, " ") + ")"
	case ExprOr:
		return "(" + joinExprs(e.Children, " / ") + ")"
	case ExprNot:
		return "!" + e.Inner.String()
	case ExprRepeat:
		switch {
		case e.Min == 0 && e.Max == nil:
			return e.Inner.String() + "*"
		case e.Min == 1 && e.Max == nil:
			return e.Inner.String() + "+"
		case e.Min == 0 && e.Max != nil && *e.Max == 1:
			return e.Inner.String() + "?"
		default:
			return fmt.Sprintf("%s{%d,%v}", e.Inner, e.Min, e.Max)
		}
	case ExprRuleRef:
		return e.Name
	default:
		return "<unknown expression>"
	}
}

func joinExprs(exprs []Expression, sep string) string {
	parts := make([]string, len(exprs))
	for i, ex := range exprs {
		parts[i] = ex.String()
	}
	return strings.Join(parts, sep)
}

// evalExpr is the expression evaluator entry point (spec.md §4.2): it
// dispatches on e's variant, threading Status through And, trying
// alternatives in order for Or, running a clone for Not, iterating
// greedily for Repeat, and resolving names against s.Rules for
// RuleRef. It returns the Status reached on success together with the
// AST nodes produced, or a structured Error on failure.
func evalExpr(s Status, e Expression) (Status, []*Node, *Error) {
	switch e.Kind {
	case ExprSimple:
		return evalSimple(s, e)
	case ExprAnd:
		return evalAnd(s, e)
	case ExprOr:
		return evalOr(s, e)
	case ExprNot:
		return evalNot(s, e)
	case ExprRepeat:
		return evalRepeat(s, e)
	case ExprRuleRef:
		return evalRuleRef(s, e.Name)
	default:
		return s, nil, newError(CompileError, s.Pos, "unknown expression kind")
	}
}

func evalSimple(s Status, e Expression) (Status, []*Node, *Error) {
	next, text, err := matchAtom(s, e.Atom)
	if err != nil {
		return s, nil, err
	}
	return next, []*Node{ValNode(text)}, nil
}

// evalAnd iterates children left to right, threading Status through.
// Any child failure aborts the whole sequence and propagates
// unchanged; there is no backtracking inside And.
func evalAnd(s Status, e Expression) (Status, []*Node, *Error) {
	cur := s
	var nodes []*Node
	for _, child := range e.Children {
		next, childNodes, err := evalExpr(cur, child)
		if err != nil {
			return s, nil, err
		}
		cur = next
		nodes = append(nodes, childNodes...)
	}
	return cur, nodes, nil
}

// evalOr tries children left to right and returns the first success.
// If every alternative fails, the merged "deepest failure" error is
// returned (see deepErr).
func evalOr(s Status, e Expression) (Status, []*Node, *Error) {
	var merged *Error
	for _, child := range e.Children {
		next, nodes, err := evalExpr(s, child)
		if err == nil {
			return next, nodes, nil
		}
		merged = deepErr(merged, err)
	}
	if merged == nil {
		merged = newError(CompileError, s.Pos, "Or has no alternatives")
	}
	return s, nil, merged
}

// evalNot runs the inner expression against a copy of s. If it
// succeeds, Not fails with NegationMatched; if it fails, Not succeeds
// without consuming anything.
func evalNot(s Status, e Expression) (Status, []*Node, *Error) {
	_, _, err := evalExpr(s, *e.Inner)
	if err == nil {
		return s, nil, newError(NegationMatched, s.Pos, "negated expression matched")
	}
	return s, nil, nil
}

// evalRepeat is the greedy, iterative loop described in spec.md §4.2.
// An iteration that succeeds without advancing the position is not
// counted; the loop stops there as if that iteration had failed, and
// success or failure is then decided from the iteration count already
// accumulated. This guards against an inner expression that can match
// the empty string looping forever.
func evalRepeat(s Status, e Expression) (Status, []*Node, *Error) {
	cur := s
	var nodes []*Node
	k := 0
	for e.Max == nil || k < *e.Max {
		if s.Config.MaxRepeat > 0 && k >= s.Config.MaxRepeat {
			return s, nil, newError(TooFewRepetitions, s.Pos,
				fmt.Sprintf("repeat exceeded the maximum of %d iterations", s.Config.MaxRepeat))
		}
		next, childNodes, err := evalExpr(cur, *e.Inner)
		if err != nil {
			break
		}
		if next.Pos.N == cur.Pos.N {
			break
		}
		cur = next
		nodes = append(nodes, childNodes...)
		k++
		if s.Config.Tracer != nil {
			s.Config.Tracer.Trace(trace.RepeatIteration, "", cur.Pos.N)
		}
	}
	if k < e.Min {
		return s, nil, newError(TooFewRepetitions, s.Pos,
			fmt.Sprintf("expected at least %d repetitions, got %d", e.Min, k))
	}
	return cur, nodes, nil
}

// evalRuleRef looks up name in s.Rules and evaluates the referenced
// Expression under the same Status. A successful return is wrapped
// into a Rule(name, children) AST node; a failing return has name
// pushed onto its cause chain.
func evalRuleRef(s Status, name string) (Status, []*Node, *Error) {
	if s.Config.MaxRuleDepth > 0 && s.depth >= s.Config.MaxRuleDepth {
		return s, nil, newError(RecursionLimit, s.Pos,
			fmt.Sprintf("rule %q exceeds the maximum nesting depth of %d", name, s.Config.MaxRuleDepth))
	}
	expr, ok := s.Rules.Get(name)
	if !ok {
		return s, nil, newError(MissingRule, s.Pos, fmt.Sprintf("rule %q is not defined", name))
	}
	if s.Config.Tracer != nil {
		s.Config.Tracer.Trace(trace.EnterRule, name, s.Pos.N)
	}
	inner := s
	inner.depth = s.depth + 1
	next, children, err := evalExpr(inner, expr)
	if s.Config.Tracer != nil {
		s.Config.Tracer.Trace(trace.ExitRule, name, next.Pos.N)
	}
	if err != nil {
		return s, nil, err.pushCause(name)
	}
	next.depth = s.depth
	return next, []*Node{RuleNode(name, children)}, nil
}

package dynpeg

import "fmt"

// compileGrammar walks a PEG AST produced by parsing a user's grammar
// text against bootstrapRules() (and already compacted and pruned of
// "_" nodes) and emits a user Rules set, per spec.md §4.8.
//
// Every "rule" node is compiled independently; a rule that fails to
// compile does not stop the walk — every failure is collected so a
// caller of RulesFromPeg learns about every broken rule in one pass
// (see SPEC_FULL.md, "Supplemented features").
func compileGrammar(root *Node) (*Rules, Errors) {
	grammar := firstChildNamed(root, "grammar")
	if grammar == nil {
		return nil, Errors{newError(CompileError, Position{}, "expected a \"grammar\" node under main")}
	}

	rules := NewRules()
	var errs Errors
	for _, ruleNode := range grammar.Children {
		if ruleNode.Kind != NodeRule || ruleNode.Name != "rule" {
			continue
		}
		name, expr, err := compileRuleDef(ruleNode)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		rules.Add(name, expr)
	}
	return rules, errs
}

func compileRuleDef(node *Node) (string, Expression, *Error) {
	symbolNode := firstChildNamed(node, "symbol")
	if symbolNode == nil {
		return "", Expression{}, newError(CompileError, Position{}, "rule is missing its name")
	}
	exprNode := firstChildNamed(node, "expr")
	if exprNode == nil {
		return "", Expression{}, newError(CompileError, Position{}, "rule is missing its body")
	}

	name := valText(symbolNode)
	expr, err := compileExpr(exprNode)
	if err != nil {
		return "", Expression{}, err.pushCause(name)
	}
	return name, expr, nil
}

// compileExpr compiles an "expr" node, which always passes straight
// through to its single "or" child.
func compileExpr(node *Node) (Expression, *Error) {
	return passthrough(node, compileOr)
}

// compileOr compiles an "or" node: or = and ( _ "/" _ or )*, which
// right-recursively nests, so a single child means "no alternation
// here" while two children mean "first alternative, then the rest of
// the alternatives nested under a further 'or' node".
func compileOr(node *Node) (Expression, *Error) {
	kids := childrenNamed(node, "and", "or")
	switch len(kids) {
	case 1:
		return compileAnd(kids[0])
	case 2:
		first, err := compileAnd(kids[0])
		if err != nil {
			return Expression{}, err
		}
		rest, err := compileOr(kids[1])
		if err != nil {
			return Expression{}, err
		}
		if rest.Kind == ExprOr {
			return AltOr(append([]Expression{first}, rest.Children...)...), nil
		}
		return AltOr(first, rest), nil
	default:
		return Expression{}, newError(CompileError, Position{}, fmt.Sprintf("or node has %d children, expected 1 or 2", len(kids)))
	}
}

// compileAnd compiles an "and" node, which is shaped like "or" but
// nests rep_or_neg/and instead of and/or. Unlike "or" (which separates
// its alternatives with the prunable "_" rule), "and" separates its
// elements with "_1" — a rule of its own that is deliberately not in
// the prune set, since it also guarantees the mandatory whitespace
// spec.md §4.7 requires between sequence elements. That leaves a
// stray Rule("_1", ...) sibling in the compacted+pruned tree, so
// compileAnd must filter children by name instead of assuming exactly
// 1 or 2 Rule-kind children.
func compileAnd(node *Node) (Expression, *Error) {
	kids := childrenNamed(node, "rep_or_neg", "and")
	switch len(kids) {
	case 1:
		return compileRepOrNeg(kids[0])
	case 2:
		first, err := compileRepOrNeg(kids[0])
		if err != nil {
			return Expression{}, err
		}
		rest, err := compileAnd(kids[1])
		if err != nil {
			return Expression{}, err
		}
		if rest.Kind == ExprAnd {
			return SeqAnd(append([]Expression{first}, rest.Children...)...), nil
		}
		return SeqAnd(first, rest), nil
	default:
		return Expression{}, newError(CompileError, Position{}, fmt.Sprintf("and node has %d children, expected 1 or 2", len(kids)))
	}
}

// compileRepOrNeg compiles a "rep_or_neg" node:
//
//	rep_or_neg = atom_or_par ("*"/"+"/"?")?  |  "!" atom_or_par
func compileRepOrNeg(node *Node) (Expression, *Error) {
	children := node.Children
	if len(children) == 0 {
		return Expression{}, newError(CompileError, Position{}, "rep_or_neg node has no children")
	}

	if children[0].Kind == NodeVal && children[0].Text == "!" {
		if len(children) < 2 {
			return Expression{}, newError(CompileError, Position{}, "negation is missing its operand")
		}
		inner, err := compileAtomOrPar(children[1])
		if err != nil {
			return Expression{}, err
		}
		return Negate(inner), nil
	}

	inner, err := compileAtomOrPar(children[0])
	if err != nil {
		return Expression{}, err
	}
	if len(children) == 1 {
		return inner, nil
	}

	suffix := children[1].Text
	switch suffix {
	case "*":
		return Rep(inner, 0, nil), nil
	case "+":
		return Rep(inner, 1, nil), nil
	case "?":
		return Rep(inner, 0, Bound(1)), nil
	default:
		return Expression{}, newError(CompileError, Position{}, fmt.Sprintf("unknown repetition suffix %q", suffix))
	}
}

// compileAtomOrPar compiles an "atom_or_par" node: atom_or_par = atom |
// parenth. It always carries exactly one child, named either "atom" or
// "parenth".
func compileAtomOrPar(node *Node) (Expression, *Error) {
	child := firstRuleChild(node)
	if child == nil {
		return Expression{}, newError(CompileError, Position{}, "atom_or_par node has no rule child")
	}
	switch child.Name {
	case "atom":
		return compileAtomNode(child)
	case "parenth":
		return compileParenth(child)
	default:
		return Expression{}, newError(CompileError, Position{}, fmt.Sprintf("unexpected atom_or_par child %q", child.Name))
	}
}

func compileParenth(node *Node) (Expression, *Error) {
	exprNode := firstChildNamed(node, "expr")
	if exprNode == nil {
		return Expression{}, newError(CompileError, Position{}, "parenthesized expression is empty")
	}
	return compileExpr(exprNode)
}

// compileAtomNode compiles an "atom" node: atom = literal | match | dot
// | symbol. It always carries exactly one child naming the kind.
func compileAtomNode(node *Node) (Expression, *Error) {
	child := firstRuleChild(node)
	if child == nil {
		return Expression{}, newError(CompileError, Position{}, "atom node has no rule child")
	}
	switch child.Name {
	case "literal":
		return compileLiteral(child)
	case "match":
		return compileMatch(child)
	case "dot":
		return Simple(AnyChar()), nil
	case "symbol":
		return RefRule(valText(child)), nil
	default:
		return Expression{}, newError(CompileError, Position{}, fmt.Sprintf("unregistered atom type %q", child.Name))
	}
}

// compileLiteral compiles a "literal" node: the surrounding quote
// marks are their own (unpruned) rule nodes, so they are skipped by
// valText's rule-skipping; the remaining concatenated text still has
// its backslash escapes raw and is unescaped here.
func compileLiteral(node *Node) (Expression, *Error) {
	raw := valText(node)
	unescaped, err := unescapeLiteral(raw)
	if err != nil {
		return Expression{}, newError(CompileError, Position{}, err.Error())
	}
	return Simple(Lit(unescaped)), nil
}

func unescapeLiteral(raw string) (string, error) {
	runes := []rune(raw)
	out := make([]rune, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		if runes[i] != '\\' {
			out = append(out, runes[i])
			continue
		}
		if i+1 >= len(runes) {
			return "", fmt.Errorf("dangling escape at end of literal %q", raw)
		}
		i++
		switch runes[i] {
		case '"':
			out = append(out, '"')
		case '\\':
			out = append(out, '\\')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		default:
			out = append(out, runes[i])
		}
	}
	return string(out), nil
}

// compileMatch compiles a "match" node into a Class atom, collecting
// mchars' individual runes and mbetween's (lo, sep, hi) ranges.
func compileMatch(node *Node) (Expression, *Error) {
	var chars []rune
	var ranges []CharRange
	for _, child := range node.Children {
		if child.Kind != NodeRule {
			continue
		}
		switch child.Name {
		case "mchars":
			chars = append(chars, []rune(valText(child))...)
		case "mbetween":
			text := []rune(valText(child))
			if len(text) != 3 {
				return Expression{}, newError(CompileError, Position{}, fmt.Sprintf("malformed character range %q", string(text)))
			}
			ranges = append(ranges, CharRange{Lo: text[0], Hi: text[2]})
		}
	}
	return Simple(Class(chars, ranges)), nil
}

// passthrough compiles a single-child wrapper node by delegating to
// compile on its one child, failing loudly if the shape is wrong.
func passthrough(node *Node, compile func(*Node) (Expression, *Error)) (Expression, *Error) {
	kids := ruleChildren(node)
	if len(kids) != 1 {
		return Expression{}, newError(CompileError, Position{}, fmt.Sprintf("%s node must have exactly one child, got %d", node.Name, len(kids)))
	}
	return compile(kids[0])
}

// ruleChildren returns node's direct Rule-kind children, in order,
// ignoring any stray Val punctuation.
func ruleChildren(node *Node) []*Node {
	var out []*Node
	for _, c := range node.Children {
		if c.Kind == NodeRule {
			out = append(out, c)
		}
	}
	return out
}

// childrenNamed returns node's direct Rule-kind children whose Name is
// one of names, in order, ignoring everything else (stray Val
// punctuation, or — as with "and"'s "_1" separator rule — a Rule
// child that is not itself part of the production being compiled).
func childrenNamed(node *Node, names ...string) []*Node {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []*Node
	for _, c := range node.Children {
		if c.Kind == NodeRule && want[c.Name] {
			out = append(out, c)
		}
	}
	return out
}

// firstRuleChild returns the first Rule-kind child of node.
func firstRuleChild(node *Node) *Node {
	for _, c := range node.Children {
		if c.Kind == NodeRule {
			return c
		}
	}
	return nil
}

// firstChildNamed returns the first direct Rule-kind child of node
// whose Name equals name.
func firstChildNamed(node *Node, name string) *Node {
	for _, c := range node.Children {
		if c.Kind == NodeRule && c.Name == name {
			return c
		}
	}
	return nil
}

// valText concatenates the Text of every direct Val-kind child of
// node, skipping Rule-kind children (used to read back quote marks,
// punctuation, and identifier text hoisted/compacted by the AST
// builder).
func valText(node *Node) string {
	var out []byte
	for _, c := range node.Children {
		if c.Kind == NodeVal {
			out = append(out, c.Text...)
		}
	}
	return string(out)
}

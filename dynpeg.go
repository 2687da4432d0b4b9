package dynpeg

// Parse evaluates rules' "main" rule against text and returns the
// resulting AST, compacted (adjacent Val siblings merged) but not
// pruned — callers that want named wrapper rules removed call
// Prune themselves. A failure anywhere surfaces as the deepest
// Error reached, per spec.md §4.2/§4.9.
//
// Under the default Config, trailing input after a successful match
// of "main" is not an error; pass WithStrictEOF(true) to require a
// full match, mirroring the teacher's IsFullMatched (hucsmn-peg's
// peg.go).
func Parse(text string, rules *Rules, opts ...Option) (*Node, *Error) {
	cfg := buildConfig(opts...)
	node, final, err := parseRaw(text, rules, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.StrictEOF && !final.eof() {
		return nil, newError(TrailingInput, final.Pos, "input was not fully consumed")
	}
	return node.Compact(), nil
}

// parseRaw runs the "main" rule without compacting or pruning,
// returning the Status reached on success alongside the raw AST —
// used directly by RulesFromPeg, which needs to apply its own
// compact-then-prune sequence before compiling.
func parseRaw(text string, rules *Rules, cfg Config) (*Node, Status, *Error) {
	start := newStatus(text, rules, cfg)
	final, nodes, err := evalRuleRef(start, MainRule)
	if err != nil {
		return nil, start, err
	}
	if len(nodes) != 1 {
		return nil, start, newError(CompileError, start.Pos, "main did not produce a single root node")
	}
	return nodes[0], final, nil
}

// RulesFromPeg compiles PEG grammar source into a Rules set: it parses
// pegText against bootstrapRules(), compacts and prunes the "_"
// whitespace rule out of the resulting AST, and walks what remains
// with the AST→Rules compiler (compiler.go). Every rule that fails to
// compile is collected rather than aborting the walk, so a caller
// sees every such rule in one pass (see SPEC_FULL.md, "Supplemented
// features"). Grammar text that the bootstrap rules do not accept
// yields a single parse Error, and no rule is compiled.
func RulesFromPeg(pegText string, opts ...Option) (*Rules, Errors) {
	cfg := buildConfig(opts...)
	raw, _, err := parseRaw(pegText, bootstrapRules(), cfg)
	if err != nil {
		return nil, Errors{err}
	}
	ast := raw.Compact().Prune("_")
	return compileGrammar(ast)
}

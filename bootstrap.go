package dynpeg

// quoteRuleName is the rule that matches a single '"', named `_"` in
// spec.md §4.7. It has its own rule (rather than being inlined) purely
// because the grammar-of-grammars names it that way.
const quoteRuleName = `_"`

// bootstrapRules builds the fixed, hand-written rule set describing
// the surface syntax of PEG grammars (spec.md §4.7). It is used by
// RulesFromPeg to parse a user's grammar text into an AST, which the
// compiler (compiler.go) then walks to emit a user Rules set.
//
// This grammar is reproduced exactly; in particular the
// `!(symbol _ "=")` lookahead inside "and" is load-bearing: without
// it, the repetition inside "and" would swallow the next rule's
// "name =" prefix as if it were a continuation of the current rule's
// body.
func bootstrapRules() *Rules {
	letters := []CharRange{{'a', 'z'}, {'A', 'Z'}, {'0', '9'}}

	return NewRules().
		Add(MainRule, RefRule("grammar")).
		Add("grammar", Rep(RefRule("rule"), 1, nil)).
		Add("rule", SeqAnd(
			RefRule("_"), RefRule("symbol"),
			RefRule("_"), Simple(Lit("=")),
			RefRule("_"), RefRule("expr"),
			RefRule("_eol"), RefRule("_"),
		)).
		Add("expr", RefRule("or")).
		Add("or", SeqAnd(
			RefRule("and"),
			Rep(SeqAnd(RefRule("_"), Simple(Lit("/")), RefRule("_"), RefRule("or")), 0, nil),
		)).
		Add("and", SeqAnd(
			RefRule("rep_or_neg"),
			Rep(SeqAnd(
				RefRule("_1"), RefRule("_"),
				Negate(SeqAnd(RefRule("symbol"), RefRule("_"), Simple(Lit("=")))),
				RefRule("and"),
			), 0, nil),
		)).
		Add("rep_or_neg", AltOr(
			SeqAnd(
				RefRule("atom_or_par"),
				Rep(AltOr(Simple(Lit("*")), Simple(Lit("+")), Simple(Lit("?"))), 0, Bound(1)),
			),
			SeqAnd(Simple(Lit("!")), RefRule("atom_or_par")),
		)).
		Add("atom_or_par", AltOr(RefRule("atom"), RefRule("parenth"))).
		Add("parenth", SeqAnd(
			Simple(Lit("(")), RefRule("_"), RefRule("expr"), RefRule("_"), Simple(Lit(")")),
		)).
		Add("atom", AltOr(RefRule("literal"), RefRule("match"), RefRule("dot"), RefRule("symbol"))).
		Add("literal", SeqAnd(
			RefRule(quoteRuleName),
			Rep(AltOr(
				SeqAnd(Simple(Lit(`\`)), Simple(AnyChar())),
				SeqAnd(Negate(RefRule(quoteRuleName)), Simple(AnyChar())),
			), 0, nil),
			RefRule(quoteRuleName),
		)).
		Add(quoteRuleName, Simple(Lit(`"`))).
		Add("match", SeqAnd(
			Simple(Lit("[")),
			AltOr(
				SeqAnd(RefRule("mchars"), Rep(RefRule("mbetween"), 0, nil)),
				Rep(RefRule("mbetween"), 1, nil),
			),
			Simple(Lit("]")),
		)).
		Add("mchars", Rep(SeqAnd(
			Negate(Simple(Lit("]"))),
			Negate(SeqAnd(Simple(AnyChar()), Simple(Lit("-")))),
			Simple(AnyChar()),
		), 1, nil)).
		Add("mbetween", SeqAnd(Simple(AnyChar()), Simple(Lit("-")), Simple(AnyChar()))).
		Add("dot", Simple(Lit("."))).
		Add("symbol", SeqAnd(
			Simple(Class([]rune{'_', '\''}, letters)),
			Rep(Simple(Class([]rune{'_', '\'', '"'}, letters)), 0, nil),
		)).
		Add("_", Rep(AltOr(Simple(Lit(" ")), RefRule("eol")), 0, nil)).
		Add("_eol", SeqAnd(Rep(Simple(Lit(" ")), 0, nil), RefRule("eol"))).
		Add("_1", AltOr(Simple(Lit(" ")), RefRule("eol"))).
		Add("eol", AltOr(Simple(Lit("\r\n")), Simple(Lit("\n")), Simple(Lit("\r"))))
}

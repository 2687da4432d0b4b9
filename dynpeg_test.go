package dynpeg

import (
	"sync"
	"testing"
)

func TestParseCompactsButDoesNotPrune(t *testing.T) {
	rules := NewRules().
		Add(MainRule, RefRule("greeting")).
		Add("greeting", SeqAnd(Simple(Lit("hi")), Simple(Lit(" ")), Simple(Lit("there"))))

	ast, err := Parse("hi there", rules)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ast.Name != MainRule {
		t.Fatalf("expected root named %q, got %q", MainRule, ast.Name)
	}
	if len(ast.Children) != 1 || ast.Children[0].Name != "greeting" {
		t.Fatalf("Parse must not prune named rule wrappers, got %+v", ast.Children)
	}
	if len(ast.Children[0].Children) != 1 || ast.Children[0].Children[0].Text != "hi there" {
		t.Errorf("expected the 3 literal Vals to have compacted into one, got %+v", ast.Children[0].Children)
	}
}

func TestParseNonStrictIgnoresTrailingInput(t *testing.T) {
	rules := NewRules().Add(MainRule, Simple(Lit("a")))

	if _, err := Parse("a-trailing-junk", rules); err != nil {
		t.Errorf("non-strict Parse should ignore trailing input, got error: %v", err)
	}
}

func TestParseStrictEOFRejectsTrailingInput(t *testing.T) {
	rules := NewRules().Add(MainRule, Simple(Lit("a")))

	_, err := Parse("a-trailing-junk", rules, WithStrictEOF(true))
	if err == nil {
		t.Fatalf("expected an error under WithStrictEOF(true)")
	}
	if err.Code != TrailingInput {
		t.Errorf("err.Code = %v, want TrailingInput", err.Code)
	}
}

func TestParseConcurrentUseOfOneRulesValue(t *testing.T) {
	rules, errs := RulesFromPeg("main = [0-9]+\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected compile errors: %v", errs)
	}

	var wg sync.WaitGroup
	errCh := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := Parse("12345", rules, WithStrictEOF(true)); err != nil {
				errCh <- err
			}
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Errorf("concurrent Parse against a shared Rules value failed: %v", err)
	}
}

func TestParseErrorReportsDeepestFailurePosition(t *testing.T) {
	rules, errs := RulesFromPeg("main = \"abcdef\" / \"abcXYZ\"\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected compile errors: %v", errs)
	}

	_, err := Parse("abcDEF", rules)
	if err == nil {
		t.Fatalf("expected an error")
	}
	// Both alternatives consume "abc" before disagreeing with the
	// input at the same offset; Or must report that shared deepest
	// position (3), not swallow it by always keeping the last-tried
	// alternative's error.
	if err.Pos.N != 3 {
		t.Errorf("err.Pos.N = %d, want 3 (the deepest failure reached)", err.Pos.N)
	}
}

func TestRulesFromPegThenParseRoundTrip(t *testing.T) {
	rules, errs := RulesFromPeg(
		"main = greeting \" \" name\n" +
			"greeting = \"hello\" / \"hi\"\n" +
			"name = [a-zA-Z]+\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected compile errors: %v", errs)
	}

	ast, err := Parse("hello world", rules, WithStrictEOF(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ast.Name != MainRule {
		t.Errorf("expected root named %q, got %q", MainRule, ast.Name)
	}
}

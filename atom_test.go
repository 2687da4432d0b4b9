package dynpeg

import "testing"

func TestMatchLiteral(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		lit     string
		wantOK  bool
		wantLen int
	}{
		{"exact match", "hello world", "hello", true, 5},
		{"mismatch", "goodbye", "hello", false, 0},
		{"too short", "he", "hello", false, 0},
		{"empty literal always matches", "anything", "", true, 0},
		{"multibyte", "héllo", "héllo", true, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStatus(tt.text, nil, DefaultConfig())
			next, matched, err := matchAtom(s, Lit(tt.lit))
			if tt.wantOK {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if matched != tt.lit {
					t.Errorf("matched = %q, want %q", matched, tt.lit)
				}
				if next.Pos.N != tt.wantLen {
					t.Errorf("next.Pos.N = %d, want %d", next.Pos.N, tt.wantLen)
				}
			} else if err == nil {
				t.Errorf("expected an error, got none")
			}
		})
	}
}

func TestMatchDot(t *testing.T) {
	s := newStatus("x", nil, DefaultConfig())
	next, matched, err := matchAtom(s, AnyChar())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matched != "x" || next.Pos.N != 1 {
		t.Errorf("matched = %q, next.Pos.N = %d", matched, next.Pos.N)
	}

	empty := newStatus("", nil, DefaultConfig())
	if _, _, err := matchAtom(empty, AnyChar()); err == nil {
		t.Errorf("expected UnexpectedEOF, got no error")
	} else if err.Code != UnexpectedEOF {
		t.Errorf("err.Code = %v, want UnexpectedEOF", err.Code)
	}
}

func TestMatchClass(t *testing.T) {
	digits := Class(nil, []CharRange{{'0', '9'}})

	s := newStatus("5x", nil, DefaultConfig())
	next, matched, err := matchAtom(s, digits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matched != "5" || next.Pos.N != 1 {
		t.Errorf("matched = %q, next.Pos.N = %d", matched, next.Pos.N)
	}

	s2 := newStatus("x", nil, DefaultConfig())
	if _, _, err := matchAtom(s2, digits); err == nil {
		t.Errorf("expected ClassMismatch for 'x', got none")
	}

	explicit := Class([]rune{'_'}, nil)
	s3 := newStatus("_", nil, DefaultConfig())
	if _, _, err := matchAtom(s3, explicit); err != nil {
		t.Errorf("expected '_' to match explicit char set, got error: %v", err)
	}
}

func TestAtomNeverAdvancesOnFailure(t *testing.T) {
	s := newStatus("abc", nil, DefaultConfig())
	next, _, err := matchAtom(s, Lit("xyz"))
	if err == nil {
		t.Fatalf("expected an error")
	}
	if next.Pos != s.Pos {
		t.Errorf("a failed atom match must not change Pos: got %+v, want %+v", next.Pos, s.Pos)
	}
}

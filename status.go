package dynpeg

// Status is the cursor threaded through parsing: the input text, the
// active Rules set, and the current Position. Status values are
// immutable; every successful sub-parse returns a new Status rather
// than mutating the one it was given.
//
// The input is kept as a slice of runes rather than a string so that
// Position.N (a scalar-character offset, per spec) indexes directly
// into it without repeated UTF-8 decoding.
type Status struct {
	Text   []rune
	Rules  *Rules
	Pos    Position
	Config Config
	depth  int
}

func newStatus(text string, rules *Rules, cfg Config) Status {
	return Status{Text: []rune(text), Rules: rules, Pos: Position{}, Config: cfg}
}

// remaining returns the unconsumed suffix of the input.
func (s Status) remaining() []rune {
	return s.Text[s.Pos.N:]
}

// eof reports whether the cursor sits at the end of the input.
func (s Status) eof() bool {
	return s.Pos.N >= len(s.Text)
}

// advance returns the Status reached after consuming k runes starting
// at the current position.
func (s Status) advance(k int) Status {
	consumed := s.Text[s.Pos.N : s.Pos.N+k]
	s.Pos = s.Pos.advance(string(consumed))
	return s
}

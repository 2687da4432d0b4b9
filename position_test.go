package dynpeg

import "testing"

func TestPositionAdvance(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Position
	}{
		{"empty", "", Position{N: 0, Row: 0, Col: 0}},
		{"ascii", "abc", Position{N: 3, Row: 0, Col: 3}},
		{"single newline", "\n", Position{N: 1, Row: 1, Col: 0}},
		{"line then partial", "ab\ncd", Position{N: 5, Row: 1, Col: 2}},
		{"multibyte", "héllo", Position{N: 5, Row: 0, Col: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Position{}.advance(tt.text)
			if got != tt.want {
				t.Errorf("advance(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestPositionLess(t *testing.T) {
	a := Position{N: 1}
	b := Position{N: 2}
	if !a.Less(b) {
		t.Errorf("expected %+v < %+v", a, b)
	}
	if b.Less(a) {
		t.Errorf("expected %+v not < %+v", b, a)
	}
	if a.Less(a) {
		t.Errorf("expected %+v not < itself", a)
	}
}

func TestPositionString(t *testing.T) {
	got := Position{N: 4, Row: 1, Col: 2}.String()
	want := "2:3(@4)"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

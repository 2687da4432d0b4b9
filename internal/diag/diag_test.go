package diag

import (
	"bytes"
	"testing"
)

func TestLoggerSetOutputAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)
	if err := l.SetLevel("debug"); err != nil {
		t.Fatalf("SetLevel failed: %v", err)
	}

	l.Debug("hello")
	if buf.Len() == 0 {
		t.Errorf("expected a debug line to be written at debug level")
	}
}

func TestLoggerSetLevelRejectsUnknown(t *testing.T) {
	l := New()
	if err := l.SetLevel("not-a-level"); err == nil {
		t.Errorf("expected an error for an unknown log level")
	}
}

func TestWithFieldReturnsIndependentLogger(t *testing.T) {
	var buf bytes.Buffer
	base := New()
	base.SetOutput(&buf)
	_ = base.SetLevel("info")

	withRule := base.WithField("rule", "expr")
	withRule.Info("entered")

	if !bytes.Contains(buf.Bytes(), []byte("rule=expr")) {
		t.Errorf("output = %q, expected it to contain the attached field", buf.String())
	}
}

type stringer string

func (s stringer) String() string { return string(s) }

func TestWithPosition(t *testing.T) {
	var buf bytes.Buffer
	base := New()
	base.SetOutput(&buf)
	_ = base.SetLevel("info")

	WithPosition(base, stringer("1:1(@0)")).Info("failed here")

	if !bytes.Contains(buf.Bytes(), []byte("pos=")) {
		t.Errorf("output = %q, expected a pos field", buf.String())
	}
}

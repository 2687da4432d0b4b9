package trace

import "testing"

func TestCountingTracerTallies(t *testing.T) {
	tr := NewCountingTracer()

	tr.Trace(EnterRule, "expr", 0)
	tr.Trace(EnterRule, "expr", 1)
	tr.Trace(ExitRule, "expr", 5)
	tr.Trace(EnterRule, "atom", 0)

	if got := tr.Counts[EnterRule]["expr"]; got != 2 {
		t.Errorf("EnterRule[expr] = %d, want 2", got)
	}
	if got := tr.Counts[ExitRule]["expr"]; got != 1 {
		t.Errorf("ExitRule[expr] = %d, want 1", got)
	}
	if got := tr.Counts[EnterRule]["atom"]; got != 1 {
		t.Errorf("EnterRule[atom] = %d, want 1", got)
	}
}

func TestEventString(t *testing.T) {
	tests := map[Event]string{
		EnterRule:       "enter_rule",
		ExitRule:        "exit_rule",
		RepeatIteration: "repeat_iteration",
		Event(99):       "unknown_event",
	}
	for event, want := range tests {
		if got := event.String(); got != want {
			t.Errorf("Event(%d).String() = %q, want %q", event, got, want)
		}
	}
}

func TestLogTracerDoesNotPanic(t *testing.T) {
	tracer := NewLogTracer(nil)
	tracer.Trace(EnterRule, "main", 0)
	tracer.Trace(RepeatIteration, "", 3)
}

// Package trace provides optional structured tracing of the dynpeg
// evaluator, reusing internal/diag's logrus-backed logger the way
// OPA layers tracing on top of its own logger
// (_examples/open-policy-agent-opa/log/log.go).
package trace

import "github.com/dynpeg/dynpeg/internal/diag"

// Event names a point in the evaluator's execution that a Tracer can
// observe.
type Event int

const (
	// EnterRule fires before a named rule's Expression is evaluated.
	EnterRule Event = iota
	// ExitRule fires after a named rule's Expression returns, success
	// or failure.
	ExitRule
	// RepeatIteration fires once per accepted Repeat iteration.
	RepeatIteration
)

func (e Event) String() string {
	switch e {
	case EnterRule:
		return "enter_rule"
	case ExitRule:
		return "exit_rule"
	case RepeatIteration:
		return "repeat_iteration"
	default:
		return "unknown_event"
	}
}

// Tracer observes evaluator events. Implementations must be safe to
// call from a single goroutine at a time; dynpeg never calls a Tracer
// concurrently for the same Parse.
type Tracer interface {
	Trace(event Event, ruleName string, offset int)
}

// LogTracer reports every event as a structured log line via a
// diag.Logger, at Debug level.
type LogTracer struct {
	logger diag.Logger
}

// NewLogTracer builds a LogTracer over logger. A nil logger builds a
// fresh default one.
func NewLogTracer(logger diag.Logger) *LogTracer {
	if logger == nil {
		logger = diag.New()
	}
	return &LogTracer{logger: logger}
}

func (t *LogTracer) Trace(event Event, ruleName string, offset int) {
	t.logger.
		WithField("event", event.String()).
		WithField("rule", ruleName).
		WithField("offset", offset).
		Debugf("%s %s@%d", event, ruleName, offset)
}

// CountingTracer tallies how many times each Event fired per rule
// name, useful in tests that want to assert a grammar took the
// expected path without parsing log output.
type CountingTracer struct {
	Counts map[Event]map[string]int
}

// NewCountingTracer returns a ready-to-use CountingTracer.
func NewCountingTracer() *CountingTracer {
	return &CountingTracer{Counts: make(map[Event]map[string]int)}
}

func (t *CountingTracer) Trace(event Event, ruleName string, _ int) {
	byRule, ok := t.Counts[event]
	if !ok {
		byRule = make(map[string]int)
		t.Counts[event] = byRule
	}
	byRule[ruleName]++
}

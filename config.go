package dynpeg

import "github.com/dynpeg/dynpeg/trace"

// Config tunes the resource limits enforced while evaluating an
// Expression, in the spirit of the teacher's Config/ConfiguredMatch
// pairing (hucsmn-peg's peg.go CallstackLimit/LoopLimit), with limits
// that match this engine's own recursion/repetition axes instead of
// its trampoline callstack.
type Config struct {
	// MaxRuleDepth bounds how many RuleRef calls may be nested inside
	// one another before evaluation aborts with a RecursionLimit
	// error. Zero means unbounded.
	MaxRuleDepth int

	// MaxRepeat bounds how many iterations a single Repeat may run,
	// independent of the grammar's own Max, as a guard against a
	// pathological grammar. Zero means unbounded.
	MaxRepeat int

	// StrictEOF requires Parse to consume the entire input; when
	// false, trailing unconsumed text after a successful "main" match
	// is ignored.
	StrictEOF bool

	// Tracer, when non-nil, is notified of rule entry/exit and
	// accepted Repeat iterations as evaluation proceeds (see the
	// trace package).
	Tracer trace.Tracer
}

// DefaultConfig returns unbounded recursion and repetition and a
// non-strict EOF, the semantics every law and scenario in spec.md §8
// assumes.
func DefaultConfig() Config {
	return Config{MaxRuleDepth: 0, MaxRepeat: 0, StrictEOF: false}
}

// Option mutates a Config being built by buildConfig.
type Option func(*Config)

// WithMaxRuleDepth caps nested RuleRef recursion.
func WithMaxRuleDepth(n int) Option {
	return func(c *Config) { c.MaxRuleDepth = n }
}

// WithMaxRepeat caps the iteration count of any single Repeat.
func WithMaxRepeat(n int) Option {
	return func(c *Config) { c.MaxRepeat = n }
}

// WithStrictEOF requires a Parse to consume the whole input.
func WithStrictEOF(strict bool) Option {
	return func(c *Config) { c.StrictEOF = strict }
}

// WithTracer attaches a trace.Tracer that observes rule entry/exit and
// accepted Repeat iterations.
func WithTracer(t trace.Tracer) Option {
	return func(c *Config) { c.Tracer = t }
}

func buildConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

package kinvalidator

import "runtime"

// Option configures the Validator.
type Option func(*Options)

// Options holds all configuration for the Validator.
type Options struct {
	// MaxErrors stops validation after this many errors (0 = unlimited).
	// The default is unlimited: a user fixing a hand-edited export file
	// needs the full defect list in one pass.
	MaxErrors int

	// WorkerCount is the number of workers for batch validation.
	WorkerCount int

	// CollectMetrics enables performance metric collection.
	CollectMetrics bool

	// EnablePooling enables object pooling for results and contexts.
	// Pooling reduces GC pressure but requires calling Release() on results.
	EnablePooling bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{
		MaxErrors:      0, // unlimited
		WorkerCount:    runtime.NumCPU(),
		CollectMetrics: true,
		EnablePooling:  true,
	}
}

// WithMaxErrors sets the maximum number of errors before stopping validation.
// Use 0 for unlimited.
func WithMaxErrors(max int) Option {
	return func(o *Options) {
		o.MaxErrors = max
	}
}

// WithWorkerCount sets the number of workers for batch validation.
// Defaults to runtime.NumCPU().
func WithWorkerCount(count int) Option {
	return func(o *Options) {
		if count > 0 {
			o.WorkerCount = count
		}
	}
}

// WithMetrics enables or disables metric collection.
func WithMetrics(enable bool) Option {
	return func(o *Options) {
		o.CollectMetrics = enable
	}
}

// WithPooling enables or disables object pooling.
func WithPooling(enable bool) Option {
	return func(o *Options) {
		o.EnablePooling = enable
	}
}

// FastOptions returns options optimized for screening large batches:
// stop at the first error and skip metric collection.
func FastOptions() []Option {
	return []Option{
		WithMaxErrors(1),
		WithMetrics(false),
		WithPooling(true),
	}
}

// DebugOptions returns options useful for debugging.
// Disables pooling so results are never reused under the debugger.
func DebugOptions() []Option {
	return []Option{
		WithPooling(false),
		WithMetrics(true),
	}
}

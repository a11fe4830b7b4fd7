package prime

import (
	"github.com/kbukum/primekit/logger"
	"github.com/kbukum/primekit/observability"
)

// Logger names resolved through logger.Get when WithLogger is not given.
const (
	LoggerNaive       = "prime.naive"
	LoggerIncremental = "prime.incremental"
	LoggerSegmented   = "prime.segmented"
	LoggerIterator    = "prime.iterator"
)

// LoggerNames lists every component logger the package looks up, for
// logger.RegisterDefaults.
var LoggerNames = []string{LoggerNaive, LoggerIncremental, LoggerSegmented, LoggerIterator}

// Option configures a generator or iterator.
type Option func(*options)

type options struct {
	log     *logger.Logger
	metrics *observability.PrimeMetrics
	window  *WindowConfig
	start   uint64
}

func resolveOptions(component string, opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Get(component)
	}
	return o
}

// WithLogger sets the logger used for debug output.
// If not set, the registered logger for the component is used.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics records candidate, discovery and refill counts on m.
func WithMetrics(m *observability.PrimeMetrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithWindow overrides the iterator window growth policy.
// It has no effect on generators.
func WithWindow(w WindowConfig) Option {
	return func(o *options) { o.window = &w }
}

// WithStart makes an iterator begin at the first prime ≥ n instead of at 2.
// It has no effect on generators.
func WithStart(n uint64) Option {
	return func(o *options) { o.start = n }
}

// logOrNop returns l, or a discarding logger for zero-value generators.
func logOrNop(l *logger.Logger) *logger.Logger {
	if l == nil {
		return logger.NewNop()
	}
	return l
}

package difflint

import "github.com/endlessm/difflint/internal/terse"

// options holds the resolved configuration for an operation.
type options struct {
	policy    *MultiFilePolicy
	collation *Collation
	filename  string
	workers   int
	cachePath string
}

// Option configures a formatting or check operation.
type Option func(*options)

// WithMultiFilePolicy sets how reports covering several files are handled
// (default: PolicyReject).
func WithMultiFilePolicy(p MultiFilePolicy) Option {
	return func(o *options) {
		o.policy = &p
	}
}

// WithCollation sets how lines are ordered (default: CollationLocale).
func WithCollation(c Collation) Option {
	return func(o *options) {
		o.collation = &c
	}
}

// WithFilename attributes every issue to filename, replacing whatever name
// the tool reported. Only applies to Lines, Format and Write.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// WithWorkers sets the number of files linted concurrently by Check
// (default: NumCPU).
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithCache makes Check reuse lint results stored in the cache file at path.
func WithCache(path string) Option {
	return func(o *options) {
		o.cachePath = path
	}
}

func applyOpts(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) formatter() terse.Formatter {
	f := terse.Formatter{}
	if o.policy != nil {
		f.Policy = *o.policy
	}
	if o.collation != nil {
		f.Collation = *o.collation
	}
	return f
}

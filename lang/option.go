package lang

import "github.com/ardnew/bempline/log"

// DefaultMaxIncludeDepth bounds how deeply includes may nest. Cycle
// detection catches self-reference; the depth limit catches include chains
// that are merely unreasonable.
const DefaultMaxIncludeDepth = 16

// settings holds parse-time configuration assembled from functional options.
type settings struct {
	source    Source
	logger    log.Logger
	maxDepth  int
	keepUnset bool
}

// Option configures parsing and the resulting [Document].
type Option func(*settings)

func makeSettings(opts ...Option) settings {
	s := settings{maxDepth: DefaultMaxIncludeDepth}

	for _, opt := range opts {
		opt(&s)
	}

	return s
}

// WithSource sets the capability used to read included templates.
// Without a source, required includes fail with [ErrMissingInclude] and
// optional includes resolve empty.
func WithSource(src Source) Option {
	return func(s *settings) { s.source = src }
}

// WithLogger sets the structured logger used for engine tracing.
func WithLogger(l log.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithMaxIncludeDepth overrides [DefaultMaxIncludeDepth].
// Values less than 1 are ignored.
func WithMaxIncludeDepth(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxDepth = n
		}
	}
}

// WithKeepUnset controls how an unset optional variable renders: the
// default emits nothing, while keep re-emits the variable's directive text
// so a later pass can fill it. Unset required variables fail either way.
func WithKeepUnset(keep bool) Option {
	return func(s *settings) { s.keepUnset = keep }
}

package log

import "io"

// Option is a functional option that modifies a logger configuration.
type Option func(*config)

// WithOutput sets the output writer for log messages.
// A nil writer discards all output.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w == nil {
			w = io.Discard
		}

		c.output = w
	}
}

// WithLevel sets the minimum severity of emitted messages.
func WithLevel(l Level) Option {
	return func(c *config) { c.level = l }
}

// WithFormat sets the output format for log messages.
func WithFormat(f Format) Option {
	return func(c *config) { c.format = f }
}

// WithTimeLayout sets the timestamp layout; see [time.Time.Format].
// An empty layout restores [DefaultTimeLayout].
func WithTimeLayout(layout string) Option {
	return func(c *config) {
		if layout == "" {
			layout = DefaultTimeLayout
		}

		c.timeLayout = layout
	}
}

// WithCaller includes source file and line information in each message.
func WithCaller(enable bool) Option {
	return func(c *config) { c.caller = enable }
}

// WithPretty enables colorized output for the text format.
// It has no effect on the JSON format.
func WithPretty(enable bool) Option {
	return func(c *config) { c.pretty = enable }
}

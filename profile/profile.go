// Package profile provides optional runtime profiling for bempline.
//
// Profiling integrates [github.com/pkg/profile] and must be enabled at
// build time with the "pprof" build tag. Without the tag every operation
// is a no-op with zero runtime overhead, and [Modes] reports no modes.
//
// With the tag, the CLI exposes profiling through its --pprof-* flags:
//
//	bempline --pprof-mode cpu render template.bpl
//	bempline --pprof-mode heap --pprof-dir ./profiles render template.bpl
//
// Profile files are written to the configured directory with names
// matching the mode (cpu.pprof, mem.pprof, ...), ready for go tool pprof.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`

// Profiler configures file-based runtime profiling.
type Profiler struct {
	// Mode selects the profile to collect; see [Modes] for valid values.
	Mode string
	// Path is the directory profile files are written to.
	Path string
	// Quiet suppresses the profiler's own log output.
	Quiet bool
}

// Control stops a running profiling session.
type Control interface{ Stop() }

type ignore struct{}

func (ignore) Stop() {}

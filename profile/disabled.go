//go:build !pprof

package profile

// Modes returns no modes when built without the pprof tag.
func Modes() []string { return nil }

// Start is a no-op when built without the pprof tag.
func (p Profiler) Start() Control { return ignore{} }

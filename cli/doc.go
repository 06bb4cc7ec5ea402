// Package cli contains the command line interface for bempline.
//
// # Usage
//
// The default command renders a template:
//
//	bempline page.tpl --set name=world
//	bempline render page.tpl -b bindings.yaml -o page.html
//	bempline vars page.tpl
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Enable colorized pretty printing
//
// Log flags are applied in an early scan before argument parsing proper,
// so the logger is configured regardless of flag position, and parse
// errors themselves are reported in the requested format.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
//
// # Examples
//
//	# Debug logging while rendering
//	bempline --log-level=debug render page.tpl
//
//	# Re-render on every save, writing to a file
//	bempline render page.tpl -w -o page.html
package cli

package lang

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/ardnew/bempline/log"
)

// Document is a parsed template: an immutable body of nodes, a binding
// table, a pattern registry, and accumulated pattern-slot output.
//
// The body and registry never change after parsing. Only the binding and
// slot tables mutate, and only through [Document.Set], [Document.Attach],
// and [Document.ClearBindings]. A Document is therefore safe to share
// across goroutines as long as each goroutine binds and renders its own
// [Document.Clone].
type Document struct {
	body     []*Node
	patterns map[string]*Pattern
	bindings map[string]string
	slots    map[string][]string

	keepUnset bool
	logger    log.Logger
}

// Clone produces an independent Document for binding and rendering.
// The immutable body is shared by reference; the binding table, pattern
// registry, and slot table are copied so that no mutable state is shared
// with the original or with sibling clones.
func (d *Document) Clone() *Document {
	slots := make(map[string][]string, len(d.slots))
	for name, parts := range d.slots {
		slots[name] = slices.Clone(parts)
	}

	return &Document{
		body:      d.body,
		patterns:  maps.Clone(d.patterns),
		bindings:  maps.Clone(d.bindings),
		slots:     slots,
		keepUnset: d.keepUnset,
		logger:    d.logger,
	}
}

// Set stores value under name in the binding table, overwriting any
// previous value. Names that never appear in the template are accepted
// silently.
func (d *Document) Set(name, value string) {
	d.bindings[name] = value
}

// ClearBindings discards all set variables as if the document were
// freshly parsed. Attached slot output is unaffected.
func (d *Document) ClearBindings() {
	clear(d.bindings)
}

// Attach appends rendered text to the named pattern slot. Repeated calls
// accumulate in attachment order, which is how a pattern rendered N times
// builds up N blocks of output in the parent.
func (d *Document) Attach(slot, text string) {
	d.slots[slot] = append(d.slots[slot], text)
}

// Pattern returns an independent clone of the named registered pattern.
// The registry entry is untouched, so the same name may be extracted,
// bound, and rendered any number of times.
func (d *Document) Pattern(name string) (*Pattern, error) {
	proto, ok := d.patterns[name]
	if !ok {
		err := ErrUnknownPattern.With(slog.String("pattern", name))
		if near := nearest(name, sortedKeys(d.patterns)); near != "" {
			err = err.With(slog.String("nearest", near))
		}

		return nil, err
	}

	return proto.Clone(), nil
}

// Vars returns every variable referenced by the document body in order of
// first appearance, descending into resolved includes. Pattern bodies are
// not reported; extract the pattern to inspect its variables.
func (d *Document) Vars() []Var {
	return walkVars(d.body, nil, map[string]int{})
}

// Patterns returns the names of all registered patterns in sorted order.
func (d *Document) Patterns() []string {
	return sortedKeys(d.patterns)
}

// Pattern is a named sub-template registered at parse time by a
// "@pattern name ... @end-pattern" block. It is inert during the parent's
// render: callers extract it with [Document.Pattern], bind it, render it,
// and attach the output back to the parent's matching slot.
type Pattern struct {
	name     string
	required bool
	doc      *Document
}

// Name returns the pattern's registered identifier.
func (p *Pattern) Name() string { return p.name }

// Required reports whether the pattern was declared with a trailing '!'.
// The renderer never enforces this; it is a contract for the calling
// workflow to honor.
func (p *Pattern) Required() bool { return p.required }

// Clone produces an independent instance of the pattern for binding and
// rendering.
func (p *Pattern) Clone() *Pattern {
	return &Pattern{
		name:     p.name,
		required: p.required,
		doc:      p.doc.Clone(),
	}
}

// Set stores a variable binding on this pattern instance.
func (p *Pattern) Set(name, value string) { p.doc.Set(name, value) }

// Attach appends rendered text to a slot inside the pattern body.
func (p *Pattern) Attach(slot, text string) { p.doc.Attach(slot, text) }

// Vars returns every variable referenced by the pattern body.
func (p *Pattern) Vars() []Var { return p.doc.Vars() }

// Render compiles the pattern body against its own bindings.
func (p *Pattern) Render() (string, error) { return p.doc.Render() }

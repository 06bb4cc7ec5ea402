package lang

import (
	"log/slog"
	"strings"
)

// Render compiles the document body into output text in a single pass.
// Bound variables are substituted, accumulated slot attachments are
// spliced in, and resolved includes render against the same binding table
// (an include inherits the parent's bindings; it has no scope of its own).
//
// The first unset required variable aborts the render with
// [ErrMissingValue]; no partial output is returned and the document's
// bindings are left untouched, so the caller may bind the name and retry.
func (d *Document) Render() (string, error) {
	var sb strings.Builder

	if err := d.render(&sb, d.body); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (d *Document) render(sb *strings.Builder, nodes []*Node) error {
	for _, n := range nodes {
		switch n.Kind {
		case KindText:
			sb.WriteString(n.Text)

		case KindVariable:
			if err := d.renderVariable(sb, n); err != nil {
				return err
			}

		case KindSlot:
			// Slots are always optional from the parent's point of view:
			// nothing attached means nothing emitted.
			for _, part := range d.slots[n.Name] {
				sb.WriteString(part)
			}

		case KindInclude:
			if err := d.render(sb, n.Nodes); err != nil {
				return err
			}
		}
	}

	return nil
}

func (d *Document) renderVariable(sb *strings.Builder, n *Node) error {
	value, ok := d.bindings[n.Name]

	switch {
	case ok:
		sb.WriteString(value)

	case n.Required:
		return ErrMissingValue.With(slog.String("name", n.Name))

	case d.keepUnset:
		// Pass the declaration through for a later fill pass.
		sb.WriteString(openMarker)
		sb.WriteString("$")
		sb.WriteString(n.Name)
		sb.WriteString(closeMarker)
	}

	return nil
}

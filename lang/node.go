package lang

// Kind discriminates the node variants of a document body.
type Kind int

const (
	// KindText is a run of literal text emitted verbatim.
	KindText Kind = iota

	// KindVariable is a substitution point resolved against the owning
	// document's binding table.
	KindVariable

	// KindSlot is an insertion point for externally rendered pattern output.
	KindSlot

	// KindInclude is the spliced body of an already-resolved include.
	KindInclude
)

// String returns a string representation of the node kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindVariable:
		return "Variable"
	case KindSlot:
		return "Slot"
	case KindInclude:
		return "Include"
	default:
		return "Unknown"
	}
}

// Node is one element of a parsed document body.
// Exactly one group of fields is meaningful based on Kind:
//
//   - KindText:     Text
//   - KindVariable: Name, Required
//   - KindSlot:     Name
//   - KindInclude:  Path, Nodes
//
// Nodes are immutable after parsing, which is what allows a cloned
// [Document] to share its body with the original by reference.
type Node struct {
	Kind Kind

	Text string // literal content

	Name     string // variable or slot identifier
	Required bool   // variable declared with a trailing '!'

	Path  string  // include path as written in the directive
	Nodes []*Node // resolved include body
}

func textNode(s string) *Node {
	return &Node{Kind: KindText, Text: s}
}

func variableNode(name string, required bool) *Node {
	return &Node{Kind: KindVariable, Name: name, Required: required}
}

func slotNode(name string) *Node {
	return &Node{Kind: KindSlot, Name: name}
}

func includeNode(path string, nodes []*Node) *Node {
	return &Node{Kind: KindInclude, Path: path, Nodes: nodes}
}

// Var describes a variable reference found in a document body.
type Var struct {
	Name     string
	Required bool
}

// walkVars appends each variable reference in nodes to out in order of
// appearance, descending into resolved includes. A name is reported once;
// a later required reference upgrades an earlier optional one.
func walkVars(nodes []*Node, out []Var, seen map[string]int) []Var {
	for _, n := range nodes {
		switch n.Kind {
		case KindVariable:
			if i, ok := seen[n.Name]; ok {
				if n.Required {
					out[i].Required = true
				}

				continue
			}

			seen[n.Name] = len(out)
			out = append(out, Var{Name: n.Name, Required: n.Required})

		case KindInclude:
			out = walkVars(n.Nodes, out, seen)
		}
	}

	return out
}

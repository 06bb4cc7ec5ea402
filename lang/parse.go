package lang

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// ParseReader parses a Document from an io.Reader.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return Parse(ctx, string(data), opts...)
}

// ErrReadInput reports a failure to read template source before parsing.
var ErrReadInput = NewError("failed to read input")

// Parse parses raw template text into a [Document], recursively resolving
// every include directive through the configured [Source]. Parse errors are
// fatal: no partially built Document is ever returned.
func Parse(ctx context.Context, raw string, opts ...Option) (*Document, error) {
	cfg := makeSettings(opts...)

	doc := &Document{
		patterns:  map[string]*Pattern{},
		bindings:  map[string]string{},
		slots:     map[string][]string{},
		keepUnset: cfg.keepUnset,
		logger:    cfg.logger,
	}

	res := &resolver{
		source:   cfg.source,
		maxDepth: cfg.maxDepth,
		logger:   cfg.logger,
	}

	body, err := parseSource(ctx, raw, doc, res, false)
	if err != nil {
		return nil, err
	}

	doc.body = body

	cfg.logger.DebugContext(ctx, "parse complete",
		slog.Int("nodes", len(body)),
		slog.Int("patterns", len(doc.patterns)),
	)

	return doc, nil
}

// parseSource scans and parses one source text (the root template or one
// included file) into a node sequence, registering patterns into doc.
// inPattern is set when the source is being spliced inside an open pattern
// block, where pattern declarations are forbidden.
func parseSource(
	ctx context.Context,
	raw string,
	doc *Document,
	res *resolver,
	inPattern bool,
) ([]*Node, error) {
	p := &parser{doc: doc, res: res, inPattern: inPattern}

	return p.parse(ctx, scan(raw))
}

// parser assembles the node tree for a single source text. Pattern bodies
// are a flat contiguous region rather than a nested scope stack: the
// language forbids patterns inside patterns, so at most one block is open.
type parser struct {
	doc       *Document
	res       *resolver
	inPattern bool

	// open pattern block state; valid only while patOpen is set
	patOpen bool
	patName string
	patReq  bool
	patBody []*Node
	patPos  Position
}

func (p *parser) parse(ctx context.Context, spans []span) ([]*Node, error) {
	body := make([]*Node, 0, len(spans))

	for _, sp := range spans {
		switch sp.kind {
		case spanText, spanEscape:
			p.push(&body, textNode(sp.text))

		case spanDirective:
			if err := p.directive(ctx, &body, sp); err != nil {
				return nil, err
			}
		}
	}

	if p.patOpen {
		return nil, ErrUnterminatedPattern.
			With(slog.String("pattern", p.patName)).
			WithPosition(p.patPos)
	}

	return body, nil
}

// push appends a node to the open pattern body, or to the document body
// when no pattern block is open.
func (p *parser) push(body *[]*Node, n *Node) {
	if p.patOpen {
		p.patBody = append(p.patBody, n)

		return
	}

	*body = append(*body, n)
}

func (p *parser) directive(
	ctx context.Context,
	body *[]*Node,
	sp span,
) error {
	content := strings.TrimSpace(sp.text)
	if content == "" {
		return ErrUnknownDirective.WithPosition(sp.pos)
	}

	switch content[0] {
	case '$':
		return p.variable(body, content[1:], sp.pos)

	case '@':
		return p.command(ctx, body, content[1:], sp.pos)

	default:
		return ErrUnknownDirective.
			With(slog.String("directive", content)).
			WithPosition(sp.pos)
	}
}

// variable parses "$name", "$name!" (required), or "$name?" (optional,
// the default).
func (p *parser) variable(body *[]*Node, s string, pos Position) error {
	name, required := splitRequirement(s)

	if !validIdentifier(name) {
		return ErrInvalidIdentifier.
			With(slog.String("identifier", name)).
			WithPosition(pos)
	}

	p.push(body, variableNode(name, required))

	return nil
}

func (p *parser) command(
	ctx context.Context,
	body *[]*Node,
	s string,
	pos Position,
) error {
	keyword, arg, _ := strings.Cut(s, " ")
	arg = strings.TrimSpace(arg)

	switch keyword {
	case "include", "include?":
		return p.include(ctx, body, arg, keyword == "include?", pos)

	case "pattern":
		return p.openPattern(arg, pos)

	case "end-pattern":
		return p.closePattern(body, pos)

	case "pattern-slot":
		if !validIdentifier(arg) {
			return ErrInvalidIdentifier.
				With(slog.String("identifier", arg)).
				WithPosition(pos)
		}

		p.push(body, slotNode(arg))

		return nil

	default:
		return ErrUnknownDirective.
			With(slog.String("directive", "@"+keyword)).
			WithPosition(pos)
	}
}

// include resolves "@include path" or "@include? path" and splices the
// parsed subtree at the directive's position. The path is opaque text
// passed verbatim to the Source.
func (p *parser) include(
	ctx context.Context,
	body *[]*Node,
	path string,
	optional bool,
	pos Position,
) error {
	if path == "" {
		return ErrMalformedInclude.WithPosition(pos)
	}

	nodes, err := p.res.resolve(ctx, path, optional, p.doc, p.inPattern || p.patOpen)
	if err != nil {
		return err
	}

	p.push(body, includeNode(path, nodes))

	return nil
}

// openPattern parses "@pattern name" with an optional '!' or '?' suffix
// declaring the pattern's own requiredness.
func (p *parser) openPattern(arg string, pos Position) error {
	if p.inPattern || p.patOpen {
		return ErrNestedPattern.
			With(slog.String("pattern", arg)).
			WithPosition(pos)
	}

	name, required := splitRequirement(arg)

	if !validIdentifier(name) {
		return ErrInvalidIdentifier.
			With(slog.String("identifier", name)).
			WithPosition(pos)
	}

	if _, ok := p.doc.patterns[name]; ok {
		return ErrDuplicatePattern.
			With(slog.String("pattern", name)).
			WithPosition(pos)
	}

	p.patOpen = true
	p.patName = name
	p.patReq = required
	p.patBody = nil
	p.patPos = pos

	return nil
}

// closePattern registers the open pattern block and leaves a slot at the
// declaration site so rendered instances splice in where the pattern was
// defined, matching how an explicit "@pattern-slot" behaves elsewhere.
func (p *parser) closePattern(body *[]*Node, pos Position) error {
	if !p.patOpen {
		return ErrDanglingEndPattern.WithPosition(pos)
	}

	p.doc.patterns[p.patName] = &Pattern{
		name:     p.patName,
		required: p.patReq,
		doc: &Document{
			body:      p.patBody,
			patterns:  map[string]*Pattern{},
			bindings:  map[string]string{},
			slots:     map[string][]string{},
			keepUnset: p.doc.keepUnset,
			logger:    p.doc.logger,
		},
	}

	p.patOpen = false
	p.patBody = nil

	*body = append(*body, slotNode(p.patName))

	return nil
}

// splitRequirement strips a trailing '!' or '?' and reports whether the
// construct was marked required. Optional is the default.
func splitRequirement(s string) (name string, required bool) {
	switch {
	case strings.HasSuffix(s, "!"):
		return s[:len(s)-1], true
	case strings.HasSuffix(s, "?"):
		return s[:len(s)-1], false
	default:
		return s, false
	}
}

// validIdentifier reports whether s is a legal directive identifier:
// ASCII letters, digits, and underscores, not starting with a digit.
func validIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c == '_',
			c >= 'a' && c <= 'z',
			c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}

	return true
}

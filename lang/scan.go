package lang

import "strings"

// Directive marker syntax. The single space is part of each marker: an
// opening brace pair not followed by exactly one space never starts a
// directive, and the closing pair must be preceded by one.
const (
	openMarker  = "{~ "
	closeMarker = " ~}"
	escape      = '\\'
)

type spanKind int

const (
	// spanText is a run of literal template text.
	spanText spanKind = iota

	// spanEscape is an escaped opening marker, emitted as the literal
	// marker characters with the escape dropped.
	spanEscape

	// spanDirective is the opaque content between an opening and closing
	// marker, with both markers stripped.
	spanDirective
)

// span is one lexical unit produced by the scanner.
type span struct {
	kind spanKind
	text string
	pos  Position
}

// scanner walks raw template text in a single left-to-right pass with no
// backtracking. Malformed markers degrade to literal text here; only the
// parser rejects input.
type scanner struct {
	input string
	pos   int
	line  int
	col   int
}

func scan(input string) []span {
	s := &scanner{input: input, line: 1, col: 1}

	return s.run()
}

func (s *scanner) run() []span {
	spans := make([]span, 0, 8)

	litStart := s.pos
	litPos := s.position()

	// flush emits the pending literal run, if any.
	flush := func() {
		if litStart < s.pos {
			spans = append(spans, span{
				kind: spanText,
				text: s.input[litStart:s.pos],
				pos:  litPos,
			})
		}
	}

	for !s.eof() {
		rest := s.input[s.pos:]

		switch {
		case rest[0] == escape && strings.HasPrefix(rest[1:], openMarker[:2]):
			// Escaped opening marker: drop the backslash, emit "{~".
			flush()

			spans = append(spans, span{
				kind: spanEscape,
				text: openMarker[:2],
				pos:  s.position(),
			})

			s.advanceN(1 + 2)

			litStart = s.pos
			litPos = s.position()

		case strings.HasPrefix(rest, openMarker):
			end := strings.Index(rest[len(openMarker):], closeMarker)
			if end < 0 {
				// Unterminated directive: the remainder is literal text.
				s.advanceN(len(rest))

				continue
			}

			flush()

			dirPos := s.position()
			interior := rest[len(openMarker) : len(openMarker)+end]

			s.advanceN(len(openMarker) + end + len(closeMarker))

			spans = append(spans, span{
				kind: spanDirective,
				text: interior,
				pos:  dirPos,
			})

			litStart = s.pos
			litPos = s.position()

		default:
			s.advance()
		}
	}

	flush()

	return spans
}

// Helper methods

func (s *scanner) eof() bool {
	return s.pos >= len(s.input)
}

func (s *scanner) advance() {
	if s.eof() {
		return
	}

	if s.input[s.pos] == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	s.pos++
}

func (s *scanner) advanceN(n int) {
	for i := 0; i < n; i++ {
		s.advance()
	}
}

func (s *scanner) position() Position {
	return Position{
		Offset: s.pos,
		Line:   s.line,
		Column: s.col,
	}
}

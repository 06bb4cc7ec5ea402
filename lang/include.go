package lang

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/ardnew/bempline/log"
)

// Source supplies the text of included templates. The engine performs no
// I/O of its own; every include directive is mediated by the caller's
// Source during parsing.
type Source interface {
	// Read returns the raw template text for path. A missing template is
	// reported with an error matching [ErrNotFound] (or [fs.ErrNotExist]);
	// any other error is treated as a hard read failure that fails the
	// parse even for optional includes.
	Read(path string) (string, error)
}

// SourceFunc adapts a function to the [Source] interface.
type SourceFunc func(path string) (string, error)

// Read implements [Source].
func (f SourceFunc) Read(path string) (string, error) { return f(path) }

// MapSource serves templates from an in-memory map, keyed by path.
// It is primarily useful for tests and embedded template sets.
type MapSource map[string]string

// Read implements [Source].
func (m MapSource) Read(path string) (string, error) {
	text, ok := m[path]
	if !ok {
		return "", ErrNotFound.With(slog.String("path", path))
	}

	return text, nil
}

// resolver fetches and parses included templates, guarding against cycles
// and runaway nesting. The chain of paths currently being resolved doubles
// as both the cycle detector and the depth gauge.
type resolver struct {
	source   Source
	chain    []string
	maxDepth int
	logger   log.Logger
}

func (r *resolver) resolve(
	ctx context.Context,
	path string,
	optional bool,
	doc *Document,
	inPattern bool,
) ([]*Node, error) {
	for _, active := range r.chain {
		if active == path {
			return nil, ErrCircularInclude.With(
				slog.String("path", path),
				slog.String("chain", r.chainString(path)),
			)
		}
	}

	if len(r.chain) >= r.maxDepth {
		return nil, ErrIncludeDepth.With(
			slog.String("path", path),
			slog.Int("depth", r.maxDepth),
		)
	}

	text, err := r.read(ctx, path, optional)
	if err != nil || text == nil {
		return nil, err
	}

	r.chain = append(r.chain, path)
	defer func() { r.chain = r.chain[:len(r.chain)-1] }()

	r.logger.TraceContext(ctx, "include resolved",
		slog.String("path", path),
		slog.Int("depth", len(r.chain)),
	)

	return parseSource(ctx, *text, doc, r, inPattern)
}

// read fetches the include text, applying the optional-include rules.
// A nil text with nil error means an optional include resolved empty.
func (r *resolver) read(
	ctx context.Context,
	path string,
	optional bool,
) (*string, error) {
	if r.source == nil {
		if optional {
			return nil, nil
		}

		return nil, ErrMissingInclude.With(slog.String("path", path))
	}

	text, err := r.source.Read(path)
	if err == nil {
		return &text, nil
	}

	if errors.Is(err, ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		if optional {
			r.logger.DebugContext(ctx, "optional include not found",
				slog.String("path", path))

			return nil, nil
		}

		return nil, ErrMissingInclude.With(slog.String("path", path)).Wrap(err)
	}

	return nil, ErrReadInclude.With(slog.String("path", path)).Wrap(err)
}

func (r *resolver) chainString(path string) string {
	return strings.Join(append(append([]string{}, r.chain...), path), " -> ")
}

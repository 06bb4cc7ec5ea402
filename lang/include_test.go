package lang

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestInclude_Splicing(t *testing.T) {
	src := MapSource{
		"header.tpl": "== {~ $title ~} ==\n",
	}

	doc, err := Parse(context.Background(),
		"{~ @include header.tpl ~}body\n", WithSource(src))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	doc.Set("title", "Report")

	out, err := doc.Render()
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	if out != "== Report ==\nbody\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestInclude_SharedBindings(t *testing.T) {
	// The parent's bindings resolve variables inside includes; there is no
	// separate scope per file.
	src := MapSource{
		"inner.tpl": "{~ $x ~}",
	}

	doc, err := Parse(context.Background(),
		"{~ $x ~}/{~ @include inner.tpl ~}", WithSource(src))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	doc.Set("x", "v")

	out, err := doc.Render()
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	if out != "v/v" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestInclude_Missing(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		source  Source
		want    error
		wantOut string
	}{
		{
			name:    "optional missing resolves empty",
			input:   "a{~ @include? gone.tpl ~}b",
			source:  MapSource{},
			wantOut: "ab",
		},
		{
			name:   "required missing fails",
			input:  "{~ @include gone.tpl ~}",
			source: MapSource{},
			want:   ErrMissingInclude,
		},
		{
			name:    "optional with no source resolves empty",
			input:   "a{~ @include? gone.tpl ~}b",
			wantOut: "ab",
		},
		{
			name:  "required with no source fails",
			input: "{~ @include gone.tpl ~}",
			want:  ErrMissingInclude,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := []Option{}
			if tt.source != nil {
				opts = append(opts, WithSource(tt.source))
			}

			doc, err := Parse(context.Background(), tt.input, opts...)
			if tt.want != nil {
				if !errors.Is(err, tt.want) {
					t.Fatalf("expected %v, got %v", tt.want, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			out, err := doc.Render()
			if err != nil {
				t.Fatalf("render error: %v", err)
			}

			if out != tt.wantOut {
				t.Errorf("expected %q, got %q", tt.wantOut, out)
			}
		})
	}
}

func TestInclude_ReadFailure(t *testing.T) {
	broken := SourceFunc(func(path string) (string, error) {
		return "", fmt.Errorf("disk on fire: %s", path)
	})

	// A hard read failure is fatal even for an optional include.
	_, err := Parse(context.Background(),
		"{~ @include? fragile.tpl ~}", WithSource(broken))
	if !errors.Is(err, ErrReadInclude) {
		t.Fatalf("expected ErrReadInclude, got %v", err)
	}
}

func TestInclude_Cycle(t *testing.T) {
	src := MapSource{
		"a.tpl": "A{~ @include b.tpl ~}",
		"b.tpl": "B{~ @include a.tpl ~}",
	}

	_, err := Parse(context.Background(),
		"{~ @include a.tpl ~}", WithSource(src))
	if !errors.Is(err, ErrCircularInclude) {
		t.Fatalf("expected ErrCircularInclude, got %v", err)
	}

	// The chain attribute names every hop in order.
	if !strings.Contains(err.Error(), "circular") {
		t.Errorf("unexpected error text %q", err.Error())
	}
}

func TestInclude_SelfCycle(t *testing.T) {
	src := MapSource{
		"loop.tpl": "{~ @include loop.tpl ~}",
	}

	_, err := Parse(context.Background(),
		"{~ @include loop.tpl ~}", WithSource(src))
	if !errors.Is(err, ErrCircularInclude) {
		t.Fatalf("expected ErrCircularInclude, got %v", err)
	}
}

func TestInclude_DepthGuard(t *testing.T) {
	// Each template includes the next; no cycle, just depth.
	src := MapSource{}
	for i := 0; i < 8; i++ {
		src[fmt.Sprintf("t%d.tpl", i)] = fmt.Sprintf("{~ @include t%d.tpl ~}", i+1)
	}
	src["t8.tpl"] = "bottom"

	_, err := Parse(context.Background(),
		"{~ @include t0.tpl ~}", WithSource(src), WithMaxIncludeDepth(4))
	if !errors.Is(err, ErrIncludeDepth) {
		t.Fatalf("expected ErrIncludeDepth, got %v", err)
	}

	// The same chain parses once the limit accommodates it.
	doc, err := Parse(context.Background(),
		"{~ @include t0.tpl ~}", WithSource(src), WithMaxIncludeDepth(16))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	out, err := doc.Render()
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	if out != "bottom" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestInclude_PatternFromInclude(t *testing.T) {
	src := MapSource{
		"patterns.tpl": "{~ @pattern row ~}<{~ $v ~}>{~ @end-pattern ~}",
	}

	doc, err := Parse(context.Background(),
		"{~ @include patterns.tpl ~}", WithSource(src))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	// Patterns declared in includes register on the root document.
	pat, err := doc.Pattern("row")
	if err != nil {
		t.Fatalf("pattern lookup: %v", err)
	}

	pat.Set("v", "1")

	out, err := pat.Render()
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	if out != "<1>" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestInclude_DuplicatePatternAcrossFiles(t *testing.T) {
	src := MapSource{
		"one.tpl": "{~ @pattern row ~}a{~ @end-pattern ~}",
		"two.tpl": "{~ @pattern row ~}b{~ @end-pattern ~}",
	}

	_, err := Parse(context.Background(),
		"{~ @include one.tpl ~}{~ @include two.tpl ~}", WithSource(src))
	if !errors.Is(err, ErrDuplicatePattern) {
		t.Fatalf("expected ErrDuplicatePattern, got %v", err)
	}
}

func TestInclude_PatternInsideOpenPattern(t *testing.T) {
	src := MapSource{
		"nested.tpl": "{~ @pattern inner ~}x{~ @end-pattern ~}",
	}

	input := "{~ @pattern outer ~}{~ @include nested.tpl ~}{~ @end-pattern ~}"

	_, err := Parse(context.Background(), input, WithSource(src))
	if !errors.Is(err, ErrNestedPattern) {
		t.Fatalf("expected ErrNestedPattern, got %v", err)
	}
}

func TestMapSource_NotFound(t *testing.T) {
	_, err := MapSource{}.Read("missing.tpl")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

package lang

import (
	"context"
	"errors"
	"testing"
)

func mustParse(t *testing.T, raw string, opts ...Option) *Document {
	t.Helper()

	doc, err := Parse(context.Background(), raw, opts...)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	return doc
}

func TestDocument_SetLastWins(t *testing.T) {
	doc := mustParse(t, "{~ $x ~}")

	doc.Set("x", "first")
	doc.Set("x", "second")

	out, err := doc.Render()
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	if out != "second" {
		t.Errorf("expected last binding to win, got %q", out)
	}
}

func TestDocument_SetUnknownName(t *testing.T) {
	doc := mustParse(t, "static")

	// Binding a name the template never mentions is not an error.
	doc.Set("phantom", "value")

	out, err := doc.Render()
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	if out != "static" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestDocument_ClearBindings(t *testing.T) {
	doc := mustParse(t, "[{~ $x ~}]{~ @pattern-slot s ~}")

	doc.Set("x", "v")
	doc.Attach("s", "kept")
	doc.ClearBindings()

	out, err := doc.Render()
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	// Variables reset to unset; slot attachments survive.
	if out != "[]kept" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestDocument_CloneIsolation(t *testing.T) {
	doc := mustParse(t, "{~ $x ~}|{~ @pattern-slot s ~}")
	doc.Set("x", "base")
	doc.Attach("s", "base")

	a, b := doc.Clone(), doc.Clone()

	a.Set("x", "A")
	a.Attach("s", "A")
	b.Set("x", "B")
	b.Attach("s", "B")

	render := func(d *Document) string {
		t.Helper()

		out, err := d.Render()
		if err != nil {
			t.Fatalf("render error: %v", err)
		}

		return out
	}

	if got := render(doc); got != "base|base" {
		t.Errorf("original mutated: %q", got)
	}

	if got := render(a); got != "A|baseA" {
		t.Errorf("clone a: %q", got)
	}

	if got := render(b); got != "B|baseB" {
		t.Errorf("clone b: %q", got)
	}
}

func TestDocument_PatternUnknown(t *testing.T) {
	doc := mustParse(t, "{~ @pattern tableRow ~}x{~ @end-pattern ~}")

	_, err := doc.Pattern("tableRows")
	if !errors.Is(err, ErrUnknownPattern) {
		t.Fatalf("expected ErrUnknownPattern, got %v", err)
	}
}

func TestDocument_PatternClonesAreIndependent(t *testing.T) {
	doc := mustParse(t, "{~ @pattern cell ~}({~ $v ~}){~ @end-pattern ~}")

	first, err := doc.Pattern("cell")
	if err != nil {
		t.Fatalf("pattern lookup: %v", err)
	}

	first.Set("v", "1")

	second, err := doc.Pattern("cell")
	if err != nil {
		t.Fatalf("pattern lookup: %v", err)
	}

	second.Set("v", "2")

	for _, tt := range []struct {
		pat  *Pattern
		want string
	}{
		{first, "(1)"},
		{second, "(2)"},
	} {
		out, err := tt.pat.Render()
		if err != nil {
			t.Fatalf("render error: %v", err)
		}

		if out != tt.want {
			t.Errorf("expected %q, got %q", tt.want, out)
		}
	}
}

func TestDocument_Vars(t *testing.T) {
	src := MapSource{
		"extra.tpl": "{~ $c ~}{~ $a! ~}",
	}

	doc := mustParse(t,
		"{~ $a ~}{~ $b! ~}{~ $a ~}{~ @include extra.tpl ~}",
		WithSource(src))

	want := []Var{
		{Name: "a", Required: true}, // upgraded by the include's $a!
		{Name: "b", Required: true},
		{Name: "c", Required: false},
	}

	got := doc.Vars()
	if len(got) != len(want) {
		t.Fatalf("expected %d vars, got %d: %+v", len(want), len(got), got)
	}

	for i, w := range want {
		if got[i] != w {
			t.Errorf("var %d: expected %+v, got %+v", i, w, got[i])
		}
	}
}

func TestDocument_VarsExcludePatternBodies(t *testing.T) {
	doc := mustParse(t,
		"{~ $outer ~}{~ @pattern p ~}{~ $inner ~}{~ @end-pattern ~}")

	got := doc.Vars()
	if len(got) != 1 || got[0].Name != "outer" {
		t.Fatalf("expected only outer var, got %+v", got)
	}
}

func TestDocument_PatternsSorted(t *testing.T) {
	doc := mustParse(t,
		"{~ @pattern zulu ~}z{~ @end-pattern ~}"+
			"{~ @pattern alpha ~}a{~ @end-pattern ~}"+
			"{~ @pattern mike ~}m{~ @end-pattern ~}")

	want := []string{"alpha", "mike", "zulu"}

	got := doc.Patterns()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

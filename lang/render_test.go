package lang

import (
	"errors"
	"fmt"
	"testing"
)

func TestRender_Literal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text round-trips",
			input: "nothing to see here\n",
			want:  "nothing to see here\n",
		},
		{
			name:  "escaped marker emits literally",
			input: `\{~ $x ~}`,
			want:  "{~ $x ~}",
		},
		{
			name:  "marker without spacing is literal",
			input: "{~$x~}",
			want:  "{~$x~}",
		},
		{
			name:  "unterminated marker is literal",
			input: "tail {~ $x",
			want:  "tail {~ $x",
		},
		{
			name:  "lone backslash is literal",
			input: `a \ b`,
			want:  `a \ b`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := mustParse(t, tt.input).Render()
			if err != nil {
				t.Fatalf("render error: %v", err)
			}

			if out != tt.want {
				t.Errorf("expected %q, got %q", tt.want, out)
			}
		})
	}
}

func TestRender_OptionalVariableDefaultsEmpty(t *testing.T) {
	out, err := mustParse(t, "a{~ $gone ~}b{~ $gone? ~}c").Render()
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	if out != "abc" {
		t.Errorf("expected %q, got %q", "abc", out)
	}
}

func TestRender_RequiredVariable(t *testing.T) {
	doc := mustParse(t, "user={~ $user! ~}")

	_, err := doc.Render()
	if !errors.Is(err, ErrMissingValue) {
		t.Fatalf("expected ErrMissingValue, got %v", err)
	}

	// Binding the missing name makes the same document renderable.
	doc.Set("user", "root")

	out, err := doc.Render()
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	if out != "user=root" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRender_KeepUnset(t *testing.T) {
	doc := mustParse(t, "{~ $a ~}+{~ $b ~}", WithKeepUnset(true))
	doc.Set("a", "1")

	out, err := doc.Render()
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	// Unset optionals pass through for a later fill pass; the passthrough
	// form reparses to the same variable.
	if out != "1+{~ $b ~}" {
		t.Errorf("unexpected output %q", out)
	}

	second := mustParse(t, out)
	second.Set("b", "2")

	final, err := second.Render()
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	if final != "1+2" {
		t.Errorf("unexpected output %q", final)
	}
}

func TestRender_Idempotence(t *testing.T) {
	doc := mustParse(t, "{~ $x ~} and {~ $y? ~}!")
	doc.Set("x", "this")
	doc.Set("y", "that")

	first, err := doc.Render()
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	second, err := doc.Render()
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	if first != second {
		t.Errorf("render not repeatable: %q then %q", first, second)
	}
}

func TestRender_PatternRoundTrip(t *testing.T) {
	doc := mustParse(t,
		"<table>\n{~ @pattern row ~}<tr><td>{~ $n ~}</td></tr>\n{~ @end-pattern ~}</table>\n")

	for i := 0; i < 3; i++ {
		row, err := doc.Pattern("row")
		if err != nil {
			t.Fatalf("pattern lookup: %v", err)
		}

		row.Set("n", fmt.Sprint(i))

		out, err := row.Render()
		if err != nil {
			t.Fatalf("render row %d: %v", i, err)
		}

		doc.Attach("row", out)
	}

	out, err := doc.Render()
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	want := "<table>\n" +
		"<tr><td>0</td></tr>\n" +
		"<tr><td>1</td></tr>\n" +
		"<tr><td>2</td></tr>\n" +
		"</table>\n"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestRender_PatternWithoutAttachments(t *testing.T) {
	out, err := mustParse(t,
		"a{~ @pattern p ~}gone{~ @end-pattern ~}b").Render()
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	if out != "ab" {
		t.Errorf("expected pattern site to collapse, got %q", out)
	}
}

func TestRender_RequiredVariableInsideInclude(t *testing.T) {
	src := MapSource{
		"strict.tpl": "{~ $must! ~}",
	}

	doc := mustParse(t, "{~ @include strict.tpl ~}", WithSource(src))

	if _, err := doc.Render(); !errors.Is(err, ErrMissingValue) {
		t.Fatalf("expected ErrMissingValue, got %v", err)
	}

	doc.Set("must", "yes")

	out, err := doc.Render()
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	if out != "yes" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRender_FailureReturnsNoPartialOutput(t *testing.T) {
	doc := mustParse(t, "prefix {~ $x! ~} suffix")

	out, err := doc.Render()
	if err == nil {
		t.Fatal("expected render error")
	}

	if out != "" {
		t.Errorf("expected empty output on failure, got %q", out)
	}
}

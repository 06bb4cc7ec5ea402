package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/ardnew/bempline/lang"
	"github.com/ardnew/bempline/log"
)

// Vars lists the variables and patterns a template declares, so callers
// can see what a template expects before binding it.
type Vars struct {
	Template string `arg:"" help:"Template file or '-' for stdin"`

	IncludeDir string `help:"Include root (default: template directory)" type:"existingdir" optional:""`
}

// Run executes the vars command.
func (v *Vars) Run(ctx context.Context) error {
	raw, dir, err := readTemplate(v.Template)
	if err != nil {
		return err
	}

	if v.IncludeDir != "" {
		dir = v.IncludeDir
	}

	doc, err := lang.Parse(ctx, raw,
		lang.WithSource(newDirSource(dir)),
		lang.WithLogger(log.Default()),
	)
	if err != nil {
		return err
	}

	w := os.Stdout

	for _, vr := range doc.Vars() {
		fmt.Fprintln(w, formatVar(vr))
	}

	for _, name := range doc.Patterns() {
		pat, err := doc.Pattern(name)
		if err != nil {
			return err
		}

		marker := ""
		if pat.Required() {
			marker = "!"
		}

		fmt.Fprintf(w, "@%s%s\n", name, marker)

		for _, vr := range pat.Vars() {
			fmt.Fprintf(w, "  %s\n", formatVar(vr))
		}
	}

	return nil
}

func formatVar(v lang.Var) string {
	if v.Required {
		return "$" + v.Name + "!"
	}

	return "$" + v.Name
}

package cmd

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	gopath "path"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/bempline/lang"
)

// readTemplate returns the raw text of the template at path ('-' for
// stdin) along with the directory includes resolve against.
func readTemplate(path string) (raw, dir string, err error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", err
		}

		return string(data), ".", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}

	return string(data), filepath.Dir(path), nil
}

// dirSource resolves include paths relative to a root directory, the way
// a template's includes resolve relative to the file that names them.
type dirSource struct {
	fsys fs.FS
}

func newDirSource(dir string) dirSource {
	if dir == "" {
		dir = "."
	}

	return dirSource{fsys: os.DirFS(dir)}
}

// Read implements [lang.Source]. Missing files surface as fs.ErrNotExist,
// which the engine maps onto its not-found contract so optional includes
// degrade silently.
func (s dirSource) Read(path string) (string, error) {
	data, err := fs.ReadFile(s.fsys, gopath.Clean(filepath.ToSlash(path)))
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Bindings is the YAML document accepted by render --bindings.
//
//	vars:
//	  name: Ferris
//	patterns:
//	  row:
//	    - item: first
//	    - item: second
//
// Each entry under a pattern name clones that pattern, binds its
// variables, renders it, and attaches the output to the pattern's slot in
// list order.
type Bindings struct {
	Vars     map[string]any              `yaml:"vars"`
	Patterns map[string][]map[string]any `yaml:"patterns"`
}

func loadBindings(path string) (*Bindings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var b Bindings

	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse bindings %s: %w", path, err)
	}

	return &b, nil
}

// apply binds variables and expands pattern instances from b onto doc.
// Patterns declared required must have at least one instance in the data.
func (b *Bindings) apply(doc *lang.Document) error {
	for name, value := range b.Vars {
		doc.Set(name, bindingValue(value))
	}

	for name, instances := range b.Patterns {
		for _, vars := range instances {
			pat, err := doc.Pattern(name)
			if err != nil {
				return err
			}

			for k, v := range vars {
				pat.Set(k, bindingValue(v))
			}

			out, err := pat.Render()
			if err != nil {
				return fmt.Errorf("render pattern %q: %w", name, err)
			}

			doc.Attach(name, out)
		}
	}

	for _, name := range doc.Patterns() {
		pat, err := doc.Pattern(name)
		if err != nil {
			return err
		}

		if pat.Required() && len(b.Patterns[name]) == 0 {
			return fmt.Errorf("required pattern %q has no bindings", name)
		}
	}

	return nil
}

// bindingValue renders a YAML scalar as template text.
func bindingValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	return fmt.Sprint(v)
}

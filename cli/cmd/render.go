package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/fsnotify/fsnotify"

	"github.com/ardnew/bempline/lang"
	"github.com/ardnew/bempline/log"
)

// Render parses a template, applies bindings, and writes the output.
type Render struct {
	Template string `arg:"" help:"Template file or '-' for stdin"`

	Bindings   string            `help:"YAML file of variable and pattern bindings"             short:"b" type:"existingfile" optional:""`
	Set        map[string]string `help:"Set a variable (name=value); overrides --bindings"      short:"s"`
	Out        string            `help:"Output file or '-' for stdout"                          short:"o" default:"-"`
	IncludeDir string            `help:"Include root (default: template directory)"                       type:"existingdir" optional:""`
	KeepUnset  bool              `help:"Pass unset optional variables through as directives"`
	Watch      bool              `help:"Re-render whenever the template changes"                short:"w"`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) error {
	if r.Watch && r.Template == "-" {
		return errors.New("--watch requires a template file")
	}

	out, err := r.render(ctx)
	if err != nil {
		return err
	}

	if err := r.write(out); err != nil {
		return err
	}

	if !r.Watch {
		return nil
	}

	return r.watch(ctx)
}

func (r *Render) render(ctx context.Context) (string, error) {
	raw, dir, err := readTemplate(r.Template)
	if err != nil {
		return "", err
	}

	if r.IncludeDir != "" {
		dir = r.IncludeDir
	}

	doc, err := lang.Parse(ctx, raw,
		lang.WithSource(newDirSource(dir)),
		lang.WithLogger(log.Default()),
		lang.WithKeepUnset(r.KeepUnset),
	)
	if err != nil {
		return "", err
	}

	if r.Bindings != "" {
		b, err := loadBindings(r.Bindings)
		if err != nil {
			return "", err
		}

		if err := b.apply(doc); err != nil {
			return "", err
		}
	}

	// Command-line bindings win over the bindings file.
	for name, value := range r.Set {
		doc.Set(name, value)
	}

	return doc.Render()
}

func (r *Render) write(out string) error {
	if r.Out == "-" {
		_, err := os.Stdout.WriteString(out)

		return err
	}

	return os.WriteFile(r.Out, []byte(out), 0o644)
}

// watch re-renders on every write to the template file until the context
// is canceled. Render failures are logged, not fatal, so a half-saved
// template doesn't kill the session.
func (r *Render) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(r.Template); err != nil {
		return err
	}

	log.InfoContext(ctx, "watching template",
		slog.String("path", r.Template))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}

			out, err := r.render(ctx)
			if err != nil {
				log.ErrorContext(ctx, "render failed",
					slog.Any("error", err))

				continue
			}

			if err := r.write(out); err != nil {
				return err
			}

			log.DebugContext(ctx, "rendered",
				slog.String("template", ev.Name))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			log.ErrorContext(ctx, "watch error", slog.Any("error", err))
		}
	}
}

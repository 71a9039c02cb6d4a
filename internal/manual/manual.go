// Package manual renders tutorial manuals from templates.
//
// The root manual is rendered from <templates>/root.tmpl into the configured
// root file (README.md by default). Super-step N is rendered from
// <templates>/stepN.tmpl into <views>/stepN.md. Templates use text/template
// and may call diffStep to embed the annotated diff of any step.
package manual

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"stepwise.dev/stepwise/internal/config"
	"stepwise.dev/stepwise/internal/diffstep"
	"stepwise.dev/stepwise/internal/errors"
	"stepwise.dev/stepwise/internal/rebase"
	"stepwise.dev/stepwise/internal/step"
)

// ProdMarker is the first line of a manual rendered in production format
const ProdMarker = "[__prod__]: #"

// Data is passed to manual templates
type Data struct {
	// Step is the super-step number, or "root"
	Step   string
	Format string
}

// Renderer expands manual templates of a repository
type Renderer struct {
	root    string
	manuals config.ManualsConfig
	history diffstep.History
	diff    *diffstep.Renderer
}

// NewRenderer creates a renderer for the repository rooted at root
func NewRenderer(root string, manuals config.ManualsConfig, history diffstep.History, diff *diffstep.Renderer) *Renderer {
	return &Renderer{root: root, manuals: manuals, history: history, diff: diff}
}

// TemplatePath returns the template of a step, relative to the repository root
func (r *Renderer) TemplatePath(number string) string {
	if number == step.Root {
		return filepath.Join(r.manuals.Templates, "root.tmpl")
	}
	return filepath.Join(r.manuals.Templates, "step"+number+".tmpl")
}

// ViewPath returns the rendered manual of a step, relative to the repository root
func (r *Renderer) ViewPath(number string) string {
	if number == step.Root {
		return r.manuals.Root
	}
	return rebase.ViewPath(r.manuals.Views, number)
}

// Render expands the template of a super-step (or the root) and writes the
// view. It returns the view path relative to the repository root. An empty
// format keeps the format of the existing view, dev when there is none. A
// missing template is an error so a rebase running the renderer stops.
func (r *Renderer) Render(ctx context.Context, number, format string) (string, error) {
	if number != step.Root {
		d, ok := step.ParseNumber(number)
		if !ok || !d.IsSuper() {
			return "", errors.NewInvalidStepError(number)
		}
	}
	switch format {
	case "", rebase.FormatDev, rebase.FormatProd:
	default:
		return "", fmt.Errorf("unknown manual format %q", format)
	}

	viewPath := r.ViewPath(number)
	full := filepath.Join(r.root, viewPath)
	if format == "" {
		format = rebase.FormatDev
		if existing, err := os.ReadFile(full); err == nil && IsProd(string(existing)) {
			format = rebase.FormatProd
		}
	}

	tmplPath := r.TemplatePath(number)
	source, err := os.ReadFile(filepath.Join(r.root, tmplPath))
	if err != nil {
		return "", fmt.Errorf("failed to read manual template %s: %w", tmplPath, err)
	}

	content, err := r.Expand(ctx, tmplPath, string(source), Data{Step: number, Format: format})
	if err != nil {
		return "", err
	}
	if format == rebase.FormatProd {
		content = ProdMarker + "\n" + content
	}

	if err := os.MkdirAll(filepath.Dir(full), 0750); err != nil {
		return "", fmt.Errorf("failed to create views directory: %w", err)
	}
	if err := os.WriteFile(full, []byte(content), 0600); err != nil {
		return "", fmt.Errorf("failed to write manual %s: %w", viewPath, err)
	}
	return viewPath, nil
}

// Expand executes a manual template.
//
// Available template functions:
//   - diffStep: annotated diff of a step, e.g. {{diffStep "1.2"}}
//   - viewPath: rendered manual of a super-step, e.g. {{viewPath "2"}}
func (r *Renderer) Expand(ctx context.Context, name, source string, data Data) (string, error) {
	funcs := template.FuncMap{
		"diffStep": func(number string) (string, error) {
			return diffstep.RenderStep(ctx, r.history, r.diff, number)
		},
		"viewPath": r.ViewPath,
	}

	t, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(source)
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

// IsProd reports whether a rendered manual is in production format
func IsProd(content string) bool {
	first, _, _ := strings.Cut(content, "\n")
	return first == ProdMarker
}

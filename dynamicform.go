// Package dynamicform turns declarative form configurations into rendered
// forms, detail views, and data tables. The root package re-exports the most
// common entry points; the pkg/ subpackages hold the full pipeline.
package dynamicform

import (
	"context"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-dynamicform/pkg/formconfig"
	"github.com/goliatone/go-dynamicform/pkg/orchestrator"
	"github.com/goliatone/go-dynamicform/pkg/render"
	"github.com/goliatone/go-dynamicform/pkg/renderers/vanilla"
	"github.com/goliatone/go-dynamicform/pkg/schema"
)

// FormConfig is the declarative form description consumed by every renderer.
type FormConfig = formconfig.FormConfig

// Section groups fields under a title.
type Section = formconfig.Section

// Field describes one input.
type Field = formconfig.Field

// Rule is an explicit validation override for a field.
type Rule = formconfig.Rule

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// Errors maps dotted field paths to validation messages.
type Errors = schema.Errors

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module for callers that want the one-call pipeline.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML normalizes and validates a configuration and renders it with
// the named renderer. It is the simplest entry point for callers that just
// want HTML output.
func GenerateHTML(ctx context.Context, config any, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Config:   config,
		Renderer: rendererName,
	})
}

// BuildSchema derives the validation schema for a configuration.
func BuildSchema(config any) schema.Schema {
	return schema.Build(config)
}

// Defaults computes the initial value tree for a configuration.
func Defaults(config any) map[string]any {
	return schema.Defaults(config)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithDefaultTheme sets the theme applied when requests carry no explicit
// theme name.
func WithDefaultTheme(name, variant string) orchestrator.Option {
	return orchestrator.WithDefaultTheme(name, variant)
}

// EmbeddedTemplates exposes the built-in vanilla renderer layout so callers
// can reuse or extend it without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

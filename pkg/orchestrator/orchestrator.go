// Package orchestrator coordinates the pipeline from form configuration to
// rendered output: normalization, validation, theme resolution, and renderer
// dispatch.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-dynamicform/pkg/formconfig"
	"github.com/goliatone/go-dynamicform/pkg/render"
	"github.com/goliatone/go-dynamicform/pkg/renderers/vanilla"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithDefaultTheme sets the theme and variant applied when a request carries
// no explicit theme.
func WithDefaultTheme(name, variant string) Option {
	return func(o *Orchestrator) {
		o.defaultTheme = name
		o.defaultVariant = variant
	}
}

// WithConfigTransformer registers a hook that can mutate the normalized
// configuration before validation and rendering.
func WithConfigTransformer(fn func(*formconfig.FormConfig) error) Option {
	return func(o *Orchestrator) {
		o.transformer = fn
	}
}

// WithoutValidation disables the fail-fast configuration check. Useful for
// previewing configs that are still being authored.
func WithoutValidation() Option {
	return func(o *Orchestrator) {
		o.skipValidation = true
	}
}

// Orchestrator coordinates the full pipeline from configuration to rendered
// output. It applies sensible defaults (vanilla renderer, embedded layout)
// while remaining open to dependency injection for advanced callers.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	themeSelector   theme.ThemeSelector
	defaultTheme    string
	defaultVariant  string
	transformer     func(*formconfig.FormConfig) error
	skipValidation  bool
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a form.
type Request struct {
	// Config is the form configuration: a FormConfig, a bare section list, or
	// a bare field list.
	Config any

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// ThemeName and ThemeVariant select the theme resolved through the
	// configured selector. Empty values fall back to the orchestrator's
	// defaults.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carries per-request instructions such as prefilled values
	// or server-side errors that renderers can surface. When omitted,
	// renderers receive the zero-value struct.
	RenderOptions render.RenderOptions
}

// Generate executes the normalize → validate → theme → render sequence and
// returns the rendered bytes (HTML for the default vanilla renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return nil, err
		}
	}

	cfg := formconfig.Normalize(req.Config)
	if o.transformer != nil {
		if err := o.transformer(&cfg); err != nil {
			return nil, fmt.Errorf("orchestrator: transform config: %w", err)
		}
	}
	if !o.skipValidation {
		if err := formconfig.Validate(cfg); err != nil {
			return nil, fmt.Errorf("orchestrator: invalid config: %w", err)
		}
	}

	options := req.RenderOptions
	if err := o.applyTheme(req, &options); err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, cfg, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}

	return output, nil
}

// applyTheme resolves the requested theme and merges its chrome classes into
// the render options. Explicit per-request chrome classes win over theme
// tokens.
func (o *Orchestrator) applyTheme(req Request, options *render.RenderOptions) error {
	if o.themeSelector == nil {
		return nil
	}

	name := req.ThemeName
	if name == "" {
		name = o.defaultTheme
	}
	variant := req.ThemeVariant
	if variant == "" {
		variant = o.defaultVariant
	}
	if name == "" {
		return nil
	}

	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}

	classes := vanilla.ChromeClassesFromTheme(selection)
	if len(classes) == 0 {
		return nil
	}
	for slot, class := range options.ChromeClasses {
		classes[slot] = class
	}
	options.ChromeClasses = classes
	return nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}

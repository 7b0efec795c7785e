package vanilla

import (
	"context"
	"fmt"
	"html"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/goliatone/go-dynamicform/pkg/formconfig"
	"github.com/goliatone/go-dynamicform/pkg/render"
	rendertemplate "github.com/goliatone/go-dynamicform/pkg/render/template"
	gotemplate "github.com/goliatone/go-dynamicform/pkg/render/template/gotemplate"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	layout           string
	chrome           map[string]string
	stylesheet       string
}

// WithTemplatesFS supplies an alternate layout bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads layout templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithLayout picks the layout template wrapping the form fragment.
func WithLayout(name string) Option {
	return func(cfg *config) {
		cfg.layout = strings.TrimSpace(name)
	}
}

// WithoutLayout emits the bare <form> fragment with no page shell, for hosts
// that embed the markup into their own pages.
func WithoutLayout() Option {
	return func(cfg *config) {
		cfg.layout = ""
	}
}

// WithChromeClasses sets renderer-level chrome class defaults. Per-request
// RenderOptions.ChromeClasses still win.
func WithChromeClasses(classes map[string]string) Option {
	return func(cfg *config) {
		if len(classes) == 0 {
			return
		}
		if cfg.chrome == nil {
			cfg.chrome = make(map[string]string, len(classes))
		}
		for slot, class := range classes {
			cfg.chrome[slot] = class
		}
	}
}

// WithStylesheet replaces the bundled CSS injected by the default layout.
func WithStylesheet(css string) Option {
	return func(cfg *config) {
		cfg.stylesheet = css
	}
}

// Renderer emits dependency-free HTML for a form configuration. The form body
// is built directly; an optional layout template provides the page shell.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	layout     string
	chrome     map[string]string
	stylesheet string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		layout:     "templates/layout",
		stylesheet: DefaultStylesheet(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:  renderer,
		layout:     cfg.layout,
		chrome:     cfg.chrome,
		stylesheet: cfg.stylesheet,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render builds the form markup. When a layout is configured the fragment is
// wrapped via the template renderer, otherwise the fragment is returned as-is.
func (r *Renderer) Render(_ context.Context, cfg formconfig.FormConfig, options render.RenderOptions) ([]byte, error) {
	chrome := r.mergedChrome(options.ChromeClasses)
	fragment := buildForm(cfg, options, chrome)

	if r.layout == "" {
		return []byte(fragment), nil
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate(r.layout, map[string]any{
		"title":      cfg.Title,
		"form":       fragment,
		"stylesheet": r.stylesheet,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render layout: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) mergedChrome(request map[string]string) map[string]string {
	if len(r.chrome) == 0 {
		return request
	}
	merged := make(map[string]string, len(r.chrome)+len(request))
	for slot, class := range r.chrome {
		merged[slot] = class
	}
	for slot, class := range request {
		merged[slot] = class
	}
	return merged
}

func buildForm(cfg formconfig.FormConfig, options render.RenderOptions, chrome map[string]string) string {
	var b strings.Builder
	b.Grow(2048)

	b.WriteString(`<form class="`)
	b.WriteString(html.EscapeString(chromeClass(chrome, "form")))
	b.WriteString(`"`)
	writeAttr(&b, "action", options.Action)
	method := options.Method
	if method == "" {
		method = "POST"
	}
	writeAttr(&b, "method", method)
	b.WriteString(" novalidate>\n")

	if cfg.Title != "" {
		b.WriteString(`<h1 class="`)
		b.WriteString(html.EscapeString(chromeClass(chrome, "header")))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(cfg.Title))
		b.WriteString("</h1>\n")
	}

	for _, hidden := range render.SortedHiddenFields(options.Hidden) {
		b.WriteString(`<input type="hidden" name="`)
		b.WriteString(html.EscapeString(hidden.Name))
		b.WriteString(`" value="`)
		b.WriteString(html.EscapeString(hidden.Value))
		b.WriteString("\">\n")
	}

	for _, section := range cfg.Sections {
		writeSection(&b, section, options, chrome)
	}

	if options.CustomActions != "" {
		b.WriteString(options.CustomActions)
		b.WriteString("\n")
	}
	if !options.HideActions {
		writeActions(&b, options, chrome)
	}
	if options.Footer != "" {
		b.WriteString(options.Footer)
		b.WriteString("\n")
	}

	b.WriteString("</form>\n")
	return b.String()
}

func writeSection(b *strings.Builder, section formconfig.Section, options render.RenderOptions, chrome map[string]string) {
	b.WriteString(`<fieldset class="`)
	b.WriteString(html.EscapeString(chromeClass(chrome, "section")))
	b.WriteString("\">\n")
	if section.Title != "" {
		b.WriteString("<legend>")
		b.WriteString(html.EscapeString(section.Title))
		b.WriteString("</legend>\n")
	}
	for _, field := range section.Fields {
		if field.Kind == formconfig.KindArray {
			writeArrayField(b, field, options, chrome)
			continue
		}
		writeField(b, field, field.Name, options, chrome)
	}
	b.WriteString("</fieldset>\n")
}

func writeField(b *strings.Builder, field formconfig.Field, path string, options render.RenderOptions, chrome map[string]string) {
	spec := formconfig.KindInfo(field.Kind)
	message := options.Errors[path]

	if spec.Widget == formconfig.WidgetHidden {
		writeControl(b, field, path, valueAt(options.Values, path), "", false)
		return
	}

	b.WriteString(`<div class="`)
	b.WriteString(html.EscapeString(chromeClass(chrome, "field")))
	b.WriteString("\">\n")

	if field.Label != "" {
		b.WriteString(`<label for="`)
		b.WriteString(html.EscapeString(controlID(path)))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(field.Label))
		b.WriteString("</label>\n")
	}

	writeControl(b, field, path, valueAt(options.Values, path), chromeClass(chrome, "control"), message != "")

	if message != "" {
		b.WriteString(`<p class="`)
		b.WriteString(html.EscapeString(chromeClass(chrome, "error")))
		b.WriteString(`" role="alert">`)
		b.WriteString(html.EscapeString(message))
		b.WriteString("</p>\n")
	}

	b.WriteString("</div>\n")
}

// writeArrayField renders one block per row plus add/remove affordances. Rows
// carry their identity key in data-row-id so client scripts can reconcile the
// DOM after add/remove without re-keying by position.
func writeArrayField(b *strings.Builder, field formconfig.Field, options render.RenderOptions, chrome map[string]string) {
	ids := options.RowIDs[field.Name]
	count := rowCount(ids, options.Values, field.Name)

	b.WriteString(`<div class="`)
	b.WriteString(html.EscapeString(chromeClass(chrome, "field")))
	b.WriteString(`" data-field="`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString("\">\n")

	if field.Label != "" {
		b.WriteString("<label>")
		b.WriteString(html.EscapeString(field.Label))
		b.WriteString("</label>\n")
	}

	for i := 0; i < count; i++ {
		index := strconv.Itoa(i)
		b.WriteString(`<div class="`)
		b.WriteString(html.EscapeString(chromeClass(chrome, "row")))
		b.WriteString(`"`)
		if i < len(ids) {
			writeAttr(b, "data-row-id", ids[i])
		}
		b.WriteString(">\n")

		for _, item := range field.ItemFields {
			writeField(b, item, field.Name+"."+index+"."+item.Name, options, chrome)
		}

		b.WriteString(`<button type="button" data-action="remove-row" data-field="`)
		b.WriteString(html.EscapeString(field.Name))
		b.WriteString(`" data-index="`)
		b.WriteString(index)
		b.WriteString("\">Remove</button>\n")
		b.WriteString("</div>\n")
	}

	b.WriteString(`<button type="button" data-action="add-row" data-field="`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString("\">Add</button>\n")

	if message := options.Errors[field.Name]; message != "" {
		b.WriteString(`<p class="`)
		b.WriteString(html.EscapeString(chromeClass(chrome, "error")))
		b.WriteString(`" role="alert">`)
		b.WriteString(html.EscapeString(message))
		b.WriteString("</p>\n")
	}

	b.WriteString("</div>\n")
}

func writeActions(b *strings.Builder, options render.RenderOptions, chrome map[string]string) {
	label := options.SubmitLabel
	if label == "" {
		label = "Submit"
	}
	if options.Submitting {
		label = "Submitting..."
	}

	b.WriteString(`<div class="`)
	b.WriteString(html.EscapeString(chromeClass(chrome, "actions")))
	b.WriteString("\">\n")
	b.WriteString(`<button type="submit"`)
	if options.Submitting {
		b.WriteString(" disabled")
	}
	b.WriteString(">")
	b.WriteString(html.EscapeString(label))
	b.WriteString("</button>\n")
	if options.ShowCancel {
		b.WriteString(`<button type="button" data-action="cancel">Cancel</button>` + "\n")
	}
	b.WriteString("</div>\n")
}

package orchestrator

import (
	"context"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-dynamicform/pkg/formconfig"
	"github.com/goliatone/go-dynamicform/pkg/render"
)

type captureRenderer struct {
	lastConfig  formconfig.FormConfig
	lastOptions render.RenderOptions
}

func (c *captureRenderer) Name() string        { return "capture" }
func (c *captureRenderer) ContentType() string { return "text/plain" }

func (c *captureRenderer) Render(_ context.Context, cfg formconfig.FormConfig, options render.RenderOptions) ([]byte, error) {
	c.lastConfig = cfg
	c.lastOptions = options
	return []byte("ok"), nil
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}

func testConfig() formconfig.FormConfig {
	return formconfig.FormConfig{
		Title: "Contact",
		Sections: []formconfig.Section{
			{Title: "Basics", Fields: []formconfig.Field{
				{Name: "name", Label: "Name", Kind: formconfig.KindText},
			}},
		},
	}
}

func TestOrchestrator_GenerateWithDefaults(t *testing.T) {
	orch := New()

	output, err := orch.Generate(context.Background(), Request{Config: testConfig()})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(output), `<form class="df-form"`) {
		t.Fatalf("expected vanilla output, got:\n%s", output)
	}
}

func TestOrchestrator_RejectsInvalidConfig(t *testing.T) {
	orch := New()

	invalid := formconfig.FormConfig{Sections: []formconfig.Section{
		{Title: "Dup", Fields: []formconfig.Field{
			{Name: "name", Kind: formconfig.KindText},
			{Name: "name", Kind: formconfig.KindText},
		}},
	}}

	if _, err := orch.Generate(context.Background(), Request{Config: invalid}); err == nil {
		t.Fatal("expected duplicate field names to fail")
	}

	lenient := New(WithoutValidation())
	if _, err := lenient.Generate(context.Background(), Request{Config: invalid}); err != nil {
		t.Fatalf("validation should be skippable: %v", err)
	}
}

func TestOrchestrator_ResolvesThemeChrome(t *testing.T) {
	selection := &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:    "acme",
			Version: "1.0.0",
			Tokens: map[string]string{
				"chrome.form":  "acme-form",
				"chrome.field": "acme-field",
			},
		},
	}
	selector := &stubThemeSelector{selection: selection}

	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
		WithThemeSelector(selector),
	)

	_, err := orch.Generate(context.Background(), Request{
		Config:       testConfig(),
		ThemeName:    "acme",
		ThemeVariant: "dark",
		RenderOptions: render.RenderOptions{
			ChromeClasses: map[string]string{"form": "request-wins"},
		},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(selector.calls) != 1 {
		t.Fatalf("expected selector called once, got %d", len(selector.calls))
	}
	if selector.calls[0].name != "acme" || selector.calls[0].variant != "dark" {
		t.Fatalf("selector called with %+v", selector.calls[0])
	}

	chrome := renderer.lastOptions.ChromeClasses
	if chrome["form"] != "request-wins" {
		t.Errorf("request chrome class should win, got %q", chrome["form"])
	}
	if chrome["field"] != "acme-field" {
		t.Errorf("theme chrome class missing, got %q", chrome["field"])
	}
}

func TestOrchestrator_DefaultThemeApplied(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{Theme: "base"}}

	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
		WithThemeSelector(selector),
		WithDefaultTheme("base", "light"),
	)

	if _, err := orch.Generate(context.Background(), Request{Config: testConfig()}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(selector.calls) != 1 || selector.calls[0].name != "base" || selector.calls[0].variant != "light" {
		t.Fatalf("default theme not applied: %+v", selector.calls)
	}
}

func TestOrchestrator_ConfigTransformer(t *testing.T) {
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
		WithConfigTransformer(func(cfg *formconfig.FormConfig) error {
			cfg.Title = "Renamed"
			return nil
		}),
	)

	if _, err := orch.Generate(context.Background(), Request{Config: testConfig()}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if renderer.lastConfig.Title != "Renamed" {
		t.Fatalf("transformer not applied, title = %q", renderer.lastConfig.Title)
	}
}

func TestOrchestrator_UnknownRenderer(t *testing.T) {
	orch := New()
	if _, err := orch.Generate(context.Background(), Request{
		Config:   testConfig(),
		Renderer: "missing",
	}); err == nil {
		t.Fatal("expected unknown renderer to fail")
	}
}

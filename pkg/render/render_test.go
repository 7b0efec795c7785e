package render_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynamicform/pkg/formconfig"
	"github.com/goliatone/go-dynamicform/pkg/render"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, formconfig.FormConfig, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry(t *testing.T) {
	registry := render.NewRegistry()

	if err := registry.Register(stubRenderer{name: "vanilla"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register(stubRenderer{name: "tui"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := registry.Register(stubRenderer{name: "vanilla"}); err == nil {
		t.Fatal("duplicate registration should fail")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatal("unnamed renderer should fail")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatal("nil renderer should fail")
	}

	got, err := registry.Get("tui")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name() != "tui" {
		t.Errorf("got renderer %q", got.Name())
	}
	if _, err := registry.Get("missing"); err == nil {
		t.Fatal("missing renderer should fail")
	}

	if diff := cmp.Diff([]string{"tui", "vanilla"}, registry.List()); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("vanilla") || registry.Has("missing") {
		t.Error("Has reports wrong membership")
	}
}

func TestRegistry_MustGetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustGet on missing renderer should panic")
		}
	}()
	render.NewRegistry().MustGet("missing")
}

func errorConfig() formconfig.FormConfig {
	return formconfig.FormConfig{Sections: []formconfig.Section{{
		Fields: []formconfig.Field{
			{Name: "email", Kind: formconfig.KindEmail},
			{Name: "friends", Kind: formconfig.KindArray, ItemFields: []formconfig.Field{
				{Name: "name", Kind: formconfig.KindText},
			}},
		},
	}}}
}

func TestMapErrorPayload(t *testing.T) {
	cases := []struct {
		name       string
		payload    map[string][]string
		wantFields map[string]string
		wantForm   []string
	}{
		{
			name:       "dotted path",
			payload:    map[string][]string{"email": {"Taken"}},
			wantFields: map[string]string{"email": "Taken"},
		},
		{
			name:       "json pointer",
			payload:    map[string][]string{"#/friends/0/name": {"Too short"}},
			wantFields: map[string]string{"friends.0.name": "Too short"},
		},
		{
			name:       "bracket index",
			payload:    map[string][]string{"friends[1].name": {"Required"}},
			wantFields: map[string]string{"friends.1.name": "Required"},
		},
		{
			name:       "wrapper prefix stripped",
			payload:    map[string][]string{"body.email": {"Invalid"}},
			wantFields: map[string]string{"email": "Invalid"},
		},
		{
			name:     "unknown field becomes form message",
			payload:  map[string][]string{"password": {"Too weak"}},
			wantForm: []string{"Too weak"},
		},
		{
			name:       "unknown row item collapses to the array field",
			payload:    map[string][]string{"friends.0.nickname": {"Unknown"}},
			wantFields: map[string]string{"friends": "Unknown"},
		},
		{
			name:    "blank messages dropped",
			payload: map[string][]string{"email": {"  ", ""}},
		},
		{
			name:       "first non-blank message wins",
			payload:    map[string][]string{"email": {"", "Taken", "Also bad"}},
			wantFields: map[string]string{"email": "Taken"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapping := render.MapErrorPayload(errorConfig(), tc.payload)
			if diff := cmp.Diff(tc.wantFields, mapping.Fields); diff != "" {
				t.Errorf("fields mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.wantForm, mapping.Form); diff != "" {
				t.Errorf("form messages mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMapErrorPayload_Empty(t *testing.T) {
	mapping := render.MapErrorPayload(errorConfig(), nil)
	if mapping.Fields != nil || mapping.Form != nil {
		t.Fatalf("empty payload should map to zero mapping, got %+v", mapping)
	}
}

func TestHiddenFieldHelpers(t *testing.T) {
	if got := render.MethodOverride("patch"); got.Name != "_method" || got.Value != "PATCH" {
		t.Errorf("MethodOverride = %+v", got)
	}
	if got := render.CSRFToken("_csrf", "tok123"); got.Name != "_csrf" || got.Value != "tok123" {
		t.Errorf("CSRFToken = %+v", got)
	}
	if got := render.Hidden("  count  ", 3); got.Name != "count" || got.Value != "3" {
		t.Errorf("Hidden = %+v", got)
	}
}

func TestMergeHiddenFields(t *testing.T) {
	base := map[string]string{"_csrf": "old", "tenant": "acme"}
	merged := render.MergeHiddenFields(base,
		render.CSRFToken("_csrf", "new"),
		render.Hidden("", "ignored"),
	)

	want := map[string]string{"_csrf": "new", "tenant": "acme"}
	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
	if base["_csrf"] != "old" {
		t.Fatal("merge mutated its input")
	}

	if got := render.MergeHiddenFields(nil); got != nil {
		t.Fatalf("empty merge = %v", got)
	}
}

func TestSortedHiddenFields(t *testing.T) {
	fields := render.SortedHiddenFields(map[string]string{
		"_method": "PUT",
		"_csrf":   "tok",
		"  ":      "dropped",
	})

	names := make([]string, 0, len(fields))
	for _, field := range fields {
		names = append(names, field.Name)
	}
	if strings.Join(names, ",") != "_csrf,_method" {
		t.Fatalf("order = %v", names)
	}

	if got := render.SortedHiddenFields(nil); got != nil {
		t.Fatalf("empty input = %v", got)
	}
}

package tui_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynamicform/pkg/formconfig"
	"github.com/goliatone/go-dynamicform/pkg/render"
	"github.com/goliatone/go-dynamicform/pkg/renderers/tui"
)

// scriptDriver replays canned answers and records validator outcomes so
// renderer logic is testable without a terminal.
type scriptDriver struct {
	inputs    []string
	confirms  []bool
	selects   []int
	textareas []string

	validationErrs []string
	infos          []string
}

func (d *scriptDriver) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
	answer := d.pop(&d.inputs)
	if cfg.Validator != nil {
		if err := cfg.Validator(answer); err != nil {
			d.validationErrs = append(d.validationErrs, err.Error())
		}
	}
	return answer, nil
}

func (d *scriptDriver) Password(ctx context.Context, cfg tui.InputConfig) (string, error) {
	return d.Input(ctx, cfg)
}

func (d *scriptDriver) Confirm(_ context.Context, _ tui.ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return false, nil
	}
	answer := d.confirms[0]
	d.confirms = d.confirms[1:]
	return answer, nil
}

func (d *scriptDriver) Select(_ context.Context, _ tui.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return 0, nil
	}
	answer := d.selects[0]
	d.selects = d.selects[1:]
	return answer, nil
}

func (d *scriptDriver) TextArea(_ context.Context, _ tui.TextAreaConfig) (string, error) {
	return d.pop(&d.textareas), nil
}

func (d *scriptDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func (d *scriptDriver) pop(queue *[]string) string {
	if len(*queue) == 0 {
		return ""
	}
	answer := (*queue)[0]
	*queue = (*queue)[1:]
	return answer
}

func sessionConfig() formconfig.FormConfig {
	return formconfig.FormConfig{
		Title: "New User",
		Sections: []formconfig.Section{
			{
				Title: "Account",
				Fields: []formconfig.Field{
					{Name: "name", Label: "Name", Kind: formconfig.KindText},
					{Name: "age", Label: "Age", Kind: formconfig.KindNumber},
					{Name: "role", Label: "Role", Kind: formconfig.KindSelect, Options: []formconfig.Option{
						{Value: "admin", Label: "Admin"},
						{Value: "viewer", Label: "Viewer"},
					}},
					{Name: "active", Label: "Active", Kind: formconfig.KindSwitch},
				},
			},
		},
	}
}

func TestRenderer_CollectsValues(t *testing.T) {
	driver := &scriptDriver{
		inputs:   []string{"Ada", "42"},
		selects:  []int{1},
		confirms: []bool{true},
	}

	renderer, err := tui.New(tui.WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(context.Background(), sessionConfig(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(output, &got); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}

	want := map[string]any{
		"name":   "Ada",
		"age":    float64(42),
		"role":   "viewer",
		"active": true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("collected values mismatch (-want +got):\n%s", diff)
	}

	if len(driver.infos) == 0 || driver.infos[0] != "New User" {
		t.Errorf("expected form title announcement, got %v", driver.infos)
	}
}

func TestRenderer_ValidatorRejectsBadInput(t *testing.T) {
	driver := &scriptDriver{
		inputs:   []string{"", "abc"},
		selects:  []int{0},
		confirms: []bool{false},
	}

	renderer, err := tui.New(tui.WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	if _, err := renderer.Render(context.Background(), sessionConfig(), render.RenderOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}

	want := []string{"Required", "Must be a number"}
	if diff := cmp.Diff(want, driver.validationErrs); diff != "" {
		t.Fatalf("validator messages mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_ArrayPromptsUntilDone(t *testing.T) {
	cfg := formconfig.FormConfig{
		Sections: []formconfig.Section{
			{
				Title: "Friends",
				Fields: []formconfig.Field{
					{Name: "friends", Label: "Friends", Kind: formconfig.KindArray, ItemFields: []formconfig.Field{
						{Name: "name", Label: "Name", Kind: formconfig.KindText},
					}},
				},
			},
		},
	}

	driver := &scriptDriver{
		inputs:   []string{"Grace", "Edsger"},
		confirms: []bool{true, false},
	}

	renderer, err := tui.New(tui.WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(context.Background(), cfg, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(output, &got); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}

	rows, ok := got["friends"].([]any)
	if !ok || len(rows) != 2 {
		t.Fatalf("expected two rows, got %v", got["friends"])
	}
}

func TestRenderer_FormURLEncodedOutput(t *testing.T) {
	driver := &scriptDriver{
		inputs:   []string{"Ada", "42"},
		selects:  []int{0},
		confirms: []bool{true},
	}

	renderer, err := tui.New(
		tui.WithPromptDriver(driver),
		tui.WithOutputFormat(tui.OutputFormatFormURLEncoded),
	)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	if got := renderer.ContentType(); got != "application/x-www-form-urlencoded" {
		t.Fatalf("content type = %q", got)
	}

	output, err := renderer.Render(context.Background(), sessionConfig(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{"name=Ada", "age=42", "role=admin", "active=true"} {
		if !containsParam(string(output), want) {
			t.Errorf("output %q missing %q", output, want)
		}
	}
}

func containsParam(encoded, param string) bool {
	for _, part := range splitParams(encoded) {
		if part == param {
			return true
		}
	}
	return false
}

func splitParams(encoded string) []string {
	var parts []string
	start := 0
	for i := 0; i <= len(encoded); i++ {
		if i == len(encoded) || encoded[i] == '&' {
			parts = append(parts, encoded[start:i])
			start = i + 1
		}
	}
	return parts
}

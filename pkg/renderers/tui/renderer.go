// Package tui drives a form configuration as an interactive terminal
// session: one prompt per field, answers validated with the same rules the
// HTML renderers surface inline.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-dynamicform/pkg/formconfig"
	"github.com/goliatone/go-dynamicform/pkg/render"
	"github.com/goliatone/go-dynamicform/pkg/schema"
)

// Renderer implements render.Renderer for terminal-driven sessions. Render
// walks the configuration prompting for each field and returns the collected
// value tree serialized in the configured output format.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	driver, err := newSurveyDriver()
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		driver:       driver,
		outputFormat: OutputFormatJSON,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatFormURLEncoded {
		return "application/x-www-form-urlencoded"
	}
	return "application/json"
}

// Render prompts for every configured field and serializes the answers.
// Prefilled values from options.Values become prompt defaults.
func (r *Renderer) Render(ctx context.Context, cfg formconfig.FormConfig, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	rules := schema.Build(cfg)
	values := schema.MergeInitial(schema.Defaults(cfg), options.Values)

	if cfg.Title != "" {
		if err := r.driver.Info(ctx, cfg.Title); err != nil {
			return nil, err
		}
	}

	for _, section := range cfg.Sections {
		if section.Title != "" {
			if err := r.driver.Info(ctx, "== "+section.Title+" =="); err != nil {
				return nil, err
			}
		}
		for _, field := range section.Fields {
			value, err := r.promptField(ctx, field, rules.Fields[field.Name], values[field.Name])
			if err != nil {
				return nil, err
			}
			values[field.Name] = value
		}
	}

	return r.serialize(values)
}

func (r *Renderer) promptField(ctx context.Context, field formconfig.Field, rule formconfig.Rule, current any) (any, error) {
	if field.Kind == formconfig.KindArray {
		return r.promptArray(ctx, field, rule, current)
	}

	spec := formconfig.KindInfo(field.Kind)
	switch spec.Widget {
	case formconfig.WidgetCheckbox:
		return r.driver.Confirm(ctx, ConfirmConfig{
			Message: messageFor(field),
			Default: current == true,
		})

	case formconfig.WidgetSelect, formconfig.WidgetRadio:
		labels := make([]string, len(field.Options))
		defaultIndex := 0
		for i, option := range field.Options {
			labels[i] = option.Label
			if str, ok := current.(string); ok && str == option.Value {
				defaultIndex = i
			}
		}
		index, err := r.driver.Select(ctx, SelectConfig{
			Message:      messageFor(field),
			Options:      labels,
			DefaultIndex: defaultIndex,
		})
		if err != nil {
			return nil, err
		}
		if index < 0 || index >= len(field.Options) {
			return "", nil
		}
		return field.Options[index].Value, nil

	case formconfig.WidgetTextarea:
		return r.driver.TextArea(ctx, TextAreaConfig{
			Message: messageFor(field),
			Default: stringOr(current),
		})

	case formconfig.WidgetFile:
		path, err := r.driver.Input(ctx, InputConfig{
			Message: messageFor(field) + " (file path)",
		})
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(path) == "" {
			return nil, nil
		}
		return path, nil

	case formconfig.WidgetHidden:
		return current, nil

	default:
		return r.promptScalar(ctx, field, rule, current)
	}
}

// promptScalar handles single-line inputs, including numeric coercion for
// number and range kinds. Validation runs inside the survey loop so the user
// is re-prompted on bad input instead of failing the session.
func (r *Renderer) promptScalar(ctx context.Context, field formconfig.Field, rule formconfig.Rule, current any) (any, error) {
	numeric := field.Kind == formconfig.KindNumber || field.Kind == formconfig.KindRange

	input := InputConfig{
		Message:   messageFor(field),
		Default:   promptDefault(current),
		Validator: leafValidator(field.Name, rule, numeric),
	}

	ask := r.driver.Input
	if field.Kind == formconfig.KindPassword {
		ask = r.driver.Password
	}

	answer, err := ask(ctx, input)
	if err != nil {
		return nil, err
	}
	if numeric {
		return coerceNumber(answer), nil
	}
	return answer, nil
}

func (r *Renderer) promptArray(ctx context.Context, field formconfig.Field, rule formconfig.Rule, current any) (any, error) {
	label := field.Label
	if label == "" {
		label = field.Name
	}

	var rows []map[string]any
	for {
		row := make(map[string]any, len(field.ItemFields))
		for _, item := range field.ItemFields {
			value, err := r.promptField(ctx, item, rule.Rows[item.Name], formconfig.ZeroValue(item.Kind))
			if err != nil {
				return nil, err
			}
			row[item.Name] = value
		}
		rows = append(rows, row)

		more, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: "Add another " + strings.ToLower(label) + "?",
		})
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}
	return rows, nil
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	if r.outputFormat == OutputFormatFormURLEncoded {
		form := url.Values{}
		flattenInto(form, "", values)
		return []byte(form.Encode()), nil
	}

	payload, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("tui: serialize values: %w", err)
	}
	return payload, nil
}

func flattenInto(form url.Values, prefix string, value any) {
	switch node := value.(type) {
	case map[string]any:
		for key, child := range node {
			flattenInto(form, joinPath(prefix, key), child)
		}
	case []map[string]any:
		for i, row := range node {
			flattenInto(form, joinPath(prefix, strconv.Itoa(i)), row)
		}
	case []any:
		for i, item := range node {
			flattenInto(form, joinPath(prefix, strconv.Itoa(i)), item)
		}
	case nil:
	default:
		form.Set(prefix, fmt.Sprint(node))
	}
}

func joinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + "." + segment
}

// leafValidator adapts a field rule into a survey validator. The raw string
// is coerced the same way the committed value will be, so the rule sees what
// it would see at submit time.
func leafValidator(name string, rule formconfig.Rule, numeric bool) func(string) error {
	probe := schema.Schema{Fields: map[string]formconfig.Rule{name: rule}}
	return func(input string) error {
		var value any = input
		if numeric {
			value = coerceNumber(input)
		}
		errs := probe.Validate(map[string]any{name: value})
		if msg, ok := errs.Field(name); ok {
			return errors.New(msg)
		}
		return nil
	}
}

// coerceNumber parses numeric input; non-numeric text becomes the raw string
// so the bounded-number rule reports "Must be a number" instead of silently
// zeroing the answer.
func coerceNumber(input string) any {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}
	if num, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return num
	}
	return trimmed
}

func messageFor(field formconfig.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func stringOr(value any) string {
	if str, ok := value.(string); ok {
		return str
	}
	return ""
}

func promptDefault(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == 0 {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

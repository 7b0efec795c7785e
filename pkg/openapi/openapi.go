// Package openapi derives form configurations from OpenAPI documents so
// write operations can be rendered without hand-maintaining a config.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-dynamicform/pkg/formconfig"
)

// bodyMethods are the HTTP methods whose request bodies become forms.
var bodyMethods = []string{"POST", "PUT", "PATCH"}

// LoadOperations parses an OpenAPI document and derives one form
// configuration per operation that accepts a JSON request body, keyed by
// operationId (or "method:path" when the id is missing).
func LoadOperations(ctx context.Context, raw []byte) (map[string]formconfig.FormConfig, error) {
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi: document does not contain any paths")
	}

	configs := make(map[string]formconfig.FormConfig)
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, method := range bodyMethods {
			operation := item.GetOperation(method)
			if operation == nil {
				continue
			}
			body := requestSchema(operation)
			if body == nil {
				continue
			}
			id := operation.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			configs[id] = configFromSchema(operation, body)
		}
	}

	if len(configs) == 0 {
		return nil, errors.New("openapi: no operations with request bodies found")
	}
	return configs, nil
}

// OperationConfig extracts the form configuration for one operation.
func OperationConfig(ctx context.Context, raw []byte, operationID string) (formconfig.FormConfig, error) {
	configs, err := LoadOperations(ctx, raw)
	if err != nil {
		return formconfig.FormConfig{}, err
	}
	cfg, ok := configs[operationID]
	if !ok {
		return formconfig.FormConfig{}, fmt.Errorf("openapi: operation %q not found", operationID)
	}
	return cfg, nil
}

func requestSchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	media := operation.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil
	}
	schema := media.Schema.Value
	if !schema.Type.Is("object") || len(schema.Properties) == 0 {
		return nil
	}
	return schema
}

func configFromSchema(operation *openapi3.Operation, body *openapi3.Schema) formconfig.FormConfig {
	title := operation.Summary
	if title == "" {
		title = body.Title
	}

	section := formconfig.Section{Title: body.Title}
	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	for _, name := range sortedKeys(body.Properties) {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		section.Fields = append(section.Fields, fieldFromProperty(name, ref.Value, required[name]))
	}

	return formconfig.FormConfig{
		Title:    title,
		Sections: []formconfig.Section{section},
	}
}

func fieldFromProperty(name string, prop *openapi3.Schema, required bool) formconfig.Field {
	field := formconfig.Field{
		Name:  name,
		Label: labelFor(name, prop),
		Kind:  kindFor(prop),
	}

	if len(prop.Enum) > 0 {
		field.Kind = formconfig.KindSelect
		for _, raw := range prop.Enum {
			value := fmt.Sprint(raw)
			field.Options = append(field.Options, formconfig.Option{Value: value, Label: value})
		}
	}

	if field.Kind == formconfig.KindArray {
		items := prop.Items.Value
		itemRequired := make(map[string]bool, len(items.Required))
		for _, itemName := range items.Required {
			itemRequired[itemName] = true
		}
		for _, itemName := range sortedKeys(items.Properties) {
			ref := items.Properties[itemName]
			if ref == nil || ref.Value == nil {
				continue
			}
			field.ItemFields = append(field.ItemFields, fieldFromProperty(itemName, ref.Value, itemRequired[itemName]))
		}
		return field
	}

	field.Validation = ruleFor(prop, field.Kind, required)
	return field
}

// ruleFor translates schema constraints into an explicit validation override.
// Fields without constraints keep the kind-derived default, so a nil return
// is the common case for required fields.
func ruleFor(prop *openapi3.Schema, kind formconfig.FieldKind, required bool) *formconfig.Rule {
	switch kind {
	case formconfig.KindNumber:
		if prop.Min == nil && prop.Max == nil {
			return nil
		}
		rule := formconfig.Rule{Kind: formconfig.RuleBoundedNumber, Min: prop.Min, Max: prop.Max}
		return &rule
	case formconfig.KindCheckbox, formconfig.KindSelect, formconfig.KindFile:
		return nil
	default:
		if !required {
			rule := formconfig.Rule{Kind: formconfig.RuleOptionalString}
			return &rule
		}
		if prop.MinLength > 1 || prop.MaxLength != nil {
			minLen := int(prop.MinLength)
			rule := formconfig.Rule{Kind: formconfig.RuleRequiredString, MinLen: &minLen}
			if prop.MaxLength != nil {
				maxLen := int(*prop.MaxLength)
				rule.MaxLen = &maxLen
			}
			return &rule
		}
		return nil
	}
}

func kindFor(prop *openapi3.Schema) formconfig.FieldKind {
	switch {
	case prop.Type.Is("boolean"):
		return formconfig.KindCheckbox
	case prop.Type.Is("integer"), prop.Type.Is("number"):
		return formconfig.KindNumber
	case prop.Type.Is("array"):
		if prop.Items != nil && prop.Items.Value != nil && prop.Items.Value.Type.Is("object") {
			return formconfig.KindArray
		}
		return formconfig.KindText
	case prop.Type.Is("string"):
		switch prop.Format {
		case "email":
			return formconfig.KindEmail
		case "password":
			return formconfig.KindPassword
		case "date":
			return formconfig.KindDate
		case "date-time":
			return formconfig.KindDateTimeLocal
		case "uri", "url":
			return formconfig.KindURL
		case "binary":
			return formconfig.KindFile
		default:
			return formconfig.KindText
		}
	default:
		return formconfig.KindText
	}
}

func labelFor(name string, prop *openapi3.Schema) string {
	if prop.Title != "" {
		return prop.Title
	}
	return humanize(name)
}

// humanize turns "firstName" and "first_name" into "First Name".
func humanize(name string) string {
	var words []string
	var current strings.Builder
	for i, r := range name {
		switch {
		case r == '_' || r == '-' || r == '.':
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
		case i > 0 && r >= 'A' && r <= 'Z':
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func sortedKeys(properties openapi3.Schemas) []string {
	keys := make([]string, 0, len(properties))
	for key := range properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

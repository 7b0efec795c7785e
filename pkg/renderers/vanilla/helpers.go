package vanilla

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-dynamicform/pkg/formconfig"
)

// controlID derives the id/for attribute value for a control from its dotted
// path. Dots become dashes so the id stays selector-safe.
func controlID(path string) string {
	return "df-" + strings.ReplaceAll(path, ".", "-")
}

// placeholderFor returns the explicit placeholder, or derives one from the
// label ("Enter first name", "Select role").
func placeholderFor(field formconfig.Field) string {
	if field.Placeholder != "" {
		return field.Placeholder
	}
	if field.Label == "" {
		return ""
	}
	verb := "Enter"
	if field.Kind == formconfig.KindSelect {
		verb = "Select"
	}
	return verb + " " + strings.ToLower(field.Label)
}

// valueAt resolves a dotted path against the values map. Both flattened keys
// ("friends.0.name") and nested trees (maps with []map or []any rows) are
// supported so callers can pass a form.Controller snapshot or request data.
func valueAt(values map[string]any, path string) any {
	if len(values) == 0 || path == "" {
		return nil
	}
	if value, ok := values[path]; ok {
		return value
	}

	segments := strings.Split(path, ".")
	var current any = values
	for _, segment := range segments {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil
			}
			current = next
		case []map[string]any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return nil
			}
			current = node[index]
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return nil
			}
			current = node[index]
		default:
			return nil
		}
	}
	return current
}

// rowCount reports how many array rows to render for a field, preferring the
// explicit row identity list and falling back to the current value. A field
// with neither renders one empty row.
func rowCount(ids []string, values map[string]any, name string) int {
	if len(ids) > 0 {
		return len(ids)
	}
	switch rows := valueAt(values, name).(type) {
	case []map[string]any:
		return len(rows)
	case []any:
		return len(rows)
	}
	return 1
}

// stringValue renders a value for an HTML attribute. Floats drop trailing
// zeros so 42.0 prints as "42".
func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// boolValue interprets checkbox state from a raw value.
func boolValue(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "on" || v == "1"
	case float64:
		return v != 0
	case int:
		return v != 0
	}
	return false
}

package schema

import (
	"github.com/goliatone/go-dynamicform/pkg/formconfig"
)

// Defaults walks a form configuration and produces the initial value tree
// mirroring the schema's shape: "" for string-like kinds, 0 for numeric
// kinds, false for booleans, nil for files. Array fields start pre-populated
// with exactly one placeholder row, never zero rows.
func Defaults(config any) map[string]any {
	cfg := formconfig.Normalize(config)
	values := make(map[string]any)
	for _, section := range cfg.Sections {
		for _, field := range section.Fields {
			if field.Kind == formconfig.KindArray {
				values[field.Name] = []map[string]any{EmptyRow(field)}
				continue
			}
			values[field.Name] = formconfig.ZeroValue(field.Kind)
		}
	}
	return values
}

// EmptyRow builds one fresh default row for an array field from its item
// fields. Each call returns a new map so rows never share state.
func EmptyRow(field formconfig.Field) map[string]any {
	row := make(map[string]any, len(field.ItemFields))
	for _, item := range field.ItemFields {
		row[item.Name] = formconfig.ZeroValue(item.Kind)
	}
	return row
}

// MergeInitial shallowly merges caller-provided initial data over computed
// defaults: matching top-level keys are replaced wholesale, so a partial
// array value replaces the entire default single-row array for that key
// rather than merging per row. Neither input is mutated.
func MergeInitial(defaults, initial map[string]any) map[string]any {
	merged := make(map[string]any, len(defaults)+len(initial))
	for key, value := range defaults {
		merged[key] = value
	}
	for key, value := range initial {
		merged[key] = value
	}
	return merged
}

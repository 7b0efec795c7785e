package schema

import (
	"github.com/goliatone/go-dynamicform/pkg/formconfig"
)

// Schema is the derived structural validation contract for a configuration's
// value tree: one rule per leaf field name. Array field rules carry their row
// rules in Rule.Rows.
type Schema struct {
	Fields map[string]formconfig.Rule
}

// Build walks a form configuration and produces its validation schema. The
// input may be a FormConfig, a bare []Section, or a bare []Field; both call
// conventions observed at the boundary are accepted via formconfig.Normalize.
//
// An explicit Field.Validation override always wins over the kind-derived
// default. Array fields recurse one level into their item fields. Duplicate
// names overwrite earlier entries (last write wins); reject them up front
// with formconfig.Validate when that is not acceptable.
func Build(config any) Schema {
	cfg := formconfig.Normalize(config)
	fields := make(map[string]formconfig.Rule)
	for _, section := range cfg.Sections {
		for _, field := range section.Fields {
			fields[field.Name] = fieldRule(field)
		}
	}
	return Schema{Fields: fields}
}

func fieldRule(field formconfig.Field) formconfig.Rule {
	if field.Kind == formconfig.KindArray {
		rows := make(map[string]formconfig.Rule, len(field.ItemFields))
		for _, item := range field.ItemFields {
			rows[item.Name] = leafRule(item)
		}
		return formconfig.Rule{Kind: formconfig.RuleArray, Rows: rows}
	}
	return leafRule(field)
}

func leafRule(field formconfig.Field) formconfig.Rule {
	if field.Validation != nil {
		return field.Validation.Clone()
	}
	return formconfig.DefaultRule(field)
}

package formconfig

import (
	"fmt"
	"strings"
)

// Normalize accepts the two call conventions observed at the boundary — a
// full FormConfig ({sections: [...]}) or a bare slice of sections or fields —
// and always produces a FormConfig. A bare field slice becomes a single
// untitled section. Unsupported values normalize to an empty config rather
// than failing, so consumers downstream never type-sniff again.
func Normalize(value any) FormConfig {
	switch v := value.(type) {
	case FormConfig:
		return v
	case *FormConfig:
		if v == nil {
			return FormConfig{}
		}
		return *v
	case []Section:
		return FormConfig{Sections: v}
	case Section:
		return FormConfig{Sections: []Section{v}}
	case []Field:
		return FormConfig{Sections: []Section{{Fields: v}}}
	default:
		return FormConfig{}
	}
}

// Validate checks a config for caller programming errors. Duplicate field
// names within one section or one array row are rejected outright instead of
// silently overwriting earlier entries when the schema mapping is built.
func Validate(cfg FormConfig) error {
	if len(cfg.Sections) == 0 {
		return fmt.Errorf("formconfig: config has no sections")
	}
	for si, section := range cfg.Sections {
		seen := make(map[string]struct{}, len(section.Fields))
		for _, field := range section.Fields {
			name := strings.TrimSpace(field.Name)
			if name == "" {
				return fmt.Errorf("formconfig: section %q (index %d) contains a field with no name", section.Title, si)
			}
			if _, dup := seen[name]; dup {
				return fmt.Errorf("formconfig: duplicate field name %q in section %q", name, section.Title)
			}
			seen[name] = struct{}{}

			if err := validateField(field, section.Title); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateField(field Field, sectionTitle string) error {
	switch field.Kind {
	case KindArray:
		if len(field.ItemFields) == 0 {
			return fmt.Errorf("formconfig: array field %q in section %q has no itemFields", field.Name, sectionTitle)
		}
		seen := make(map[string]struct{}, len(field.ItemFields))
		for _, item := range field.ItemFields {
			name := strings.TrimSpace(item.Name)
			if name == "" {
				return fmt.Errorf("formconfig: array field %q has an item field with no name", field.Name)
			}
			if _, dup := seen[name]; dup {
				return fmt.Errorf("formconfig: duplicate item field name %q in array field %q", name, field.Name)
			}
			seen[name] = struct{}{}
			if item.Kind == KindArray {
				return fmt.Errorf("formconfig: array field %q nests another array field %q; arrays of arrays are not supported", field.Name, item.Name)
			}
		}
	case KindSelect, KindRadio:
		if len(field.Options) == 0 {
			return fmt.Errorf("formconfig: %s field %q in section %q has no options", field.Kind, field.Name, sectionTitle)
		}
	}
	return nil
}

package vanilla

import (
	"html"
	"strings"

	"github.com/goliatone/go-dynamicform/pkg/formconfig"
)

// writeControl emits the control markup for one field. Dispatch happens on
// the widget the registry resolves for the field kind, so unknown kinds fall
// back to a plain text input.
func writeControl(b *strings.Builder, field formconfig.Field, path string, value any, class string, invalid bool) {
	spec := formconfig.KindInfo(field.Kind)
	id := controlID(path)

	switch spec.Widget {
	case formconfig.WidgetTextarea:
		writeOpenTag(b, "textarea", id, path, class, invalid)
		writeAttr(b, "placeholder", placeholderFor(field))
		b.WriteString(">")
		b.WriteString(html.EscapeString(stringValue(value)))
		b.WriteString("</textarea>\n")

	case formconfig.WidgetSelect:
		writeOpenTag(b, "select", id, path, class, invalid)
		b.WriteString(">\n")
		selected := stringValue(value)
		b.WriteString(`  <option value="">`)
		b.WriteString(html.EscapeString(placeholderFor(field)))
		b.WriteString("</option>\n")
		for _, option := range field.Options {
			b.WriteString(`  <option value="`)
			b.WriteString(html.EscapeString(option.Value))
			b.WriteString(`"`)
			if option.Value == selected && selected != "" {
				b.WriteString(` selected`)
			}
			b.WriteString(">")
			b.WriteString(html.EscapeString(option.Label))
			b.WriteString("</option>\n")
		}
		b.WriteString("</select>\n")

	case formconfig.WidgetRadio:
		checked := stringValue(value)
		for i, option := range field.Options {
			optionID := id + "-" + option.Value
			b.WriteString(`<label for="`)
			b.WriteString(html.EscapeString(optionID))
			b.WriteString(`">`)
			b.WriteString(`<input type="radio" id="`)
			b.WriteString(html.EscapeString(optionID))
			b.WriteString(`" name="`)
			b.WriteString(html.EscapeString(path))
			b.WriteString(`" value="`)
			b.WriteString(html.EscapeString(option.Value))
			b.WriteString(`"`)
			if option.Value == checked && checked != "" {
				b.WriteString(` checked`)
			}
			if invalid && i == 0 {
				b.WriteString(` aria-invalid="true"`)
			}
			b.WriteString("> ")
			b.WriteString(html.EscapeString(option.Label))
			b.WriteString("</label>\n")
		}

	case formconfig.WidgetCheckbox:
		writeOpenTag(b, "input", id, path, class, invalid)
		writeAttr(b, "type", "checkbox")
		writeAttr(b, "value", "true")
		if boolValue(value) {
			b.WriteString(` checked`)
		}
		if field.Kind == formconfig.KindSwitch {
			writeAttr(b, "role", "switch")
		}
		b.WriteString(">\n")

	case formconfig.WidgetFile:
		writeOpenTag(b, "input", id, path, class, invalid)
		writeAttr(b, "type", "file")
		b.WriteString(">\n")

	case formconfig.WidgetHidden:
		writeOpenTag(b, "input", id, path, "", false)
		writeAttr(b, "type", "hidden")
		writeAttr(b, "value", stringValue(value))
		b.WriteString(">\n")

	default:
		writeOpenTag(b, "input", id, path, class, invalid)
		writeAttr(b, "type", spec.InputType)
		writeAttr(b, "placeholder", placeholderFor(field))
		writeAttr(b, "value", stringValue(value))
		writeNumericBounds(b, field)
		b.WriteString(">\n")
	}
}

func writeOpenTag(b *strings.Builder, tag, id, name, class string, invalid bool) {
	b.WriteString("<")
	b.WriteString(tag)
	writeAttr(b, "id", id)
	writeAttr(b, "name", name)
	writeAttr(b, "class", class)
	if invalid {
		b.WriteString(` aria-invalid="true"`)
	}
}

func writeAttr(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(value))
	b.WriteString(`"`)
}

// writeNumericBounds surfaces rule bounds as native min/max attributes for
// number and range inputs.
func writeNumericBounds(b *strings.Builder, field formconfig.Field) {
	if field.Kind != formconfig.KindNumber && field.Kind != formconfig.KindRange {
		return
	}
	rule := field.Validation
	if rule == nil {
		derived := formconfig.DefaultRule(field)
		rule = &derived
	}
	if rule.Min != nil {
		writeAttr(b, "min", stringValue(*rule.Min))
	}
	if rule.Max != nil {
		writeAttr(b, "max", stringValue(*rule.Max))
	}
}

package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-dynamicform/pkg/formconfig"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Errors maps dotted field paths (e.g. "friends.0.name") to the first rule
// violation found for that leaf. An empty map means the value tree is valid.
type Errors map[string]string

// Has reports whether any field failed validation.
func (e Errors) Has() bool {
	return len(e) > 0
}

// Field returns the message recorded for a dotted path, if any.
func (e Errors) Field(path string) (string, bool) {
	msg, ok := e[path]
	return msg, ok
}

// Validate checks a value tree against the schema. Each failing leaf
// contributes exactly one message: the first violated constraint, not all of
// them. Values missing from the tree are validated as nil, so required rules
// still fire for absent keys.
func (s Schema) Validate(values map[string]any) Errors {
	errs := make(Errors)
	for name, rule := range s.Fields {
		validateValue(name, rule, values[name], errs)
	}
	return errs
}

func validateValue(path string, rule formconfig.Rule, value any, errs Errors) {
	if rule.Kind == formconfig.RuleArray {
		validateArray(path, rule, value, errs)
		return
	}
	if msg := checkLeaf(rule, value); msg != "" {
		errs[path] = msg
	}
}

func validateArray(path string, rule formconfig.Rule, value any, errs Errors) {
	if value == nil {
		errs[path] = messageOr(rule, "Required")
		return
	}
	for idx, row := range rowsOf(value) {
		for name, itemRule := range rule.Rows {
			leafPath := fmt.Sprintf("%s.%d.%s", path, idx, name)
			if msg := checkLeaf(itemRule, row[name]); msg != "" {
				errs[leafPath] = msg
			}
		}
	}
}

// rowsOf tolerates both the typed row slices this module produces and the
// []any shape a JSON decoder yields. Other shapes yield no rows and validate
// vacuously.
func rowsOf(value any) []map[string]any {
	switch rows := value.(type) {
	case []map[string]any:
		return rows
	case []any:
		out := make([]map[string]any, 0, len(rows))
		for _, item := range rows {
			if row, ok := item.(map[string]any); ok {
				out = append(out, row)
			} else {
				out = append(out, map[string]any{})
			}
		}
		return out
	default:
		return nil
	}
}

func checkLeaf(rule formconfig.Rule, value any) string {
	switch rule.Kind {
	case formconfig.RuleRequiredString:
		return checkString(rule, value, true)
	case formconfig.RuleOptionalString:
		return checkString(rule, value, false)
	case formconfig.RuleEmail:
		str, ok := stringValue(value)
		if !ok || str == "" {
			return messageOr(rule, "Required")
		}
		if !emailPattern.MatchString(str) {
			return messageOr(rule, "Please enter a valid email address")
		}
		return ""
	case formconfig.RuleBoundedNumber:
		return checkNumber(rule, value)
	case formconfig.RuleBoolean:
		if _, ok := value.(bool); !ok {
			return messageOr(rule, "Must be true or false")
		}
		return ""
	case formconfig.RuleEnumString:
		str, _ := stringValue(value)
		for _, allowed := range rule.Enum {
			if str == allowed {
				return ""
			}
		}
		return messageOr(rule, "Please select a value")
	case formconfig.RuleFile:
		if value == nil {
			return messageOr(rule, "File is required")
		}
		return ""
	case formconfig.RuleCustom:
		if rule.Custom == nil {
			return ""
		}
		if err := rule.Custom(value); err != nil {
			return err.Error()
		}
		return ""
	default:
		return ""
	}
}

func checkString(rule formconfig.Rule, value any, required bool) string {
	str, ok := stringValue(value)
	if !ok {
		str = ""
	}
	minLen := 0
	if required {
		minLen = 1
	}
	if rule.MinLen != nil {
		minLen = *rule.MinLen
	}
	if len(str) < minLen {
		if minLen <= 1 {
			return messageOr(rule, "Required")
		}
		return messageOr(rule, fmt.Sprintf("Must be at least %d characters", minLen))
	}
	if rule.MaxLen != nil && len(str) > *rule.MaxLen {
		return messageOr(rule, fmt.Sprintf("Cannot exceed %d characters", *rule.MaxLen))
	}
	if rule.Pattern != "" && str != "" {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil || !re.MatchString(str) {
			return messageOr(rule, "Invalid format")
		}
	}
	if rule.Custom != nil {
		if err := rule.Custom(str); err != nil {
			return err.Error()
		}
	}
	return ""
}

func checkNumber(rule formconfig.Rule, value any) string {
	num, ok := numberValue(value)
	if !ok {
		return messageOr(rule, "Must be a number")
	}
	if rule.Min != nil && num < *rule.Min {
		return messageOr(rule, fmt.Sprintf("Must be >= %s", formatBound(*rule.Min)))
	}
	if rule.Max != nil && num > *rule.Max {
		return messageOr(rule, fmt.Sprintf("Must be <= %s", formatBound(*rule.Max)))
	}
	if rule.Custom != nil {
		if err := rule.Custom(num); err != nil {
			return err.Error()
		}
	}
	return ""
}

func messageOr(rule formconfig.Rule, fallback string) string {
	if strings.TrimSpace(rule.Message) != "" {
		return rule.Message
	}
	return fallback
}

func stringValue(value any) (string, bool) {
	str, ok := value.(string)
	return str, ok
}

func numberValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func formatBound(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

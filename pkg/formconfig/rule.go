package formconfig

// RuleKind identifies the structural family of a validation rule.
type RuleKind string

const (
	RuleRequiredString RuleKind = "required_string"
	RuleOptionalString RuleKind = "optional_string"
	RuleBoundedNumber  RuleKind = "bounded_number"
	RuleBoolean        RuleKind = "boolean"
	RuleEnumString     RuleKind = "enum_string"
	RuleEmail          RuleKind = "email"
	RuleFile           RuleKind = "file"
	RuleArray          RuleKind = "array"
	RuleCustom         RuleKind = "custom"
)

// Rule is a single validation constraint. A field carrying an explicit Rule
// overrides the kind-derived default entirely. Message, when set, replaces
// the first-violation message the validator would otherwise produce. Rows is
// populated only for RuleArray and maps item field names to their row rules.
// Custom is a non-serializable escape hatch evaluated after the structural
// checks; it receives the leaf value and returns a user-facing error.
type Rule struct {
	Kind    RuleKind              `json:"kind" yaml:"kind"`
	Message string                `json:"message,omitempty" yaml:"message,omitempty"`
	MinLen  *int                  `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLen  *int                  `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Min     *float64              `json:"min,omitempty" yaml:"min,omitempty"`
	Max     *float64              `json:"max,omitempty" yaml:"max,omitempty"`
	Pattern string                `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Enum    []string              `json:"enum,omitempty" yaml:"enum,omitempty"`
	Rows    map[string]Rule       `json:"rows,omitempty" yaml:"rows,omitempty"`
	Custom  func(value any) error `json:"-" yaml:"-"`
}

// StringMin returns a required-string rule with a minimum length.
func StringMin(min int, message string) *Rule {
	return &Rule{Kind: RuleRequiredString, MinLen: &min, Message: message}
}

// EmailRule returns an email-format rule with an optional custom message.
func EmailRule(message string) *Rule {
	return &Rule{Kind: RuleEmail, Message: message}
}

// EnumOf returns an enum-string rule restricted to the given values.
func EnumOf(message string, values ...string) *Rule {
	return &Rule{Kind: RuleEnumString, Enum: values, Message: message}
}

// PatternRule returns a required-string rule constrained by a regular
// expression. The pattern is compiled lazily by the validator; an invalid
// pattern fails the value rather than panicking.
func PatternRule(pattern, message string) *Rule {
	return &Rule{Kind: RuleRequiredString, Pattern: pattern, Message: message}
}

// NumberBetween returns a bounded-number rule with inclusive bounds.
func NumberBetween(min, max float64, message string) *Rule {
	return &Rule{Kind: RuleBoundedNumber, Min: &min, Max: &max, Message: message}
}

// CustomRule wraps an arbitrary check as a rule.
func CustomRule(check func(value any) error) *Rule {
	return &Rule{Kind: RuleCustom, Custom: check}
}

// clone returns a deep copy so derived schemas never alias caller state.
func (r Rule) clone() Rule {
	out := r
	if r.MinLen != nil {
		v := *r.MinLen
		out.MinLen = &v
	}
	if r.MaxLen != nil {
		v := *r.MaxLen
		out.MaxLen = &v
	}
	if r.Min != nil {
		v := *r.Min
		out.Min = &v
	}
	if r.Max != nil {
		v := *r.Max
		out.Max = &v
	}
	if len(r.Enum) > 0 {
		out.Enum = append([]string(nil), r.Enum...)
	}
	if len(r.Rows) > 0 {
		rows := make(map[string]Rule, len(r.Rows))
		for name, rule := range r.Rows {
			rows[name] = rule.clone()
		}
		out.Rows = rows
	}
	return out
}

// Clone returns a deep copy of the rule.
func (r Rule) Clone() Rule {
	return r.clone()
}

package formconfig

// Widget tags the rendering strategy a kind resolves to. Renderers dispatch
// on the widget, not the raw kind, so unknown kinds degrade to plain inputs.
type Widget string

const (
	WidgetInput    Widget = "input"
	WidgetTextarea Widget = "textarea"
	WidgetSelect   Widget = "select"
	WidgetRadio    Widget = "radio"
	WidgetCheckbox Widget = "checkbox"
	WidgetFile     Widget = "file"
	WidgetHidden   Widget = "hidden"
	WidgetArray    Widget = "array"
)

// KindSpec bundles what the registry knows about a field kind: the default
// validation rule, the zero value a fresh form starts from, the rendering
// widget, and the HTML input type attribute where the widget is an input.
type KindSpec struct {
	Rule      RuleKind
	Zero      any
	Widget    Widget
	InputType string
}

var kindSpecs = map[FieldKind]KindSpec{
	KindText:          {Rule: RuleRequiredString, Zero: "", Widget: WidgetInput, InputType: "text"},
	KindPassword:      {Rule: RuleRequiredString, Zero: "", Widget: WidgetInput, InputType: "password"},
	KindEmail:         {Rule: RuleEmail, Zero: "", Widget: WidgetInput, InputType: "email"},
	KindPhone:         {Rule: RuleRequiredString, Zero: "", Widget: WidgetInput, InputType: "tel"},
	KindURL:           {Rule: RuleRequiredString, Zero: "", Widget: WidgetInput, InputType: "url"},
	KindColor:         {Rule: RuleRequiredString, Zero: "", Widget: WidgetInput, InputType: "color"},
	KindDate:          {Rule: RuleRequiredString, Zero: "", Widget: WidgetInput, InputType: "date"},
	KindTime:          {Rule: RuleRequiredString, Zero: "", Widget: WidgetInput, InputType: "time"},
	KindDateTimeLocal: {Rule: RuleRequiredString, Zero: "", Widget: WidgetInput, InputType: "datetime-local"},
	KindMonth:         {Rule: RuleRequiredString, Zero: "", Widget: WidgetInput, InputType: "month"},
	KindWeek:          {Rule: RuleRequiredString, Zero: "", Widget: WidgetInput, InputType: "week"},
	KindSearch:        {Rule: RuleRequiredString, Zero: "", Widget: WidgetInput, InputType: "search"},
	KindTextarea:      {Rule: RuleRequiredString, Zero: "", Widget: WidgetTextarea},
	KindSelect:        {Rule: RuleRequiredString, Zero: "", Widget: WidgetSelect},
	KindRadio:         {Rule: RuleRequiredString, Zero: "", Widget: WidgetRadio},
	KindNumber:        {Rule: RuleBoundedNumber, Zero: float64(0), Widget: WidgetInput, InputType: "number"},
	KindRange:         {Rule: RuleBoundedNumber, Zero: float64(0), Widget: WidgetInput, InputType: "range"},
	KindCheckbox:      {Rule: RuleBoolean, Zero: false, Widget: WidgetCheckbox},
	KindSwitch:        {Rule: RuleBoolean, Zero: false, Widget: WidgetCheckbox},
	KindFile:          {Rule: RuleFile, Zero: nil, Widget: WidgetFile},
	KindHidden:        {Rule: RuleRequiredString, Zero: "", Widget: WidgetHidden, InputType: "hidden"},
	KindArray:         {Rule: RuleArray, Zero: nil, Widget: WidgetArray},
}

// genericSpec is the forward-compatibility fallback for unrecognized kinds: a
// plain single-line text input with an optional string rule.
var genericSpec = KindSpec{Rule: RuleOptionalString, Zero: "", Widget: WidgetInput, InputType: "text"}

// KindInfo resolves a field kind to its spec. It is total: unknown kinds
// return the generic text fallback and never fail.
func KindInfo(kind FieldKind) KindSpec {
	if spec, ok := kindSpecs[kind]; ok {
		return spec
	}
	return genericSpec
}

// DefaultRule returns the kind-derived validation rule for a field, seeding
// the zero lower bound for number kinds. Select and radio fields derive a
// required-string rule; enum constraints come only from explicit Validation
// overrides.
func DefaultRule(field Field) Rule {
	spec := KindInfo(field.Kind)
	rule := Rule{Kind: spec.Rule}
	if spec.Rule == RuleBoundedNumber {
		zero := float64(0)
		rule.Min = &zero
	}
	return rule
}

// ZeroValue returns the type-appropriate zero value for a field kind.
func ZeroValue(kind FieldKind) any {
	return KindInfo(kind).Zero
}

package formconfig

// FieldKind enumerates the closed set of input kinds a field may declare.
// Unknown kinds are tolerated everywhere and treated as generic text inputs.
type FieldKind string

const (
	KindText          FieldKind = "text"
	KindPassword      FieldKind = "password"
	KindNumber        FieldKind = "number"
	KindRange         FieldKind = "range"
	KindEmail         FieldKind = "email"
	KindPhone         FieldKind = "phone"
	KindURL           FieldKind = "url"
	KindTextarea      FieldKind = "textarea"
	KindSelect        FieldKind = "select"
	KindRadio         FieldKind = "radio"
	KindCheckbox      FieldKind = "checkbox"
	KindSwitch        FieldKind = "switch"
	KindColor         FieldKind = "color"
	KindDate          FieldKind = "date"
	KindTime          FieldKind = "time"
	KindDateTimeLocal FieldKind = "datetime-local"
	KindMonth         FieldKind = "month"
	KindWeek          FieldKind = "week"
	KindSearch        FieldKind = "search"
	KindFile          FieldKind = "file"
	KindHidden        FieldKind = "hidden"
	KindArray         FieldKind = "array"
)

// Option is a selectable choice for select and radio fields.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Field is one declarative input descriptor. Name is the mapping key inside
// its containing object and must be unique among its siblings. ItemFields is
// only meaningful when Kind is KindArray; one level of nesting is supported
// and sub-fields of kind array are rejected by Validate.
type Field struct {
	Name        string    `json:"name" yaml:"name"`
	Label       string    `json:"label" yaml:"label"`
	Kind        FieldKind `json:"type" yaml:"type"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Options     []Option  `json:"options,omitempty" yaml:"options,omitempty"`
	ItemFields  []Field   `json:"itemFields,omitempty" yaml:"itemFields,omitempty"`
	Validation  *Rule     `json:"validation,omitempty" yaml:"validation,omitempty"`
}

// Section is a named, ordered group of fields. Title doubles as the rendering
// key, so unique titles are recommended.
type Section struct {
	Title  string  `json:"title" yaml:"title"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// FormConfig is an ordered sequence of sections. It is treated as immutable
// once handed to a builder or renderer; callers must not mutate it in place.
type FormConfig struct {
	Title    string    `json:"title,omitempty" yaml:"title,omitempty"`
	Sections []Section `json:"sections" yaml:"sections"`
}

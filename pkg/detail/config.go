// Package detail renders read-only record views from declarative
// configuration, the viewing counterpart to the form pipeline.
package detail

import "strings"

// Display selects the formatting strategy for a field value.
type Display string

const (
	DisplayValue      Display = "value"
	DisplayBadge      Display = "badge"
	DisplayLink       Display = "link"
	DisplayCurrency   Display = "currency"
	DisplayPercentage Display = "percentage"
	DisplayDate       Display = "date"
	DisplayCustom     Display = "custom"
)

// LinkKind refines how DisplayLink builds its href.
type LinkKind string

const (
	LinkEmail LinkKind = "email"
	LinkPhone LinkKind = "phone"
	LinkURL   LinkKind = "url"
)

// BadgeStyle overrides label and variant for one badge value.
type BadgeStyle struct {
	Label   string `json:"label,omitempty" yaml:"label,omitempty"`
	Variant string `json:"variant,omitempty" yaml:"variant,omitempty"`
}

// Field describes one displayed value. Render is only consulted when Display
// is DisplayCustom; its output is sanitized before emission.
type Field struct {
	Name    string  `json:"name" yaml:"name"`
	Label   string  `json:"label" yaml:"label"`
	Display Display `json:"display,omitempty" yaml:"display,omitempty"`

	// Link refinements.
	Link     LinkKind `json:"link,omitempty" yaml:"link,omitempty"`
	External bool     `json:"external,omitempty" yaml:"external,omitempty"`

	// Badges maps raw values to display overrides; unmapped values render as
	// an outline badge carrying the raw value.
	Badges map[string]BadgeStyle `json:"badges,omitempty" yaml:"badges,omitempty"`

	Render func(value any, record map[string]any) string `json:"-" yaml:"-"`
}

// Section is a titled group of fields.
type Section struct {
	Title  string  `json:"title,omitempty" yaml:"title,omitempty"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Config describes a complete detail view.
type Config struct {
	ItemType    string    `json:"itemType,omitempty" yaml:"itemType,omitempty"`
	Title       string    `json:"title,omitempty" yaml:"title,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Sections    []Section `json:"sections" yaml:"sections"`
}

// ResolvedTitle returns the explicit title or derives one from the item type.
func (c Config) ResolvedTitle() string {
	if c.Title != "" {
		return c.Title
	}
	if c.ItemType != "" {
		return c.ItemType + " Details"
	}
	return "Details"
}

// ResolvedDescription returns the explicit description or derives one from
// the item type.
func (c Config) ResolvedDescription() string {
	if c.Description != "" {
		return c.Description
	}
	if c.ItemType != "" {
		return "View detailed information about this " + strings.ToLower(c.ItemType)
	}
	return ""
}

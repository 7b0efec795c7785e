package vanilla

import theme "github.com/goliatone/go-theme"

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm    ChromeClass = "df-form"
	ClassHeader  ChromeClass = "df-header"
	ClassSection ChromeClass = "df-section"
	ClassField   ChromeClass = "df-field"
	ClassControl ChromeClass = "df-control"
	ClassError   ChromeClass = "df-error"
	ClassRow     ChromeClass = "df-row"
	ClassActions ChromeClass = "df-actions"
)

// Default*Class values apply when RenderOptions.ChromeClasses has no override
// for the slot.
const (
	DefaultFormClass    = string(ClassForm)
	DefaultHeaderClass  = string(ClassHeader)
	DefaultSectionClass = string(ClassSection)
	DefaultFieldClass   = string(ClassField)
	DefaultControlClass = string(ClassControl)
	DefaultErrorClass   = string(ClassError)
	DefaultRowClass     = string(ClassRow)
	DefaultActionsClass = string(ClassActions)
)

// chromeSlots maps RenderOptions.ChromeClasses keys (and theme manifest token
// suffixes) to their default class.
var chromeSlots = map[string]string{
	"form":    DefaultFormClass,
	"header":  DefaultHeaderClass,
	"section": DefaultSectionClass,
	"field":   DefaultFieldClass,
	"control": DefaultControlClass,
	"error":   DefaultErrorClass,
	"row":     DefaultRowClass,
	"actions": DefaultActionsClass,
}

// ChromeClassesFromTheme extracts chrome class overrides from a theme
// selection. Tokens named "chrome.<slot>" win; everything else is ignored so
// manifests can carry unrelated tokens.
func ChromeClassesFromTheme(selection *theme.Selection) map[string]string {
	if selection == nil || selection.Manifest == nil || len(selection.Manifest.Tokens) == 0 {
		return nil
	}
	classes := make(map[string]string)
	for slot := range chromeSlots {
		if value, ok := selection.Manifest.Tokens["chrome."+slot]; ok && value != "" {
			classes[slot] = value
		}
	}
	if len(classes) == 0 {
		return nil
	}
	return classes
}

func chromeClass(overrides map[string]string, slot string) string {
	if value, ok := overrides[slot]; ok && value != "" {
		return value
	}
	return chromeSlots[slot]
}

package render

// RenderOptions describe per-request data renderers can use to customise
// output without touching the configuration pipeline.
type RenderOptions struct {
	// Action and Method populate the <form> element for HTML renderers.
	Action string
	Method string
	// Values pre-populates rendered controls using dotted field paths
	// ("email", "friends.0.name"). Usually sourced from a form.Controller.
	Values map[string]any
	// Errors surfaces validation feedback keyed by dotted field path; the
	// vanilla renderer emits inline messages next to the offending control.
	Errors map[string]string
	// RowIDs carries stable per-row identity keys for array fields so markup
	// keys survive add/remove, keyed by array field name.
	RowIDs map[string][]string
	// SubmitLabel replaces the default submit button text. Submitting toggles
	// the informational "Submitting..." label and disables the button.
	SubmitLabel string
	Submitting  bool
	// ShowActions controls whether the submit/cancel row renders at all.
	// Defaults to true via normalization in the renderers.
	HideActions bool
	// ShowCancel renders a cancel button alongside submit.
	ShowCancel bool
	// CustomActions and Footer are pre-rendered markup slots injected before
	// and after the action row. They are escape hatches for callers and are
	// emitted verbatim; sanitize upstream when the markup is untrusted.
	CustomActions string
	Footer        string
	// Hidden fields rendered alongside the visible controls (CSRF tokens,
	// versions, method overrides).
	Hidden map[string]string
	// ChromeClasses overrides the semantic chrome classes per slot; unset
	// slots keep the renderer defaults, typically resolved from a theme.
	ChromeClasses map[string]string
}

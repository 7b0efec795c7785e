package form

type options struct {
	initialData      map[string]any
	validateOnChange bool
	submitLabel      string
	onSubmit         SubmitFunc
	onCancel         func()
}

// Option customises a controller at construction time.
type Option func(*options)

// WithInitialData shallow-merges caller-provided values over the computed
// defaults. Matching top-level keys are replaced wholesale: a partial array
// value replaces the whole default array for that key, it is not merged per
// row.
func WithInitialData(data map[string]any) Option {
	return func(o *options) {
		o.initialData = data
	}
}

// WithValidateOnChange re-validates a leaf immediately on every SetValue
// instead of only on submit.
func WithValidateOnChange() Option {
	return func(o *options) {
		o.validateOnChange = true
	}
}

// WithSubmitLabel overrides the default "Submit" label.
func WithSubmitLabel(label string) Option {
	return func(o *options) {
		o.submitLabel = label
	}
}

// WithSubmitHandler sets the callback invoked with the validated value tree.
func WithSubmitHandler(fn SubmitFunc) Option {
	return func(o *options) {
		o.onSubmit = fn
	}
}

// WithCancelHandler sets the callback invoked by Cancel.
func WithCancelHandler(fn func()) Option {
	return func(o *options) {
		o.onCancel = fn
	}
}

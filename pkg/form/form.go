// Package form hosts the runtime controller behind a rendered dynamic form:
// current values, validation errors, array row identities, and the
// Editing -> Validating -> Submitting lifecycle. Each controller owns its
// state exclusively; nothing is shared between instances.
package form

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-dynamicform/pkg/formconfig"
	"github.com/goliatone/go-dynamicform/pkg/schema"
)

// State identifies where a controller is in its lifecycle.
type State string

const (
	StateEditing    State = "editing"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
)

// ErrInvalid is returned by Submit when validation failed. The per-field
// messages are available via Errors; the submit callback was not invoked.
var ErrInvalid = errors.New("form: validation failed")

// ErrSubmitInFlight is returned by Submit while a previous submission has not
// settled yet. Callers should disable their submit affordance during this
// window; the controller enforces single-flight regardless.
var ErrSubmitInFlight = errors.New("form: submit already in flight")

// SubmitFunc receives the validated value tree. It may block; the controller
// stays in the Submitting state until it settles. Errors (and recovered
// panics) are reported back to the Submit caller, never stored as field
// errors.
type SubmitFunc func(ctx context.Context, values map[string]any) error

// Controller binds a form configuration to mutable form state. Construct one
// per mounted form with New and discard it (Close) on unmount.
type Controller struct {
	mu sync.Mutex

	config   formconfig.FormConfig
	schema   schema.Schema
	baseline map[string]any

	state  State
	values map[string]any
	errs   schema.Errors
	rowIDs map[string][]string

	validateOnChange bool
	submitLabel      string
	onSubmit         SubmitFunc
	onCancel         func()
	closed           bool
}

// New derives the schema and default values for config, shallow-merges any
// initial data over the defaults, and returns a controller in the Editing
// state. The config is treated as immutable for the controller's lifetime.
func New(config any, opts ...Option) *Controller {
	cfg := formconfig.Normalize(config)
	c := &Controller{
		config:      cfg,
		schema:      schema.Build(cfg),
		state:       StateEditing,
		errs:        make(schema.Errors),
		submitLabel: "Submit",
	}

	settings := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&settings)
		}
	}

	defaults := schema.Defaults(cfg)
	if settings.initialData != nil {
		c.baseline = schema.MergeInitial(defaults, settings.initialData)
	} else {
		c.baseline = defaults
	}
	c.validateOnChange = settings.validateOnChange
	c.onSubmit = settings.onSubmit
	c.onCancel = settings.onCancel
	if settings.submitLabel != "" {
		c.submitLabel = settings.submitLabel
	}

	c.values = copyTree(c.baseline)
	c.rowIDs = make(map[string][]string)
	c.syncRowIdentities()
	return c
}

// State returns the controller's current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Values returns a copy of the current value tree.
func (c *Controller) Values() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyTree(c.values)
}

// Errors returns the current per-field validation errors.
func (c *Controller) Errors() schema.Errors {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(schema.Errors, len(c.errs))
	for path, msg := range c.errs {
		out[path] = msg
	}
	return out
}

// SubmitLabel is the informational label for the submit affordance:
// "Submitting..." while a submission is in flight, the configured label
// otherwise.
func (c *Controller) SubmitLabel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSubmitting {
		return "Submitting..."
	}
	return c.submitLabel
}

// SetValue updates one leaf of the value tree. Paths address top-level fields
// by name ("email") and array leaves by dotted path ("friends.0.name").
// When validate-on-change is enabled the touched leaf is re-validated
// immediately; otherwise errors only refresh on submit.
func (c *Controller) SetValue(path string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	field, idx, leaf, isRow := splitPath(path)
	if !isRow {
		c.values[field] = value
	} else {
		rows := rowsIn(c.values, field)
		if idx < 0 || idx >= len(rows) {
			return
		}
		rows[idx][leaf] = value
	}

	if c.validateOnChange {
		c.revalidateLeaf(path, field, idx, leaf, isRow)
	}
}

// AppendRow appends one fresh default row to the named array field, updating
// the value tree and the row identity list together.
func (c *Controller) AppendRow(field string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cfg, ok := c.arrayField(field)
	if !ok {
		return
	}
	rows := rowsIn(c.values, field)
	c.values[field] = append(rows, schema.EmptyRow(cfg))
	c.rowIDs[field] = append(c.rowIDs[field], uuid.NewString())
}

// RemoveRow removes the row at index from both the value tree and the row
// identity list. Out-of-range indexes are a no-op.
func (c *Controller) RemoveRow(field string, index int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows := rowsIn(c.values, field)
	ids := c.rowIDs[field]
	if index < 0 || index >= len(rows) || index >= len(ids) {
		return
	}
	c.values[field] = append(rows[:index:index], rows[index+1:]...)
	c.rowIDs[field] = append(ids[:index:index], ids[index+1:]...)

	// Drop stale errors for the removed row; remaining row errors are
	// refreshed on the next validation pass.
	prefix := field + "."
	for path := range c.errs {
		if strings.HasPrefix(path, prefix) {
			delete(c.errs, path)
		}
	}
}

// RowIDs returns the stable identity keys for an array field's rows, index
// for index with the value rows.
func (c *Controller) RowIDs(field string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.rowIDs[field]...)
}

// Submit validates the full tree. On failure it repopulates the error set and
// returns ErrInvalid without invoking the submit callback. On success it
// invokes the callback exactly once with the validated values, waits for it
// to settle, and returns its error (or recovered panic) to the caller. The
// controller returns to Editing either way.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	c.state = StateValidating
	errs := c.schema.Validate(c.values)
	if errs.Has() {
		c.errs = errs
		c.state = StateEditing
		c.mu.Unlock()
		return ErrInvalid
	}
	c.errs = make(schema.Errors)
	c.state = StateSubmitting
	callback := c.onSubmit
	snapshot := copyTree(c.values)
	c.mu.Unlock()

	var err error
	if callback != nil {
		err = invokeSubmit(ctx, callback, snapshot)
	}

	c.mu.Lock()
	if !c.closed {
		c.state = StateEditing
	}
	c.mu.Unlock()
	return err
}

// Cancel invokes the configured cancel callback, if any. No internal state is
// cleaned up beyond what Close does on unmount.
func (c *Controller) Cancel() {
	c.mu.Lock()
	callback := c.onCancel
	c.mu.Unlock()
	if callback != nil {
		callback()
	}
}

// Reset restores the value tree to its baseline (defaults merged with any
// initial data) and clears all errors.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = copyTree(c.baseline)
	c.errs = make(schema.Errors)
	c.rowIDs = make(map[string][]string)
	c.syncRowIdentities()
}

// Close marks the controller unmounted. A submit callback that settles after
// Close is ignored: its completion no longer writes controller state.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func invokeSubmit(ctx context.Context, callback SubmitFunc, values map[string]any) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("form: submit callback panicked: %v", recovered)
		}
	}()
	return callback(ctx, values)
}

func (c *Controller) revalidateLeaf(path, field string, idx int, leaf string, isRow bool) {
	rule, ok := c.schema.Fields[field]
	if !ok {
		return
	}
	if isRow {
		itemRule, ok := rule.Rows[leaf]
		if !ok {
			return
		}
		rows := rowsIn(c.values, field)
		if idx < 0 || idx >= len(rows) {
			return
		}
		c.applyLeafResult(path, itemRule, rows[idx][leaf])
		return
	}
	if rule.Kind == formconfig.RuleArray {
		return
	}
	c.applyLeafResult(path, rule, c.values[field])
}

func (c *Controller) applyLeafResult(path string, rule formconfig.Rule, value any) {
	probe := schema.Schema{Fields: map[string]formconfig.Rule{path: rule}}
	result := probe.Validate(map[string]any{path: value})
	if msg, failed := result.Field(path); failed {
		c.errs[path] = msg
		return
	}
	delete(c.errs, path)
}

func (c *Controller) arrayField(name string) (formconfig.Field, bool) {
	for _, section := range c.config.Sections {
		for _, field := range section.Fields {
			if field.Name == name && field.Kind == formconfig.KindArray {
				return field, true
			}
		}
	}
	return formconfig.Field{}, false
}

// syncRowIdentities allocates one identity per existing row so initial data
// with pre-populated arrays renders with stable keys from the start.
func (c *Controller) syncRowIdentities() {
	for _, section := range c.config.Sections {
		for _, field := range section.Fields {
			if field.Kind != formconfig.KindArray {
				continue
			}
			rows := rowsIn(c.values, field.Name)
			ids := make([]string, len(rows))
			for i := range ids {
				ids[i] = uuid.NewString()
			}
			c.rowIDs[field.Name] = ids
		}
	}
}

func splitPath(path string) (field string, idx int, leaf string, isRow bool) {
	parts := strings.SplitN(path, ".", 3)
	if len(parts) != 3 {
		return path, 0, "", false
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return path, 0, "", false
	}
	return parts[0], n, parts[2], true
}

// rowsIn normalizes an array field's value into typed rows, tolerating the
// []any shape produced by JSON decoding.
func rowsIn(values map[string]any, field string) []map[string]any {
	switch rows := values[field].(type) {
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
		values[field] = out
		return out
	default:
		return nil
	}
}

func copyTree(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for key, value := range values {
		switch rows := value.(type) {
		case []map[string]any:
			copied := make([]map[string]any, len(rows))
			for i, row := range rows {
				rowCopy := make(map[string]any, len(row))
				for k, v := range row {
					rowCopy[k] = v
				}
				copied[i] = rowCopy
			}
			out[key] = copied
		default:
			out[key] = value
		}
	}
	return out
}

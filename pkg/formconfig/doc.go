// Package formconfig defines the declarative form configuration vocabulary:
// sections of typed fields, the closed field-kind enumeration, per-kind
// defaults, and the validation rule overrides callers may attach to
// individual fields. Derived artifacts (validation schemas, default value
// trees) live in pkg/schema; runtime form state lives in pkg/form.
package formconfig

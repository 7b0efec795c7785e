// Package schema derives validation schemas and default value trees from
// declarative form configurations. Both derivations are pure: they never
// mutate the input config and produce identical output for identical input.
package schema

// Package template defines renderer-agnostic template interfaces and
// adapters so HTML renderers and page layouts can swap template engines
// without touching the render pipeline.
package template

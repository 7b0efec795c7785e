// Package table provides a filterable, paginated data table over row maps.
// Filter edits are staged: they only affect the visible rows once applied,
// so typing in filter inputs never thrashes the result set.
package table

// Column describes one rendered column. Render, when set, replaces the
// default cell formatting and receives the raw cell value plus the full row.
type Column struct {
	Key        string `json:"key" yaml:"key"`
	Label      string `json:"label" yaml:"label"`
	Filterable bool   `json:"filterable,omitempty" yaml:"filterable,omitempty"`

	Render func(value any, row map[string]any) string `json:"-" yaml:"-"`
}

// Config describes a table: its columns and page size.
type Config struct {
	Columns  []Column `json:"columns" yaml:"columns"`
	PageSize int      `json:"pageSize,omitempty" yaml:"pageSize,omitempty"`
}

// DefaultPageSize applies when Config.PageSize is zero or negative.
const DefaultPageSize = 10

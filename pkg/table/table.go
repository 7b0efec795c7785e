package table

import (
	"strconv"
	"strings"
	"sync"
)

// Table holds rows plus staged filter and pagination state. All methods are
// safe for concurrent use.
type Table struct {
	mu sync.Mutex

	config Config
	rows   []map[string]any

	draft   map[string]string
	applied map[string]string
	page    int
}

// New constructs a table for the given configuration.
func New(config Config) *Table {
	if config.PageSize <= 0 {
		config.PageSize = DefaultPageSize
	}
	return &Table{
		config:  config,
		draft:   make(map[string]string),
		applied: make(map[string]string),
		page:    1,
	}
}

// Config returns the table configuration.
func (t *Table) Config() Config {
	return t.config
}

// SetRows replaces the data set. If the current page falls outside the new
// page range the table resets to the first page; filters are kept as-is.
func (t *Table) SetRows(rows []map[string]any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = rows
	if t.page > t.totalPagesLocked() {
		t.page = 1
	}
}

// SetFilter stages a filter value for a column. Visible rows do not change
// until ApplyFilters runs. An empty value stages removal of the filter.
func (t *Table) SetFilter(column, value string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if strings.TrimSpace(value) == "" {
		delete(t.draft, column)
		return
	}
	t.draft[column] = value
}

// DraftFilters returns a copy of the staged filter edits.
func (t *Table) DraftFilters() map[string]string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return copyFilters(t.draft)
}

// AppliedFilters returns a copy of the filters currently shaping the rows.
func (t *Table) AppliedFilters() map[string]string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return copyFilters(t.applied)
}

// ApplyFilters promotes the staged edits to the applied set and resets the
// table to the first page.
func (t *Table) ApplyFilters() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.applied = copyFilters(t.draft)
	if t.applied == nil {
		t.applied = make(map[string]string)
	}
	t.page = 1
}

// ClearFilters drops both staged and applied filters and resets to the first
// page.
func (t *Table) ClearFilters() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.draft = make(map[string]string)
	t.applied = make(map[string]string)
	t.page = 1
}

// Page reports the current 1-based page number.
func (t *Table) Page() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.page
}

// SetPage moves to the requested page. Explicit navigation clamps into the
// valid range rather than resetting, so "next" past the end lands on the last
// page.
func (t *Table) SetPage(page int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.page = page
	t.clampPage()
}

// TotalPages reports the page count for the filtered rows, never below 1.
func (t *Table) TotalPages() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalPagesLocked()
}

// FilteredCount reports how many rows survive the applied filters.
func (t *Table) FilteredCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.filteredLocked())
}

// VisibleRows returns the rows for the current page after applying filters.
func (t *Table) VisibleRows() []map[string]any {
	t.mu.Lock()
	defer t.mu.Unlock()

	filtered := t.filteredLocked()
	start := (t.page - 1) * t.config.PageSize
	if start >= len(filtered) {
		return nil
	}
	end := start + t.config.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// RowKey derives the stable identity for a row: its "id" value when present
// and non-empty, the position index otherwise.
func RowKey(row map[string]any, index int) string {
	if id, ok := row["id"]; ok {
		if key := cellString(id); key != "" {
			return key
		}
	}
	return strconv.Itoa(index)
}

// matches reports whether every applied filter finds a case-insensitive
// substring match in its column's cell.
func matches(row map[string]any, filters map[string]string) bool {
	for column, filter := range filters {
		cell := strings.ToLower(cellString(row[column]))
		if !strings.Contains(cell, strings.ToLower(filter)) {
			return false
		}
	}
	return true
}

func (t *Table) filteredLocked() []map[string]any {
	if len(t.applied) == 0 {
		return t.rows
	}
	filtered := make([]map[string]any, 0, len(t.rows))
	for _, row := range t.rows {
		if matches(row, t.applied) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func (t *Table) totalPagesLocked() int {
	count := len(t.filteredLocked())
	pages := (count + t.config.PageSize - 1) / t.config.PageSize
	if pages < 1 {
		return 1
	}
	return pages
}

func (t *Table) clampPage() {
	if t.page < 1 {
		t.page = 1
		return
	}
	if max := t.totalPagesLocked(); t.page > max {
		t.page = max
	}
}

func copyFilters(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for column, value := range src {
		out[column] = value
	}
	return out
}

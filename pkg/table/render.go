package table

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

// EmptyCell is the placeholder for cells with no usable value.
const EmptyCell = "—"

// RenderHTML emits the current page as an HTML table: filter inputs in the
// header, one row per visible record, and a pagination footer. Column render
// hooks emit raw markup and are trusted; everything else is escaped.
func (t *Table) RenderHTML() string {
	var b strings.Builder
	b.Grow(1024)

	t.mu.Lock()
	config := t.config
	draft := copyFilters(t.draft)
	page := t.page
	pages := t.totalPagesLocked()
	t.mu.Unlock()

	rows := t.VisibleRows()

	b.WriteString(`<table class="df-table">` + "\n<thead>\n<tr>\n")
	for _, column := range config.Columns {
		b.WriteString("<th>")
		b.WriteString(html.EscapeString(column.Label))
		b.WriteString("</th>\n")
	}
	b.WriteString("</tr>\n")

	if hasFilterableColumn(config.Columns) {
		b.WriteString(`<tr class="df-table-filters">` + "\n")
		for _, column := range config.Columns {
			b.WriteString("<th>")
			if column.Filterable {
				b.WriteString(`<input name="filter.`)
				b.WriteString(html.EscapeString(column.Key))
				b.WriteString(`" value="`)
				b.WriteString(html.EscapeString(draft[column.Key]))
				b.WriteString(`" placeholder="Filter `)
				b.WriteString(html.EscapeString(strings.ToLower(column.Label)))
				b.WriteString(`">`)
			}
			b.WriteString("</th>\n")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</thead>\n<tbody>\n")

	for i, row := range rows {
		b.WriteString(`<tr data-row-key="`)
		b.WriteString(html.EscapeString(RowKey(row, i)))
		b.WriteString("\">\n")
		for _, column := range config.Columns {
			b.WriteString("<td>")
			b.WriteString(renderCell(column, row))
			b.WriteString("</td>\n")
		}
		b.WriteString("</tr>\n")
	}
	if len(rows) == 0 {
		b.WriteString(`<tr><td colspan="`)
		b.WriteString(strconv.Itoa(len(config.Columns)))
		b.WriteString(`" class="df-table-empty">No results</td></tr>` + "\n")
	}

	b.WriteString("</tbody>\n</table>\n")

	b.WriteString(`<nav class="df-table-pagination">Page `)
	b.WriteString(strconv.Itoa(page))
	b.WriteString(" of ")
	b.WriteString(strconv.Itoa(pages))
	b.WriteString("</nav>\n")

	return b.String()
}

func renderCell(column Column, row map[string]any) string {
	value := row[column.Key]
	if column.Render != nil {
		return column.Render(value, row)
	}
	cell := cellString(value)
	if cell == "" {
		return EmptyCell
	}
	return html.EscapeString(cell)
}

func hasFilterableColumn(columns []Column) bool {
	for _, column := range columns {
		if column.Filterable {
			return true
		}
	}
	return false
}

func cellString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

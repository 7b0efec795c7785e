package table_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynamicform/pkg/table"
)

func customerTable(pageSize int) *table.Table {
	t := table.New(table.Config{
		PageSize: pageSize,
		Columns: []table.Column{
			{Key: "name", Label: "Name", Filterable: true},
			{Key: "city", Label: "City", Filterable: true},
			{Key: "email", Label: "Email"},
		},
	})
	t.SetRows([]map[string]any{
		{"id": "c-1", "name": "Ada Lovelace", "city": "London", "email": "ada@example.com"},
		{"id": "c-2", "name": "Grace Hopper", "city": "New York", "email": "grace@example.com"},
		{"id": "c-3", "name": "Alan Turing", "city": "London"},
		{"id": "c-4", "name": "Edsger Dijkstra", "city": "Rotterdam", "email": "edsger@example.com"},
	})
	return t
}

func names(rows []map[string]any) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i], _ = row["name"].(string)
	}
	return out
}

func TestStagedFiltersDoNotAffectRowsUntilApplied(t *testing.T) {
	tbl := customerTable(10)

	tbl.SetFilter("city", "london")
	if got := len(tbl.VisibleRows()); got != 4 {
		t.Fatalf("staged filter already applied: %d visible rows", got)
	}
	if got := tbl.AppliedFilters(); len(got) != 0 {
		t.Fatalf("applied filters should be empty, got %v", got)
	}

	tbl.ApplyFilters()
	want := []string{"Ada Lovelace", "Alan Turing"}
	if diff := cmp.Diff(want, names(tbl.VisibleRows())); diff != "" {
		t.Fatalf("filtered rows mismatch (-want +got):\n%s", diff)
	}
}

func TestFiltersAreCaseInsensitiveAndConjunctive(t *testing.T) {
	tbl := customerTable(10)

	tbl.SetFilter("city", "LONDON")
	tbl.SetFilter("name", "ada")
	tbl.ApplyFilters()

	want := []string{"Ada Lovelace"}
	if diff := cmp.Diff(want, names(tbl.VisibleRows())); diff != "" {
		t.Fatalf("conjunctive filter mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyFiltersResetsPage(t *testing.T) {
	tbl := customerTable(2)

	tbl.SetPage(2)
	if got := tbl.Page(); got != 2 {
		t.Fatalf("page = %d", got)
	}

	tbl.SetFilter("city", "london")
	tbl.ApplyFilters()
	if got := tbl.Page(); got != 1 {
		t.Fatalf("apply should reset to page 1, got %d", got)
	}
}

func TestClearFiltersRestoresAllRows(t *testing.T) {
	tbl := customerTable(10)

	tbl.SetFilter("city", "london")
	tbl.ApplyFilters()
	tbl.ClearFilters()

	if got := len(tbl.VisibleRows()); got != 4 {
		t.Fatalf("expected all rows after clear, got %d", got)
	}
	if got := tbl.DraftFilters(); len(got) != 0 {
		t.Fatalf("draft filters should be empty after clear, got %v", got)
	}
	if got := tbl.Page(); got != 1 {
		t.Fatalf("clear should reset to page 1, got %d", got)
	}
}

func TestEmptyFilterValueRemovesStagedFilter(t *testing.T) {
	tbl := customerTable(10)

	tbl.SetFilter("city", "london")
	tbl.SetFilter("city", "  ")
	tbl.ApplyFilters()

	if got := len(tbl.VisibleRows()); got != 4 {
		t.Fatalf("blank filter should remove the column filter, got %d rows", got)
	}
}

func TestPagination(t *testing.T) {
	tbl := customerTable(3)

	if got := tbl.TotalPages(); got != 2 {
		t.Fatalf("total pages = %d", got)
	}

	first := names(tbl.VisibleRows())
	if diff := cmp.Diff([]string{"Ada Lovelace", "Grace Hopper", "Alan Turing"}, first); diff != "" {
		t.Fatalf("page 1 mismatch (-want +got):\n%s", diff)
	}

	tbl.SetPage(2)
	second := names(tbl.VisibleRows())
	if diff := cmp.Diff([]string{"Edsger Dijkstra"}, second); diff != "" {
		t.Fatalf("page 2 mismatch (-want +got):\n%s", diff)
	}

	tbl.SetPage(99)
	if got := tbl.Page(); got != 2 {
		t.Fatalf("page should clamp to last, got %d", got)
	}
	tbl.SetPage(-1)
	if got := tbl.Page(); got != 1 {
		t.Fatalf("page should clamp to first, got %d", got)
	}
}

func TestSetRowsResetsPageWhenOutOfRange(t *testing.T) {
	tbl := table.New(table.Config{
		PageSize: 2,
		Columns:  []table.Column{{Key: "name", Label: "Name"}},
	})
	rows := make([]map[string]any, 10)
	for i := range rows {
		rows[i] = map[string]any{"name": strconv.Itoa(i)}
	}
	tbl.SetRows(rows)

	tbl.SetPage(5)
	tbl.SetRows(rows[:4])
	if got := tbl.Page(); got != 1 {
		t.Fatalf("after data change, page = %d, want 1", got)
	}

	tbl.SetPage(2)
	tbl.SetRows(rows[:6])
	if got := tbl.Page(); got != 2 {
		t.Fatalf("in-range page should survive a data change, got %d", got)
	}
}

func TestRowKey(t *testing.T) {
	if got := table.RowKey(map[string]any{"id": "c-9", "name": "x"}, 3); got != "c-9" {
		t.Fatalf("RowKey = %q, want id", got)
	}
	if got := table.RowKey(map[string]any{"name": "x"}, 3); got != "3" {
		t.Fatalf("RowKey = %q, want index fallback", got)
	}
	if got := table.RowKey(map[string]any{"id": ""}, 7); got != "7" {
		t.Fatalf("RowKey = %q, empty id should fall back to index", got)
	}
}

func TestRenderHTML(t *testing.T) {
	tbl := customerTable(10)
	tbl.SetFilter("city", "lond")

	output := tbl.RenderHTML()

	for _, want := range []string{
		"<th>Name</th>",
		`data-row-key="c-1"`,
		`<input name="filter.city" value="lond" placeholder="Filter city">`,
		"<td>—</td>",
		"Page 1 of 1",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q\n%s", want, output)
		}
	}
}

func TestRenderHTML_CustomCellAndEmptyState(t *testing.T) {
	tbl := table.New(table.Config{
		Columns: []table.Column{
			{Key: "name", Label: "Name", Render: func(value any, _ map[string]any) string {
				return "<em>" + value.(string) + "</em>"
			}},
		},
	})
	tbl.SetRows([]map[string]any{{"name": "Ada"}})

	output := tbl.RenderHTML()
	if !strings.Contains(output, "<em>Ada</em>") {
		t.Errorf("custom cell render missing:\n%s", output)
	}

	tbl.SetRows(nil)
	if !strings.Contains(tbl.RenderHTML(), "No results") {
		t.Errorf("empty state missing")
	}
}

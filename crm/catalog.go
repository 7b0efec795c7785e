package crm

import (
	"sort"
	"strings"

	"github.com/goliatone/go-dynamicform/pkg/formconfig"
)

// Catalog search limits.
const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 50
)

// Catalog is a searchable set of select options backing a form field. Select
// fields with large option sets query it instead of embedding every choice.
type Catalog struct {
	options []formconfig.Option
}

// NewCatalog constructs a catalog over the given options.
func NewCatalog(options []formconfig.Option) *Catalog {
	return &Catalog{options: append([]formconfig.Option(nil), options...)}
}

// Options returns a copy of the full option set.
func (c *Catalog) Options() []formconfig.Option {
	return append([]formconfig.Option(nil), c.options...)
}

// Search returns options matching the query, case-insensitively, against
// value and label. Prefix matches on the label rank before substring matches.
// An empty query returns the leading options up to the limit.
func (c *Catalog) Search(query string, limit int) []formconfig.Option {
	limit = clampLimit(limit)

	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		if len(c.options) <= limit {
			return c.Options()
		}
		return append([]formconfig.Option(nil), c.options[:limit]...)
	}

	type match struct {
		option formconfig.Option
		prefix bool
	}
	matches := make([]match, 0, 16)
	for _, option := range c.options {
		label := strings.ToLower(option.Label)
		value := strings.ToLower(option.Value)
		if !strings.Contains(label, query) && !strings.Contains(value, query) {
			continue
		}
		matches = append(matches, match{
			option: option,
			prefix: strings.HasPrefix(label, query) || strings.HasPrefix(value, query),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].prefix != matches[j].prefix {
			return matches[i].prefix
		}
		return matches[i].option.Label < matches[j].option.Label
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]formconfig.Option, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.option)
	}
	return out
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		return MaxSearchLimit
	}
	return limit
}

// fieldCatalogs maps form field names to their option catalogs.
var fieldCatalogs = map[string]*Catalog{
	"industry": NewCatalog(industryOptions),
	"status":   NewCatalog(statusOptions),
	"priority": NewCatalog(priorityOptions),
}

// FieldCatalog resolves the catalog for a select field name.
func FieldCatalog(name string) (*Catalog, bool) {
	catalog, ok := fieldCatalogs[name]
	return catalog, ok
}

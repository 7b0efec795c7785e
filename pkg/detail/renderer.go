package detail

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// NotProvided is the placeholder shown for nil values.
const NotProvided = "Not provided"

// Option configures the renderer.
type Option func(*Renderer)

// WithSanitizer replaces the policy applied to custom render output.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(r *Renderer) {
		if policy != nil {
			r.policy = policy
		}
	}
}

// Renderer emits detail views as HTML. Custom field output passes through a
// bluemonday policy so render hooks cannot inject scripts.
type Renderer struct {
	policy *bluemonday.Policy
}

// New constructs a detail renderer with the UGC sanitization policy.
func New(options ...Option) *Renderer {
	r := &Renderer{policy: bluemonday.UGCPolicy()}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Render produces the full detail view for a record.
func (r *Renderer) Render(cfg Config, record map[string]any) string {
	var b strings.Builder
	b.Grow(1024)

	b.WriteString(`<div class="df-detail">` + "\n")
	b.WriteString(`<h2 class="df-detail-title">`)
	b.WriteString(html.EscapeString(cfg.ResolvedTitle()))
	b.WriteString("</h2>\n")
	if desc := cfg.ResolvedDescription(); desc != "" {
		b.WriteString(`<p class="df-detail-description">`)
		b.WriteString(html.EscapeString(desc))
		b.WriteString("</p>\n")
	}

	for _, section := range cfg.Sections {
		b.WriteString(`<section class="df-detail-section">` + "\n")
		if section.Title != "" {
			b.WriteString("<h3>")
			b.WriteString(html.EscapeString(section.Title))
			b.WriteString("</h3>\n")
		}
		b.WriteString("<dl>\n")
		for _, field := range section.Fields {
			b.WriteString("<dt>")
			b.WriteString(html.EscapeString(field.Label))
			b.WriteString("</dt>\n<dd>")
			b.WriteString(r.FormatValue(field, record[field.Name], record))
			b.WriteString("</dd>\n")
		}
		b.WriteString("</dl>\n</section>\n")
	}

	b.WriteString("</div>\n")
	return b.String()
}

// FormatValue renders a single field value per its display strategy. Nil
// values short-circuit to the NotProvided placeholder regardless of strategy.
func (r *Renderer) FormatValue(field Field, value any, record map[string]any) string {
	if value == nil {
		return `<span class="df-detail-empty">` + NotProvided + `</span>`
	}

	switch field.Display {
	case DisplayBadge:
		return formatBadge(field, value)
	case DisplayLink:
		return formatLink(field, value)
	case DisplayCurrency:
		return html.EscapeString(formatCurrency(value))
	case DisplayPercentage:
		return html.EscapeString(fmt.Sprint(value) + "%")
	case DisplayDate:
		return html.EscapeString(formatDate(value))
	case DisplayCustom:
		if field.Render == nil {
			return html.EscapeString(fmt.Sprint(value))
		}
		return r.policy.Sanitize(field.Render(value, record))
	default:
		return html.EscapeString(fmt.Sprint(value))
	}
}

func formatBadge(field Field, value any) string {
	raw := fmt.Sprint(value)
	label := raw
	variant := "outline"
	if style, ok := field.Badges[raw]; ok {
		if style.Label != "" {
			label = style.Label
		}
		variant = "default"
		if style.Variant != "" {
			variant = style.Variant
		}
	}
	return `<span class="df-badge df-badge-` + html.EscapeString(variant) + `">` +
		html.EscapeString(label) + `</span>`
}

func formatLink(field Field, value any) string {
	raw := fmt.Sprint(value)
	text := raw
	var href string
	switch field.Link {
	case LinkEmail:
		href = "mailto:" + raw
	case LinkPhone:
		href = "tel:" + raw
	case LinkURL:
		href = raw
		if field.External {
			text = "Visit Site"
		}
	default:
		return html.EscapeString(raw)
	}
	return `<a href="` + html.EscapeString(href) + `">` + html.EscapeString(text) + `</a>`
}

// formatCurrency renders "$12.50"; values that are not numbers fall back to
// their plain string form.
func formatCurrency(value any) string {
	switch v := value.(type) {
	case float64:
		return fmt.Sprintf("$%.2f", v)
	case float32:
		return fmt.Sprintf("$%.2f", float64(v))
	case int:
		return fmt.Sprintf("$%.2f", float64(v))
	case int64:
		return fmt.Sprintf("$%.2f", float64(v))
	case string:
		if num, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return fmt.Sprintf("$%.2f", num)
		}
		return v
	default:
		return fmt.Sprint(value)
	}
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// formatDate renders times as "Jan 2, 2006". Strings that match no known
// layout pass through untouched.
func formatDate(value any) string {
	switch v := value.(type) {
	case time.Time:
		return v.Format("Jan 2, 2006")
	case string:
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed.Format("Jan 2, 2006")
			}
		}
		return v
	default:
		return fmt.Sprint(value)
	}
}

package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-dynamicform/pkg/formconfig"
)

// ErrorMapping splits a server error payload into field-level and form-level
// messages keyed by the dotted field paths used throughout the render
// pipeline.
type ErrorMapping struct {
	Fields map[string]string
	Form   []string
}

// MapErrorPayload normalises server error payloads (JSON pointer or dotted
// paths) onto the configuration's field paths. Index segments are preserved
// for array rows; paths that match no configured field become form-level
// messages so nothing is silently dropped.
func MapErrorPayload(cfg formconfig.FormConfig, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string]string)}
	if len(payload) == 0 {
		return mapping
	}

	known := knownFields(cfg)

	for rawPath, messages := range payload {
		message := firstMessage(messages)
		if message == "" {
			continue
		}
		path, ok := resolvePath(rawPath, known)
		if !ok {
			mapping.Form = append(mapping.Form, message)
			continue
		}
		if _, exists := mapping.Fields[path]; !exists {
			mapping.Fields[path] = message
		}
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	return mapping
}

type fieldInfo struct {
	array bool
	items map[string]struct{}
}

func knownFields(cfg formconfig.FormConfig) map[string]fieldInfo {
	known := make(map[string]fieldInfo)
	for _, section := range cfg.Sections {
		for _, field := range section.Fields {
			info := fieldInfo{array: field.Kind == formconfig.KindArray}
			if info.array {
				info.items = make(map[string]struct{}, len(field.ItemFields))
				for _, item := range field.ItemFields {
					info.items[item.Name] = struct{}{}
				}
			}
			known[field.Name] = info
		}
	}
	return known
}

// resolvePath accepts "email", "friends.0.name", "#/friends/0/name", and
// common body/data wrapper prefixes.
func resolvePath(raw string, known map[string]fieldInfo) (string, bool) {
	segments := splitErrorPath(raw)
	for len(segments) > 0 && isWrapperSegment(segments[0]) {
		segments = segments[1:]
	}
	if len(segments) == 0 {
		return "", false
	}

	info, ok := known[segments[0]]
	if !ok {
		return "", false
	}
	if !info.array || len(segments) == 1 {
		return segments[0], true
	}
	if len(segments) != 3 {
		return segments[0], true
	}
	if _, err := strconv.Atoi(segments[1]); err != nil {
		return segments[0], true
	}
	if _, ok := info.items[segments[2]]; !ok {
		return segments[0], true
	}
	return strings.Join(segments[:3], "."), true
}

func splitErrorPath(raw string) []string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "#")
	clean = strings.TrimPrefix(clean, "$")
	clean = strings.ReplaceAll(clean, "[", ".")
	clean = strings.ReplaceAll(clean, "]", "")
	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := parts[:0]
	for _, part := range parts {
		if segment := strings.TrimSpace(part); segment != "" {
			out = append(out, segment)
		}
	}
	return out
}

func isWrapperSegment(segment string) bool {
	switch strings.ToLower(segment) {
	case "body", "request", "payload", "data", "attributes":
		return true
	default:
		return false
	}
}

func firstMessage(messages []string) string {
	for _, message := range messages {
		if trimmed := strings.TrimSpace(message); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

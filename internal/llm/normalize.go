package llm

import (
	"fmt"
	"strings"
)

// Normalize extracts a single trimmed text string from an arbitrary decoded
// response value. It recognizes a closed set of shapes, tried in order:
// a direct text field, a "candidates" list, an "outputs" list with nested
// content items, and a plain mapping with common reply field names. Anything
// else falls back to a string conversion of the whole value. Normalize never
// panics and never returns an error; unrecognized content degrades to the
// fallback arm.
func Normalize(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		return normalizeMap(v)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

func normalizeMap(m map[string]any) string {
	if len(m) == 0 {
		return ""
	}

	if text, ok := m["text"].(string); ok {
		return strings.TrimSpace(text)
	}

	if candidates, ok := m["candidates"].([]any); ok && len(candidates) > 0 {
		return joinParts(extractCandidates(candidates))
	}

	if outputs, ok := m["outputs"].([]any); ok && len(outputs) > 0 {
		return joinParts(extractOutputs(outputs))
	}

	// Preference order for plain reply mappings.
	for _, key := range []string{"text", "reply", "content"} {
		if s, ok := m[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}

	return strings.TrimSpace(fmt.Sprintf("%v", m))
}

// extractCandidates pulls a textual field from each candidate, preferring
// "content" over "text".
func extractCandidates(candidates []any) []string {
	parts := make([]string, 0, len(candidates))
	for _, c := range candidates {
		obj, ok := c.(map[string]any)
		if !ok {
			continue
		}
		if s, ok := obj["content"].(string); ok && s != "" {
			parts = append(parts, s)
			continue
		}
		if s, ok := obj["text"].(string); ok && s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}

// extractOutputs pulls text from each output object. An output holding a
// nested "content" list contributes the text of each item; otherwise the
// output's own textual field is used.
func extractOutputs(outputs []any) []string {
	var parts []string
	for _, o := range outputs {
		obj, ok := o.(map[string]any)
		if !ok {
			continue
		}

		if items, ok := obj["content"].([]any); ok {
			for _, item := range items {
				itemObj, ok := item.(map[string]any)
				if !ok {
					parts = append(parts, fmt.Sprintf("%v", item))
					continue
				}
				if s, ok := itemObj["text"].(string); ok && s != "" {
					parts = append(parts, s)
					continue
				}
				if s, ok := itemObj["content"].(string); ok && s != "" {
					parts = append(parts, s)
				}
			}
			continue
		}

		if s, ok := obj["text"].(string); ok && s != "" {
			parts = append(parts, s)
			continue
		}
		if s, ok := obj["content"].(string); ok && s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}

func joinParts(parts []string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.TrimSpace(strings.Join(nonEmpty, " "))
}

package llm_test

import (
	"testing"

	"github.com/edgard/nichirin/internal/llm"
)

// TestNormalize tests text extraction from the recognized response shapes
// and the fallback behavior for everything else.
func TestNormalize(t *testing.T) {
	t.Parallel()

	type normalizeTestCase struct {
		name     string
		input    any
		expected string
	}

	testGroups := map[string][]normalizeTestCase{
		"Direct Text": {
			{
				name:     "plain string",
				input:    "  hello there  ",
				expected: "hello there",
			},
			{
				name:     "text field",
				input:    map[string]any{"text": " a direct reply "},
				expected: "a direct reply",
			},
			{
				name:     "empty text field",
				input:    map[string]any{"text": ""},
				expected: "",
			},
		},
		"Candidates List": {
			{
				name: "content preferred over text",
				input: map[string]any{"candidates": []any{
					map[string]any{"content": "first", "text": "ignored"},
					map[string]any{"text": "second"},
				}},
				expected: "first second",
			},
			{
				name: "empty candidates are skipped",
				input: map[string]any{"candidates": []any{
					map[string]any{"content": ""},
					map[string]any{"text": "only"},
					"not an object",
				}},
				expected: "only",
			},
			{
				name:     "no extractable candidate text",
				input:    map[string]any{"candidates": []any{map[string]any{"role": "model"}}},
				expected: "",
			},
		},
		"Outputs List": {
			{
				name: "nested content items",
				input: map[string]any{"outputs": []any{
					map[string]any{"content": []any{
						map[string]any{"text": "part one"},
						map[string]any{"content": "part two"},
					}},
				}},
				expected: "part one part two",
			},
			{
				name: "output with direct text",
				input: map[string]any{"outputs": []any{
					map[string]any{"text": "direct"},
					map[string]any{"content": "fallback"},
				}},
				expected: "direct fallback",
			},
			{
				name: "non-object content items stringified",
				input: map[string]any{"outputs": []any{
					map[string]any{"content": []any{"raw item"}},
				}},
				expected: "raw item",
			},
		},
		"Plain Mapping": {
			{
				name:     "reply field",
				input:    map[string]any{"reply": " mapped reply "},
				expected: "mapped reply",
			},
			{
				name:     "content field",
				input:    map[string]any{"content": "mapped content"},
				expected: "mapped content",
			},
			{
				name:     "reply preferred over content",
				input:    map[string]any{"content": "lower", "reply": "higher"},
				expected: "higher",
			},
			{
				name:     "blank reply falls through to content",
				input:    map[string]any{"reply": "   ", "content": "mapped content"},
				expected: "mapped content",
			},
		},
		"Fallback": {
			{
				name:     "nil value",
				input:    nil,
				expected: "",
			},
			{
				name:     "empty mapping",
				input:    map[string]any{},
				expected: "",
			},
			{
				name:     "number stringified",
				input:    42,
				expected: "42",
			},
			{
				name:     "list stringified",
				input:    []any{"a", "b"},
				expected: "[a b]",
			},
		},
	}

	for groupName, cases := range testGroups {
		t.Run(groupName, func(t *testing.T) {
			t.Parallel()
			for _, tc := range cases {
				t.Run(tc.name, func(t *testing.T) {
					t.Parallel()

					if got := llm.Normalize(tc.input); got != tc.expected {
						t.Errorf("Normalize(%#v) = %q, want %q", tc.input, got, tc.expected)
					}
				})
			}
		})
	}
}

package server

import (
	"errors"
	"strings"
)

var (
	errNoMessageField = errors.New("No 'message' or 'messages' provided")
	errEmptyMessage   = errors.New("Empty message provided")
)

// extractMessage pulls the user text out of a decoded request body. The body
// must carry either a "message" string or a "messages" value that is a
// string or a non-empty list whose last element is a string or an object
// with a content/message/text field.
func extractMessage(data map[string]any) (string, error) {
	var message string

	if m, ok := data["message"].(string); ok {
		message = strings.TrimSpace(m)
	} else if msgs, ok := data["messages"]; ok {
		switch v := msgs.(type) {
		case string:
			message = strings.TrimSpace(v)
		case []any:
			if len(v) > 0 {
				message = strings.TrimSpace(lastMessageText(v[len(v)-1]))
			}
		}
	} else {
		return "", errNoMessageField
	}

	if message == "" {
		return "", errEmptyMessage
	}
	return message, nil
}

// lastMessageText extracts text from the final element of a messages list.
func lastMessageText(last any) string {
	switch v := last.(type) {
	case string:
		return v
	case map[string]any:
		for _, key := range []string{"content", "message", "text"} {
			if s, ok := v[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

package session

import "strings"

// Namespace prefixes every Redis key written by this package.
const Namespace = "draftdesk"

func formatKey(parts ...string) string {
	values := make([]string, 0, len(parts)+1)
	values = append(values, Namespace)
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		values = append(values, clean)
	}
	return strings.Join(values, ":")
}

// Key returns the Redis key holding a session's state.
func Key(id string) string {
	return formatKey("session", id)
}

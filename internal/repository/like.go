package repository

import "strings"

// likeEscapeLower lowercases the input and escapes LIKE wildcards so user text
// cannot widen the match.
func likeEscapeLower(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

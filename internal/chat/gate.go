package chat

import "strings"

// ApproveStatement admits a statement iff its leading keyword is SELECT.
// This is a prefix check, not a parser: only the leading token is inspected.
func ApproveStatement(sqlText string) error {
	trimmed := strings.ToUpper(strings.TrimSpace(sqlText))
	if !strings.HasPrefix(trimmed, "SELECT") {
		return &Error{
			Kind:    KindDisallowedStatement,
			Message: "Only SELECT queries are allowed for security reasons",
		}
	}
	return nil
}

package chat

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Decision is the classification of a model reply: either a structured query
// request or a plain answer to return verbatim.
type Decision struct {
	IsQuery bool
	SQL     string
	Text    string
}

var (
	fenceOpen  = regexp.MustCompile("^```(?:json)?\r?\n")
	fenceClose = regexp.MustCompile("\r?\n```$")
)

// Classify speculatively parses a reply as a {"sql": ...} tool call. Models
// habitually wrap JSON in a markdown code fence, so the fence is stripped
// before parsing. Any parse failure means the reply is a plain answer, not
// an error.
func Classify(reply string) Decision {
	cleaned := strings.TrimSpace(reply)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = fenceOpen.ReplaceAllString(cleaned, "")
		cleaned = fenceClose.ReplaceAllString(cleaned, "")
	}

	var call struct {
		SQL string `json:"sql"`
	}
	if err := json.Unmarshal([]byte(cleaned), &call); err != nil || strings.TrimSpace(call.SQL) == "" {
		return Decision{Text: reply}
	}
	return Decision{IsQuery: true, SQL: call.SQL, Text: reply}
}

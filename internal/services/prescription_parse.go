package services

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	fieldJournalExplain     = "journal_explain"
	fieldRecommendationText = "recommendation_text"
)

var regexFieldPatterns = map[string]*regexp.Regexp{
	fieldJournalExplain:     fieldPattern(fieldJournalExplain),
	fieldRecommendationText: fieldPattern(fieldRecommendationText),
}

var escapedReplyText = strings.NewReplacer(`\"`, `"`, `\n`, "\n", `\\`, `\`)

func fieldPattern(field string) *regexp.Regexp {
	return regexp.MustCompile(`"` + regexp.QuoteMeta(field) + `"\s*:\s*"((?:[^"\\]|\\.)*)"`)
}

// extractReplyField returns a non-blank top-level string field of the reply. The
// pattern scan only runs when the reply is not valid JSON; a parsed reply without
// the field yields false.
func extractReplyField(reply string, field string) (string, bool) {
	body := stripCodeFence(reply)
	if gjson.Valid(body) {
		return parseStrictJSONField(body, field)
	}
	return parseRegexField(reply, field)
}

func parseStrictJSONField(body string, field string) (string, bool) {
	result := gjson.Get(body, field)
	if result.Type != gjson.String {
		return "", false
	}
	return nonBlank(result.String())
}

func parseRegexField(reply string, field string) (string, bool) {
	pattern, ok := regexFieldPatterns[field]
	if !ok {
		pattern = fieldPattern(field)
	}
	match := pattern.FindStringSubmatch(reply)
	if match == nil {
		return "", false
	}
	return nonBlank(escapedReplyText.Replace(match[1]))
}

// stripCodeFence keeps the outermost object of a ```-fenced reply.
func stripCodeFence(reply string) string {
	trimmed := strings.TrimSpace(reply)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end <= start {
		return trimmed
	}
	return trimmed[start : end+1]
}

func nonBlank(value string) (string, bool) {
	if strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

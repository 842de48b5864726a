package memory

import (
	"regexp"
	"strings"
)

// Admission bounds for raw conversational text. Applied before extraction or
// embedding ever see the text, never to already-sanitized facts.
const (
	minCandidateLen = 10
	maxCandidateLen = 5000
)

// injectionMarker is the opening of the recall envelope (see format.go).
// Raw text containing it is rejected outright so captured memories can never
// smuggle a fake envelope back into a future context window.
const injectionMarker = "<" + envelopeTag

var whitespaceRe = regexp.MustCompile(`\s+`)

// injectionPatterns is a fixed set of known prompt-injection idioms:
// instruction overrides, system/developer role references, role- or
// tool-shaped markup tags, and natural-language tool execution requests.
// This is a best-effort heuristic, not a guarantee.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bignore\s+(all\s+|any\s+)?(previous|prior|above|earlier)\s+(instructions?|prompts?|context|messages?)`),
	regexp.MustCompile(`(?i)\bnew\s+instructions?\b`),
	regexp.MustCompile(`(?i)\byou\s+are\s+now\b`),
	regexp.MustCompile(`(?i)\bforget\s+(everything|all\s+previous|your\s+(instructions?|rules))`),
	regexp.MustCompile(`(?i)\bdisregard\b.{0,40}\binstructions?\b`),
	regexp.MustCompile(`(?i)\b(system|developer)\s+(prompts?|messages?|instructions?|role)\b`),
	regexp.MustCompile(`(?i)<\s*/?\s*(system|assistant|developer|tool|function|instructions?)\b`),
	regexp.MustCompile(`(?i)\b(run|execute|invoke|call)\s+(the\s+|a\s+|this\s+)?(command|tool|shell|script|function)\b`),
}

// LooksLikeInjection reports whether text matches any known prompt-injection
// idiom. Whitespace is normalized first so padding cannot split a phrase
// across lines.
func LooksLikeInjection(text string) bool {
	normalized := whitespaceRe.ReplaceAllString(text, " ")
	for _, p := range injectionPatterns {
		if p.MatchString(normalized) {
			return true
		}
	}
	return false
}

// ContainsEnvelope reports whether text contains the recall envelope opening,
// case-insensitively. Such text is never admitted, whatever its source.
func ContainsEnvelope(text string) bool {
	return strings.Contains(strings.ToLower(text), injectionMarker)
}

// ShouldSkip is the admission gate for raw conversational text. It rejects
// text too short to carry a durable fact, too long to embed sensibly,
// containing the recall envelope marker, or matching the injection set.
func ShouldSkip(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < minCandidateLen || len(trimmed) > maxCandidateLen {
		return true
	}
	if ContainsEnvelope(trimmed) {
		return true
	}
	return LooksLikeInjection(trimmed)
}

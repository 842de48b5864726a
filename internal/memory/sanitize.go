package memory

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"
)

// Fact text bounds enforced at admission.
const (
	minFactLen = 5
	maxFactLen = 500
)

// DefaultImportance is assigned to manually stored facts when the caller
// does not supply one.
const DefaultImportance = 0.7

// RawCandidate is the loosely-typed shape the extraction model is asked to
// emit. Fields may be missing, malformed or out of range; Sanitize decides
// what survives.
type RawCandidate struct {
	Text       string  `json:"text"`
	Category   string  `json:"category"`
	Importance float64 `json:"importance"`
}

// metaPhraseRe matches the meta-commentary extractors sometimes emit in
// place of a true empty list ("nothing to remember here", "no new facts").
var metaPhraseRe = regexp.MustCompile(`(?i)\b(nothing (to remember|worth (remembering|storing|saving))|` +
	`no (new |durable |memorable )?(facts?|information|memories) (to (remember|store|extract)|worth (remembering|storing))|` +
	`no (new |durable |memorable )(facts?|memories)\b)`)

var codeFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// ParseCandidates turns raw extraction-model output into candidates. The
// output may be empty, markdown-fenced, a non-array, or contain malformed
// elements; none of these are errors. Unparseable content yields an empty
// slice and malformed elements are skipped individually, so a bad payload
// can never fail the capture pipeline.
func ParseCandidates(raw string) []RawCandidate {
	content := strings.TrimSpace(raw)
	if content == "" {
		return nil
	}

	// Unwrap a markdown code fence if the model added one.
	if m := codeFenceRe.FindStringSubmatch(content); m != nil {
		content = m[1]
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(content), &elements); err != nil {
		return nil
	}

	candidates := make([]RawCandidate, 0, len(elements))
	for _, el := range elements {
		var c RawCandidate
		if err := json.Unmarshal(el, &c); err != nil {
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates
}

// Sanitize validates and normalizes parsed candidates. A candidate survives
// when its text length is in [5,500], its importance is in (0,1], and it is
// not extractor meta-commentary. Survivors get their importance rounded to
// two decimals and their category coerced onto the allow-list.
func Sanitize(candidates []RawCandidate) []RawCandidate {
	out := make([]RawCandidate, 0, len(candidates))
	for _, c := range candidates {
		text := strings.TrimSpace(c.Text)
		if len(text) < minFactLen || len(text) > maxFactLen {
			continue
		}
		if c.Importance <= 0 || c.Importance > 1 {
			continue
		}
		if metaPhraseRe.MatchString(text) {
			continue
		}

		out = append(out, RawCandidate{
			Text:       text,
			Category:   string(CoerceCategory(c.Category)),
			Importance: RoundImportance(c.Importance),
		})
	}
	return out
}

// RoundImportance rounds to two decimal places.
func RoundImportance(v float64) float64 {
	return math.Round(v*100) / 100
}

// ValidFactText reports whether text fits the stored-fact bounds.
func ValidFactText(text string) bool {
	n := len(strings.TrimSpace(text))
	return n >= minFactLen && n <= maxFactLen
}

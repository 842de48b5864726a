package memory

import (
	"strings"
	"testing"
)

func TestParseCandidates(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{
			name: "plain array",
			raw:  `[{"text":"User prefers dark roast coffee","category":"preference","importance":0.6}]`,
			want: 1,
		},
		{
			name: "markdown fenced",
			raw:  "```json\n[{\"text\":\"User lives in Berlin\",\"category\":\"fact\",\"importance\":0.8}]\n```",
			want: 1,
		},
		{
			name: "fence without language tag",
			raw:  "```\n[{\"text\":\"User is vegetarian\",\"importance\":0.5}]\n```",
			want: 1,
		},
		{"empty content", "", 0},
		{"whitespace only", "   \n\t ", 0},
		{"not json", "I could not find any facts.", 0},
		{"json but not an array", `{"text":"solo object"}`, 0},
		{"empty array", `[]`, 0},
		{
			name: "malformed element skipped, valid kept",
			raw:  `[{"text":"valid fact here","importance":0.5}, "just a string", {"text":{"nested":true}}]`,
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCandidates(tt.raw)
			if len(got) != tt.want {
				t.Errorf("ParseCandidates(%q) returned %d candidates, want %d", tt.raw, len(got), tt.want)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   RawCandidate
		keep bool
	}{
		{"valid", RawCandidate{Text: "User prefers tea", Category: "preference", Importance: 0.6}, true},
		{"zero importance", RawCandidate{Text: "valid length text", Importance: 0}, false},
		{"negative importance", RawCandidate{Text: "valid length text", Importance: -0.4}, false},
		{"importance above one", RawCandidate{Text: "valid length text", Importance: 1.2}, false},
		{"importance exactly one", RawCandidate{Text: "valid length text", Importance: 1.0}, true},
		{"text length 4", RawCandidate{Text: "abcd", Importance: 0.5}, false},
		{"text length 5", RawCandidate{Text: "abcde", Importance: 0.5}, true},
		{"text length 501", RawCandidate{Text: strings.Repeat("x", 501), Importance: 0.5}, false},
		{"text length 500", RawCandidate{Text: strings.Repeat("x", 500), Importance: 0.5}, true},
		{"meta commentary", RawCandidate{Text: "There is nothing to remember from this conversation.", Importance: 0.5}, false},
		{"meta no new facts", RawCandidate{Text: "No new facts were mentioned by the user.", Importance: 0.5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize([]RawCandidate{tt.in})
			if kept := len(got) == 1; kept != tt.keep {
				t.Errorf("Sanitize(%+v) kept=%v, want %v", tt.in, kept, tt.keep)
			}
		})
	}
}

func TestSanitizeNormalizes(t *testing.T) {
	got := Sanitize([]RawCandidate{
		{Text: "User prefers dark roast", Category: "beverage-opinion", Importance: 0.123456789},
	})
	if len(got) != 1 {
		t.Fatalf("candidate dropped unexpectedly")
	}
	if got[0].Category != string(CategoryFact) {
		t.Errorf("category = %q, want coerced to %q", got[0].Category, CategoryFact)
	}
	if got[0].Importance != 0.12 {
		t.Errorf("importance = %v, want rounded to 0.12", got[0].Importance)
	}
}

func TestSanitizeKeepsKnownCategories(t *testing.T) {
	for _, c := range ValidCategories {
		got := Sanitize([]RawCandidate{{Text: "some fact text", Category: string(c), Importance: 0.5}})
		if len(got) != 1 || got[0].Category != string(c) {
			t.Errorf("category %q not preserved", c)
		}
	}
}

func TestRoundImportance(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.123456789, 0.12},
		{0.125, 0.13},
		{0.7, 0.7},
		{1.0, 1.0},
	}
	for _, tt := range tests {
		if got := RoundImportance(tt.in); got != tt.want {
			t.Errorf("RoundImportance(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// Package memory holds the core fact model, admission gates and the
// composite ranking engine. Everything in this package is pure: no I/O,
// no store access, no clocks other than the ones passed in.
package memory

import (
	"time"
)

// Category classifies a stored fact.
type Category string

const (
	CategoryPreference Category = "preference"
	CategoryDecision   Category = "decision"
	CategoryEntity     Category = "entity"
	CategoryFact       Category = "fact"
	CategoryEvent      Category = "event"
	CategoryLesson     Category = "lesson"
)

// ValidCategories is the closed set of recognized categories.
var ValidCategories = []Category{
	CategoryPreference,
	CategoryDecision,
	CategoryEntity,
	CategoryFact,
	CategoryEvent,
	CategoryLesson,
}

// IsValid returns true if the category is in the allow-list.
func (c Category) IsValid() bool {
	for _, v := range ValidCategories {
		if c == v {
			return true
		}
	}
	return false
}

// CoerceCategory maps an arbitrary extracted value onto the allow-list.
// Unrecognized values become CategoryFact.
func CoerceCategory(s string) Category {
	c := Category(s)
	if c.IsValid() {
		return c
	}
	return CategoryFact
}

// Fact is the durable unit of long-term memory. Text length and importance
// bounds are enforced at admission (Sanitize / manual store), not here.
type Fact struct {
	ID           string    `json:"id"`
	Text         string    `json:"text"`
	Category     Category  `json:"category"`
	Importance   float64   `json:"importance"`
	SessionKey   string    `json:"session_key,omitempty"`
	AgentID      string    `json:"agent_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	AccessCount  int       `json:"access_count"`
	LastAccessed time.Time `json:"last_accessed,omitempty"`
}

// Hit is a fact returned by similarity search together with the cosine
// similarity reported by the store, in [0,1].
type Hit struct {
	Fact        Fact
	VectorScore float64
}

// ScoredMemory is a ranked retrieval candidate. FinalScore is derived by the
// scoring engine and never persisted.
type ScoredMemory struct {
	Fact        Fact
	VectorScore float64
	FinalScore  float64
}

// Message is a single conversation turn message. Only user-role messages
// feed the capture pipeline.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RoleUser is the author role whose messages are capture candidates.
const RoleUser = "user"

// UserTexts returns the contents of user-authored messages in order.
func UserTexts(messages []Message) []string {
	var texts []string
	for _, m := range messages {
		if m.Role == RoleUser && m.Content != "" {
			texts = append(texts, m.Content)
		}
	}
	return texts
}

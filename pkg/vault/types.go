package vault

import (
	"time"
)

type MemoryCategory string

const (
	CategoryIdentity     MemoryCategory = "Identity"
	CategoryFear         MemoryCategory = "Fear & Insecurity"
	CategoryDream        MemoryCategory = "Dream & Vision"
	CategoryRelationship MemoryCategory = "Relationship"
	CategoryStress       MemoryCategory = "Stress Response"
	CategoryCareer       MemoryCategory = "Career"
	CategoryHealth       MemoryCategory = "Health"
	CategoryOther        MemoryCategory = "Other"
)

// Categories lists all memory categories in display order.
func Categories() []MemoryCategory {
	return []MemoryCategory{
		CategoryIdentity,
		CategoryFear,
		CategoryDream,
		CategoryRelationship,
		CategoryStress,
		CategoryCareer,
		CategoryHealth,
		CategoryOther,
	}
}

func (c MemoryCategory) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}

	return false
}

const (
	MoodGreat    = "Great"
	MoodGood     = "Good"
	MoodNeutral  = "Neutral"
	MoodStressed = "Stressed"
	MoodBad      = "Bad"
)

// MoodScore maps a mood label to a 1-5 score for charting. The remote
// analyzer is not guaranteed to stay inside the five known labels, so
// anything unrecognized scores as Neutral.
func MoodScore(mood string) int {
	switch mood {
	case MoodGreat:
		return 5
	case MoodGood:
		return 4
	case MoodNeutral:
		return 3
	case MoodStressed:
		return 2
	case MoodBad:
		return 1
	}

	return 3
}

type MessageRole string

const (
	RoleUser  MessageRole = "user"
	RoleModel MessageRole = "model"
)

// UserProfile describes the vault owner. One instance per vault, edited
// through the dashboard.
type UserProfile struct {
	Name               string   `json:"name"`
	CommunicationStyle string   `json:"communicationStyle"`
	CurrentFocus       string   `json:"currentFocus"`
	Traits             []string `json:"traits"`
}

func DefaultProfile() UserProfile {
	return UserProfile{
		Name:               "User",
		CommunicationStyle: "Balanced",
		CurrentFocus:       "Personal Growth",
		Traits:             []string{},
	}
}

// Memory is a discrete user-authored fact, kept as persistent context for
// conversations.
type Memory struct {
	ID         string         `json:"id"`
	Content    string         `json:"content"`
	Category   MemoryCategory `json:"category"`
	CreatedAt  time.Time      `json:"createdAt"`
	Importance int            `json:"importance"`
}

// JournalEntry is one reflection. Mood and tags always come from the
// analyzer; the mood string is stored verbatim even when the analyzer
// strays outside the known labels.
type JournalEntry struct {
	ID      string   `json:"id"`
	Date    string   `json:"date"`
	Content string   `json:"content"`
	Mood    string   `json:"mood"`
	Tags    []string `json:"tags"`
}

// Message is one turn of the chat log.
type Message struct {
	ID        string      `json:"id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

// MemoryGroup is one category's worth of memories for display.
type MemoryGroup struct {
	Category MemoryCategory `json:"category"`
	Memories []Memory       `json:"memories"`
}

// GroupMemories buckets memories by category in display order, omitting
// empty categories. Relative order inside a bucket is insertion order.
func GroupMemories(memories []Memory) []MemoryGroup {
	buckets := make(map[MemoryCategory][]Memory)

	for _, m := range memories {
		buckets[m.Category] = append(buckets[m.Category], m)
	}

	var groups []MemoryGroup

	for _, category := range Categories() {
		if ms, ok := buckets[category]; ok {
			groups = append(groups, MemoryGroup{Category: category, Memories: ms})
		}
	}

	return groups
}

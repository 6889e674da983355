// Package provider defines the interfaces to remote model services.
package provider

import (
	"context"
)

type MessageRole string

const (
	MessageRoleUser  MessageRole = "user"
	MessageRoleModel MessageRole = "model"
)

// Message is a single role-tagged turn of a conversation.
type Message struct {
	Role    MessageRole
	Content string
}

type CompleteOptions struct {
	// Instruction is the system-level instruction grounding the conversation.
	Instruction string

	Temperature *float32
}

// Completer generates a conversational response for the given turns.
type Completer interface {
	Complete(ctx context.Context, messages []Message, options *CompleteOptions) (string, error)
}

// Analysis is the structured result of analyzing a journal entry.
type Analysis struct {
	Mood     string   `json:"mood"`
	Tags     []string `json:"tags"`
	Insights string   `json:"insights"`
}

// Analyzer extracts mood, tags and a one-sentence insight from raw entry text.
type Analyzer interface {
	Analyze(ctx context.Context, content string) (*Analysis, error)
}

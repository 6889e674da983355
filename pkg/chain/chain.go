// Package chain defines the conversational layer between the HTTP surface
// and the raw model providers. Chains absorb remote failures: their methods
// return usable values, never errors.
package chain

import (
	"context"

	"github.com/sanctum-app/sanctum/pkg/provider"
	"github.com/sanctum-app/sanctum/pkg/vault"
)

type Provider interface {
	// Converse produces the model's reply to the newest user message, given
	// the chat history and the full vault context.
	Converse(ctx context.Context, history []vault.Message, content string, profile vault.UserProfile, memories []vault.Memory, entries []vault.JournalEntry) string

	// Analyze classifies a journal entry into mood, tags and an insight.
	Analyze(ctx context.Context, content string) provider.Analysis
}

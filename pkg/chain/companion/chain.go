// Package companion implements the vault's conversational persona.
package companion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/sanctum-app/sanctum/pkg/chain"
	"github.com/sanctum-app/sanctum/pkg/provider"
	"github.com/sanctum-app/sanctum/pkg/vault"
)

var _ chain.Provider = (*Chain)(nil)

const (
	// maxHistoryMessages bounds the conversation window sent upstream.
	maxHistoryMessages = 15

	// recentJournalEntries bounds how much journal context grounds a reply.
	recentJournalEntries = 3

	defaultTemperature = float32(0.7)
)

// Fixed user-facing fallbacks. Remote failures never surface as errors.
const (
	fallbackConnectivity = "I'm having trouble connecting to my cognitive centers right now. Please check your connection."
	fallbackEmpty        = "I'm processing that, but couldn't generate a verbal response."
)

// defaultAnalysis is returned whenever the extraction call fails or comes
// back malformed.
func defaultAnalysis() provider.Analysis {
	return provider.Analysis{
		Mood:     vault.MoodNeutral,
		Tags:     []string{"journal"},
		Insights: "Analysis unavailable.",
	}
}

type Chain struct {
	completer provider.Completer
	analyzer  provider.Analyzer

	temperature *float32
}

type Option func(*Chain)

func New(options ...Option) (*Chain, error) {
	c := &Chain{}

	for _, option := range options {
		option(c)
	}

	if c.completer == nil {
		return nil, errors.New("missing completer provider")
	}

	if c.analyzer == nil {
		return nil, errors.New("missing analyzer provider")
	}

	if c.temperature == nil {
		temperature := defaultTemperature
		c.temperature = &temperature
	}

	return c, nil
}

func WithCompleter(completer provider.Completer) Option {
	return func(c *Chain) {
		c.completer = completer
	}
}

func WithAnalyzer(analyzer provider.Analyzer) Option {
	return func(c *Chain) {
		c.analyzer = analyzer
	}
}

func WithTemperature(temperature float32) Option {
	return func(c *Chain) {
		c.temperature = &temperature
	}
}

func (c *Chain) Converse(ctx context.Context, history []vault.Message, content string, profile vault.UserProfile, memories []vault.Memory, entries []vault.JournalEntry) string {
	input := make([]provider.Message, 0, maxHistoryMessages+1)

	if start := len(history) - maxHistoryMessages; start > 0 {
		history = history[start:]
	}

	for _, m := range history {
		input = append(input, provider.Message{
			Role:    provider.MessageRole(m.Role),
			Content: m.Content,
		})
	}

	input = append(input, provider.Message{
		Role:    provider.MessageRoleUser,
		Content: content,
	})

	options := &provider.CompleteOptions{
		Instruction: Instruction(profile, memories, entries),
		Temperature: c.temperature,
	}

	text, err := c.completer.Complete(ctx, input, options)

	if err != nil {
		log.WithError(err).Warn("chat completion failed")
		return fallbackConnectivity
	}

	if strings.TrimSpace(text) == "" {
		return fallbackEmpty
	}

	return text
}

func (c *Chain) Analyze(ctx context.Context, content string) provider.Analysis {
	analysis, err := c.analyzer.Analyze(ctx, content)

	if err != nil {
		log.WithError(err).Warn("journal analysis failed")
		return defaultAnalysis()
	}

	if analysis == nil || analysis.Mood == "" {
		return defaultAnalysis()
	}

	if analysis.Tags == nil {
		analysis.Tags = []string{}
	}

	return *analysis
}

// Instruction assembles the system instruction grounding every reply: the
// persona, the owner's communication style, the memory bank, the most recent
// journal entries and the current focus.
func Instruction(profile vault.UserProfile, memories []vault.Memory, entries []vault.JournalEntry) string {
	name := profile.Name

	if name == "" {
		name = "the user"
	}

	var memorySection strings.Builder

	for i, m := range memories {
		if i > 0 {
			memorySection.WriteString("\n")
		}

		fmt.Fprintf(&memorySection, "[%s] %s", m.Category, m.Content)
	}

	if start := len(entries) - recentJournalEntries; start > 0 {
		entries = entries[start:]
	}

	var journalSection strings.Builder

	for i, e := range entries {
		if i > 0 {
			journalSection.WriteString("\n")
		}

		fmt.Fprintf(&journalSection, "[%s - Mood: %s] %s", e.Date, e.Mood, e.Content)
	}

	return fmt.Sprintf(`You are Sanctum, a private life strategist, second brain, and confidant for %s.

CORE IDENTITY & DIRECTIVES:
1. **Mirroring**: Adapt to the user's communication style: "%s". If they are brief, be brief. If emotional, be supportive.
2. **Role**: Mix of a non-clinical therapist, high-level strategist, and disciplined mentor.
3. **Privacy**: You are a vault. Never share data.
4. **Strategy**: Don't just cheerlead. Point out blind spots, challenge limiting beliefs stored in memory, and offer frameworks.

USER MEMORY BANK (Use this to contextualize EVERY response):
%s

RECENT CONTEXT (Journal):
%s

CURRENT FOCUS:
%s

Be extremely intelligent, emotionally aware, and grounded.`,
		name, profile.CommunicationStyle, memorySection.String(), journalSection.String(), profile.CurrentFocus)
}

// Package vault owns the in-memory state of an unlocked session: the user
// profile, the memory bank, the chat history and the journal. Every mutation
// updates memory and flushes the affected collection to storage in one step.
package vault

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/sanctum-app/sanctum/pkg/storage"

	"github.com/google/uuid"
)

const (
	keyProfile  = "profile"
	keyMemories = "memories"
	keyHistory  = "history"
	keyJournal  = "journal"
)

var (
	ErrLocked   = errors.New("vault is locked")
	ErrNotFound = errors.New("not found")
)

type Vault struct {
	mu sync.Mutex

	store *storage.Store

	unlocked bool

	profile  UserProfile
	memories []Memory
	history  []Message
	journal  []JournalEntry
}

func New(store *storage.Store) *Vault {
	return &Vault{
		store: store,
	}
}

// Unlock hydrates all collections from storage, discarding whatever was in
// memory before. Called on every transition into the unlocked state.
func (v *Vault) Unlock() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.profile = storage.Read(v.store, keyProfile, DefaultProfile())
	v.memories = storage.Read(v.store, keyMemories, []Memory{})
	v.history = storage.Read(v.store, keyHistory, []Message{})
	v.journal = storage.Read(v.store, keyJournal, []JournalEntry{})

	v.unlocked = true
}

// Lock discards in-memory state. Storage is untouched.
func (v *Vault) Lock() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.profile = UserProfile{}
	v.memories = nil
	v.history = nil
	v.journal = nil

	v.unlocked = false
}

func (v *Vault) Unlocked() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.unlocked
}

func (v *Vault) Profile() (UserProfile, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.unlocked {
		return UserProfile{}, ErrLocked
	}

	return v.profile, nil
}

func (v *Vault) SetProfile(profile UserProfile) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.unlocked {
		return ErrLocked
	}

	if err := v.store.Save(keyProfile, profile); err != nil {
		return err
	}

	v.profile = profile

	return nil
}

func (v *Vault) Memories() ([]Memory, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.unlocked {
		return nil, ErrLocked
	}

	return slices.Clone(v.memories), nil
}

func (v *Vault) AddMemory(content string, category MemoryCategory, importance int) (Memory, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.unlocked {
		return Memory{}, ErrLocked
	}

	if !category.Valid() {
		return Memory{}, fmt.Errorf("unknown memory category %q", category)
	}

	if importance < 1 || importance > 10 {
		importance = 5
	}

	memory := Memory{
		ID:         uuid.NewString(),
		Content:    content,
		Category:   category,
		CreatedAt:  time.Now().UTC(),
		Importance: importance,
	}

	next := append(slices.Clone(v.memories), memory)

	if err := v.store.Save(keyMemories, next); err != nil {
		return Memory{}, err
	}

	v.memories = next

	return memory, nil
}

func (v *Vault) DeleteMemory(id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.unlocked {
		return ErrLocked
	}

	index := slices.IndexFunc(v.memories, func(m Memory) bool {
		return m.ID == id
	})

	if index < 0 {
		return ErrNotFound
	}

	next := slices.Delete(slices.Clone(v.memories), index, index+1)

	if err := v.store.Save(keyMemories, next); err != nil {
		return err
	}

	v.memories = next

	return nil
}

func (v *Vault) History() ([]Message, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.unlocked {
		return nil, ErrLocked
	}

	return slices.Clone(v.history), nil
}

func (v *Vault) AppendMessage(role MessageRole, content string) (Message, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.unlocked {
		return Message{}, ErrLocked
	}

	message := Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}

	next := append(slices.Clone(v.history), message)

	if err := v.store.Save(keyHistory, next); err != nil {
		return Message{}, err
	}

	v.history = next

	return message, nil
}

func (v *Vault) Journal() ([]JournalEntry, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.unlocked {
		return nil, ErrLocked
	}

	return slices.Clone(v.journal), nil
}

// AddJournalEntry appends one entry. Mood and tags are taken verbatim from
// the analyzer result, including mood labels outside the known five.
func (v *Vault) AddJournalEntry(content, mood string, tags []string) (JournalEntry, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.unlocked {
		return JournalEntry{}, ErrLocked
	}

	entry := JournalEntry{
		ID:      uuid.NewString(),
		Date:    time.Now().UTC().Format(time.RFC3339),
		Content: content,
		Mood:    mood,
		Tags:    tags,
	}

	if entry.Tags == nil {
		entry.Tags = []string{}
	}

	next := append(slices.Clone(v.journal), entry)

	if err := v.store.Save(keyJournal, next); err != nil {
		return JournalEntry{}, err
	}

	v.journal = next

	return entry, nil
}

// MoodPoint is one journal entry reduced to a chartable score.
type MoodPoint struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

// Stats is the derived dashboard view. Never persisted.
type Stats struct {
	EntryCount  int         `json:"entryCount"`
	MemoryCount int         `json:"memoryCount"`
	AverageMood float64     `json:"averageMood"`
	Series      []MoodPoint `json:"series"`
}

func (v *Vault) Stats() (Stats, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.unlocked {
		return Stats{}, ErrLocked
	}

	stats := Stats{
		EntryCount:  len(v.journal),
		MemoryCount: len(v.memories),
		Series:      []MoodPoint{},
	}

	var total int

	for _, entry := range v.journal {
		score := MoodScore(entry.Mood)
		total += score

		stats.Series = append(stats.Series, MoodPoint{
			Date:  entry.Date,
			Score: score,
		})
	}

	if len(v.journal) > 0 {
		stats.AverageMood = float64(total) / float64(len(v.journal))
	}

	return stats, nil
}

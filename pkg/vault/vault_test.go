package vault

import (
	"testing"

	"github.com/sanctum-app/sanctum/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVault(t *testing.T) *Vault {
	t.Helper()

	store, err := storage.New(t.TempDir())
	require.NoError(t, err)

	return New(store)
}

func TestLockedVaultRejectsEverything(t *testing.T) {
	v := newVault(t)

	_, err := v.Profile()
	assert.ErrorIs(t, err, ErrLocked)

	_, err = v.AddMemory("x", CategoryOther, 5)
	assert.ErrorIs(t, err, ErrLocked)

	_, err = v.AppendMessage(RoleUser, "hello")
	assert.ErrorIs(t, err, ErrLocked)

	_, err = v.AddJournalEntry("x", MoodNeutral, nil)
	assert.ErrorIs(t, err, ErrLocked)

	assert.ErrorIs(t, v.SetProfile(DefaultProfile()), ErrLocked)
}

func TestUnlockHydratesDefaults(t *testing.T) {
	v := newVault(t)
	v.Unlock()

	profile, err := v.Profile()
	require.NoError(t, err)
	assert.Equal(t, DefaultProfile(), profile)

	memories, err := v.Memories()
	require.NoError(t, err)
	assert.Empty(t, memories)

	journal, err := v.Journal()
	require.NoError(t, err)
	assert.Empty(t, journal)
}

func TestStateSurvivesLockUnlock(t *testing.T) {
	v := newVault(t)
	v.Unlock()

	_, err := v.AddMemory("I avoid conflict", CategoryFear, 0)
	require.NoError(t, err)

	v.Lock()

	_, err = v.Memories()
	require.ErrorIs(t, err, ErrLocked)

	v.Unlock()

	memories, err := v.Memories()
	require.NoError(t, err)
	require.Len(t, memories, 1)
	assert.Equal(t, "I avoid conflict", memories[0].Content)
	assert.Equal(t, CategoryFear, memories[0].Category)
	assert.Equal(t, 5, memories[0].Importance)
}

func TestDeleteMemoryKeepsOrder(t *testing.T) {
	v := newVault(t)
	v.Unlock()

	a, err := v.AddMemory("a", CategoryIdentity, 5)
	require.NoError(t, err)
	b, err := v.AddMemory("b", CategoryCareer, 5)
	require.NoError(t, err)
	c, err := v.AddMemory("c", CategoryCareer, 5)
	require.NoError(t, err)

	require.NoError(t, v.DeleteMemory(b.ID))

	memories, err := v.Memories()
	require.NoError(t, err)
	require.Len(t, memories, 2)
	assert.Equal(t, a.ID, memories[0].ID)
	assert.Equal(t, c.ID, memories[1].ID)

	assert.ErrorIs(t, v.DeleteMemory(b.ID), ErrNotFound)
}

func TestAddMemoryRejectsUnknownCategory(t *testing.T) {
	v := newVault(t)
	v.Unlock()

	_, err := v.AddMemory("x", MemoryCategory("Existential"), 5)
	assert.Error(t, err)
}

func TestJournalAppendOnly(t *testing.T) {
	v := newVault(t)
	v.Unlock()

	first, err := v.AddJournalEntry("rough day", MoodStressed, []string{"work"})
	require.NoError(t, err)

	second, err := v.AddJournalEntry("better", MoodGood, nil)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, []string{}, second.Tags)

	journal, err := v.Journal()
	require.NoError(t, err)
	require.Len(t, journal, 2)
	assert.Equal(t, first.ID, journal[0].ID)
	assert.Equal(t, second.ID, journal[1].ID)
}

func TestJournalKeepsUnknownMoodVerbatim(t *testing.T) {
	v := newVault(t)
	v.Unlock()

	entry, err := v.AddJournalEntry("odd", "Euphoric", nil)
	require.NoError(t, err)
	assert.Equal(t, "Euphoric", entry.Mood)
}

func TestStats(t *testing.T) {
	v := newVault(t)
	v.Unlock()

	_, err := v.AddJournalEntry("a", MoodGreat, nil)
	require.NoError(t, err)
	_, err = v.AddJournalEntry("b", MoodBad, nil)
	require.NoError(t, err)
	_, err = v.AddJournalEntry("c", "Euphoric", nil) // unknown scores neutral
	require.NoError(t, err)

	stats, err := v.Stats()
	require.NoError(t, err)

	assert.Equal(t, 3, stats.EntryCount)
	require.Len(t, stats.Series, 3)
	assert.Equal(t, 5, stats.Series[0].Score)
	assert.Equal(t, 1, stats.Series[1].Score)
	assert.Equal(t, 3, stats.Series[2].Score)
	assert.InDelta(t, 3.0, stats.AverageMood, 0.001)
}

func TestGroupMemories(t *testing.T) {
	memories := []Memory{
		{ID: "1", Category: CategoryCareer},
		{ID: "2", Category: CategoryIdentity},
		{ID: "3", Category: CategoryCareer},
	}

	groups := GroupMemories(memories)

	require.Len(t, groups, 2)
	assert.Equal(t, CategoryIdentity, groups[0].Category)
	assert.Equal(t, CategoryCareer, groups[1].Category)
	require.Len(t, groups[1].Memories, 2)
	assert.Equal(t, "1", groups[1].Memories[0].ID)
	assert.Equal(t, "3", groups[1].Memories[1].ID)
}

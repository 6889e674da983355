package gate

import (
	"testing"

	"github.com/sanctum-app/sanctum/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGate(t *testing.T) (*Gate, *storage.Store) {
	t.Helper()

	dir := t.TempDir()

	store, err := storage.New(dir + "/vault")
	require.NoError(t, err)

	g, err := New(dir, store)
	require.NoError(t, err)

	return g, store
}

func TestEnrollValidation(t *testing.T) {
	g, _ := newGate(t)

	_, err := g.Enroll("abc", "abc")
	assert.ErrorIs(t, err, ErrPassphraseTooShort)

	_, err = g.Enroll("abcdefgh", "abcdefgX")
	assert.ErrorIs(t, err, ErrPassphraseMismatch)

	assert.False(t, g.Enrolled())

	token, err := g.Enroll("abcd", "abcd")
	require.NoError(t, err)
	assert.True(t, g.Verify(token))
	assert.True(t, g.Enrolled())

	_, err = g.Enroll("efgh", "efgh")
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
}

func TestUnlock(t *testing.T) {
	g, _ := newGate(t)

	_, err := g.Unlock("abcd")
	assert.ErrorIs(t, err, ErrNotEnrolled)

	_, err = g.Enroll("abcd", "abcd")
	require.NoError(t, err)

	_, err = g.Unlock("wrong")
	assert.ErrorIs(t, err, ErrIncorrectPassphrase)

	token, err := g.Unlock("abcd")
	require.NoError(t, err)
	assert.True(t, g.Verify(token))
}

func TestLockDropsSessions(t *testing.T) {
	g, _ := newGate(t)

	token, err := g.Enroll("abcd", "abcd")
	require.NoError(t, err)

	g.Lock()

	assert.False(t, g.Verify(token))
}

func TestReenrollWipesStore(t *testing.T) {
	g, store := newGate(t)

	_, err := g.Enroll("abcd", "abcd")
	require.NoError(t, err)

	require.NoError(t, store.Save("memories", []string{"I avoid conflict"}))

	_, err = g.Reenroll("wxyz", "wxyz")
	require.NoError(t, err)

	// All previously stored collections are gone.
	assert.Equal(t, []string{}, storage.Read(store, "memories", []string{}))

	// Old passphrase no longer works; new one does.
	_, err = g.Unlock("abcd")
	assert.ErrorIs(t, err, ErrIncorrectPassphrase)

	_, err = g.Unlock("wxyz")
	assert.NoError(t, err)
}

func TestVerifyUnknownToken(t *testing.T) {
	g, _ := newGate(t)

	assert.False(t, g.Verify("nope"))
	assert.False(t, g.Verify(""))
}

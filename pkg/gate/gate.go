// Package gate controls access to the vault behind a single local
// passphrase.
//
// The passphrase is stored in the clear. It is a visibility gate for a
// single-user device, not a security boundary; this is a documented
// limitation of the design, not an oversight.
package gate

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/sanctum-app/sanctum/pkg/storage"

	"github.com/google/uuid"
)

const minPassphraseLength = 4

const credentialFile = "access.key"

var (
	ErrPassphraseTooShort  = errors.New("passphrase must be at least 4 characters")
	ErrPassphraseMismatch  = errors.New("passphrases do not match")
	ErrIncorrectPassphrase = errors.New("incorrect passphrase")
	ErrNotEnrolled         = errors.New("no passphrase enrolled")
	ErrAlreadyEnrolled     = errors.New("a passphrase is already enrolled")
)

// Gate owns the persisted credential and the set of live session tokens.
// Tokens are opaque, in-memory only, and all dropped when the vault locks.
type Gate struct {
	mu sync.Mutex

	path  string
	store *storage.Store

	sessions map[string]struct{}
}

func New(dir string, store *storage.Store) (*Gate, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	return &Gate{
		path:     filepath.Join(dir, credentialFile),
		store:    store,
		sessions: make(map[string]struct{}),
	}, nil
}

func (g *Gate) credential() (string, bool) {
	data, err := os.ReadFile(g.path)

	if err != nil {
		return "", false
	}

	return string(data), true
}

// Enrolled reports whether a passphrase has ever been set, so clients can
// choose between the unlock and first-run flows.
func (g *Gate) Enrolled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.credential()
	return ok
}

func validate(passphrase, confirmation string) error {
	if len(passphrase) < minPassphraseLength {
		return ErrPassphraseTooShort
	}

	if passphrase != confirmation {
		return ErrPassphraseMismatch
	}

	return nil
}

// Enroll sets the passphrase for the first time and opens a session.
func (g *Gate) Enroll(passphrase, confirmation string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.credential(); ok {
		return "", ErrAlreadyEnrolled
	}

	if err := validate(passphrase, confirmation); err != nil {
		return "", err
	}

	if err := os.WriteFile(g.path, []byte(passphrase), 0o600); err != nil {
		return "", err
	}

	return g.open(), nil
}

// Reenroll replaces an existing passphrase. All stored vault data is wiped
// first; the caller is responsible for having confirmed this with the user.
func (g *Gate) Reenroll(passphrase, confirmation string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.credential(); !ok {
		return "", ErrNotEnrolled
	}

	if err := validate(passphrase, confirmation); err != nil {
		return "", err
	}

	if err := g.store.ClearAll(); err != nil {
		return "", err
	}

	if err := os.WriteFile(g.path, []byte(passphrase), 0o600); err != nil {
		return "", err
	}

	g.sessions = make(map[string]struct{})

	return g.open(), nil
}

// Unlock verifies the passphrase byte for byte and opens a session.
func (g *Gate) Unlock(passphrase string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	stored, ok := g.credential()

	if !ok {
		return "", ErrNotEnrolled
	}

	if passphrase != stored {
		return "", ErrIncorrectPassphrase
	}

	return g.open(), nil
}

// Lock drops every live session. Locking is a whole-vault operation.
func (g *Gate) Lock() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.sessions = make(map[string]struct{})
}

func (g *Gate) Verify(token string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.sessions[token]
	return ok
}

func (g *Gate) open() string {
	token := uuid.NewString()
	g.sessions[token] = struct{}{}

	return token
}

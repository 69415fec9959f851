package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/nvu/mailterm/internal/model"
	"github.com/nvu/mailterm/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied
// and closes it when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// MemoryVault holds session tokens in a plain map, so tests never touch
// the OS keyring. It satisfies session.TokenVault. Tokens is exported for
// direct inspection.
type MemoryVault struct {
	Tokens map[string]string
}

// NewMemoryVault creates an empty in-memory token vault.
func NewMemoryVault() *MemoryVault {
	return &MemoryVault{Tokens: make(map[string]string)}
}

func (v *MemoryVault) GetToken(email string) (string, error) {
	return v.Tokens[email], nil
}

func (v *MemoryVault) SetToken(email, token string) error {
	v.Tokens[email] = token
	return nil
}

func (v *MemoryVault) DeleteToken(email string) error {
	delete(v.Tokens, email)
	return nil
}

// SeedSession records a logged-in account with the given token, as if the
// user had just completed a login. The seeded account becomes active.
func SeedSession(t *testing.T, s store.Store, vault *MemoryVault, email, token string) {
	t.Helper()
	ctx := context.Background()

	sess := model.Session{
		Email:   email,
		User:    model.User{Email: email, Name: "Test"},
		LoginAt: time.Now().UTC(),
	}
	if err := s.UpsertSession(ctx, sess); err != nil {
		t.Fatalf("seeding session for %s: %v", email, err)
	}
	vault.Tokens[email] = token
	if err := s.SetPref(ctx, store.PrefActiveAccount, email); err != nil {
		t.Fatalf("marking %s active: %v", email, err)
	}
}

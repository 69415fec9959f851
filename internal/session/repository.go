package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/nvu/mailterm/internal/credential"
	"github.com/nvu/mailterm/internal/model"
	"github.com/nvu/mailterm/internal/store"
)

// TokenVault stores per-account session tokens. The production
// implementation sits on the system keyring; tests swap in a map.
type TokenVault interface {
	GetToken(email string) (string, error)
	SetToken(email, token string) error
	DeleteToken(email string) error
}

// KeyringVault is the TokenVault backed by the OS keyring.
type KeyringVault struct{}

func (KeyringVault) GetToken(email string) (string, error) { return credential.GetToken(email) }
func (KeyringVault) SetToken(email, token string) error    { return credential.SetToken(email, token) }
func (KeyringVault) DeleteToken(email string) error        { return credential.DeleteToken(email) }

// Repository is the single source of truth for locally known accounts
// and which of them is active. Session metadata lives in the SQLite
// store; the session tokens themselves live in the token vault.
type Repository struct {
	store store.Store
	vault TokenVault
}

// NewRepository creates a session repository over the given store and vault.
func NewRepository(s store.Store, v TokenVault) *Repository {
	return &Repository{store: s, vault: v}
}

// Upsert records a fresh login: it saves the session snapshot and token
// and makes the account active. Logging in again with a known account
// replaces its snapshot rather than adding a duplicate.
func (r *Repository) Upsert(ctx context.Context, sess model.Session, token string) error {
	if err := r.store.UpsertSession(ctx, sess); err != nil {
		return err
	}
	if err := r.vault.SetToken(sess.Email, token); err != nil {
		return fmt.Errorf("saving token for %s: %w", sess.Email, err)
	}
	return r.store.SetPref(ctx, store.PrefActiveAccount, sess.Email)
}

// Remove forgets an account: session row, token, and cached pages. If
// the removed account was active the active marker is cleared; callers
// follow up with PromoteNext to pick a successor.
func (r *Repository) Remove(ctx context.Context, email string) error {
	if err := r.store.DeleteSession(ctx, email); err != nil {
		return err
	}
	if err := r.vault.DeleteToken(email); err != nil {
		return err
	}
	if err := r.store.ClearCache(ctx, email); err != nil {
		return err
	}

	active, err := r.store.GetPref(ctx, store.PrefActiveAccount)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}
	if active == email {
		return r.store.DeletePref(ctx, store.PrefActiveAccount)
	}
	return nil
}

// PromoteNext makes the most recently used remaining account active and
// returns it. It returns nil when no accounts remain.
func (r *Repository) PromoteNext(ctx context.Context) (*model.Session, error) {
	sessions, err := r.store.GetSessions(ctx)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}

	next := sessions[0]
	if err := r.store.SetPref(ctx, store.PrefActiveAccount, next.Email); err != nil {
		return nil, err
	}
	return &next, nil
}

// SetActive switches the active account to a known session.
func (r *Repository) SetActive(ctx context.Context, email string) error {
	if _, err := r.store.GetSessionByEmail(ctx, email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no session for %s", email)
		}
		return err
	}
	return r.store.SetPref(ctx, store.PrefActiveAccount, email)
}

// Active returns the active session, or nil when no account is active.
func (r *Repository) Active(ctx context.Context) (*model.Session, error) {
	email, err := r.store.GetPref(ctx, store.PrefActiveAccount)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	sess, err := r.store.GetSessionByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Marker points at a forgotten account; treat as signed out.
			return nil, nil
		}
		return nil, err
	}
	return sess, nil
}

// Get returns the locally known session for an account, or nil when the
// account is unknown.
func (r *Repository) Get(ctx context.Context, email string) (*model.Session, error) {
	sess, err := r.store.GetSessionByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return sess, err
}

// List returns all locally known sessions, most recent login first.
func (r *Repository) List(ctx context.Context) ([]model.Session, error) {
	return r.store.GetSessions(ctx)
}

// Token returns the stored session token for an account.
func (r *Repository) Token(email string) (string, error) {
	return r.vault.GetToken(email)
}

// UpdateSnapshot refreshes the stored user snapshot for an account
// without touching its token or the active marker.
func (r *Repository) UpdateSnapshot(ctx context.Context, email string, user model.User) error {
	sess, err := r.store.GetSessionByEmail(ctx, email)
	if err != nil {
		return err
	}
	sess.User = user
	return r.store.UpsertSession(ctx, *sess)
}

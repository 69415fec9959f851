package store

import (
	"context"

	"github.com/nvu/mailterm/internal/model"
)

// Store defines the local persistence interface: the multi-account session
// list, simple key-value preferences, and a cached copy of the last list
// page per view so the UI has something to render before the first fetch
// completes.
type Store interface {
	// === Sessions ===

	UpsertSession(ctx context.Context, s model.Session) error
	GetSessions(ctx context.Context) ([]model.Session, error)
	GetSessionByEmail(ctx context.Context, email string) (*model.Session, error)
	DeleteSession(ctx context.Context, email string) error

	// === Preferences ===

	SetPref(ctx context.Context, key, value string) error
	GetPref(ctx context.Context, key string) (string, error)
	DeletePref(ctx context.Context, key string) error

	// === Mail header cache ===

	ReplaceCachedMails(ctx context.Context, account, view string, mails []model.Mail) error
	GetCachedMails(ctx context.Context, account, view string) ([]model.Mail, error)
	ClearCache(ctx context.Context, account string) error
}

// PrefActiveAccount is the persisted selected-account marker. It is
// tracked separately from the session list itself.
const PrefActiveAccount = "active_account"

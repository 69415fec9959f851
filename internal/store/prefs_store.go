package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SetPref stores a simple key-value preference flag.
func (s *SQLiteStore) SetPref(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO prefs (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("setting pref %q: %w", key, err)
	}
	return nil
}

// GetPref returns a preference value, or ErrNotFound.
func (s *SQLiteStore) GetPref(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.GetContext(ctx, &value, "SELECT value FROM prefs WHERE key = ?", key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("getting pref %q: %w", key, err)
	}
	return value, nil
}

// DeletePref removes a preference.
func (s *SQLiteStore) DeletePref(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM prefs WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("deleting pref %q: %w", key, err)
	}
	return nil
}

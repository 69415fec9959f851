package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nvu/mailterm/internal/model"
)

// ReplaceCachedMails replaces the cached page for one account/view pair.
// The cache exists so a view can render its last known content while the
// fresh page is in flight; it is never treated as authoritative.
func (s *SQLiteStore) ReplaceCachedMails(
	ctx context.Context,
	account string,
	view string,
	mails []model.Mail,
) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"DELETE FROM mail_cache WHERE account = ? AND view = ?", account, view)
	if err != nil {
		return fmt.Errorf("clearing mail cache for %s/%s: %w", account, view, err)
	}

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO mail_cache (account, view, position, mail_id, mail_json)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing mail cache insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range mails {
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("encoding cached mail %s: %w", m.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, account, view, i, m.ID, string(data)); err != nil {
			return fmt.Errorf("caching mail %s: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing mail cache: %w", err)
	}
	return nil
}

// GetCachedMails returns the cached page for one account/view pair in
// insertion order. An empty result is not an error.
func (s *SQLiteStore) GetCachedMails(
	ctx context.Context,
	account string,
	view string,
) ([]model.Mail, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT mail_json FROM mail_cache
		WHERE account = ? AND view = ?
		ORDER BY position`, account, view)
	if err != nil {
		return nil, fmt.Errorf("querying mail cache for %s/%s: %w", account, view, err)
	}
	defer rows.Close()

	var mails []model.Mail
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning cached mail: %w", err)
		}
		var m model.Mail
		if err := json.Unmarshal([]byte(data), &m); err != nil {
			return nil, fmt.Errorf("decoding cached mail: %w", err)
		}
		mails = append(mails, m)
	}
	return mails, rows.Err()
}

// ClearCache drops all cached pages for one account, e.g. on sign-out.
func (s *SQLiteStore) ClearCache(ctx context.Context, account string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM mail_cache WHERE account = ?", account)
	if err != nil {
		return fmt.Errorf("clearing mail cache for %s: %w", account, err)
	}
	return nil
}

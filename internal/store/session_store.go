package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nvu/mailterm/internal/model"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// UpsertSession inserts or replaces a locally known session by email.
func (s *SQLiteStore) UpsertSession(ctx context.Context, sess model.Session) error {
	if strings.TrimSpace(sess.Email) == "" {
		return fmt.Errorf("session email must not be empty")
	}
	if sess.LoginAt.IsZero() {
		sess.LoginAt = time.Now().UTC()
	}

	userJSON, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encoding user snapshot for %s: %w", sess.Email, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (email, user_json, login_at)
		VALUES (?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			user_json = excluded.user_json,
			login_at  = excluded.login_at`,
		sess.Email, string(userJSON), sess.LoginAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("upserting session %s: %w", sess.Email, err)
	}
	return nil
}

// GetSessions returns all locally known sessions, most recent login first.
func (s *SQLiteStore) GetSessions(ctx context.Context) ([]model.Session, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT email, user_json, login_at FROM sessions ORDER BY login_at DESC")
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		sess, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *sess)
	}
	return sessions, rows.Err()
}

// GetSessionByEmail returns the session for one account, or ErrNotFound.
func (s *SQLiteStore) GetSessionByEmail(
	ctx context.Context,
	email string,
) (*model.Session, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT email, user_json, login_at FROM sessions WHERE email = ?", email)

	sess, err := scanSession(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting session %s: %w", email, err)
	}
	return sess, nil
}

// DeleteSession removes a locally known session.
func (s *SQLiteStore) DeleteSession(ctx context.Context, email string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE email = ?", email)
	if err != nil {
		return fmt.Errorf("deleting session %s: %w", email, err)
	}
	return nil
}

func scanSession(scan func(...interface{}) error) (*model.Session, error) {
	var sess model.Session
	var userJSON string
	if err := scan(&sess.Email, &userJSON, &sess.LoginAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(userJSON), &sess.User); err != nil {
		return nil, fmt.Errorf("decoding user snapshot for %s: %w", sess.Email, err)
	}
	return &sess, nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type sessionRepo struct {
	db *sql.DB
}

func (r *sessionRepo) Load(ctx context.Context) (*SessionRecord, error) {
	var rec SessionRecord
	var loggedInMs int64
	err := r.db.QueryRowContext(ctx,
		`SELECT username, role, logged_in_at FROM auth_session WHERE id = 1`,
	).Scan(&rec.Username, &rec.Role, &loggedInMs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	rec.LoggedInAt = time.UnixMilli(loggedInMs)
	return &rec, nil
}

func (r *sessionRepo) Save(ctx context.Context, rec SessionRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO auth_session (id, username, role, logged_in_at) VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET username = excluded.username, role = excluded.role,
		                               logged_in_at = excluded.logged_in_at`,
		rec.Username, rec.Role, rec.LoggedInAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *sessionRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM auth_session`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

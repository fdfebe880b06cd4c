package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is satisfied by *pgxpool.Pool, *pgxpool.Conn and pgx.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// EnsureProfile creates an empty profile row for users that arrive with a
// valid token but have never been written locally.
func EnsureProfile(ctx context.Context, q Execer, userID uuid.UUID) error {
	if _, err := q.Exec(ctx,
		`INSERT INTO profile (id) VALUES ($1) ON CONFLICT (id) DO NOTHING;`,
		userID,
	); err != nil {
		return fmt.Errorf("ensure profile %s: %w", userID, err)
	}
	return nil
}

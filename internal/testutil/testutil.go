// Package testutil holds helpers shared by integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/devportal/devportal/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 420420

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetPortalSchema drops and recreates the portal schema for tests.
func ResetPortalSchema(ctx context.Context, pool *pgxpool.Pool) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	files := []string{
		"000002_create_team_with_invite.down.sql",
		"000001_portal.down.sql",
		"000001_portal.up.sql",
		"000002_create_team_with_invite.up.sql",
	}
	for _, name := range files {
		sql, err := os.ReadFile(filepath.Join(root, "migrations", name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}

	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

// SeedApp inserts a team, an active app and its sign-in action with the
// given redirect URIs.
func SeedApp(ctx context.Context, pool *pgxpool.Pool, teamID, appID string, redirects ...string) error {
	if _, err := pool.Exec(ctx, `INSERT INTO team (id, name) VALUES ($1, $2) ON CONFLICT DO NOTHING`, teamID, "Example Team"); err != nil {
		return fmt.Errorf("seed team: %w", err)
	}
	if _, err := pool.Exec(ctx, `INSERT INTO app (id, team_id, is_staging) VALUES ($1, $2, TRUE)`, appID, teamID); err != nil {
		return fmt.Errorf("seed app: %w", err)
	}

	actionID := "action_" + appID
	if _, err := pool.Exec(ctx, `INSERT INTO action (id, app_id, action, external_nullifier) VALUES ($1, $2, '', $3)`,
		actionID, appID, "0x00"); err != nil {
		return fmt.Errorf("seed action: %w", err)
	}

	for _, uri := range redirects {
		if _, err := pool.Exec(ctx, `INSERT INTO redirect (action_id, redirect_uri) VALUES ($1, $2)`, actionID, uri); err != nil {
			return fmt.Errorf("seed redirect: %w", err)
		}
	}

	return nil
}

// SeedInvite inserts an invite for email into teamID.
func SeedInvite(ctx context.Context, pool *pgxpool.Pool, invite model.Invite) error {
	_, err := pool.Exec(ctx,
		`INSERT INTO invite (id, team_id, email, expires_at) VALUES ($1, $2, $3, $4)`,
		invite.ID, invite.TeamID, invite.Email, invite.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("seed invite: %w", err)
	}
	return nil
}

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

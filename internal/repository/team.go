package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/devportal/devportal/internal/model"
	"github.com/devportal/devportal/internal/store"
)

var _ store.Store = (*Repository)(nil)

// FetchInvite implements store.Store.
func (r *Repository) FetchInvite(ctx context.Context, inviteID string) (invite *model.Invite, err error) {
	start := time.Now()
	defer func() { r.observe("FetchInvite", start, err) }()

	query := `
		SELECT id, team_id, email, expires_at
		FROM invite
		WHERE id = $1
	`

	invite = &model.Invite{}
	err = r.pool.QueryRow(ctx, query, inviteID).Scan(&invite.ID, &invite.TeamID, &invite.Email, &invite.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invite: %w", err)
	}

	return invite, nil
}

// CreateTeam implements store.Store.
func (r *Repository) CreateTeam(ctx context.Context, input store.CreateTeamInput) (err error) {
	start := time.Now()
	defer func() { r.observe("CreateTeam", start, err) }()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// No-op after a successful commit.
		_ = tx.Rollback(ctx)
	}()

	createdAt := input.Team.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO team (id, name, created_at) VALUES ($1, $2, $3)`,
		input.Team.ID, input.Team.Name, createdAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrConflict
		}
		return fmt.Errorf("failed to insert team: %w", err)
	}

	if err = insertMembership(ctx, tx, input.Owner); err != nil {
		return err
	}

	if input.Invite != nil {
		if input.InviteMembership == nil {
			return fmt.Errorf("invite %s given without membership", input.Invite.ID)
		}

		if err = insertMembership(ctx, tx, *input.InviteMembership); err != nil {
			return err
		}

		tag, execErr := tx.Exec(ctx, `DELETE FROM invite WHERE id = $1`, input.Invite.ID)
		if execErr != nil {
			return fmt.Errorf("failed to delete invite: %w", execErr)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("failed to consume invite %s: %w", input.Invite.ID, store.ErrNotFound)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit team: %w", err)
	}

	return nil
}

func insertMembership(ctx context.Context, tx pgx.Tx, m model.Membership) error {
	query := `
		INSERT INTO membership (team_id, user_id, email, role, product_updates)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := tx.Exec(ctx, query, m.TeamID, m.UserID, m.Email, string(m.Role), m.ProductUpdates)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrConflict
		}
		return fmt.Errorf("failed to insert membership: %w", err)
	}
	return nil
}

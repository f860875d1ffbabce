package graphql

import (
	"context"
	"fmt"

	"github.com/devportal/devportal/internal/model"
	"github.com/devportal/devportal/internal/store"
)

var _ store.Store = (*Client)(nil)

// FetchApp implements store.Store.
func (c *Client) FetchApp(ctx context.Context, appID string) (*model.App, error) {
	var data struct {
		App []model.App `json:"app"`
	}
	if err := c.Do(ctx, "FetchApp", fetchAppQuery, map[string]any{"app_id": appID}, &data); err != nil {
		return nil, err
	}
	if len(data.App) == 0 {
		return nil, store.ErrNotFound
	}
	return &data.App[0], nil
}

// FetchAppMetadata implements store.Store.
func (c *Client) FetchAppMetadata(ctx context.Context, appID string) (*model.AppMetadata, error) {
	var data struct {
		AppMetadata []model.AppMetadata `json:"app_metadata"`
	}
	if err := c.Do(ctx, "GetAppMetadata", getAppMetadataQuery, map[string]any{"app_id": appID}, &data); err != nil {
		return nil, err
	}
	if len(data.AppMetadata) == 0 {
		return nil, store.ErrNotFound
	}
	return &data.AppMetadata[0], nil
}

// FetchInvite implements store.Store.
func (c *Client) FetchInvite(ctx context.Context, inviteID string) (*model.Invite, error) {
	var data struct {
		Invite []model.Invite `json:"invite"`
	}
	if err := c.Do(ctx, "FetchInvite", fetchInviteQuery, map[string]any{"id": inviteID}, &data); err != nil {
		return nil, err
	}
	if len(data.Invite) == 0 {
		return nil, store.ErrNotFound
	}
	return &data.Invite[0], nil
}

// CreateTeam implements store.Store.
func (c *Client) CreateTeam(ctx context.Context, input store.CreateTeamInput) error {
	if input.Invite == nil {
		team := map[string]any{
			"id":   input.Team.ID,
			"name": input.Team.Name,
			"memberships": map[string]any{
				"data": []any{membershipObject(input.Owner)},
			},
		}
		if err := c.Do(ctx, "CreateTeam", createTeamMutation, map[string]any{"team": team}, nil); err != nil {
			return fmt.Errorf("failed to create team: %w", err)
		}
		return nil
	}

	if input.InviteMembership == nil {
		return fmt.Errorf("invite %s given without membership", input.Invite.ID)
	}

	member := input.InviteMembership
	args := map[string]any{
		"new_team_id":            input.Team.ID,
		"new_team_name":          input.Team.Name,
		"owner_id":               input.Owner.UserID,
		"owner_email":            input.Owner.Email,
		"owner_product_updates":  input.Owner.ProductUpdates,
		"consumed_invite_id":     input.Invite.ID,
		"member_id":              member.UserID,
		"member_email":           member.Email,
		"member_role":            string(member.Role),
		"member_product_updates": member.ProductUpdates,
	}

	var data struct {
		Teams []struct {
			ID string `json:"id"`
		} `json:"create_team_with_invite"`
	}
	if err := c.Do(ctx, "CreateTeamWithInvite", createTeamWithInviteMutation, map[string]any{"args": args}, &data); err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	if len(data.Teams) == 0 {
		return fmt.Errorf("failed to consume invite %s: %w", input.Invite.ID, store.ErrNotFound)
	}
	return nil
}

func membershipObject(m model.Membership) map[string]any {
	return map[string]any{
		"user_id":         m.UserID,
		"email":           m.Email,
		"role":            string(m.Role),
		"product_updates": m.ProductUpdates,
	}
}

// Package store defines the contract between the services and the portal
// backend. Two implementations exist: the GraphQL client in
// internal/graphql and the Postgres repository in internal/repository.
package store

import (
	"context"
	"errors"

	"github.com/devportal/devportal/internal/model"
)

// Backend errors shared by all implementations.
var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

// Store is the backend used by the services.
type Store interface {
	// FetchApp returns an active, non-archived app with its sign-in action.
	FetchApp(ctx context.Context, appID string) (*model.App, error)

	// FetchAppMetadata returns the verified public metadata of an app.
	FetchAppMetadata(ctx context.Context, appID string) (*model.AppMetadata, error)

	// FetchInvite returns a pending invite by id.
	FetchInvite(ctx context.Context, inviteID string) (*model.Invite, error)

	// CreateTeam creates the team with its owner membership and, when
	// input.Invite is set, also adds the invited membership and deletes
	// the invite. All writes happen atomically.
	CreateTeam(ctx context.Context, input CreateTeamInput) error

	// Ping checks backend connectivity.
	Ping(ctx context.Context) error
}

// CreateTeamInput carries the writes of a team creation.
type CreateTeamInput struct {
	Team  model.Team
	Owner model.Membership

	// Invite and InviteMembership are set together.
	Invite           *model.Invite
	InviteMembership *model.Membership
}

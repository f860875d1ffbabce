package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"

	"github.com/devportal/devportal/internal/metrics"
	"github.com/devportal/devportal/internal/model"
	"github.com/devportal/devportal/internal/store"
)

// Team creation errors.
var (
	ErrTeamNameRequired    = errors.New("team name is required")
	ErrTeamNameTooLong     = errors.New("team name is too long")
	ErrTermsNotAccepted    = errors.New("terms and conditions not accepted")
	ErrInvalidInvite       = errors.New("invite not found")
	ErrInviteExpired       = errors.New("invite has expired")
	ErrInviteEmailMismatch = errors.New("invite was issued for another email")
	ErrAlreadyMember       = errors.New("user is already a member of the team")
)

// MaxTeamNameLength is the maximum team name length in characters.
const MaxTeamNameLength = 128

// TeamService handles onboarding of new teams.
type TeamService struct {
	store   store.Store
	metrics metrics.Recorder
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
}

// NewTeamService creates a new TeamService.
func NewTeamService(st store.Store, recorder metrics.Recorder, logger *slog.Logger) *TeamService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TeamService{
		store:   st,
		metrics: recorder,
		logger:  logger,
		now:     time.Now,
		newID:   generateTeamID,
	}
}

// CreateTeamInput defines input for creating a team.
type CreateTeamInput struct {
	User           model.SessionUser
	TeamName       string
	AcceptedTerms  bool
	ProductUpdates bool
	InviteID       string
}

// CreateTeamResult describes the created team and where to send the user.
type CreateTeamResult struct {
	Team model.Team

	// JoinedTeamID is the inviting team, empty without an invite.
	JoinedTeamID string

	ReturnTo string
}

// CreateTeam creates a team owned by the session user. With an invite the
// user also joins the inviting team; the invite is checked before anything
// is written.
func (s *TeamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*CreateTeamResult, error) {
	name := strings.TrimSpace(input.TeamName)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	if utf8.RuneCountInString(name) > MaxTeamNameLength {
		return nil, ErrTeamNameTooLong
	}
	if !input.AcceptedTerms {
		return nil, ErrTermsNotAccepted
	}

	now := s.now().UTC()

	var invite *model.Invite
	if input.InviteID != "" {
		var err error
		invite, err = s.checkInvite(ctx, input.InviteID, input.User.Email, now)
		if err != nil {
			return nil, err
		}
	}

	team := model.Team{
		ID:        s.newID(),
		Name:      name,
		CreatedAt: now,
	}

	writes := store.CreateTeamInput{
		Team: team,
		Owner: model.Membership{
			TeamID:         team.ID,
			UserID:         input.User.ID,
			Email:          input.User.Email,
			Role:           model.RoleOwner,
			ProductUpdates: input.ProductUpdates,
		},
	}
	if invite != nil {
		writes.Invite = invite
		writes.InviteMembership = &model.Membership{
			TeamID:         invite.TeamID,
			UserID:         input.User.ID,
			Email:          input.User.Email,
			Role:           model.RoleMember,
			ProductUpdates: input.ProductUpdates,
		}
	}

	if err := s.store.CreateTeam(ctx, writes); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			// The invite was consumed between the check and the write.
			return nil, ErrInvalidInvite
		case errors.Is(err, store.ErrConflict):
			return nil, ErrAlreadyMember
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	s.metrics.IncTeamCreated(invite != nil)

	result := &CreateTeamResult{
		Team:     team,
		ReturnTo: TeamAppsPath(team.ID),
	}
	if invite != nil {
		result.JoinedTeamID = invite.TeamID
		result.ReturnTo = TeamAppsPath(invite.TeamID)
	}

	s.logger.Info("team_created",
		"team_id", team.ID,
		"user_id", input.User.ID,
		"joined_team_id", result.JoinedTeamID,
	)

	return result, nil
}

func (s *TeamService) checkInvite(ctx context.Context, inviteID, email string, now time.Time) (*model.Invite, error) {
	invite, err := s.store.FetchInvite(ctx, inviteID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidInvite
		}
		return nil, fmt.Errorf("failed to fetch invite: %w", err)
	}

	if invite.IsExpired(now) {
		return nil, ErrInviteExpired
	}
	if !invite.MatchesEmail(email) {
		return nil, ErrInviteEmailMismatch
	}

	return invite, nil
}

// TeamAppsPath is the dashboard path listing the apps of a team.
func TeamAppsPath(teamID string) string {
	return "/teams/" + teamID + "/apps"
}

// generateTeamID returns a new sortable team id.
func generateTeamID() string {
	return "team_" + strings.ToLower(ulid.Make().String())
}

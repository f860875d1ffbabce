package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devportal/devportal/internal/graphql"
	"github.com/devportal/devportal/internal/metrics"
	"github.com/devportal/devportal/internal/model"
	"github.com/devportal/devportal/internal/store"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTeamFixture() (*TeamService, *fakeStore, *metrics.InMemoryRecorder) {
	st := newFakeStore()
	st.invites["inv_valid"] = &model.Invite{ID: "inv_valid", TeamID: "team_inviter", Email: "Dev@Example.com", ExpiresAt: fixedNow.Add(time.Hour)}
	st.invites["inv_expired"] = &model.Invite{ID: "inv_expired", TeamID: "team_inviter", Email: "dev@example.com", ExpiresAt: fixedNow.Add(-time.Hour)}
	st.invites["inv_other"] = &model.Invite{ID: "inv_other", TeamID: "team_inviter", Email: "other@example.com", ExpiresAt: fixedNow.Add(time.Hour)}

	recorder := metrics.NewInMemory()
	svc := NewTeamService(st, recorder, nil)
	svc.now = func() time.Time { return fixedNow }
	svc.newID = func() string { return "team_new" }
	return svc, st, recorder
}

var devUser = model.SessionUser{ID: "user_1", Email: "dev@example.com"}

func TestCreateTeam(t *testing.T) {
	svc, st, recorder := newTeamFixture()

	result, err := svc.CreateTeam(context.Background(), CreateTeamInput{
		User:           devUser,
		TeamName:       "  Acme  ",
		AcceptedTerms:  true,
		ProductUpdates: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "/teams/team_new/apps", result.ReturnTo)
	assert.Equal(t, "Acme", result.Team.Name)
	assert.Empty(t, result.JoinedTeamID)

	require.Len(t, st.created, 1)
	created := st.created[0]
	assert.Equal(t, model.Team{ID: "team_new", Name: "Acme", CreatedAt: fixedNow}, created.Team)
	assert.Equal(t, model.Membership{
		TeamID:         "team_new",
		UserID:         "user_1",
		Email:          "dev@example.com",
		Role:           model.RoleOwner,
		ProductUpdates: true,
	}, created.Owner)
	assert.Nil(t, created.Invite)
	assert.Nil(t, created.InviteMembership)
	assert.Equal(t, uint64(1), recorder.Snapshot().TeamsCreated)
}

func TestCreateTeam_WithInvite(t *testing.T) {
	svc, st, recorder := newTeamFixture()

	result, err := svc.CreateTeam(context.Background(), CreateTeamInput{
		User:          devUser,
		TeamName:      "Acme",
		AcceptedTerms: true,
		InviteID:      "inv_valid",
	})
	require.NoError(t, err)

	assert.Equal(t, "/teams/team_inviter/apps", result.ReturnTo)
	assert.Equal(t, "team_inviter", result.JoinedTeamID)

	require.Len(t, st.created, 1)
	require.NotNil(t, st.created[0].InviteMembership)
	assert.Equal(t, "team_inviter", st.created[0].InviteMembership.TeamID)
	assert.Equal(t, model.RoleMember, st.created[0].InviteMembership.Role)
	assert.NotContains(t, st.invites, "inv_valid")

	snap := recorder.Snapshot()
	assert.Equal(t, uint64(1), snap.TeamsCreated)
	assert.Equal(t, uint64(1), snap.InvitesAccepted)
}

func TestCreateTeam_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateTeamInput
		wantErr error
	}{
		{"empty_name", CreateTeamInput{User: devUser, AcceptedTerms: true}, ErrTeamNameRequired},
		{"blank_name", CreateTeamInput{User: devUser, TeamName: "   ", AcceptedTerms: true}, ErrTeamNameRequired},
		{"long_name", CreateTeamInput{User: devUser, TeamName: strings.Repeat("a", MaxTeamNameLength+1), AcceptedTerms: true}, ErrTeamNameTooLong},
		{"terms_not_accepted", CreateTeamInput{User: devUser, TeamName: "Acme"}, ErrTermsNotAccepted},
		{"unknown_invite", CreateTeamInput{User: devUser, TeamName: "Acme", AcceptedTerms: true, InviteID: "inv_missing"}, ErrInvalidInvite},
		{"expired_invite", CreateTeamInput{User: devUser, TeamName: "Acme", AcceptedTerms: true, InviteID: "inv_expired"}, ErrInviteExpired},
		{"email_mismatch", CreateTeamInput{User: devUser, TeamName: "Acme", AcceptedTerms: true, InviteID: "inv_other"}, ErrInviteEmailMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, st, _ := newTeamFixture()

			_, err := svc.CreateTeam(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, st.created, "nothing may be written on failure")
		})
	}
}

func TestCreateTeam_StoreErrors(t *testing.T) {
	tests := []struct {
		name     string
		storeErr error
		wantErr  error
	}{
		{"invite_consumed", store.ErrNotFound, ErrInvalidInvite},
		{"already_member", store.ErrConflict, ErrAlreadyMember},
		{"backend_down", errors.New("boom"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, st, recorder := newTeamFixture()
			st.createErr = tt.storeErr

			_, err := svc.CreateTeam(context.Background(), CreateTeamInput{
				User:          devUser,
				TeamName:      "Acme",
				AcceptedTerms: true,
				InviteID:      "inv_valid",
			})
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.ErrorIs(t, err, tt.storeErr)
			}
			assert.Zero(t, recorder.Snapshot().TeamsCreated)
		})
	}
}

func TestGenerateTeamID(t *testing.T) {
	id := generateTeamID()
	assert.True(t, strings.HasPrefix(id, "team_"))
	assert.Len(t, id, len("team_")+26)
	assert.NotEqual(t, id, generateTeamID())
}

func TestCreateTeam_InviteRevokedDuringWrite(t *testing.T) {
	var (
		mu  sync.Mutex
		ops []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			OperationName string `json:"operationName"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		mu.Lock()
		ops = append(ops, req.OperationName)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch req.OperationName {
		case "FetchInvite":
			_, _ = w.Write([]byte(`{"data": {"invite": [{
				"id": "inv_valid",
				"team_id": "team_inviter",
				"email": "dev@example.com",
				"expires_at": "2026-03-01T13:00:00Z"
			}]}}`))
		default:
			_, _ = w.Write([]byte(`{"data": {"create_team_with_invite": []}}`))
		}
	}))
	t.Cleanup(srv.Close)

	recorder := metrics.NewInMemory()
	svc := NewTeamService(graphql.New(srv.URL, "", time.Second, recorder), recorder, nil)
	svc.now = func() time.Time { return fixedNow }
	svc.newID = func() string { return "team_new" }

	result, err := svc.CreateTeam(context.Background(), CreateTeamInput{
		User:          devUser,
		TeamName:      "Acme",
		AcceptedTerms: true,
		InviteID:      "inv_valid",
	})
	require.ErrorIs(t, err, ErrInvalidInvite)
	assert.Nil(t, result)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"FetchInvite", "CreateTeamWithInvite"}, ops)
	assert.Zero(t, recorder.Snapshot().TeamsCreated)
}

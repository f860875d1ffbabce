package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/devportal/devportal/internal/model"
	"github.com/devportal/devportal/internal/store"
)

func TestHandler_NotFound(t *testing.T) {
	h := New()

	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	rec := httptest.NewRecorder()

	h.NotFound(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}

	contentType := rec.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", contentType)
	}

	response := decodeBody(t, rec)
	if response["code"] != CodeNotFound {
		t.Errorf("unexpected code: %v", response["code"])
	}
	if attr, ok := response["attribute"]; !ok || attr != nil {
		t.Errorf("expected null attribute, got %v (present=%v)", attr, ok)
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h := New()

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()

	h.MethodNotAllowed(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rec.Code)
	}

	response := decodeBody(t, rec)
	if response["code"] != CodeMethodNotAllowed {
		t.Errorf("unexpected code: %v", response["code"])
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var response map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return response
}

// stubStore is an in-memory store.Store for handler tests.
type stubStore struct {
	mu       sync.Mutex
	apps     map[string]*model.App
	metadata map[string]*model.AppMetadata
	invites  map[string]*model.Invite
	created  []store.CreateTeamInput
}

func newStubStore() *stubStore {
	return &stubStore{
		apps:     make(map[string]*model.App),
		metadata: make(map[string]*model.AppMetadata),
		invites:  make(map[string]*model.Invite),
	}
}

func (s *stubStore) FetchApp(_ context.Context, appID string) (*model.App, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if app, ok := s.apps[appID]; ok {
		return app, nil
	}
	return nil, store.ErrNotFound
}

func (s *stubStore) FetchAppMetadata(_ context.Context, appID string) (*model.AppMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if meta, ok := s.metadata[appID]; ok {
		return meta, nil
	}
	return nil, store.ErrNotFound
}

func (s *stubStore) FetchInvite(_ context.Context, inviteID string) (*model.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if invite, ok := s.invites[inviteID]; ok {
		return invite, nil
	}
	return nil, store.ErrNotFound
}

func (s *stubStore) CreateTeam(_ context.Context, input store.CreateTeamInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, input)
	if input.Invite != nil {
		delete(s.invites, input.Invite.ID)
	}
	return nil
}

func (s *stubStore) Ping(context.Context) error {
	return nil
}

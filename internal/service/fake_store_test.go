package service

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/devportal/devportal/internal/model"
	"github.com/devportal/devportal/internal/store"
)

// fakeStore is an in-memory store.Store.
type fakeStore struct {
	mu        sync.Mutex
	apps      map[string]*model.App
	metadata  map[string]*model.AppMetadata
	invites   map[string]*model.Invite
	created   []store.CreateTeamInput
	createErr error
	fetchErr  error

	// metadataGate, when set, blocks FetchAppMetadata until closed.
	metadataGate  chan struct{}
	metadataCalls atomic.Int32
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		apps:     make(map[string]*model.App),
		metadata: make(map[string]*model.AppMetadata),
		invites:  make(map[string]*model.Invite),
	}
}

func (f *fakeStore) FetchApp(_ context.Context, appID string) (*model.App, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	app, ok := f.apps[appID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return app, nil
}

func (f *fakeStore) FetchAppMetadata(_ context.Context, appID string) (*model.AppMetadata, error) {
	f.metadataCalls.Add(1)
	if f.metadataGate != nil {
		<-f.metadataGate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	meta, ok := f.metadata[appID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return meta, nil
}

func (f *fakeStore) FetchInvite(_ context.Context, inviteID string) (*model.Invite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	invite, ok := f.invites[inviteID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return invite, nil
}

func (f *fakeStore) CreateTeam(_ context.Context, input store.CreateTeamInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, input)
	if input.Invite != nil {
		delete(f.invites, input.Invite.ID)
	}
	return nil
}

func (f *fakeStore) Ping(context.Context) error {
	return nil
}

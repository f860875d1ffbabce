package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/devportal/devportal/internal/metrics"
	"github.com/devportal/devportal/internal/nullifier"
	"github.com/devportal/devportal/internal/store"
)

// OIDC validation errors.
var (
	ErrMissingAppID       = errors.New("app_id is required")
	ErrMissingRedirectURI = errors.New("redirect_uri is required")
	ErrAppNotFound        = errors.New("app not found")
	ErrInvalidRedirectURI = errors.New("invalid redirect_uri")
)

// OIDCService validates sign-in requests of relying parties.
type OIDCService struct {
	store   store.Store
	metrics metrics.Recorder
}

// NewOIDCService creates a new OIDCService.
func NewOIDCService(st store.Store, recorder metrics.Recorder) *OIDCService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &OIDCService{store: st, metrics: recorder}
}

// OIDCValidation is the outcome of a successful validation.
type OIDCValidation struct {
	AppID             string
	RedirectURI       string
	IsStaging         bool
	ExternalNullifier string
}

// Validate checks that redirectURI is registered on the sign-in action of
// appID. The app is resolved before the redirect URI is inspected, so an
// unknown app is reported even when redirectURI is empty.
func (s *OIDCService) Validate(ctx context.Context, appID, redirectURI string) (*OIDCValidation, error) {
	if appID == "" {
		return nil, ErrMissingAppID
	}

	app, err := s.store.FetchApp(ctx, appID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.metrics.IncOIDCValidation(metrics.OIDCAppNotFound)
			return nil, ErrAppNotFound
		}
		return nil, fmt.Errorf("failed to fetch app: %w", err)
	}

	if redirectURI == "" {
		return nil, ErrMissingRedirectURI
	}

	if !app.AllowsRedirect(redirectURI) {
		s.metrics.IncOIDCValidation(metrics.OIDCInvalidRedirectURI)
		return nil, ErrInvalidRedirectURI
	}

	externalNullifier := app.SignIn().ExternalNullifier
	if externalNullifier == "" {
		externalNullifier = nullifier.External(app.ID, app.SignIn().Action)
	}

	s.metrics.IncOIDCValidation(metrics.OIDCValid)

	return &OIDCValidation{
		AppID:             app.ID,
		RedirectURI:       redirectURI,
		IsStaging:         app.IsStaging,
		ExternalNullifier: externalNullifier,
	}, nil
}

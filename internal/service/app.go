package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/devportal/devportal/internal/cache"
	"github.com/devportal/devportal/internal/localise"
	"github.com/devportal/devportal/internal/metrics"
	"github.com/devportal/devportal/internal/model"
	"github.com/devportal/devportal/internal/nativeapp"
	"github.com/devportal/devportal/internal/store"
)

// PublicAppCache stores serialized public apps keyed by requested app id.
// Implementations return cache.ErrCacheMiss and cache.ErrNegativeHit.
type PublicAppCache interface {
	GetPublicApp(ctx context.Context, appID string) ([]byte, error)
	SetPublicApp(ctx context.Context, appID string, payload []byte, ttl time.Duration) error
	SetPublicAppNotFound(ctx context.Context, appID string) error
}

type noopCache struct{}

func (noopCache) GetPublicApp(context.Context, string) ([]byte, error) {
	return nil, cache.ErrCacheMiss
}

func (noopCache) SetPublicApp(context.Context, string, []byte, time.Duration) error { return nil }

func (noopCache) SetPublicAppNotFound(context.Context, string) error { return nil }

// PublicAppConfig configures a PublicAppService.
type PublicAppConfig struct {
	CDNURL   string
	CacheTTL time.Duration
}

// PublicAppService serves the public metadata of verified apps.
type PublicAppService struct {
	store    store.Store
	cache    PublicAppCache
	registry *nativeapp.Registry
	cdnURL   string
	cacheTTL time.Duration
	metrics  metrics.Recorder
	logger   *slog.Logger
	group    singleflight.Group
}

// NewPublicAppService creates a new PublicAppService.
// A nil cache disables caching and a nil registry disables native aliases.
func NewPublicAppService(
	st store.Store,
	c PublicAppCache,
	registry *nativeapp.Registry,
	cfg PublicAppConfig,
	recorder metrics.Recorder,
	logger *slog.Logger,
) *PublicAppService {
	if c == nil {
		c = noopCache{}
	}
	if registry == nil {
		registry = nativeapp.Empty()
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PublicAppService{
		store:    st,
		cache:    c,
		registry: registry,
		cdnURL:   strings.TrimSuffix(cfg.CDNURL, "/"),
		cacheTTL: cfg.CacheTTL,
		metrics:  recorder,
		logger:   logger,
	}
}

// GetPublicApp returns the public app for appID, which may be a native
// app alias. Concurrent misses for the same id share one backend call.
func (s *PublicAppService) GetPublicApp(ctx context.Context, appID string) (*model.PublicApp, error) {
	if appID == "" {
		return nil, ErrMissingAppID
	}

	payload, err := s.cache.GetPublicApp(ctx, appID)
	switch {
	case err == nil:
		var app model.PublicApp
		if jsonErr := json.Unmarshal(payload, &app); jsonErr == nil {
			s.metrics.IncPublicAppCache(metrics.CacheHit)
			return &app, nil
		}
		s.logger.Warn("public_app_cache_corrupt", "app_id", appID)
	case errors.Is(err, cache.ErrNegativeHit):
		s.metrics.IncPublicAppCache(metrics.CacheNegative)
		return nil, ErrAppNotFound
	case errors.Is(err, cache.ErrCacheMiss):
		s.metrics.IncPublicAppCache(metrics.CacheMiss)
	default:
		// Fall through to the backend.
		s.metrics.IncPublicAppCache(metrics.CacheError)
		s.logger.Warn("public_app_cache_failed", "app_id", appID, "error", err)
	}

	// The shared load must not be cancelled by whichever caller started it.
	loadCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(appID, func() (any, error) {
		return s.load(loadCtx, appID)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*model.PublicApp), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *PublicAppService) load(ctx context.Context, appID string) (*model.PublicApp, error) {
	native, isNative := s.registry.Lookup(appID)
	backingID := appID
	if isNative {
		backingID = native.AppID
	}

	meta, err := s.store.FetchAppMetadata(ctx, backingID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			if cacheErr := s.cache.SetPublicAppNotFound(ctx, appID); cacheErr != nil {
				s.logger.Warn("public_app_cache_failed", "app_id", appID, "error", cacheErr)
			}
			return nil, ErrAppNotFound
		}
		return nil, fmt.Errorf("failed to fetch app metadata: %w", err)
	}

	var nativeApp *nativeapp.App
	if isNative {
		nativeApp = &native
	}
	app := BuildPublicApp(meta, appID, nativeApp, s.cdnURL)

	if payload, err := json.Marshal(app); err == nil {
		if cacheErr := s.cache.SetPublicApp(ctx, appID, payload, s.cacheTTL); cacheErr != nil {
			s.logger.Warn("public_app_cache_failed", "app_id", appID, "error", cacheErr)
		}
	}

	return app, nil
}

// BuildPublicApp converts a metadata record into its public form.
// requestedID is echoed as app_id; images and translation keys use the
// record's own app id. native, when set, overrides app mode and
// integration URL.
func BuildPublicApp(meta *model.AppMetadata, requestedID string, native *nativeapp.App, cdnURL string) *model.PublicApp {
	backingID := meta.AppID
	if backingID == "" {
		backingID = requestedID
	}

	showcase := make([]string, 0, len(meta.ShowcaseImgURLs))
	for _, file := range meta.ShowcaseImgURLs {
		showcase = append(showcase, CDNImageURL(cdnURL, backingID, file))
	}

	app := &model.PublicApp{
		Name:                 meta.Name,
		AppID:                requestedID,
		LogoImgURL:           CDNImageURL(cdnURL, backingID, meta.LogoImgURL),
		ShowcaseImgURLs:      showcase,
		HeroImageURL:         CDNImageURL(cdnURL, backingID, meta.HeroImageURL),
		Category:             localisedCategories(meta.Category),
		IntegrationURL:       meta.IntegrationURL,
		AppWebsiteURL:        meta.AppWebsiteURL,
		SourceCodeURL:        meta.SourceCodeURL,
		TeamName:             meta.TeamName(),
		WhitelistedAddresses: meta.WhitelistedAddresses,
		AppMode:              meta.AppMode,
		SupportEmail:         meta.SupportEmail,
		SupportedCountries:   meta.SupportedCountries,
		SupportedLanguages:   meta.SupportedLanguages,
		AppRating:            meta.AppRating,
		UniqueUsers:          meta.UniqueUsers,
		Description: model.LocalisedDescription{
			HowItWorks:   localise.FieldKey(backingID, localise.DescriptionHowItWorks),
			HowToConnect: localise.FieldKey(backingID, localise.DescriptionConnect),
			Overview:     localise.FieldKey(backingID, localise.DescriptionOverview),
		},
		WorldAppButtonText:  localise.FieldKey(backingID, localise.WorldAppButtonText),
		WorldAppDescription: localise.FieldKey(backingID, localise.WorldAppDescription),
	}

	if native != nil {
		app.AppMode = model.AppModeNative
		app.IntegrationURL = native.IntegrationURL
	}

	return app
}

// CDNImageURL returns the CDN URL of an image stored under appID.
// Empty names stay empty and absolute URLs are returned unchanged.
func CDNImageURL(cdnURL, appID, file string) string {
	if file == "" {
		return ""
	}
	if strings.HasPrefix(file, "https://") || strings.HasPrefix(file, "http://") {
		return file
	}
	return strings.TrimSuffix(cdnURL, "/") + "/" + appID + "/" + strings.TrimPrefix(file, "/")
}

func localisedCategories(category string) []model.LocalisedCategory {
	name := strings.TrimSpace(category)
	if name == "" {
		return []model.LocalisedCategory{}
	}
	return []model.LocalisedCategory{{Name: name, LokaliseKey: localise.CategoryKey(name)}}
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/devportal/devportal/internal/model"
	"github.com/devportal/devportal/internal/store"
)

// FetchApp implements store.Store.
func (r *Repository) FetchApp(ctx context.Context, appID string) (app *model.App, err error) {
	start := time.Now()
	defer func() { r.observe("FetchApp", start, err) }()

	query := `
		SELECT id, is_staging
		FROM app
		WHERE id = $1
		  AND status = 'active'
		  AND is_archived = FALSE
		  AND deleted_at IS NULL
	`

	app = &model.App{}
	if err = r.pool.QueryRow(ctx, query, appID).Scan(&app.ID, &app.IsStaging); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = store.ErrNotFound
			return nil, err
		}
		err = fmt.Errorf("failed to get app: %w", err)
		return nil, err
	}

	actionsQuery := `
		SELECT ac.action,
		       ac.external_nullifier,
		       COALESCE(array_agg(rd.redirect_uri ORDER BY rd.id) FILTER (WHERE rd.redirect_uri IS NOT NULL), '{}')
		FROM action ac
		LEFT JOIN redirect rd ON rd.action_id = ac.id
		WHERE ac.app_id = $1 AND ac.action = $2
		GROUP BY ac.id, ac.action, ac.external_nullifier
	`

	rows, err := r.pool.Query(ctx, actionsQuery, appID, model.SignInAction)
	if err != nil {
		err = fmt.Errorf("failed to get app actions: %w", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var action model.Action
		var uris []string
		if err = rows.Scan(&action.Action, &action.ExternalNullifier, pq.Array(&uris)); err != nil {
			err = fmt.Errorf("failed to scan action: %w", err)
			return nil, err
		}
		for _, uri := range uris {
			action.Redirects = append(action.Redirects, model.Redirect{RedirectURI: uri})
		}
		app.Actions = append(app.Actions, action)
	}
	if err = rows.Err(); err != nil {
		err = fmt.Errorf("failed to iterate actions: %w", err)
		return nil, err
	}

	return app, nil
}

// FetchAppMetadata implements store.Store.
func (r *Repository) FetchAppMetadata(ctx context.Context, appID string) (meta *model.AppMetadata, err error) {
	start := time.Now()
	defer func() { r.observe("GetAppMetadata", start, err) }()

	query := `
		SELECT m.app_id, m.name, m.logo_img_url, m.showcase_img_urls, m.hero_image_url,
		       m.world_app_description, m.world_app_button_text, m.category, m.description,
		       m.integration_url, m.app_website_url, m.source_code_url, m.whitelisted_addresses,
		       m.app_mode, m.support_email, m.supported_countries, m.supported_languages,
		       m.app_rating, m.unique_users, m.verification_status, t.name
		FROM app_metadata m
		JOIN app a ON a.id = m.app_id
		JOIN team t ON t.id = a.team_id
		WHERE m.app_id = $1
		  AND m.verification_status = 'verified'
		  AND a.is_archived = FALSE
		  AND a.deleted_at IS NULL
	`

	meta = &model.AppMetadata{}
	var appMode string
	err = r.pool.QueryRow(ctx, query, appID).Scan(
		&meta.AppID,
		&meta.Name,
		&meta.LogoImgURL,
		pq.Array(&meta.ShowcaseImgURLs),
		&meta.HeroImageURL,
		&meta.WorldAppDescription,
		&meta.WorldAppButtonText,
		&meta.Category,
		&meta.Description,
		&meta.IntegrationURL,
		&meta.AppWebsiteURL,
		&meta.SourceCodeURL,
		pq.Array(&meta.WhitelistedAddresses),
		&appMode,
		&meta.SupportEmail,
		pq.Array(&meta.SupportedCountries),
		pq.Array(&meta.SupportedLanguages),
		&meta.AppRating,
		&meta.UniqueUsers,
		&meta.VerificationStatus,
		&meta.App.Team.Name,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = store.ErrNotFound
			return nil, err
		}
		err = fmt.Errorf("failed to get app metadata: %w", err)
		return nil, err
	}
	meta.AppMode = model.AppMode(appMode)

	return meta, nil
}

// Package model defines domain entities for the application.
package model

import "slices"

// AppMode describes how an app is presented to World App users.
type AppMode string

const (
	AppModeMiniApp  AppMode = "mini-app"
	AppModeExternal AppMode = "external"
	AppModeNative   AppMode = "native"
)

// SignInAction is the action name of the implicit OIDC sign-in action every app has.
const SignInAction = ""

// App is the subset of an app record needed to validate OIDC requests.
type App struct {
	ID        string   `json:"id"`
	IsStaging bool     `json:"is_staging"`
	Actions   []Action `json:"actions"`
}

// Action is an incognito action registered on an app.
type Action struct {
	Action            string     `json:"action"`
	ExternalNullifier string     `json:"external_nullifier"`
	Redirects         []Redirect `json:"redirects"`
}

// Redirect is a single allowed OIDC redirect_uri.
type Redirect struct {
	RedirectURI string `json:"redirect_uri"`
}

// SignIn returns the sign-in action of the app, or nil when none is registered.
func (a *App) SignIn() *Action {
	for i := range a.Actions {
		if a.Actions[i].Action == SignInAction {
			return &a.Actions[i]
		}
	}
	return nil
}

// RedirectURIs returns the allow-list of the action.
func (a *Action) RedirectURIs() []string {
	uris := make([]string, 0, len(a.Redirects))
	for _, r := range a.Redirects {
		uris = append(uris, r.RedirectURI)
	}
	return uris
}

// AllowsRedirect reports whether uri is registered on the sign-in action.
// Comparison is exact, as required for OIDC redirect URIs.
func (a *App) AllowsRedirect(uri string) bool {
	action := a.SignIn()
	if action == nil {
		return false
	}
	return slices.Contains(action.RedirectURIs(), uri)
}

// AppMetadata is a raw app_metadata record as stored by the backend.
// Image fields hold file names relative to the app's CDN folder.
type AppMetadata struct {
	AppID                string   `json:"app_id"`
	Name                 string   `json:"name"`
	LogoImgURL           string   `json:"logo_img_url"`
	ShowcaseImgURLs      []string `json:"showcase_img_urls"`
	HeroImageURL         string   `json:"hero_image_url"`
	WorldAppDescription  string   `json:"world_app_description"`
	WorldAppButtonText   string   `json:"world_app_button_text"`
	Category             string   `json:"category"`
	Description          string   `json:"description"`
	IntegrationURL       string   `json:"integration_url"`
	AppWebsiteURL        string   `json:"app_website_url"`
	SourceCodeURL        string   `json:"source_code_url"`
	WhitelistedAddresses []string `json:"whitelisted_addresses"`
	AppMode              AppMode  `json:"app_mode"`
	SupportEmail         string   `json:"support_email"`
	SupportedCountries   []string `json:"supported_countries"`
	SupportedLanguages   []string `json:"supported_languages"`
	AppRating            float64  `json:"app_rating"`
	UniqueUsers          int64    `json:"unique_users"`
	VerificationStatus   string   `json:"verification_status,omitempty"`
	App                  struct {
		Team struct {
			Name string `json:"name"`
		} `json:"team"`
	} `json:"app"`
}

// TeamName returns the name of the team owning the app.
func (m *AppMetadata) TeamName() string {
	return m.App.Team.Name
}

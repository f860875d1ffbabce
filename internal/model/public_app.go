package model

// PublicApp is the public representation of a verified app as served to
// World App clients. Texts are replaced by translation keys and image
// paths by CDN URLs.
type PublicApp struct {
	Name                 string               `json:"name"`
	AppID                string               `json:"app_id"`
	LogoImgURL           string               `json:"logo_img_url"`
	ShowcaseImgURLs      []string             `json:"showcase_img_urls"`
	HeroImageURL         string               `json:"hero_image_url"`
	Category             []LocalisedCategory  `json:"category"`
	IntegrationURL       string               `json:"integration_url"`
	AppWebsiteURL        string               `json:"app_website_url"`
	SourceCodeURL        string               `json:"source_code_url"`
	TeamName             string               `json:"team_name"`
	WhitelistedAddresses []string             `json:"whitelisted_addresses"`
	AppMode              AppMode              `json:"app_mode"`
	SupportEmail         string               `json:"support_email"`
	SupportedCountries   []string             `json:"supported_countries"`
	SupportedLanguages   []string             `json:"supported_languages"`
	AppRating            float64              `json:"app_rating"`
	UniqueUsers          int64                `json:"unique_users"`
	Description          LocalisedDescription `json:"description"`
	WorldAppButtonText   string               `json:"world_app_button_text"`
	WorldAppDescription  string               `json:"world_app_description"`
}

// LocalisedCategory pairs a category name with its translation key.
type LocalisedCategory struct {
	Name        string `json:"name"`
	LokaliseKey string `json:"lokalise_key"`
}

// LocalisedDescription holds the translation keys of the description parts.
type LocalisedDescription struct {
	HowItWorks   string `json:"how_it_works"`
	HowToConnect string `json:"how_to_connect"`
	Overview     string `json:"overview"`
}

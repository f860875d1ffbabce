// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"github.com/devportal/devportal/internal/model"
)

// ErrorResponse represents an API error. Attribute names the offending
// request field and is null for errors that are not field specific.
type ErrorResponse struct {
	Code      string  `json:"code"`
	Detail    string  `json:"detail"`
	Attribute *string `json:"attribute"`
}

// NewErrorResponse builds an ErrorResponse; an empty attribute is encoded as null.
func NewErrorResponse(code, detail, attribute string) ErrorResponse {
	resp := ErrorResponse{Code: code, Detail: detail}
	if attribute != "" {
		resp.Attribute = &attribute
	}
	return resp
}

// OIDCValidateRequest is the body of POST /api/v1/oidc/validate.
type OIDCValidateRequest struct {
	AppID       string `json:"app_id"`
	RedirectURI string `json:"redirect_uri"`
}

// OIDCValidateResponse is returned for a registered redirect URI.
type OIDCValidateResponse struct {
	AppID             string `json:"app_id"`
	RedirectURI       string `json:"redirect_uri"`
	IsStaging         bool   `json:"is_staging"`
	ExternalNullifier string `json:"external_nullifier"`
}

// PublicAppResponse wraps a public app.
type PublicAppResponse struct {
	AppData *model.PublicApp `json:"app_data"`
}

// CreateTeamResponse tells the dashboard where to go next.
type CreateTeamResponse struct {
	ReturnTo string `json:"returnTo"`
}

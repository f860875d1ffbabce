// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/devportal/devportal/internal/handler/dto"
	"github.com/devportal/devportal/internal/service"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeNotFound           = "not_found"
	CodeInvalidRedirectURI = "invalid_redirect_uri"
	CodeRequired           = "required"
	CodeInvalidRequest     = "invalid_request"
	CodeValidationError    = "validation_error"
	CodeInvalidInvite      = "invalid_invite"
	CodeInviteExpired      = "invite_expired"
	CodeInviteMismatch     = "invite_email_mismatch"
	CodeAlreadyMember      = "already_member"
	CodeUnauthenticated    = "unauthenticated"
	CodeMethodNotAllowed   = "method_not_allowed"
	CodePayloadTooLarge    = "payload_too_large"
	CodeUnsupportedMedia   = "unsupported_media_type"
	CodeInternal           = "internal_server_error"
)

// Handler serves the fallback routes.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, CodeNotFound, "Resource not found.", "")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "HTTP method is not allowed.", "")
}

// handleServiceError maps service errors to HTTP responses.
func handleServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrMissingAppID):
		writeError(w, http.StatusBadRequest, CodeRequired, "This attribute is required.", "app_id")
	case errors.Is(err, service.ErrMissingRedirectURI):
		writeError(w, http.StatusBadRequest, CodeRequired, "This attribute is required.", "redirect_uri")
	case errors.Is(err, service.ErrAppNotFound):
		writeError(w, http.StatusNotFound, CodeNotFound, "App not found", "app_id")
	case errors.Is(err, service.ErrInvalidRedirectURI):
		writeError(w, http.StatusBadRequest, CodeInvalidRedirectURI, "Invalid redirect URI.", "redirect_uri")
	case errors.Is(err, service.ErrTeamNameRequired):
		writeError(w, http.StatusBadRequest, CodeValidationError, dto.MsgTeamNameRequired, "team_name")
	case errors.Is(err, service.ErrTeamNameTooLong):
		writeError(w, http.StatusBadRequest, CodeValidationError, dto.MsgTeamNameTooLong, "team_name")
	case errors.Is(err, service.ErrTermsNotAccepted):
		writeError(w, http.StatusBadRequest, CodeValidationError, dto.MsgTermsRequired, "terms_and_conditions")
	case errors.Is(err, service.ErrInvalidInvite):
		writeError(w, http.StatusBadRequest, CodeInvalidInvite, "Invite not found.", "invite_id")
	case errors.Is(err, service.ErrInviteExpired):
		writeError(w, http.StatusBadRequest, CodeInviteExpired, "Invite has expired.", "invite_id")
	case errors.Is(err, service.ErrInviteEmailMismatch):
		writeError(w, http.StatusForbidden, CodeInviteMismatch, "Invite was issued for another email.", "invite_id")
	case errors.Is(err, service.ErrAlreadyMember):
		writeError(w, http.StatusConflict, CodeAlreadyMember, "You are already a member of this team.", "invite_id")
	default:
		logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, CodeInternal, "Something went wrong. Please try again.", "")
	}
}

// decodeJSON decodes the request body into dst. On failure it writes the
// error response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, "Request body too large", "")
		return false
	}
	writeError(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid request body.", "")
	return false
}

// requireJSON rejects requests whose Content-Type is not application/json.
// Browsers cannot send that type cross-site without a CORS preflight.
func requireJSON(w http.ResponseWriter, r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err == nil && mediaType == "application/json" {
		return true
	}
	writeError(w, http.StatusUnsupportedMediaType, CodeUnsupportedMedia, "Content-Type must be application/json.", "")
	return false
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code, detail, attribute string) {
	writeJSON(w, status, dto.NewErrorResponse(code, detail, attribute))
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing useful left to do.
		_ = err
	}
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/devportal/devportal/internal/handler/dto"
	"github.com/devportal/devportal/internal/service"
)

// OIDCHandler handles OIDC relying party checks.
type OIDCHandler struct {
	svc    *service.OIDCService
	logger *slog.Logger
}

// NewOIDCHandler creates a new OIDCHandler.
func NewOIDCHandler(svc *service.OIDCService, logger *slog.Logger) *OIDCHandler {
	return &OIDCHandler{svc: svc, logger: logger}
}

// Validate handles POST /api/v1/oidc/validate.
func (h *OIDCHandler) Validate(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	default:
		w.Header().Set("Allow", "POST, OPTIONS")
		writeError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "HTTP method is not allowed.", "")
		return
	}

	var req dto.OIDCValidateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Validate(r.Context(), req.AppID, req.RedirectURI)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("oidc_validated",
		"app_id", result.AppID,
		"is_staging", result.IsStaging,
	)

	writeJSON(w, http.StatusOK, dto.OIDCValidateResponse{
		AppID:             result.AppID,
		RedirectURI:       result.RedirectURI,
		IsStaging:         result.IsStaging,
		ExternalNullifier: result.ExternalNullifier,
	})
}

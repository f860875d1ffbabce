package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devportal/devportal/internal/handler/dto"
	"github.com/devportal/devportal/internal/service"
)

// PublicAppHandler serves public app metadata.
type PublicAppHandler struct {
	svc          *service.PublicAppService
	logger       *slog.Logger
	cacheControl string
}

// NewPublicAppHandler creates a new PublicAppHandler. Successful responses
// may be cached by clients and CDNs for maxAgeSeconds.
func NewPublicAppHandler(svc *service.PublicAppService, logger *slog.Logger, maxAgeSeconds int) *PublicAppHandler {
	cacheControl := "no-store"
	if maxAgeSeconds > 0 {
		cacheControl = fmt.Sprintf("public, max-age=%d", maxAgeSeconds)
	}
	return &PublicAppHandler{
		svc:          svc,
		logger:       logger,
		cacheControl: cacheControl,
	}
}

// Get handles GET /api/v2/public/app/{app_id}.
func (h *PublicAppHandler) Get(w http.ResponseWriter, r *http.Request) {
	appID := chi.URLParam(r, "app_id")

	app, err := h.svc.GetPublicApp(r.Context(), appID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	w.Header().Set("Cache-Control", h.cacheControl)
	writeJSON(w, http.StatusOK, dto.PublicAppResponse{AppData: app})
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/devportal/devportal/internal/auth"
	"github.com/devportal/devportal/internal/handler/dto"
	"github.com/devportal/devportal/internal/service"
)

// TeamHandler handles onboarding requests.
type TeamHandler struct {
	svc    *service.TeamService
	logger *slog.Logger
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(svc *service.TeamService, logger *slog.Logger) *TeamHandler {
	return &TeamHandler{svc: svc, logger: logger}
}

// Create handles POST /api/create-team.
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, CodeUnauthenticated, "Authentication required.", "")
		return
	}

	if !requireJSON(w, r) {
		return
	}

	var req dto.CreateTeamRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if fieldErr := req.Validate(); fieldErr != nil {
		writeError(w, http.StatusBadRequest, CodeValidationError, fieldErr.Message, fieldErr.Attribute)
		return
	}

	result, err := h.svc.CreateTeam(r.Context(), service.CreateTeamInput{
		User:           *user,
		TeamName:       req.TeamName,
		AcceptedTerms:  req.TermsAndConditions,
		ProductUpdates: req.ProductUpdates,
		InviteID:       req.InviteID,
	})
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CreateTeamResponse{ReturnTo: result.ReturnTo})
}

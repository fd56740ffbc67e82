package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lingopath/backend/internal/domain"
	"github.com/lingopath/backend/internal/service/user"
)

// settingsService defines the minimal interface needed by SettingsHandler.
type settingsService interface {
	GetSettings(ctx context.Context) (*domain.UserSettings, error)
	UpdateSettings(ctx context.Context, input user.UpdateSettingsInput) (*domain.UserSettings, error)
}

// SettingsHandler serves user settings REST endpoints.
type SettingsHandler struct {
	svc settingsService
	log *slog.Logger
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(svc settingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{svc: svc, log: logger.With("handler", "settings")}
}

type updateSettingsRequest struct {
	Timezone          *string  `json:"timezone,omitempty"`
	NewItemsPerDay    *int     `json:"newItemsPerDay,omitempty"`
	DefaultEaseFactor *float64 `json:"defaultEaseFactor,omitempty"`
	FailurePenalty    *bool    `json:"failurePenalty,omitempty"`
	DailyGoalType     *string  `json:"dailyGoalType,omitempty"`
	DailyGoalTarget   *int     `json:"dailyGoalTarget,omitempty"`
}

type settingsResponse struct {
	Timezone          string  `json:"timezone"`
	NewItemsPerDay    int     `json:"newItemsPerDay"`
	DefaultEaseFactor float64 `json:"defaultEaseFactor"`
	FailurePenalty    bool    `json:"failurePenalty"`
	DailyGoalType     string  `json:"dailyGoalType"`
	DailyGoalTarget   int     `json:"dailyGoalTarget"`
}

// Get handles GET /api/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.GetSettings(r.Context())
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toSettingsResponse(settings))
}

// Update handles PATCH /api/settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := user.UpdateSettingsInput{
		Timezone:          req.Timezone,
		NewItemsPerDay:    req.NewItemsPerDay,
		DefaultEaseFactor: req.DefaultEaseFactor,
		FailurePenalty:    req.FailurePenalty,
		DailyGoalTarget:   req.DailyGoalTarget,
	}
	if req.DailyGoalType != nil {
		g := domain.ParseGoalType(*req.DailyGoalType)
		input.DailyGoalType = &g
	}

	settings, err := h.svc.UpdateSettings(r.Context(), input)
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toSettingsResponse(settings))
}

func toSettingsResponse(s *domain.UserSettings) settingsResponse {
	return settingsResponse{
		Timezone:          s.Timezone,
		NewItemsPerDay:    s.NewItemsPerDay,
		DefaultEaseFactor: s.DefaultEaseFactor,
		FailurePenalty:    s.FailurePenalty,
		DailyGoalType:     s.DailyGoalType.String(),
		DailyGoalTarget:   s.DailyGoalTarget,
	}
}

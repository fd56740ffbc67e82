package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/lingopath/backend/internal/domain"
	"github.com/lingopath/backend/internal/service/recommend"
)

// progressService defines the minimal interface needed by ProgressHandler.
type progressService interface {
	AdvanceMilestone(ctx context.Context, input recommend.AdvanceMilestoneInput) (*domain.PathProgress, error)
	RecordTrackProgress(ctx context.Context, input recommend.RecordTrackInput) (*domain.TopicTrack, error)
}

// ProgressHandler serves learning path and topic track write endpoints.
type ProgressHandler struct {
	svc progressService
	log *slog.Logger
}

// NewProgressHandler creates a ProgressHandler.
func NewProgressHandler(svc progressService, logger *slog.Logger) *ProgressHandler {
	return &ProgressHandler{svc: svc, log: logger.With("handler", "progress")}
}

type advanceMilestoneRequest struct {
	NextMilestone string `json:"nextMilestone"`
}

type pathProgressResponse struct {
	PathID              string    `json:"pathId"`
	LanguageCode        string    `json:"languageCode"`
	CurrentMilestone    string    `json:"currentMilestone"`
	CompletedMilestones int       `json:"completedMilestones"`
	TotalMilestones     int       `json:"totalMilestones"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type updateTrackRequest struct {
	CompletedItems int `json:"completedItems"`
}

type topicTrackResponse struct {
	TrackID        string `json:"trackId"`
	LanguageCode   string `json:"languageCode"`
	Title          string `json:"title"`
	CompletedItems int    `json:"completedItems"`
	TotalItems     int    `json:"totalItems"`
}

// AdvanceMilestone handles POST /api/paths/{id}/advance.
func (h *ProgressHandler) AdvanceMilestone(w http.ResponseWriter, r *http.Request) {
	pathID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid path id")
		return
	}

	var req advanceMilestoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	path, err := h.svc.AdvanceMilestone(r.Context(), recommend.AdvanceMilestoneInput{
		PathID:        pathID,
		NextMilestone: req.NextMilestone,
	})
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, pathProgressResponse{
		PathID:              path.PathID.String(),
		LanguageCode:        path.LanguageCode,
		CurrentMilestone:    path.CurrentMilestone,
		CompletedMilestones: path.CompletedMilestones,
		TotalMilestones:     path.TotalMilestones,
		UpdatedAt:           path.UpdatedAt,
	})
}

// UpdateTrack handles PUT /api/tracks/{id}/progress.
func (h *ProgressHandler) UpdateTrack(w http.ResponseWriter, r *http.Request) {
	trackID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid track id")
		return
	}

	var req updateTrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	track, err := h.svc.RecordTrackProgress(r.Context(), recommend.RecordTrackInput{
		TrackID:        trackID,
		CompletedItems: req.CompletedItems,
	})
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, topicTrackResponse{
		TrackID:        track.TrackID.String(),
		LanguageCode:   track.LanguageCode,
		Title:          track.Title,
		CompletedItems: track.CompletedItems,
		TotalItems:     track.TotalItems,
	})
}

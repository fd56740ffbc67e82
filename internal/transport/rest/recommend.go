package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/lingopath/backend/internal/domain"
	"github.com/lingopath/backend/internal/service/recommend"
)

// recommendService defines the minimal interface needed by RecommendHandler.
type recommendService interface {
	Suggest(ctx context.Context, input recommend.SuggestInput) ([]domain.Recommendation, error)
}

// RecommendHandler serves the what-to-study-next endpoint.
type RecommendHandler struct {
	svc recommendService
	log *slog.Logger
}

// NewRecommendHandler creates a RecommendHandler.
func NewRecommendHandler(svc recommendService, logger *slog.Logger) *RecommendHandler {
	return &RecommendHandler{svc: svc, log: logger.With("handler", "recommend")}
}

type recommendationResponse struct {
	Kind     string  `json:"kind"`
	Priority int     `json:"priority"`
	Module   *string `json:"module,omitempty"`
	Title    string  `json:"title"`
	Detail   string  `json:"detail"`
}

// Suggest handles GET /api/recommendations.
func (h *RecommendHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	recs, err := h.svc.Suggest(r.Context(), recommend.SuggestInput{
		LanguageCode: r.URL.Query().Get("language"),
	})
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	resp := make([]recommendationResponse, 0, len(recs))
	for _, rec := range recs {
		item := recommendationResponse{
			Kind:     rec.Kind.String(),
			Priority: rec.Priority,
			Title:    rec.Title,
			Detail:   rec.Detail,
		}
		if rec.Module != nil {
			m := rec.Module.String()
			item.Module = &m
		}
		resp = append(resp, item)
	}
	writeJSON(w, http.StatusOK, resp)
}

package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lingopath/backend/internal/domain"
	"github.com/lingopath/backend/internal/service/srs"
)

// reviewService defines the minimal interface needed by ReviewHandler.
type reviewService interface {
	LearnItem(ctx context.Context, input srs.LearnItemInput) (*domain.ReviewItem, error)
	ListItems(ctx context.Context, input srs.ListItemsInput) ([]*domain.ReviewItem, int, error)
	GetReviewQueue(ctx context.Context, input srs.GetQueueInput) ([]*domain.ReviewItem, error)
	GetQueueSummary(ctx context.Context) (domain.ReviewQueueSummary, error)
	RecordReview(ctx context.Context, input srs.RecordReviewInput) (*domain.ReviewItem, error)
	GetItemHistory(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]*domain.ReviewLog, int, error)
	ResetItem(ctx context.Context, input srs.ItemIDInput) (*domain.ReviewItem, error)
	RemoveItem(ctx context.Context, input srs.ItemIDInput) error
	GetModuleBuckets(ctx context.Context) ([]domain.ModuleBuckets, error)
}

// ReviewHandler serves review-item and queue REST endpoints.
type ReviewHandler struct {
	svc reviewService
	log *slog.Logger
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(svc reviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{svc: svc, log: logger.With("handler", "review")}
}

type learnItemRequest struct {
	ContentKey   string `json:"contentKey"`
	ItemType     string `json:"itemType"`
	Module       string `json:"module"`
	LanguageCode string `json:"languageCode"`
}

type recordReviewRequest struct {
	ItemID     string `json:"itemId"`
	Quality    int    `json:"quality"`
	DurationMs *int   `json:"durationMs,omitempty"`
}

type itemResponse struct {
	ID           string     `json:"id"`
	ContentKey   string     `json:"contentKey"`
	ItemType     string     `json:"itemType"`
	Module       string     `json:"module"`
	LanguageCode string     `json:"languageCode"`
	DueAt        time.Time  `json:"dueAt"`
	IntervalDays int        `json:"intervalDays"`
	EaseFactor   float64    `json:"easeFactor"`
	Repetitions  int        `json:"repetitions"`
	Bucket       string     `json:"bucket"`
	LastReview   *time.Time `json:"lastReview,omitempty"`
	LastQuality  *int       `json:"lastQuality,omitempty"`
}

type itemListResponse struct {
	Items []itemResponse `json:"items"`
	Total int            `json:"total"`
}

type queueSummaryResponse struct {
	Total            int    `json:"total"`
	Urgency          string `json:"urgency"`
	EstimatedMinutes int    `json:"estimatedMinutes"`
}

type reviewLogResponse struct {
	ID         string    `json:"id"`
	Quality    int       `json:"quality"`
	DurationMs *int      `json:"durationMs,omitempty"`
	ReviewedAt time.Time `json:"reviewedAt"`
}

type historyResponse struct {
	Logs  []reviewLogResponse `json:"logs"`
	Total int                 `json:"total"`
}

type moduleBucketsResponse struct {
	Module        string  `json:"module"`
	New           int     `json:"new"`
	Learning      int     `json:"learning"`
	Review        int     `json:"review"`
	Mastered      int     `json:"mastered"`
	Due           int     `json:"due"`
	AvgEaseFactor float64 `json:"avgEaseFactor"`
}

// LearnItem handles POST /api/items.
func (h *ReviewHandler) LearnItem(w http.ResponseWriter, r *http.Request) {
	var req learnItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.svc.LearnItem(r.Context(), srs.LearnItemInput{
		ContentKey:   req.ContentKey,
		ItemType:     domain.ParseItemType(req.ItemType),
		Module:       domain.ParseModule(req.Module),
		LanguageCode: req.LanguageCode,
	})
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toItemResponse(item))
}

// ListItems handles GET /api/items.
func (h *ReviewHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	input := srs.ListItemsInput{
		DueOnly:   q.Get("due") == "true",
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
		Limit:     queryInt(q.Get("limit")),
		Offset:    queryInt(q.Get("offset")),
	}
	if v := q.Get("module"); v != "" {
		m := domain.ParseModule(v)
		input.Module = &m
	}
	if v := q.Get("itemType"); v != "" {
		t := domain.ParseItemType(v)
		input.ItemType = &t
	}
	if v := q.Get("language"); v != "" {
		input.LanguageCode = &v
	}

	items, total, err := h.svc.ListItems(r.Context(), input)
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, itemListResponse{Items: toItemResponses(items), Total: total})
}

// GetQueue handles GET /api/queue.
func (h *ReviewHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.GetReviewQueue(r.Context(), srs.GetQueueInput{
		Limit: queryInt(r.URL.Query().Get("limit")),
	})
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, itemListResponse{Items: toItemResponses(items), Total: len(items)})
}

// QueueSummary handles GET /api/queue/summary.
func (h *ReviewHandler) QueueSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.GetQueueSummary(r.Context())
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, queueSummaryResponse{
		Total:            summary.Total,
		Urgency:          summary.Urgency.String(),
		EstimatedMinutes: summary.EstimatedMinutes,
	})
}

// RecordReview handles POST /api/reviews.
func (h *ReviewHandler) RecordReview(w http.ResponseWriter, r *http.Request) {
	var req recordReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.svc.RecordReview(r.Context(), srs.RecordReviewInput{
		ItemID:     itemID,
		Quality:    req.Quality,
		DurationMs: req.DurationMs,
	})
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(item))
}

// ItemHistory handles GET /api/items/{id}/history.
func (h *ReviewHandler) ItemHistory(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	q := r.URL.Query()
	logs, total, err := h.svc.GetItemHistory(r.Context(), itemID, queryInt(q.Get("limit")), queryInt(q.Get("offset")))
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	resp := historyResponse{Logs: make([]reviewLogResponse, 0, len(logs)), Total: total}
	for _, l := range logs {
		resp.Logs = append(resp.Logs, reviewLogResponse{
			ID:         l.ID.String(),
			Quality:    l.Quality,
			DurationMs: l.DurationMs,
			ReviewedAt: l.ReviewedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// ResetItem handles POST /api/items/{id}/reset.
func (h *ReviewHandler) ResetItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.svc.ResetItem(r.Context(), srs.ItemIDInput{ItemID: itemID})
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(item))
}

// RemoveItem handles DELETE /api/items/{id}.
func (h *ReviewHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.svc.RemoveItem(r.Context(), srs.ItemIDInput{ItemID: itemID}); err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ModuleStats handles GET /api/stats/modules.
func (h *ReviewHandler) ModuleStats(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.svc.GetModuleBuckets(r.Context())
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	resp := make([]moduleBucketsResponse, 0, len(buckets))
	for _, b := range buckets {
		resp = append(resp, moduleBucketsResponse{
			Module:        b.Module.String(),
			New:           b.New,
			Learning:      b.Learning,
			Review:        b.Review,
			Mastered:      b.Mastered,
			Due:           b.Due,
			AvgEaseFactor: b.AvgEaseFactor,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func toItemResponse(item *domain.ReviewItem) itemResponse {
	return itemResponse{
		ID:           item.ID.String(),
		ContentKey:   item.ItemID,
		ItemType:     item.ItemType.String(),
		Module:       item.Module.String(),
		LanguageCode: item.LanguageCode,
		DueAt:        item.DueAt,
		IntervalDays: item.IntervalDays,
		EaseFactor:   item.EaseFactor,
		Repetitions:  item.Repetitions,
		Bucket:       item.Bucket().String(),
		LastReview:   item.LastReview,
		LastQuality:  item.LastQuality,
	}
}

func toItemResponses(items []*domain.ReviewItem) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item))
	}
	return out
}

func queryInt(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

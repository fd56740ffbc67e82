package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lingopath/backend/internal/domain"
	"github.com/lingopath/backend/internal/service/gamification"
)

// gamificationService defines the minimal interface needed by GamificationHandler.
type gamificationService interface {
	Award(ctx context.Context, input gamification.AwardInput) (*domain.AwardResult, error)
	GetState(ctx context.Context) (*domain.GamificationState, error)
	GetStreak(ctx context.Context) (domain.StreakInfo, error)
	UpdateGoal(ctx context.Context, input gamification.UpdateGoalInput) (*domain.GamificationState, error)
}

// GamificationHandler serves XP, level, streak and daily-goal REST endpoints.
type GamificationHandler struct {
	svc gamificationService
	log *slog.Logger
}

// NewGamificationHandler creates a GamificationHandler.
func NewGamificationHandler(svc gamificationService, logger *slog.Logger) *GamificationHandler {
	return &GamificationHandler{svc: svc, log: logger.With("handler", "gamification")}
}

type awardRequest struct {
	Amount int    `json:"amount"`
	Source string `json:"source"`
}

type awardResponse struct {
	XPAwarded          int  `json:"xpAwarded"`
	NewTotalXP         int  `json:"newTotalXp"`
	NewLevel           int  `json:"newLevel"`
	XPToNextLevel      int  `json:"xpToNextLevel"`
	LeveledUp          bool `json:"leveledUp"`
	CurrentStreak      int  `json:"currentStreak"`
	DailyGoalProgress  int  `json:"dailyGoalProgress"`
	DailyGoalTarget    int  `json:"dailyGoalTarget"`
	DailyGoalCompleted bool `json:"dailyGoalCompleted"`
}

type updateGoalRequest struct {
	GoalType string `json:"goalType"`
	Target   int    `json:"target"`
}

type stateResponse struct {
	Level             int    `json:"level"`
	CurrentXP         int    `json:"currentXp"`
	TotalXP           int    `json:"totalXp"`
	CurrentStreak     int    `json:"currentStreak"`
	LongestStreak     int    `json:"longestStreak"`
	TodayXP           int    `json:"todayXp"`
	DailyGoalType     string `json:"dailyGoalType"`
	DailyGoalTarget   int    `json:"dailyGoalTarget"`
	DailyGoalProgress int    `json:"dailyGoalProgress"`
}

type streakResponse struct {
	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`
}

// Award handles POST /api/gamification/awards.
func (h *GamificationHandler) Award(w http.ResponseWriter, r *http.Request) {
	var req awardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Award(r.Context(), gamification.AwardInput{
		Amount: req.Amount,
		Source: domain.ParseXPSource(req.Source),
	})
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, awardResponse{
		XPAwarded:          result.XPAwarded,
		NewTotalXP:         result.NewTotalXP,
		NewLevel:           result.NewLevel,
		XPToNextLevel:      result.XPToNextLevel,
		LeveledUp:          result.LeveledUp,
		CurrentStreak:      result.CurrentStreak,
		DailyGoalProgress:  result.DailyGoalProgress,
		DailyGoalTarget:    result.DailyGoalTarget,
		DailyGoalCompleted: result.DailyGoalCompleted,
	})
}

// State handles GET /api/gamification.
func (h *GamificationHandler) State(w http.ResponseWriter, r *http.Request) {
	state, err := h.svc.GetState(r.Context())
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toStateResponse(state))
}

// Streak handles GET /api/gamification/streak.
func (h *GamificationHandler) Streak(w http.ResponseWriter, r *http.Request) {
	streak, err := h.svc.GetStreak(r.Context())
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, streakResponse{
		CurrentStreak: streak.CurrentStreak,
		LongestStreak: streak.LongestStreak,
	})
}

// UpdateGoal handles PUT /api/gamification/goal.
func (h *GamificationHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req updateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := h.svc.UpdateGoal(r.Context(), gamification.UpdateGoalInput{
		GoalType: domain.ParseGoalType(req.GoalType),
		Target:   req.Target,
	})
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toStateResponse(state))
}

func toStateResponse(state *domain.GamificationState) stateResponse {
	return stateResponse{
		Level:             state.Level,
		CurrentXP:         state.CurrentXP,
		TotalXP:           state.TotalXP,
		CurrentStreak:     state.CurrentStreak,
		LongestStreak:     state.LongestStreak,
		TodayXP:           state.TodayXP,
		DailyGoalType:     state.DailyGoalType.String(),
		DailyGoalTarget:   state.DailyGoalTarget,
		DailyGoalProgress: state.DailyGoalProgress,
	}
}

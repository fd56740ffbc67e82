//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/lingopath/backend/internal/adapter/postgres"
	"github.com/lingopath/backend/internal/adapter/postgres/gamestate"
	"github.com/lingopath/backend/internal/adapter/postgres/progress"
	"github.com/lingopath/backend/internal/adapter/postgres/reviewitem"
	"github.com/lingopath/backend/internal/adapter/postgres/reviewlog"
	settingsrepo "github.com/lingopath/backend/internal/adapter/postgres/settings"
	"github.com/lingopath/backend/internal/adapter/postgres/testhelper"
	authpkg "github.com/lingopath/backend/internal/auth"
	"github.com/lingopath/backend/internal/config"
	"github.com/lingopath/backend/internal/domain"
	"github.com/lingopath/backend/internal/service/gamification"
	"github.com/lingopath/backend/internal/service/recommend"
	"github.com/lingopath/backend/internal/service/srs"
	"github.com/lingopath/backend/internal/service/user"
	"github.com/lingopath/backend/internal/transport/middleware"
	"github.com/lingopath/backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	jwt    *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// ---------------------------------------------------------------------------
// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
// ---------------------------------------------------------------------------

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	itemRepo := reviewitem.New(pool)
	logRepo := reviewlog.New(pool)
	stateRepo := gamestate.New(pool)
	settingsRepo := settingsrepo.New(pool)
	progressRepo := progress.New(pool)
	txm := postgres.NewTxManager(pool)

	jwtSecret := "test-secret-at-least-32-chars-long!!"
	jwtMgr := authpkg.NewJWTManager(jwtSecret, "test-issuer", 15*time.Minute)

	srsService := srs.NewService(logger, itemRepo, logRepo, settingsRepo, txm, domain.SRSConfig{
		DefaultEaseFactor: 2.5,
		MinEaseFactor:     1.3,
		FailurePenalty:    true,
		QueueLimit:        100,
	})

	gamificationService := gamification.NewService(logger, stateRepo, settingsRepo, txm, gamification.Config{
		MaxAwardAmount: 10000,
	})

	recommendService := recommend.NewService(logger, itemRepo, progressRepo, srsService)

	userService := user.NewService(logger, settingsRepo)

	healthHandler := rest.NewHealthHandler(pool, "test-version")
	reviewHandler := rest.NewReviewHandler(srsService, logger)
	gamificationHandler := rest.NewGamificationHandler(gamificationService, logger)
	recommendHandler := rest.NewRecommendHandler(recommendService, logger)
	progressHandler := rest.NewProgressHandler(recommendService, logger)
	settingsHandler := rest.NewSettingsHandler(userService, logger)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /health/live", healthHandler.Live)
	mux.HandleFunc("GET /health/ready", healthHandler.Ready)

	mux.HandleFunc("POST /api/items", reviewHandler.LearnItem)
	mux.HandleFunc("GET /api/items", reviewHandler.ListItems)
	mux.HandleFunc("GET /api/items/{id}/history", reviewHandler.ItemHistory)
	mux.HandleFunc("POST /api/items/{id}/reset", reviewHandler.ResetItem)
	mux.HandleFunc("DELETE /api/items/{id}", reviewHandler.RemoveItem)
	mux.HandleFunc("GET /api/queue", reviewHandler.GetQueue)
	mux.HandleFunc("GET /api/queue/summary", reviewHandler.QueueSummary)
	mux.HandleFunc("POST /api/reviews", reviewHandler.RecordReview)
	mux.HandleFunc("GET /api/stats/modules", reviewHandler.ModuleStats)

	mux.HandleFunc("GET /api/gamification", gamificationHandler.State)
	mux.HandleFunc("GET /api/gamification/streak", gamificationHandler.Streak)
	mux.HandleFunc("POST /api/gamification/awards", gamificationHandler.Award)
	mux.HandleFunc("PUT /api/gamification/goal", gamificationHandler.UpdateGoal)

	mux.HandleFunc("GET /api/recommendations", recommendHandler.Suggest)

	mux.HandleFunc("POST /api/paths/{id}/advance", progressHandler.AdvanceMilestone)
	mux.HandleFunc("PUT /api/tracks/{id}/progress", progressHandler.UpdateTrack)

	mux.HandleFunc("GET /api/settings", settingsHandler.Get)
	mux.HandleFunc("PATCH /api/settings", settingsHandler.Update)

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.CORS(config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: true,
			MaxAge:           86400,
		}),
		middleware.Auth(jwtMgr),
	)(mux)

	srv := httptest.NewServer(handler)
	t.Cleanup(func() { srv.Close() })

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		jwt:    jwtMgr,
	}
}

// ---------------------------------------------------------------------------
// restRequest sends a JSON request and returns status + raw body.
// ---------------------------------------------------------------------------

func (ts *testServer) restRequest(t *testing.T, method, path string, body any, token string) (int, []byte) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, buf.Bytes()
}

// objBody decodes a JSON object response.
func objBody(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body), "body: %s", raw)
	return body
}

// arrBody decodes a JSON array response.
func arrBody(t *testing.T, raw []byte) []any {
	t.Helper()
	var body []any
	require.NoError(t, json.Unmarshal(raw, &body), "body: %s", raw)
	return body
}

// ---------------------------------------------------------------------------
// createTestUser seeds a user with default settings and returns a valid
// access token plus the user's ID.
// ---------------------------------------------------------------------------

func createTestUser(t *testing.T, ts *testServer) (string, uuid.UUID) {
	t.Helper()

	u := testhelper.SeedUser(t, ts.Pool)

	token, err := ts.jwt.GenerateAccessToken(u.ID)
	require.NoError(t, err)

	return token, u.ID
}

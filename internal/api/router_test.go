package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"meal-planner/internal/core/catalog"
	"meal-planner/internal/core/corpus"
	"meal-planner/internal/core/planner"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/infrastructure/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emptyIndexer struct{}

func (emptyIndexer) Index(ctx context.Context) (catalog.Index, error) {
	return catalog.Index{}, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c := corpus.New([]corpus.Recipe{
		{Name: "Carbonara", Cuisine: "Italian", Course: "Dinner", Ingredients: "Spaghetti"},
	})
	svc := planner.NewService(c, emptyIndexer{}, planner.NewSampler(1), planner.NewLinker("/order/%d"))

	cfg := &config.Config{
		App:         config.AppConfig{Debug: true, Version: "test"},
		RateLimit:   config.RateLimitConfig{Enabled: true, Requests: 100, Window: time.Minute},
		Metrics:     config.MetricsConfig{Enabled: true, Path: "/metrics"},
		DedupWindow: time.Minute,
	}
	router, err := SetupRouter(cfg, svc, nil, monitoring.NewMetrics())
	require.NoError(t, err)
	return router
}

func TestSetupRouterRequiresService(t *testing.T) {
	_, err := SetupRouter(&config.Config{}, nil, nil, nil)
	assert.Error(t, err)
}

func TestRoutes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		body   string
		status int
		want   string
	}{
		{http.MethodGet, "/health", "", http.StatusOK, `"version":"test"`},
		{http.MethodGet, "/ready", "", http.StatusOK, `"ready"`},
		{http.MethodGet, "/live", "", http.StatusOK, `"alive"`},
		{http.MethodGet, "/api/v1/cuisines", "", http.StatusOK, `{"cuisines":["Italian"]}`},
		{http.MethodGet, "/api/v1/cuisines/Italian/courses", "", http.StatusOK, `"courses":["Dinner"]`},
		{http.MethodPost, "/api/v1/meal-plans", `{"cuisine":"Italian","courses":["Dinner"]}`, http.StatusOK, `"count":7`},
		{http.MethodGet, "/metrics", "", http.StatusOK, "meal_planner_http_requests_total"},
		{http.MethodGet, "/api/v1/unknown", "", http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestDuplicatePlanRequestRejected(t *testing.T) {
	router := newTestRouter(t)
	body := `{"cuisine":"Italian","courses":["Dinner","Dinner"]}`

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/meal-plans", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}

package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.PlanGenerated(14)
	m.PlanGenerated(0)
	m.PlanNoMatch()
	m.PlanFailed()
	m.ObserveRequest(http.MethodPost, "/api/v1/meal-plans", http.StatusOK, 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.plansTotal.WithLabelValues("generated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.plansTotal.WithLabelValues("no_match")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.plansTotal.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues(http.MethodPost, "/api/v1/meal-plans", "200")))
}

func TestMetricsIndependentRegistries(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.PlanNoMatch()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.plansTotal.WithLabelValues("no_match")))
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics()
	m.PlanGenerated(7)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `meal_planner_meal_plans_total{outcome="generated"} 1`)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

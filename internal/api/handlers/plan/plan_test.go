package plan

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"meal-planner/internal/core/catalog"
	"meal-planner/internal/core/corpus"
	"meal-planner/internal/core/planner"
	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticIndexer catalog.Index

func (s staticIndexer) Index(ctx context.Context) (catalog.Index, error) {
	return catalog.Index(s), nil
}

type failingService struct{ err error }

func (f failingService) ListCuisines() []string { return nil }
func (f failingService) ListCoursesForCuisine(string) []string { return nil }
func (f failingService) GeneratePlan(context.Context, string, []string) (*planner.MealPlan, error) {
	return nil, f.err
}

type countingRecorder struct {
	generated, noMatch, failed int
}

func (r *countingRecorder) PlanGenerated(int) { r.generated++ }
func (r *countingRecorder) PlanNoMatch() { r.noMatch++ }
func (r *countingRecorder) PlanFailed() { r.failed++ }

func newRouter(svc Service) *gin.Engine {
	return newRecordingRouter(svc, nil)
}

func newRecordingRouter(svc Service, recorder Recorder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc, recorder)

	r := gin.New()
	r.GET("/cuisines", h.HandleListCuisines)
	r.GET("/cuisines/:cuisine/courses", h.HandleListCourses)
	r.POST("/meal-plans", h.HandleGeneratePlan)
	return r
}

func newPlannerService() *planner.Service {
	c := corpus.New([]corpus.Recipe{
		{Name: "Carbonara", Cuisine: "Italian", Course: "Dinner", Ingredients: "Spaghetti, Milk", Description: "Creamy", PrepTime: 25, Instructions: "Boil", ImageURL: "http://img/c.jpg"},
		{Name: "Frittata", Cuisine: "Italian", Course: "Breakfast", Ingredients: "Eggs, pinch of salt", Description: corpus.MissingData, Instructions: corpus.MissingData},
		{Name: "Tacos", Cuisine: "Mexican", Course: "Lunch", Ingredients: "Tortilla"},
	})
	return planner.NewService(c, staticIndexer{"milk": 7}, planner.NewSampler(5), planner.NewLinker("/order/%d"))
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleListCuisines(t *testing.T) {
	r := newRouter(newPlannerService())

	w := do(r, http.MethodGet, "/cuisines", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp CuisinesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Italian", "Mexican"}, resp.Cuisines)
}

func TestHandleListCourses(t *testing.T) {
	r := newRouter(newPlannerService())

	w := do(r, http.MethodGet, "/cuisines/italian/courses", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp CoursesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "italian", resp.Cuisine)
	assert.Equal(t, []string{"Breakfast", "Dinner"}, resp.Courses)

	w = do(r, http.MethodGet, "/cuisines/French/courses", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"cuisine":"French","courses":[]}`, w.Body.String())
}

func TestHandleGeneratePlan(t *testing.T) {
	r := newRouter(newPlannerService())

	t.Run("FullWeek", func(t *testing.T) {
		w := do(r, http.MethodPost, "/meal-plans", `{"cuisine":"Italian","courses":["Dinner"]}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp GeneratePlanResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Italian", resp.Cuisine)
		assert.Equal(t, 7, resp.Count)
		require.Len(t, resp.Entries, 7)

		first := resp.Entries[0]
		assert.Equal(t, "Monday", first.Day)
		assert.Equal(t, "Dinner", first.Course)
		assert.Equal(t, "Carbonara", first.MealName)
		assert.Equal(t, 25, first.PrepTimeMins)
		assert.Equal(t, "spaghetti, <a href='/order/7'>Milk</a>", first.Ingredients)
		assert.Equal(t, []planner.Link{{Word: "Milk", ItemID: 7}}, first.Links)
		assert.Equal(t, "http://img/c.jpg", first.ImageURL)
		assert.Equal(t, "Sunday", resp.Entries[6].Day)
	})

	t.Run("NoMatch", func(t *testing.T) {
		w := do(r, http.MethodPost, "/meal-plans", `{"cuisine":"Klingon","courses":["Dinner"]}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"No meals match your preferences. Please try different inputs."}`, w.Body.String())
	})

	t.Run("EmptyCourses", func(t *testing.T) {
		w := do(r, http.MethodPost, "/meal-plans", `{"cuisine":"Mexican","courses":[]}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"cuisine":"Mexican","entries":[],"count":0}`, w.Body.String())
	})

	t.Run("LinksNeverNull", func(t *testing.T) {
		w := do(r, http.MethodPost, "/meal-plans", `{"cuisine":"Mexican","courses":["Lunch"]}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"links":[]`)
		assert.NotContains(t, w.Body.String(), `"links":null`)
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, body := range []string{
			`{"courses":["Dinner"]}`,
			`{"cuisine":"   ","courses":["Dinner"]}`,
			`{"cuisine":"Italian","courses":["Dinner"," "]}`,
			`not json`,
			`{"cuisine":"Italian","courses":[` + strings.TrimSuffix(strings.Repeat(`"Dinner",`, 21), ",") + `]}`,
		} {
			w := do(r, http.MethodPost, "/meal-plans", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, body)
			assert.Contains(t, w.Body.String(), common.ErrCodeInvalidRequest, body)
		}
	})
}

func TestHandleGeneratePlanServiceError(t *testing.T) {
	r := newRouter(failingService{err: common.ErrCatalogUnavailable.Wrap(errors.New("disk I/O error"))})
	w := do(r, http.MethodPost, "/meal-plans", `{"cuisine":"Italian","courses":["Dinner"]}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), common.ErrCodeCatalogUnavailable)

	r = newRouter(failingService{err: errors.New("unexpected")})
	w = do(r, http.MethodPost, "/meal-plans", `{"cuisine":"Italian","courses":["Dinner"]}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandleGeneratePlanRecordsOutcome(t *testing.T) {
	rec := &countingRecorder{}
	r := newRecordingRouter(newPlannerService(), rec)

	do(r, http.MethodPost, "/meal-plans", `{"cuisine":"Italian","courses":["Dinner"]}`)
	do(r, http.MethodPost, "/meal-plans", `{"cuisine":"Klingon","courses":["Dinner"]}`)

	r = newRecordingRouter(failingService{err: errors.New("unexpected")}, rec)
	do(r, http.MethodPost, "/meal-plans", `{"cuisine":"Italian","courses":["Dinner"]}`)

	assert.Equal(t, 1, rec.generated)
	assert.Equal(t, 1, rec.noMatch)
	assert.Equal(t, 1, rec.failed)
}

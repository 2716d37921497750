package plan

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"meal-planner/internal/core/planner"
	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Service 餐單處理程序需要的服務
type Service interface {
	ListCuisines() []string
	ListCoursesForCuisine(cuisine string) []string
	GeneratePlan(ctx context.Context, cuisine string, courses []string) (*planner.MealPlan, error)
}

// Recorder 記錄餐單請求的結果
type Recorder interface {
	PlanGenerated(entries int)
	PlanNoMatch()
	PlanFailed()
}

// Handler 餐單處理程序
type Handler struct {
	service  Service
	recorder Recorder
}

// NewHandler 創建新的餐單處理程序，recorder 可為 nil
func NewHandler(service Service, recorder Recorder) *Handler {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Handler{service: service, recorder: recorder}
}

type nopRecorder struct{}

func (nopRecorder) PlanGenerated(int) {}
func (nopRecorder) PlanNoMatch() {}
func (nopRecorder) PlanFailed() {}

// HandleListCuisines GET /cuisines
func (h *Handler) HandleListCuisines(c *gin.Context) {
	c.JSON(http.StatusOK, CuisinesResponse{Cuisines: h.service.ListCuisines()})
}

// HandleListCourses GET /cuisines/:cuisine/courses
func (h *Handler) HandleListCourses(c *gin.Context) {
	cuisine := strings.TrimSpace(c.Param("cuisine"))
	c.JSON(http.StatusOK, CoursesResponse{
		Cuisine: cuisine,
		Courses: h.service.ListCoursesForCuisine(cuisine),
	})
}

// HandleGeneratePlan POST /meal-plans
func (h *Handler) HandleGeneratePlan(c *gin.Context) {
	requestID := common.RequestID(c)

	var req GeneratePlanRequest
	err := c.ShouldBindJSON(&req)
	if err == nil {
		err = validate(&req)
	}
	if err != nil {
		msg := "請求格式無效"
		if common.IsValidationError(err) {
			msg = "請求參數無效"
		}
		common.LogWarn(msg,
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		common.WriteError(c, common.ErrInvalidRequest, err.Error())
		return
	}

	common.LogInfo("開始產生餐單",
		zap.String("request_id", requestID),
		zap.String("cuisine", req.Cuisine),
		zap.Strings("courses", req.Courses),
	)

	mp, err := h.service.GeneratePlan(c.Request.Context(), req.Cuisine, req.Courses)
	if err != nil {
		if errors.Is(err, common.ErrNoMatch) {
			h.recorder.PlanNoMatch()
			c.JSON(http.StatusOK, MessageResponse{Message: common.ErrNoMatch.Message})
			return
		}

		h.recorder.PlanFailed()
		common.LogError("餐單產生失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		var ce *common.CustomError
		if errors.As(err, &ce) {
			common.WriteError(c, ce, err.Error())
			return
		}
		common.WriteError(c, common.ErrInternalError, err.Error())
		return
	}

	h.recorder.PlanGenerated(len(mp.Entries))
	c.JSON(http.StatusOK, toResponse(mp))
}

// validate 去除頭尾空白後的料理類型與餐別不可為空
func validate(req *GeneratePlanRequest) error {
	req.Cuisine = strings.TrimSpace(req.Cuisine)
	if req.Cuisine == "" {
		return common.NewValidationError("cuisine is required")
	}
	for i, course := range req.Courses {
		course = strings.TrimSpace(course)
		if course == "" {
			return common.NewValidationError("courses must not contain blank values")
		}
		req.Courses[i] = course
	}
	return nil
}

package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const pingTimeout = 2 * time.Second

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
}

// CorpusCounter 回報已載入的食譜數量
type CorpusCounter interface {
	CorpusSize() int
}

// Pinger 檢查外部依賴是否可連線
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck 健康檢查處理器
func HealthCheck(c *gin.Context) {
	cfg, exists := c.Get("config")
	if !exists {
		common.LogError("Configuration not found in context")
		common.WriteError(c, common.ErrInternalError, "configuration not found")
		return
	}
	appConfig, ok := cfg.(*config.Config)
	if !ok {
		common.LogError("Invalid configuration type in context")
		common.WriteError(c, common.ErrInternalError, "invalid configuration type")
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   appConfig.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 食譜已載入即就緒；商品目錄無法連線時回報 degraded（仍可出菜單，只是沒有連結）。
// catalog 為 nil 時略過目錄檢查
func ReadinessCheck(corpus CorpusCounter, catalog Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		checks := gin.H{}
		ready := true
		degraded := false

		recipes := corpus.CorpusSize()
		checks["corpus"] = gin.H{"recipes": recipes}
		if recipes == 0 {
			ready = false
		}

		if catalog != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
			defer cancel()

			if err := catalog.Ping(ctx); err != nil {
				common.LogWarn("Catalog not reachable", zap.Error(err))
				checks["catalog"] = gin.H{"status": "unavailable"}
				degraded = true
			} else {
				checks["catalog"] = gin.H{"status": "ok"}
			}
		}

		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not_ready",
				"checks": checks,
			})
			return
		}

		status := "ready"
		if degraded {
			status = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{
			"status": status,
			"checks": checks,
		})
	}
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

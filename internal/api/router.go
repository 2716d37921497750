package api

import (
	"context"
	"fmt"
	"time"

	"meal-planner/internal/api/handlers/health"
	planHandler "meal-planner/internal/api/handlers/plan"
	"meal-planner/internal/api/middleware"
	"meal-planner/internal/core/planner"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/infrastructure/monitoring"
	"meal-planner/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 30 * time.Second
	// 請求體大小限制 (64KB)
	maxBodySize = 64 << 10
)

// SetupRouter 設置路由。
// catalog 為 nil 時就緒檢查不檢查商品目錄；metrics 為 nil 時不收集指標。
func SetupRouter(cfg *config.Config, planSvc *planner.Service, catalog health.Pinger, metrics *monitoring.Metrics) (*gin.Engine, error) {
	if planSvc == nil {
		return nil, fmt.Errorf("planner service is required")
	}

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())
	if metrics != nil {
		router.Use(middleware.Metrics(metrics))
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	// 設置請求超時並注入配置
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Set("config", cfg)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", timeoutDuration),
			)
			common.WriteError(c, common.ErrGatewayTimeout, timeoutDuration.String())
		}
	})

	router.NoRoute(func(c *gin.Context) {
		common.WriteError(c, common.ErrNotFound, c.Request.URL.Path)
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck(planSvc, catalog))
	router.GET("/live", health.LivenessCheck)
	if metrics != nil && cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}

	// API 路由組
	api := router.Group("/api/v1")
	{
		var recorder planHandler.Recorder
		if metrics != nil {
			recorder = metrics
		}
		h := planHandler.NewHandler(planSvc, recorder)

		api.GET("/cuisines", h.HandleListCuisines)
		api.GET("/cuisines/:cuisine/courses", h.HandleListCourses)
		api.POST("/meal-plans", middleware.Deduplication(cfg.DedupWindow), h.HandleGeneratePlan)
	}

	common.LogInfo("Router setup completed",
		zap.Int("recipes", planSvc.CorpusSize()),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Bool("metrics", metrics != nil),
		zap.Duration("dedup_window", cfg.DedupWindow),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}

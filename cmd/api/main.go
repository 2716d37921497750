package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meal-planner/internal/api"
	"meal-planner/internal/core/catalog"
	"meal-planner/internal/core/catalog/cache"
	"meal-planner/internal/core/corpus"
	"meal-planner/internal/core/planner"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/infrastructure/database"
	"meal-planner/internal/infrastructure/monitoring"
	"meal-planner/internal/pkg/common"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// catalogSource 商品目錄來源，同時提供就緒檢查
type catalogSource interface {
	catalog.Source
	Ping(ctx context.Context) error
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

var noClose = closerFunc(func() error { return nil })

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("corpus", cfg.Corpus.Path),
		zap.String("catalog_db", cfg.Catalog.DBPath),
		zap.String("catalog_url", cfg.Catalog.SourceURL),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("cache_backend", cfg.Cache.Backend),
	)

	// 食譜資料無法載入時不啟動服務
	recipes, err := corpus.Open(context.Background(), cfg.Corpus.Path, cfg.Corpus.Timeout)
	if err != nil {
		common.LogFatal("Failed to load corpus", zap.Error(err), zap.String("path", cfg.Corpus.Path))
	}

	source, closeSource, err := openCatalog(cfg.Catalog)
	if err != nil {
		common.LogFatal("Failed to open catalog", zap.Error(err))
	}
	defer closeSource.Close()

	indexCache, closeCache, err := openCache(cfg.Cache)
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}
	defer closeCache.Close()

	planSvc := planner.NewService(
		recipes,
		catalog.NewIndexer(source, indexCache),
		planner.NewSampler(cfg.Planner.Seed),
		planner.NewLinker(cfg.Planner.OrderPath),
	)

	var metrics *monitoring.Metrics
	if cfg.Metrics.Enabled {
		metrics = monitoring.NewMetrics()
	}

	router, err := api.SetupRouter(cfg, planSvc, source, metrics)
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Int("port", cfg.Server.Port),
			zap.Int("recipes", recipes.Len()),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		return
	}

	common.LogInfo("Server exited")
}

// openCatalog 設定了 source_url 時使用遠端目錄，否則開啟本機 SQLite
func openCatalog(cfg config.CatalogConfig) (catalogSource, io.Closer, error) {
	if cfg.SourceURL != "" {
		common.LogInfo("使用遠端商品目錄", zap.String("url", cfg.SourceURL))
		return catalog.NewHTTPSource(cfg.SourceURL, cfg.Timeout), noClose, nil
	}

	db, err := database.NewDB(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return catalog.NewStore(db.SQL), db, nil
}

// openCache 未啟用時回傳 nil，索引每次請求重建
func openCache(cfg config.CacheConfig) (catalog.IndexCache, io.Closer, error) {
	if !cfg.Enabled {
		return nil, noClose, nil
	}

	switch cfg.Backend {
	case config.CacheBackendRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		svc, err := cache.NewService(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return svc, svc, nil
	default:
		m := cache.NewManager(cfg)
		return m, m, nil
	}
}

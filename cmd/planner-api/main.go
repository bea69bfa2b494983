package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/schedly/course-planner-api/api/swagger"
	"github.com/schedly/course-planner-api/internal/handler"
	"github.com/schedly/course-planner-api/internal/middleware"
	"github.com/schedly/course-planner-api/internal/repository"
	"github.com/schedly/course-planner-api/internal/service"
	"github.com/schedly/course-planner-api/pkg/cache"
	"github.com/schedly/course-planner-api/pkg/config"
	"github.com/schedly/course-planner-api/pkg/database"
	"github.com/schedly/course-planner-api/pkg/logger"
	corsmiddleware "github.com/schedly/course-planner-api/pkg/middleware/cors"
	reqidmiddleware "github.com/schedly/course-planner-api/pkg/middleware/requestid"
)

// @title Course Planner API
// @version 0.1.0
// @description Weekly class schedule builder: catalog, selection store and calendar layout
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Snapshot persistence is best effort: without Redis the store runs
	// in memory only.
	var snapshots *repository.SnapshotRepository
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, selection snapshots disabled", zap.Error(err))
		snapshots = repository.NewSnapshotRepository(nil, cfg.Selection.KeyPrefix, logr)
	} else {
		snapshots = repository.NewSnapshotRepository(redisClient, cfg.Selection.KeyPrefix, logr)
		defer snapshots.Close() //nolint:errcheck
	}

	var source service.CatalogSource
	switch cfg.Catalog.Source {
	case config.CatalogSourceHTTP:
		source = repository.NewCatalogHTTPSource(cfg.Catalog.URL, cfg.Catalog.FetchTimeout)
	case config.CatalogSourcePostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Warn("postgres unavailable, catalog stays empty", zap.Error(err))
		} else {
			source = repository.NewCatalogSQLSource(db)
			defer db.Close() //nolint:errcheck
		}
	default:
		source = repository.NewCatalogFileSource(cfg.Catalog.FilePath)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	catalogSvc := service.NewCatalogService(source, service.NewNormalizer(logr), cfg.Catalog.PriorityFields, logr)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Catalog.FetchTimeout)
	if err := catalogSvc.Load(ctx); err != nil {
		logr.Warn("starting with empty catalog", zap.Error(err))
	}
	cancel()
	metricsSvc.SetCatalogSize(len(catalogSvc.Courses()))

	selectionSvc := service.NewSelectionService(snapshots, cfg.Selection.SnapshotTTL, logr)
	selectionSvc.SetMetrics(metricsSvc)
	selectionSvc.Restore(context.Background())

	filterSvc := service.NewFilterService(catalogSvc, selectionSvc, logr)
	layoutSvc := service.NewLayoutService(catalogSvc, selectionSvc, logr)
	exportSvc := service.NewExportService(catalogSvc, selectionSvc, layoutSvc, cfg.Export.CalendarName, cfg.Export.PDFTitle, logr)

	catalogHandler := handler.NewCatalogHandler(catalogSvc, filterSvc)
	selectionHandler := handler.NewSelectionHandler(catalogSvc, selectionSvc, metricsSvc, validate)
	scheduleHandler := handler.NewScheduleHandler(layoutSvc, exportSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "ok",
			"catalog_loaded": catalogSvc.Loaded(),
		})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/catalog", catalogHandler.List)
		api.GET("/catalog/fields", catalogHandler.Fields)
		api.GET("/catalog/available", catalogHandler.Available)
		api.GET("/catalog/courses/:id", catalogHandler.Get)

		api.GET("/terms", selectionHandler.Terms)
		api.GET("/selection", selectionHandler.Get)
		api.POST("/selection/courses", selectionHandler.Add)
		api.DELETE("/selection", selectionHandler.ClearAll)
		api.DELETE("/selection/terms/:term", selectionHandler.ClearTerm)
		api.DELETE("/selection/terms/:term/courses/:id", selectionHandler.Remove)

		api.GET("/schedule/terms/:term/layout", scheduleHandler.Layout)
		api.GET("/schedule/terms/:term/export/pdf", scheduleHandler.ExportPDF)
		api.GET("/schedule/export/ics", scheduleHandler.ExportICS)
		api.POST("/schedule/import/ics", scheduleHandler.ImportICS)
		api.GET("/schedule/export/csv", scheduleHandler.ExportCSV)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

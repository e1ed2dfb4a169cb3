package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/udp-horarios/horarios-api/api/swagger"
	"github.com/udp-horarios/horarios-api/internal/handler"
	"github.com/udp-horarios/horarios-api/internal/middleware"
	"github.com/udp-horarios/horarios-api/internal/repository"
	"github.com/udp-horarios/horarios-api/internal/service"
	"github.com/udp-horarios/horarios-api/internal/solver"
	"github.com/udp-horarios/horarios-api/pkg/cache"
	"github.com/udp-horarios/horarios-api/pkg/config"
	"github.com/udp-horarios/horarios-api/pkg/database"
	"github.com/udp-horarios/horarios-api/pkg/logger"
	corsmiddleware "github.com/udp-horarios/horarios-api/pkg/middleware/cors"
	reqidmiddleware "github.com/udp-horarios/horarios-api/pkg/middleware/requestid"
)

// @title Horarios UDP API
// @version 0.1.0
// @description Backend for the UDP schedule generator: compiles student preferences into solver requests and decodes solver solutions into weekly grids.
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect redis", "error", err)
		}
		repo := repository.NewCacheRepository(redisClient, logr)
		defer repo.Close() //nolint:errcheck
		cacheRepo = repo
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, cfg.Cache.Enabled && cfg.Redis.Enabled)

	courseRepo := repository.NewCourseRepository(db)
	solverClient := solver.NewClient(cfg.Solver, logr)
	validate := validator.New()

	compilerSvc := service.NewCompilerService(logr)
	decoderSvc := service.NewDecoderService(logr)
	scheduleSvc := service.NewScheduleService(courseRepo, solverClient, compilerSvc, decoderSvc, cacheSvc, metricsSvc, validate, logr, cfg.Solver)
	catalogSvc := service.NewCatalogService(courseRepo, logr)
	exportSvc := service.NewExportService(cfg.Export.Title, logr)

	scheduleHandler := handler.NewScheduleHandler(scheduleSvc, decoderSvc, exportSvc)
	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/schedules/generate", scheduleHandler.Generate)
		api.POST("/schedules/compile", scheduleHandler.Compile)
		api.POST("/schedules/decode", scheduleHandler.Decode)
		if cfg.Export.Enabled {
			api.POST("/schedules/export", scheduleHandler.Export)
		}
		api.GET("/schedules/datafiles", scheduleHandler.Datafiles)

		api.GET("/courses", catalogHandler.ListCourses)
		api.GET("/courses/available", catalogHandler.AvailableCourses)
		api.GET("/timeslots", catalogHandler.TimeSlots)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

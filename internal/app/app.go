package app

import (
	"context"
	"errors"
	"mindcheck_backend/internal/config"
	"mindcheck_backend/internal/controller"
	"mindcheck_backend/internal/repository"
	"mindcheck_backend/internal/service"
	"mindcheck_backend/pkg/configwatcher"
	"mindcheck_backend/pkg/database"
	"mindcheck_backend/pkg/logger"
	"mindcheck_backend/pkg/monitoring"
	"mindcheck_backend/pkg/security"
	"mindcheck_backend/pkg/tracing"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const configDir = "configs"

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	repos           *repositories
	services        *services
	limiter         *security.Limiter
	tracer          *sdktrace.TracerProvider
	mu              sync.Mutex
	configCallbacks []func(*config.Config)
	stop            context.CancelFunc
	background      context.Context
}

type repositories struct {
	user   *repository.UserRepository
	quiz   *repository.QuizRepository
	result *repository.QuizResultRepository
	cache  *repository.ProgressCache
}

type services struct {
	auth    *service.AuthService
	storage *service.StorageService
	quiz    *service.QuizService
	result  *service.ResultService
	export  *service.ExportService
}

type controllers struct {
	auth   *controller.AuthController
	quiz   *controller.QuizController
	result *controller.ResultController
	export *controller.ExportController
	health *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	a.mu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.mu.Unlock()
	for _, cb := range callbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	return &repositories{
		user:   repository.NewUserRepository(db),
		quiz:   repository.NewQuizRepository(db),
		result: repository.NewQuizResultRepository(db),
		cache:  repository.NewProgressCache(rdb, cfg.Cache.ProgressTTL(), cfg.Cache.QuizTTL()),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.quiz = service.NewQuizService(repos.quiz, repos.cache)
	s.result = service.NewResultService(s.quiz, repos.result, repos.cache)
	s.export = service.NewExportService(s.quiz, repos.result, s.storage, cfg.Storage.ExportURLTTL())

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:   controller.NewAuthController(s.auth),
		quiz:   controller.NewQuizController(s.quiz),
		result: controller.NewResultController(s.result),
		export: controller.NewExportController(s.export),
		health: controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	a.limiter = security.NewLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute)
	router.Use(a.limiter.Middleware())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks() {
	go a.limiter.Run(a.background.Done())

	go func() {
		if err := configwatcher.Watch(a.background, configDir, a.applyConfig); err != nil {
			logger.Log.Warn("config watcher disabled", zap.Error(err))
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully", zap.String("mode", cfg.Server.Mode))

	migrate := cfg.ForceMigrate || cfg.Server.Mode != gin.ReleaseMode
	db, err := database.InitDB(&cfg.Database, migrate, cfg.Server.Mode == gin.DebugMode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{Config: cfg, DB: db}
	if cfg.MigrateOnly {
		return app
	}

	// 缓存不可用时降级为直接查库
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, caching disabled", zap.Error(err))
		rdb = nil
	}
	app.Redis = rdb

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.repos = app.initRepositories(db, rdb, cfg)
	app.services = app.initServices(app.repos, cfg)
	controllers := app.initControllers(app.services)

	if err := app.services.auth.EnsureAdmin(context.Background()); err != nil {
		logger.Log.Error("Failed to create bootstrap admin", zap.Error(err))
	}

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetMode(newCfg.Server.Mode)
		app.repos.cache.SetTTLs(newCfg.Cache.ProgressTTL(), newCfg.Cache.QuizTTL())
	})

	app.background, app.stop = context.WithCancel(context.Background())
	app.startBackgroundTasks()

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	a.stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
}

package app

import (
	"context"
	"habit_coach_backend/internal/config"
	"habit_coach_backend/internal/controller"
	"habit_coach_backend/internal/repository"
	"habit_coach_backend/internal/service"
	"habit_coach_backend/pkg/database"
	"habit_coach_backend/pkg/logger"
	"habit_coach_backend/pkg/monitoring"
	"habit_coach_backend/pkg/security"
	"habit_coach_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	tracerProvider *sdktrace.TracerProvider
}

type repositories struct {
	user        *repository.UserRepository
	habit       *repository.HabitRepository
	checkin     *repository.CheckinRepository
	achievement *repository.AchievementRepository
	admin       *repository.AdminRepository
}

type services struct {
	auth        *service.AuthService
	storage     *service.StorageService
	user        *service.UserService
	habit       *service.HabitService
	checkin     *service.CheckinService
	stats       *service.StatsService
	achievement *service.AchievementService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	habit       *controller.HabitController
	checkin     *controller.CheckinController
	stats       *controller.StatsController
	achievement *controller.AchievementController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		habit:       repository.NewHabitRepository(db),
		checkin:     repository.NewCheckinRepository(db),
		achievement: repository.NewAchievementRepository(db, rdb),
		admin:       repository.NewAdminRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.auth = service.NewAuthService(repos.admin, cfg)
	s.user = service.NewUserService(repos.user, s.storage)
	s.habit = service.NewHabitService(repos.habit)
	s.stats = service.NewStatsService(repos.user, repos.checkin)

	// 成就目录作为显式数据注入，评估结果只取决于历史、台账和目录
	s.achievement = service.NewAchievementService(repos.achievement, repos.checkin, service.DefaultCatalog())
	s.checkin = service.NewCheckinService(db, repos.user, repos.checkin, s.achievement)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		user:        controller.NewUserController(s.user),
		habit:       controller.NewHabitController(s.habit, s.user),
		checkin:     controller.NewCheckinController(s.checkin),
		stats:       controller.NewStatsController(s.stats),
		achievement: controller.NewAchievementController(s.achievement, s.user),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services, err := app.initServices(repos, cfg, db)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, db, rdb)

	// 启动即播种：成就目录和首个管理员都幂等
	if err := services.achievement.EnsureCatalog(); err != nil {
		logger.Log.Fatal("Failed to seed achievement catalog", zap.Error(err))
	}
	if err := services.auth.EnsureBootstrapAdmin(); err != nil {
		logger.Log.Fatal("Failed to bootstrap admin account", zap.Error(err))
	}

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("habit-coach", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}

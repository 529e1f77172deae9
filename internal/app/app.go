package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"studyhub_backend/internal/config"
	"studyhub_backend/internal/controller"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/service"
	"studyhub_backend/pkg/configwatcher"
	"studyhub_backend/pkg/database"
	"studyhub_backend/pkg/logger"
	"studyhub_backend/pkg/monitoring"
	"studyhub_backend/pkg/security"
	"studyhub_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	test         repository.ModelTestRepository
	attempt      repository.TestAttemptRepository
	note         *repository.NoteRepository
	qa           *repository.QARepository
	task         *repository.TaskRepository
	session      *repository.StudySessionRepository
	contest      *repository.ContestRepository
	notification *repository.NotificationRepository
	vote         *repository.VoteRepository
	savedItem    *repository.SavedItemRepository
}

type services struct {
	storage      *service.StorageService
	auth         *service.AuthService
	user         *service.UserService
	notification *service.NotificationService
	contest      *service.ContestService
	modelTest    *service.ModelTestService
	testAttempt  *service.TestAttemptService
	sweeper      *service.ExpirySweeper
	note         *service.NoteService
	qa           *service.QAService
	vote         *service.VoteService
	task         *service.TaskService
	session      *service.StudySessionService
	savedItem    *service.SavedItemService
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	modelTest    *controller.ModelTestController
	testAttempt  *controller.TestAttemptController
	note         *controller.NoteController
	qa           *controller.QAController
	task         *controller.TaskController
	session      *controller.StudySessionController
	contest      *controller.ContestController
	notification *controller.NotificationController
	savedItem    *controller.SavedItemController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		test:         repository.NewModelTestRepository(db),
		attempt:      repository.NewTestAttemptRepository(db),
		note:         repository.NewNoteRepository(db),
		qa:           repository.NewQARepository(db),
		task:         repository.NewTaskRepository(db),
		session:      repository.NewStudySessionRepository(db),
		contest:      repository.NewContestRepository(db),
		notification: repository.NewNotificationRepository(db),
		vote:         repository.NewVoteRepository(db),
		savedItem:    repository.NewSavedItemRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, repos.session, s.storage)
	s.notification = service.NewNotificationService(repos.notification, rdb)
	s.contest = service.NewContestService(repos.contest, repos.user, rdb)
	s.modelTest = service.NewModelTestService(repos.test)
	s.testAttempt = service.NewTestAttemptService(repos.test, repos.attempt, s.contest)
	s.sweeper = service.NewExpirySweeper(repos.attempt, repos.test, s.notification)
	s.note = service.NewNoteService(repos.note, s.storage)
	s.qa = service.NewQAService(repos.qa, s.notification)
	s.vote = service.NewVoteService(repos.vote, repos.qa)
	s.task = service.NewTaskService(repos.task)
	s.session = service.NewStudySessionService(repos.session)
	s.savedItem = service.NewSavedItemService(repos.savedItem)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		user:         controller.NewUserController(s.user),
		modelTest:    controller.NewModelTestController(s.modelTest),
		testAttempt:  controller.NewTestAttemptController(s.testAttempt),
		note:         controller.NewNoteController(s.note),
		qa:           controller.NewQAController(s.qa, s.vote),
		task:         controller.NewTaskController(s.task),
		session:      controller.NewStudySessionController(s.session),
		contest:      controller.NewContestController(s.contest),
		notification: controller.NewNotificationController(s.notification),
		savedItem:    controller.NewSavedItemController(s.savedItem),
		health:       controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
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

// startBackgroundTasks 周期清理过期的限时作答
func (a *App) startBackgroundTasks(s *services) {
	interval := time.Duration(a.Config.Sweeper.IntervalMinutes) * time.Minute
	go func() {
		ticker := time.NewTicker(interval)
		for range ticker.C {
			swept, err := s.sweeper.Sweep(time.Now())
			if err != nil {
				logger.Log.Error("attempt sweep error", zap.Error(err))
				continue
			}
			if swept > 0 {
				monitoring.SweptAttempts.Add(float64(swept))
				logger.Log.Info("swept expired test attempts", zap.Int("count", swept))
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
		log.Fatalf("Failed to initialize services: %v", err)
	}
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("studyhub", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

	// 配置文件热更新
	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		reloaded, ok := newCfg.(*config.Config)
		if !ok {
			return
		}
		logger.Log.Info("Configuration reloaded")
		for _, cb := range app.configCallbacks {
			cb(reloaded)
		}
	})

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

	log.Println("Server exiting")
}

package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kidsphere_backend/internal/config"
	"kidsphere_backend/internal/controller"
	"kidsphere_backend/internal/repository"
	"kidsphere_backend/internal/service"
	"kidsphere_backend/pkg/configwatcher"
	"kidsphere_backend/pkg/database"
	"kidsphere_backend/pkg/logger"
	"kidsphere_backend/pkg/monitoring"
	"kidsphere_backend/pkg/security"
	"kidsphere_backend/pkg/tracing"

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
	configCallbacks []configwatcher.ConfigReloader
}

type repositories struct {
	user      *repository.UserRepository
	child     *repository.ChildRepository
	news      *repository.NewsRepository
	folder    *repository.FolderRepository
	quiz      *repository.QuizRepository
	knowledge *repository.KnowledgeRepository
	test      *repository.TestRepository
	subject   *repository.SubjectRepository
	career    *repository.CareerRepository
	challenge *repository.ChallengeRepository
	debate    *repository.DebateRepository
	payment   *repository.PaymentRepository
}

type services struct {
	auth      *service.AuthService
	user      *service.UserService
	storage   *service.StorageService
	ai        *service.AIService
	news      *service.NewsService
	folder    *service.FolderService
	quiz      *service.QuizService
	knowledge *service.KnowledgeService
	test      *service.TestService
	subject   *service.SubjectService
	career    *service.CareerService
	challenge *service.ChallengeService
	debate    *service.DebateService
	payment   *service.PaymentService
}

type controllers struct {
	auth      *controller.AuthController
	user      *controller.UserController
	news      *controller.NewsController
	folder    *controller.FolderController
	quiz      *controller.QuizController
	knowledge *controller.KnowledgeController
	test      *controller.TestController
	subject   *controller.SubjectController
	career    *controller.CareerController
	challenge *controller.ChallengeController
	debate    *controller.DebateController
	payment   *controller.PaymentController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback configwatcher.ConfigReloader) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		child:     repository.NewChildRepository(db),
		news:      repository.NewNewsRepository(db),
		folder:    repository.NewFolderRepository(db),
		quiz:      repository.NewQuizRepository(db),
		knowledge: repository.NewKnowledgeRepository(db),
		test:      repository.NewTestRepository(db),
		subject:   repository.NewSubjectRepository(db),
		career:    repository.NewCareerRepository(db),
		challenge: repository.NewChallengeRepository(db),
		debate:    repository.NewDebateRepository(db),
		payment:   repository.NewPaymentRepository(db),
	}
}

func (a *App) initServices(r *repositories, cfg *config.Config, rdb *redis.Client) *services {
	storage, err := service.NewStorageService(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize storage", zap.Error(err))
	}

	ai := service.NewAIService(cfg.AI)
	user := service.NewUserService(r.user, r.child)

	return &services{
		auth:      service.NewAuthService(r.user, cfg),
		user:      user,
		storage:   storage,
		ai:        ai,
		news:      service.NewNewsService(r.news, rdb, cfg),
		folder:    service.NewFolderService(r.folder, r.news, r.debate),
		quiz:      service.NewQuizService(r.quiz, user),
		knowledge: service.NewKnowledgeService(r.knowledge, user),
		test:      service.NewTestService(r.test),
		subject:   service.NewSubjectService(r.subject, user),
		career:    service.NewCareerService(r.career, r.quiz, user, ai, rdb, cfg.Content.CareerCatalogPath),
		challenge: service.NewChallengeService(r.challenge, user),
		debate:    service.NewDebateService(r.debate, ai),
		payment:   service.NewPaymentService(r.payment, r.user, cfg),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		user:      controller.NewUserController(s.user),
		news:      controller.NewNewsController(s.news, s.storage),
		folder:    controller.NewFolderController(s.folder),
		quiz:      controller.NewQuizController(s.quiz),
		knowledge: controller.NewKnowledgeController(s.knowledge),
		test:      controller.NewTestController(s.test),
		subject:   controller.NewSubjectController(s.subject),
		career:    controller.NewCareerController(s.career),
		challenge: controller.NewChallengeController(s.challenge),
		debate:    controller.NewDebateController(s.debate),
		payment:   controller.NewPaymentController(s.payment),
		health:    controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(func(c *gin.Context) {
		c.Set("config", a.Config)
		c.Next()
	})
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

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware(cfg.Tracing.ServiceName))
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
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

	repos := app.initRepositories(db)
	svcs := app.initServices(repos, cfg, rdb)
	app.services = svcs
	ctrls := app.initControllers(svcs, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.setupMiddlewares(router, cfg)

	app.registerRoutes(router, ctrls, repos)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	// AI and payment keys can be rotated without a restart.
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		app.Config.AI = newCfg.AI
		app.Config.Payment = newCfg.Payment
		logger.Log.Info("Runtime config reloaded")
	})
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		for _, cb := range app.configCallbacks {
			cb(newCfg)
		}
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

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

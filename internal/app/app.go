package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"olympiades_backend/internal/config"
	"olympiades_backend/internal/controller"
	"olympiades_backend/internal/repository"
	"olympiades_backend/internal/service"
	"olympiades_backend/pkg/database"
	"olympiades_backend/pkg/logger"
	"olympiades_backend/pkg/monitoring"
	"olympiades_backend/pkg/security"
	"olympiades_backend/pkg/tracing"

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
	user          *repository.UserRepository
	candidate     *repository.CandidateRepository
	school        *repository.SchoolRepository
	question      *repository.QuestionRepository
	exam          *repository.ExamRepository
	notification  *repository.NotificationRepository
	audit         *repository.AuditRepository
	passwordReset *repository.PasswordResetRepository
	content       *repository.ContentRepository
	stats         *repository.StatsRepository
}

type services struct {
	storage      *service.StorageService
	email        *service.EmailService
	notification *service.NotificationService
	auth         *service.AuthService
	candidate    *service.CandidateService
	school       *service.SchoolService
	question     *service.QuestionService
	exam         *service.ExamService
	stats        *service.StatsService
	ranking      *service.RankingService
	certificate  *service.CertificateService
	content      *service.ContentService
}

type controllers struct {
	auth         *controller.AuthController
	candidate    *controller.CandidateController
	school       *controller.SchoolController
	question     *controller.QuestionController
	exam         *controller.ExamController
	notification *controller.NotificationController
	stats        *controller.StatsController
	certificate  *controller.CertificateController
	content      *controller.ContentController
	ranking      *controller.RankingController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig propage une configuration rechargée à chaud. Les champs
// nécessitant un redémarrage (port, base de données) sont ignorés.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("Configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:          repository.NewUserRepository(db),
		candidate:     repository.NewCandidateRepository(db),
		school:        repository.NewSchoolRepository(db),
		question:      repository.NewQuestionRepository(db),
		exam:          repository.NewExamRepository(db),
		notification:  repository.NewNotificationRepository(db),
		audit:         repository.NewAuditRepository(db),
		passwordReset: repository.NewPasswordResetRepository(db),
		content:       repository.NewContentRepository(db),
		stats:         repository.NewStatsRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.email = service.NewEmailService(cfg)
	s.notification = service.NewNotificationService(repos.notification, repos.user, s.email)
	s.auth = service.NewAuthService(repos.user, repos.candidate, repos.passwordReset, repos.audit, s.email, rdb, db, cfg)
	s.candidate = service.NewCandidateService(repos.candidate, repos.school, repos.audit, s.notification)
	s.school = service.NewSchoolService(repos.school, repos.candidate)
	s.question = service.NewQuestionService(repos.question, repos.audit)
	s.exam = service.NewExamService(repos.exam, repos.question, repos.candidate, repos.audit, s.notification)
	s.stats = service.NewStatsService(repos.stats, repos.candidate, repos.exam, repos.question)
	s.ranking = service.NewRankingService(repos.candidate)
	s.certificate = service.NewCertificateService(repos.candidate, cfg)
	s.content = service.NewContentService(repos.content, s.storage)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		candidate:    controller.NewCandidateController(s.candidate, s.storage),
		school:       controller.NewSchoolController(s.school),
		question:     controller.NewQuestionController(s.question),
		exam:         controller.NewExamController(s.exam),
		notification: controller.NewNotificationController(s.notification),
		stats:        controller.NewStatsController(s.stats),
		certificate:  controller.NewCertificateController(s.certificate),
		content:      controller.NewContentController(s.content),
		ranking:      controller.NewRankingController(s.ranking),
		health:       controller.NewHealthController(db, rdb),
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

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
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

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, db, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
		log.Fatalf("Failed to initialize services: %v", err)
	}
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		_, err := tracing.InitTracer("olympiades-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
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

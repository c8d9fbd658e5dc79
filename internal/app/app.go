package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "portfolio/docs"
	"portfolio/internal/config"
	"portfolio/internal/handlers"
	"portfolio/internal/middleware"
	"portfolio/internal/pdf"
	"portfolio/internal/realtime"
	"portfolio/internal/repositories"
	"portfolio/internal/routes"
	"portfolio/internal/services"
	"portfolio/internal/utils"
)

// Server holds the long-lived pieces that need closing on shutdown.
type Server struct {
	Router *gin.Engine
	Hub    *realtime.SettingsHub
	Auth   services.AuthService
}

// NewServer wires repositories, services and handlers on top of db.
func NewServer(cfg *config.Config, db *sql.DB) *Server {
	// === Repos ===
	adminRepo := repositories.NewAdminRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	skillRepo := repositories.NewSkillRepository(db)
	experienceRepo := repositories.NewExperienceRepository(db)
	contactRepo := repositories.NewContactRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)
	planRepo := repositories.NewPlanRepository(db)
	phaseRepo := repositories.NewPhaseRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	timeLogRepo := repositories.NewTimeLogRepository(db)
	commentRepo := repositories.NewCommentRepository(db)

	// === Services ===
	hub := realtime.NewSettingsHub(realtime.DefaultQueueSize)
	tokens := utils.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTL))
	authService := services.NewAuthService(adminRepo, tokens)
	settingsService := services.NewSettingsService(settingsRepo, hub)

	var emailService services.EmailService
	if cfg.Email.Enabled() {
		emailService = services.NewEmailService(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
			cfg.Email.NotifyTo,
		)
	} else {
		log.Printf("[app][email] SMTP not configured, contact emails disabled")
	}

	var telegram services.TelegramNotifier
	if cfg.Telegram.Enabled() {
		tg, err := services.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			log.Printf("[app][telegram][warn] notifications disabled: %v", err)
		} else {
			telegram = tg
		}
	}

	contactService := services.NewContactService(contactRepo, settingsService, emailService, telegram)
	planService := services.NewPlanService(planRepo, phaseRepo, taskRepo, timeLogRepo, commentRepo)
	phaseService := services.NewPhaseService(planRepo, phaseRepo, taskRepo)
	taskService := services.NewTaskService(planRepo, phaseRepo, taskRepo, timeLogRepo, commentRepo)
	timerService := services.NewTimerService(taskRepo, timeLogRepo)
	commentService := services.NewCommentService(taskRepo, commentRepo)
	analyticsService := services.NewAnalyticsService(planRepo, phaseRepo, taskRepo, timeLogRepo)

	// === Handlers ===
	h := routes.Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		Projects:   handlers.NewProjectHandler(services.NewProjectService(projectRepo)),
		Skills:     handlers.NewSkillHandler(services.NewSkillService(skillRepo)),
		Experience: handlers.NewExperienceHandler(services.NewExperienceService(experienceRepo)),
		Contact:    handlers.NewContactHandler(contactService),
		Settings:   handlers.NewSettingsHandler(settingsService, hub, realtime.NewUpgrader(cfg.CORS.FrontendOrigin)),
		Plans:      handlers.NewPlanHandler(planService, phaseService, taskService, analyticsService, pdf.NewReportGenerator("")),
		Phases:     handlers.NewPhaseHandler(phaseService),
		Tasks:      handlers.NewTaskHandler(taskService, timerService, commentService),
		Comments:   handlers.NewCommentHandler(commentService),
	}

	// === Gin ===
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.CORS.FrontendOrigin))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, h, middleware.RequireAuth(tokens))

	return &Server{Router: router, Hub: hub, Auth: authService}
}

// Run opens the database, migrates, seeds the admin and serves until ctx is done.
func Run(ctx context.Context, cfg *config.Config) error {
	// === DB ===
	db, err := repositories.Open(ctx, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("[app][db][err] close: %v", err)
		}
	}()

	if err := repositories.RunMigrations(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	srv := NewServer(cfg, db)
	defer srv.Hub.Close()

	if cfg.Admin.Username != "" && cfg.Admin.PasswordHash != "" {
		if _, err := srv.Auth.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.PasswordHash); err != nil {
			return err
		}
	} else {
		log.Printf("[app][admin][warn] no admin configured; use `portfolio create-admin`")
	}

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	httpSrv := &http.Server{
		Addr:              listenAddr,
		Handler:           srv.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[app] server listening on %s", listenAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Printf("[app] shutdown initiated")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	// Websocket clients are hijacked connections that Shutdown does not wait for.
	srv.Hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout))
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[app][err] shutdown: %v", err)
	}
	log.Printf("[app] shutdown complete")
	return nil
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-portal/internal/alerts"
	"github.com/justsurfingit/job-portal/internal/auth"
	"github.com/justsurfingit/job-portal/internal/config"
	"github.com/justsurfingit/job-portal/internal/database"
	"github.com/justsurfingit/job-portal/internal/handlers"
	"github.com/justsurfingit/job-portal/internal/logger"
	"github.com/justsurfingit/job-portal/internal/mailer"
	"github.com/justsurfingit/job-portal/internal/matching"
	"github.com/justsurfingit/job-portal/internal/resume"
	"github.com/justsurfingit/job-portal/internal/services"
	"github.com/justsurfingit/job-portal/internal/storage"
)

func main() {
	// 1. Load configuration (.env is optional)
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Database Connection
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("database unavailable")
	}

	// 3. Resume storage and text extraction
	store, err := newResumeStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("resume storage unavailable")
	}
	text, err := resume.NewTextExtractor(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialise text extraction")
	}
	analyzer := resume.NewAnalyzer(cfg.Vocabulary)

	// 4. Matching strategy: Gemini embeddings when reachable, term frequency otherwise
	strategy := matching.SelectStrategy(ctx, func(ctx context.Context) (matching.Embedder, error) {
		return matching.NewGoogleEmbedder(ctx, cfg.GeminiAPIKey, cfg.EmbeddingModel)
	})
	matcher := matching.NewMatcher(cfg.Vocabulary, strategy)

	// 5. Email delivery
	mail := newMailer(ctx, cfg)

	// 6. Initialize Core Services (Dependencies)
	resumeService := services.NewResumeService(db, store, text, analyzer)
	dispatcher := alerts.NewDispatcher(db, matcher, resumeService, mail, alerts.Options{
		Threshold:      cfg.AlertThreshold,
		SendsPerSecond: cfg.Email.SendsPerSecond,
	})
	userService := services.NewUserService(db, mail)
	jobService := services.NewJobService(db, matcher, resumeService, dispatcher, cfg.AlertsAsync)
	matchingService := services.NewMatchingService(db, matcher, resumeService)
	employerService := services.NewEmployerService(db, matcher, resumeService)
	statsService := services.NewStatsService(db)

	// 7. Setup Router & CORS
	r := gin.New()
	r.Use(logger.GinMiddleware(), gin.Recovery())
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", handlers.UserIDHeader, handlers.AdminTokenHeader}
	r.Use(cors.New(corsConfig))

	// 8. Define Routes
	router := &handlers.Router{
		Users:      userService,
		AdminToken: cfg.AdminToken,
		User:       handlers.NewUserHandler(userService, dispatcher),
		Job:        handlers.NewJobHandler(jobService, matchingService),
		Resume:     handlers.NewResumeHandler(resumeService),
		Alert:      handlers.NewAlertHandler(dispatcher),
		Employer:   handlers.NewEmployerHandler(employerService),
		Admin:      handlers.NewAdminHandler(statsService),
	}
	router.Register(r.Group("/api/v1"))

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Info().Str("port", cfg.Port).Str("strategy", strategy.Name()).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func newResumeStore(ctx context.Context, cfg *config.Config) (storage.ResumeStore, error) {
	if cfg.MinIO.Enabled() {
		s, err := storage.NewMinIOStore(ctx, storage.MinIOConfig{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			Bucket:    cfg.MinIO.Bucket,
			UseSSL:    cfg.MinIO.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		logger.Info().Str("bucket", cfg.MinIO.Bucket).Msg("storing resumes in minio")
		return s, nil
	}
	s, err := storage.NewFileStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// newMailer uses Gmail when credentials are configured and logs emails otherwise.
func newMailer(ctx context.Context, cfg *config.Config) *mailer.Mailer {
	opts := mailer.Options{BaseURL: cfg.BaseURL, DevModeSucceeds: cfg.Email.DevModeSucceeds}
	if cfg.Email.CredentialsFile == "" {
		logger.Warn().Msg("GMAIL_CREDENTIALS_FILE not set, emails are logged instead of sent")
		return mailer.New(nil, opts)
	}
	svc, err := auth.NewGmailService(ctx, cfg.Email.CredentialsFile, cfg.Email.TokenFile)
	if err != nil {
		logger.Warn().Err(err).Msg("gmail unavailable, emails are logged instead of sent")
		return mailer.New(nil, opts)
	}
	logger.Info().Msg("gmail service connected")
	return mailer.New(mailer.NewGmailSender(svc, cfg.Email.SenderEmail), opts)
}

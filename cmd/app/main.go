package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"article-hub/internal/config"
	"article-hub/internal/domain/ports/adapter"
	pg "article-hub/internal/infra/db/postgres"
	"article-hub/internal/infra/logging"
	"article-hub/internal/infra/mail"
	"article-hub/internal/infra/metrics"
	red "article-hub/internal/infra/redis"
	"article-hub/internal/infra/sched"
	"article-hub/internal/infra/security"
	"article-hub/internal/infra/web"
	"article-hub/internal/infra/worker"
	"article-hub/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (log codes instead of mailing)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("dev mode enabled")
	}

	// ---- Postgres ----
	pool, err := pg.Connect(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connect")
	}
	defer pool.Close()
	if err := pg.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("ensure schema")
	}

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connect")
	}
	defer redisClient.Close()
	draftRepo := red.NewRegistrationStateRepo(redisClient, cfg.Redis.DraftTTL)
	codeStore := red.NewVerificationCodeStore(redisClient, cfg.Redis.CodeTTL)
	rateLimiter := red.NewRateLimiter(redisClient)
	feedCache := red.NewFeedCache(redisClient, cfg.Redis.FeedTTL)

	// ---- Encryption (phone at rest) ----
	encKey := cfg.Security.EncryptionKey
	if len(encKey) != 32 {
		logger.Warn().Msg("security.encryption_key not set or not 32 bytes; falling back to dev key (INSECURE)")
		encKey = "0123456789abcdef0123456789abcdef"
	}
	encSvc, err := security.NewEncryptionService(encKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("encryption")
	}

	// ---- Repositories ----
	userRepo := pg.NewUserRepo(pool, encSvc)
	articleRepo := pg.NewArticleRepo(pool)
	reactionRepo := pg.NewReactionRepo(pool)
	sessionRepo := pg.NewSessionRepo(pool)
	tm := pg.NewTxManager(pool)

	// ---- Mail ----
	var sender adapter.CodeSender
	if cfg.Runtime.Dev || cfg.Mail.Host == "" {
		sender = mail.NewNoopSender(logger)
	} else {
		sender = mail.NewSMTPSender(&cfg.Mail, logger)
	}

	// ---- Background workers ----
	jobs := worker.NewPool(4, logger)
	jobs.Start(ctx)
	defer jobs.Stop()

	// ---- Use cases ----
	regUC := usecase.NewRegistrationUseCase(draftRepo, codeStore, userRepo, tm,
		sender, jobs, rateLimiter, cfg.OTP.ResendLimit, cfg.OTP.ResendWindow, logger)
	authUC := usecase.NewAuthUseCase(userRepo, sessionRepo, cfg.Auth.RefreshTTL, logger)
	articleUC := usecase.NewArticleUseCase(articleRepo, reactionRepo, userRepo, feedCache, logger)
	reactUC := usecase.NewReactionUseCase(reactionRepo, articleRepo, tm, feedCache, logger)
	profileUC := usecase.NewProfileUseCase(userRepo, logger)

	// ---- Session cleanup (hourly) ----
	cleanup := sched.NewSessionCleanupWorker(1*time.Hour, sessionRepo, logger)
	go func() { _ = cleanup.Run(ctx) }()

	// ---- HTTP server ----
	metrics.MustRegister()
	authMgr := web.NewAuthManager(cfg.Auth.JWTSecret, cfg.Auth.SecureCookie,
		cfg.Auth.CookieDomain, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	srv := web.NewServer(regUC, authUC, articleUC, reactUC, profileUC, authMgr, logger)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}

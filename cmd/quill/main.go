package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/mtarnawa/quill/internal/application/auth"
	"github.com/mtarnawa/quill/internal/application/ports"
	"github.com/mtarnawa/quill/internal/config"
	infraauth "github.com/mtarnawa/quill/internal/infrastructure/auth"
	infragoogle "github.com/mtarnawa/quill/internal/infrastructure/google"
	httprouter "github.com/mtarnawa/quill/internal/infrastructure/http"
	"github.com/mtarnawa/quill/internal/infrastructure/http/handlers"
	"github.com/mtarnawa/quill/internal/infrastructure/http/middleware"
	"github.com/mtarnawa/quill/internal/infrastructure/persistence/db"
	"github.com/mtarnawa/quill/internal/infrastructure/persistence/postgres"
	"github.com/mtarnawa/quill/internal/infrastructure/security"
	"github.com/mtarnawa/quill/internal/infrastructure/webhook"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	queries := db.New(pool)
	userRepo := postgres.NewUserRepository(queries)

	hasher := security.NewBcryptHasher(cfg.Bcrypt.Cost)
	issuer := infraauth.NewTokenIssuer([]byte(cfg.JWT.Secret), time.Duration(cfg.JWT.AccessExpiry)*time.Second)
	verifier, err := infragoogle.NewVerifier(ctx, cfg.Google.ClientID)
	if err != nil {
		log.Fatal().Err(err).Msg("create google token verifier")
	}

	usernames := auth.NewUsernameGenerator(userRepo)
	creds := auth.NewCredentialIssuer(issuer)
	signupUC := auth.NewSignup(userRepo, hasher, usernames, creds)
	signinUC := auth.NewSignin(userRepo, hasher, creds)
	googleUC := auth.NewGoogleSignIn(verifier, userRepo, usernames, creds)

	var emitter ports.WebhookEmitter
	if cfg.Audit.WebhookURL != "" {
		emitter = webhook.NewHTTPEmitter(cfg.Audit.WebhookURL)
	} else {
		emitter = webhook.NewNoopEmitter()
	}

	handlers.InitOAuthProviders(cfg.Google.CallbackBaseURL, cfg.Google.SessionSecret, cfg.Google.ClientID, cfg.Google.ClientSecret)
	authHandler := handlers.NewAuthHandler(signupUC, signinUC, googleUC, emitter, log)
	healthHandler := handlers.NewHealthHandler(pool)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.RatePerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment))
	corsMiddleware := middleware.CORS(cfg.CORS.AllowedOrigins, nil, nil)

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:   authHandler,
		HealthHandler: healthHandler,
		OAuthBegin:    handlers.OAuthBegin(),
		OAuthCallback: handlers.OAuthCallback(googleUC, cfg.Google.RedirectURL),
		Log:           log,
		Secure:        secureMiddleware,
		CORS:          corsMiddleware,
		IPRateLimit:   ipLimit,
		Metrics:       true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/recipevault/backend/internal/auth/http"
	authrepo "github.com/recipevault/backend/internal/auth/repository"
	authservice "github.com/recipevault/backend/internal/auth/service"
	"github.com/recipevault/backend/internal/common/clock"
	"github.com/recipevault/backend/internal/common/config"
	commoncrypto "github.com/recipevault/backend/internal/common/crypto"
	"github.com/recipevault/backend/internal/common/db"
	commonhttp "github.com/recipevault/backend/internal/common/http"
	"github.com/recipevault/backend/internal/common/logger"
	srv "github.com/recipevault/backend/internal/common/server"
	userrepo "github.com/recipevault/backend/internal/user/repository"
	userservice "github.com/recipevault/backend/internal/user/service"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "api", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.LoadAPIConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := db.RunMigrations(context.Background(), cfg.DatabaseURL); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()

	userRepo := userrepo.NewPgRepository(pool)
	tokenRepo := authrepo.NewPgTokenRepository(pool)
	hasher := &commoncrypto.BcryptHasher{}
	idGenerator := commoncrypto.NewUUIDGenerator()
	clk := clock.NewRealClock()

	userService := userservice.NewUserService(userRepo, hasher, idGenerator, clk, log)
	tokenIssuer := authservice.NewTokenIssuer(tokenRepo, idGenerator, clk)
	authService := authservice.NewAuthService(userRepo, tokenRepo, hasher, tokenIssuer, log)

	handler := authhttp.NewHandler(userService, authService, cfg.RequestTimeout, log)

	mux := http.NewServeMux()
	mux.Handle("/", handler)
	mux.Handle("/metrics", promhttp.Handler())

	rateLimiter := commonhttp.NewStrictRateLimiter()
	baseHandler := commonhttp.BuildBaseHandler(log, mux)

	rateLimitMiddleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == "/health" || path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}
			rateLimiter.MiddlewareForPath(path)(next).ServeHTTP(w, r)
		})
	}

	finalHandler := rateLimitMiddleware(baseHandler)

	serverConfig := srv.DefaultServerConfig(cfg.HTTPPort)
	server := srv.NewServer(serverConfig, finalHandler)

	srv.StartWithGracefulShutdown(server, log, "api")
}

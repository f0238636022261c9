package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/nimbuscloud/nimbus-api/internal/config"
	"github.com/nimbuscloud/nimbus-api/internal/handler"
	"github.com/nimbuscloud/nimbus-api/internal/middleware"
	"github.com/nimbuscloud/nimbus-api/internal/repository"
	"github.com/nimbuscloud/nimbus-api/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	tokenRepo := repository.NewResetTokenRepository(db)
	postRepo := repository.NewPostRepository(db)

	// Idempotent schema init. Users first: favorites and reset tokens carry
	// foreign keys into it. The reset-token table also has its own explicit
	// init endpoint.
	ctx := context.Background()
	for _, ensure := range []struct {
		table string
		fn    func(context.Context) error
	}{
		{"users", userRepo.EnsureSchema},
		{"favorites", favoriteRepo.EnsureSchema},
		{"password_reset_tokens", tokenRepo.EnsureSchema},
		{"posts", postRepo.EnsureSchema},
	} {
		if err := ensure.fn(ctx); err != nil {
			slog.Warn("schema init failed", "table", ensure.table, "error", err)
		}
	}

	authService := service.NewAuthService(userRepo, cfg.SessionSecret, cfg.SessionExpiry)
	accountService := service.NewAccountService(userRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo)
	tokenService := service.NewResetTokenService(tokenRepo, userRepo)
	postService := service.NewPostService(postRepo)

	authHandler := handler.NewAuthHandler(authService, handler.CookieConfig{
		Secure: cfg.CookieSecure,
		Domain: cfg.CookieDomain,
		Expiry: cfg.SessionExpiry,
	})
	accountHandler := handler.NewAccountHandler(accountService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	tokenHandler := handler.NewResetTokenHandler(tokenService)
	postHandler := handler.NewPostHandler(postService)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))
	r.Use(middleware.Gate(middleware.DefaultGateConfig(), cfg.SessionSecret))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(5, 10))
			r.Post("/auth/register", authHandler.HandleRegister)
			r.Post("/auth/login", authHandler.HandleLogin)
			r.Post("/password-reset/request", tokenHandler.HandleRequestReset)
		})

		r.Post("/auth/logout", authHandler.HandleLogout)
		r.Get("/user/profile", authHandler.HandleProfile)

		r.Post("/account/delete", accountHandler.HandleCheckDeletable)
		r.Delete("/account/delete", accountHandler.HandleDeleteAccount)

		r.Get("/favorites", favoriteHandler.HandleList)
		r.Post("/favorites", favoriteHandler.HandleAdd)
		r.Delete("/favorites", favoriteHandler.HandleRemove)

		r.Get("/users/search", accountHandler.HandleSearchUsers)
		r.Post("/users/search", accountHandler.HandleSearchUsersBatch)

		r.Post("/test-users", accountHandler.HandleSeedTestAccounts)
		r.Get("/test-users", accountHandler.HandleListTestAccounts)

		r.Post("/init-reset-tokens", tokenHandler.HandleInitSchema)
		r.Get("/init-reset-tokens", tokenHandler.HandleStatus)
		r.Delete("/init-reset-tokens", tokenHandler.HandleSweep)

		r.Post("/password-reset/confirm", tokenHandler.HandleConfirmReset)

		r.Get("/posts", postHandler.HandleList)
		r.Post("/posts", postHandler.HandleCreate)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

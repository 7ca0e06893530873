package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adminpanel/internal/auth"
	intconfig "adminpanel/internal/config"
	intdb "adminpanel/internal/db"
	"adminpanel/internal/domain"
	router "adminpanel/internal/http"
	"adminpanel/internal/repositories"
	"adminpanel/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	users, err := openUsers(ctx, env)
	if err != nil {
		cancel()
		log.Fatalf("storage init failed: %v", err)
	}
	defer intconfig.CloseDB()

	tokens := auth.NewTokenIssuer(env.JWTSecret, env.TokenTTL)
	if err := seed(ctx, env, users, tokens); err != nil {
		cancel()
		log.Fatalf("seeding failed: %v", err)
	}
	cancel()

	r := router.NewRouter(env, users, tokens)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on http://localhost%s (storage=%s)", env.AppAddr, env.DBDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("server stopped cleanly")
}

// openUsers returns the repository for DB_DRIVER, migrating SQL schemas first.
func openUsers(ctx context.Context, env intconfig.Env) (repositories.UserRepository, error) {
	db, err := intconfig.ConnectDB(env)
	if err != nil {
		return nil, err
	}
	if db == nil {
		return repositories.NewMemoryUserRepository(), nil
	}
	if !intdb.HasTable(ctx, db, env.DBDriver, "users") {
		log.Printf("users table missing, creating it")
	}
	if err := intdb.Migrate(ctx, db); err != nil {
		return nil, err
	}
	return repositories.SQLUserRepository{DB: db}, nil
}

// seed creates the operator account and, for an empty store, generated users.
func seed(ctx context.Context, env intconfig.Env, users repositories.UserRepository, tokens *auth.TokenIssuer) error {
	n, err := users.Count(ctx)
	if err != nil {
		return err
	}
	if n == 0 && env.SeedUsers > 0 {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		if err := repositories.SeedUsers(ctx, users, env.SeedUsers, rnd, time.Now()); err != nil {
			return err
		}
		log.Printf("seeded %d users", env.SeedUsers)
	}

	authSvc := services.AuthService{Repo: users, Tokens: tokens}
	_, err = authSvc.EnsureOperator(ctx, env.AdminName, env.AdminEmail, env.AdminPassword, domain.RoleAdmin)
	return err
}

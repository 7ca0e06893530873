package main

import (
	"context"
	"path/filepath"
	"testing"

	"adminpanel/internal/auth"
	intconfig "adminpanel/internal/config"
	"adminpanel/internal/domain"
	"adminpanel/internal/repositories"
)

func TestOpenUsersMemoryAndSeed(t *testing.T) {
	ctx := context.Background()
	env := intconfig.Env{DBDriver: "memory", SeedUsers: 5, AdminName: "Admin", AdminEmail: "admin@example.com", AdminPassword: "pw"}

	users, err := openUsers(ctx, env)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok := users.(*repositories.MemoryUserRepository); !ok {
		t.Fatalf("expected memory repository, got %T", users)
	}
	if err := seed(ctx, env, users, auth.NewTokenIssuer("s", 0)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n, _ := users.Count(ctx); n != 6 {
		t.Fatalf("expected 5 seeded users plus operator, got %d", n)
	}
}

func TestOpenUsersSQLite(t *testing.T) {
	ctx := context.Background()
	env := intconfig.Env{
		DBDriver:      "sqlite",
		DBDSN:         "file:" + filepath.Join(t.TempDir(), "panel.db"),
		SeedUsers:     3,
		AdminName:     "Admin",
		AdminEmail:    "admin@example.com",
		AdminPassword: "pw",
	}
	t.Cleanup(intconfig.CloseDB)

	users, err := openUsers(ctx, env)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	tokens := auth.NewTokenIssuer("s", 0)
	if err := seed(ctx, env, users, tokens); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// a second boot must not seed again
	if err := seed(ctx, env, users, tokens); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if n, _ := users.Count(ctx); n != 4 {
		t.Fatalf("expected 4 users, got %d", n)
	}
	admin, err := users.GetByEmail(ctx, "admin@example.com")
	if err != nil || admin.Role != domain.RoleAdmin || admin.PasswordHash == "" {
		t.Fatalf("operator not stored: %+v %v", admin, err)
	}
}

package main

import (
	"bytes"
	"context"
	"math/rand"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"adminpanel/internal/auth"
	intconfig "adminpanel/internal/config"
	"adminpanel/internal/domain"
	api "adminpanel/internal/http"
	"adminpanel/internal/repositories"
	"adminpanel/internal/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func startAPI(t *testing.T) (*httptest.Server, *repositories.MemoryUserRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	repo := repositories.NewMemoryUserRepository()
	tokens := auth.NewTokenIssuer("cli-test", time.Hour)
	authSvc := services.AuthService{Repo: repo, Tokens: tokens, HashCost: bcrypt.MinCost}
	if _, err := authSvc.EnsureOperator(ctx, "Admin", "admin@example.com", "admin123", domain.RoleAdmin); err != nil {
		t.Fatalf("ensure operator: %v", err)
	}
	if err := repositories.SeedUsers(ctx, repo, 7, rand.New(rand.NewSource(3)), time.Now()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	srv := httptest.NewServer(api.NewRouter(intconfig.Env{LoginRatePerMin: 1000}, repo, tokens))
	t.Cleanup(srv.Close)
	return srv, repo
}

type cli struct {
	t      *testing.T
	base   []string
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newCLI(t *testing.T, srv *httptest.Server) *cli {
	return &cli{t: t, base: []string{"-api", srv.URL + "/api", "-session", "file", "-session-dir", t.TempDir()}}
}

func (c *cli) run(stdin string, args ...string) error {
	c.stdout.Reset()
	c.stderr.Reset()
	return run(context.Background(), append(append([]string{}, c.base...), args...), strings.NewReader(stdin), &c.stdout, &c.stderr)
}

func TestCLIFlow(t *testing.T) {
	srv, repo := startAPI(t)
	c := newCLI(t, srv)

	if err := c.run("", "users", "list"); err == nil {
		t.Fatalf("expected not-logged-in error")
	}

	if err := c.run("admin123\n", "login", "-email", "admin@example.com"); err != nil {
		t.Fatalf("login: %v (%s)", err, c.stderr.String())
	}
	if !strings.Contains(c.stdout.String(), "Logged in as Admin") {
		t.Fatalf("unexpected login output: %q", c.stdout.String())
	}

	if err := c.run("", "whoami"); err != nil || !strings.Contains(c.stdout.String(), "admin@example.com") {
		t.Fatalf("whoami: %v %q", err, c.stdout.String())
	}

	if err := c.run("", "users", "list", "-size", "5", "-page", "2"); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(c.stdout.String(), "page 2 of 2, 8 users") {
		t.Fatalf("unexpected list footer: %q", c.stdout.String())
	}

	if err := c.run("", "users", "add", "-name", "A", "-email", "bad"); err == nil {
		t.Fatalf("expected local validation failure")
	}
	if !strings.Contains(c.stderr.String(), "Name must be at least 2 characters") {
		t.Fatalf("missing field message: %q", c.stderr.String())
	}

	if err := c.run("", "users", "add", "-name", "Cli User", "-email", "cli@example.com", "-role", "manager"); err != nil {
		t.Fatalf("add: %v", err)
	}
	created, err := repo.GetByEmail(context.Background(), "cli@example.com")
	if err != nil || created.Role != domain.RoleManager {
		t.Fatalf("user not created: %+v %v", created, err)
	}

	if err := c.run("", "users", "edit", "-id", created.ID, "-name", "Cli Renamed"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if u, _ := repo.GetByID(context.Background(), created.ID); u.Name != "Cli Renamed" {
		t.Fatalf("edit not applied: %+v", u)
	}

	if err := c.run("n\n", "users", "delete", "-id", created.ID); err != nil {
		t.Fatalf("declined delete: %v", err)
	}
	if !strings.Contains(c.stdout.String(), "Cancelled") {
		t.Fatalf("expected cancel message: %q", c.stdout.String())
	}
	if _, err := repo.GetByID(context.Background(), created.ID); err != nil {
		t.Fatalf("declined delete removed the user")
	}

	if err := c.run("", "users", "delete", "-id", created.ID, "-yes"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), created.ID); !domain.IsNotFound(err) {
		t.Fatalf("user still present: %v", err)
	}

	if err := c.run("", "stats"); err != nil || !strings.Contains(c.stdout.String(), "Total users") {
		t.Fatalf("stats: %v %q", err, c.stdout.String())
	}

	out := filepath.Join(t.TempDir(), "users.pdf")
	if err := c.run("", "users", "export", "-o", out); err != nil {
		t.Fatalf("export: %v", err)
	}
	if data, err := os.ReadFile(out); err != nil || !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("export did not write a PDF: %v", err)
	}

	if err := c.run("", "logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if err := c.run("", "whoami"); err == nil {
		t.Fatalf("expected logged out")
	}
}

func TestCLIUnknownCommand(t *testing.T) {
	srv, _ := startAPI(t)
	c := newCLI(t, srv)
	if err := c.run("", "frobnicate"); err == nil {
		t.Fatalf("expected error")
	}
	if err := c.run(""); err == nil {
		t.Fatalf("expected missing command error")
	}
}

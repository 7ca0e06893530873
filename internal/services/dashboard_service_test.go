package services

import (
	"context"
	"errors"
	"testing"

	"adminpanel/internal/domain"
	"adminpanel/internal/repositories"
)

func TestDashboardStats(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	ctx := context.Background()
	users := UserService{Repo: repo}
	for _, d := range []domain.UserFormData{
		{Name: "Ann", Email: "ann@example.com", Role: domain.RoleAdmin},
		{Name: "Ben", Email: "ben@example.com", Role: domain.RoleUser},
		{Name: "Cat", Email: "cat@example.com", Role: domain.RoleUser},
	} {
		if _, err := users.Create(ctx, d); err != nil {
			t.Fatalf("create error: %v", err)
		}
	}

	stats, err := DashboardService{Repo: repo, TotalRevenue: 15000, ActiveProjects: 5}.Stats(ctx)
	if err != nil {
		t.Fatalf("stats error: %v", err)
	}
	if stats.TotalUsers != 3 || stats.TotalRevenue != 15000 || stats.ActiveProjects != 5 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.UsersByRole[domain.RoleUser] != 2 || stats.UsersByRole[domain.RoleAdmin] != 1 {
		t.Fatalf("unexpected role counts: %v", stats.UsersByRole)
	}
}

type failingCountRepo struct {
	repositories.UserRepository
}

func (failingCountRepo) Count(context.Context) (int, error) { return 0, errors.New("db down") }

func (failingCountRepo) CountByRole(context.Context) (map[domain.Role]int, error) {
	return map[domain.Role]int{}, nil
}

func TestDashboardStatsPropagatesErrors(t *testing.T) {
	if _, err := (DashboardService{Repo: failingCountRepo{}}).Stats(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

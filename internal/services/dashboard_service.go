package services

import (
	"context"

	"adminpanel/internal/domain"
	"adminpanel/internal/repositories"

	"golang.org/x/sync/errgroup"
)

// DashboardService aggregates the dashboard figures. Revenue and project
// counts are configured values; user counts come from the repository.
type DashboardService struct {
	Repo           repositories.UserRepository
	TotalRevenue   int
	ActiveProjects int
}

func (s DashboardService) Stats(ctx context.Context) (domain.DashboardStats, error) {
	var (
		total  int
		byRole map[domain.Role]int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.Repo.Count(gctx)
		total = n
		return err
	})
	g.Go(func() error {
		m, err := s.Repo.CountByRole(gctx)
		byRole = m
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.DashboardStats{}, err
	}

	return domain.DashboardStats{
		TotalUsers:     total,
		TotalRevenue:   s.TotalRevenue,
		ActiveProjects: s.ActiveProjects,
		UsersByRole:    byRole,
	}, nil
}

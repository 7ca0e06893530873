package client

import (
	"context"
	"net/http"

	"adminpanel/internal/domain"
)

type DashboardClient struct {
	c *Client
}

func NewDashboardClient(c *Client) *DashboardClient {
	return &DashboardClient{c: c}
}

func (d *DashboardClient) Stats(ctx context.Context) (domain.DashboardStats, error) {
	var out domain.DashboardStats
	err := d.c.do(ctx, call{method: http.MethodGet, path: "/dashboard/stats"}, &out)
	return out, err
}

package handlers

import (
	"adminpanel/internal/auth"
	"adminpanel/internal/http/middleware"
	"adminpanel/internal/repositories"
	"adminpanel/internal/services"

	"github.com/gin-gonic/gin"
)

// API holds what the route handlers need. Services are built per request so
// they log with the request id.
type API struct {
	Users          repositories.UserRepository
	Tokens         *auth.TokenIssuer
	TotalRevenue   int
	ActiveProjects int
}

func (a API) userService(c *gin.Context) services.UserService {
	return services.UserService{Repo: a.Users, RequestID: middleware.GetRequestID(c)}
}

func (a API) authService(c *gin.Context) services.AuthService {
	return services.AuthService{Repo: a.Users, Tokens: a.Tokens, RequestID: middleware.GetRequestID(c)}
}

func (a API) dashboardService() services.DashboardService {
	return services.DashboardService{Repo: a.Users, TotalRevenue: a.TotalRevenue, ActiveProjects: a.ActiveProjects}
}

func (a API) exportService(c *gin.Context) services.ExportService {
	return services.ExportService{Repo: a.Users, RequestID: middleware.GetRequestID(c)}
}

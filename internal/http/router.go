package api

import (
	"log"
	stdhttp "net/http"
	"sync"

	"adminpanel/internal/auth"
	intconfig "adminpanel/internal/config"
	"adminpanel/internal/domain"
	h "adminpanel/internal/http/handlers"
	"adminpanel/internal/http/middleware"
	"adminpanel/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// gin's validator is process-global, so its rules are installed once.
var bindingRules = &ruleRegistrar{register: domain.RegisterRules}

type ruleRegistrar struct {
	once     sync.Once
	err      error
	register func(*validator.Validate) error
}

func (r *ruleRegistrar) install(engine any) error {
	r.once.Do(func() {
		if v, ok := engine.(*validator.Validate); ok {
			r.err = r.register(v)
		}
	})
	return r.err
}

// NewRouter wires middleware and routes around the given user repository.
func NewRouter(env intconfig.Env, users repositories.UserRepository, tokens *auth.TokenIssuer) *gin.Engine {
	if err := bindingRules.install(binding.Validator.Engine()); err != nil {
		log.Printf("warning: failed to register validation rules: %v", err)
	}

	metrics := middleware.NewMetrics()

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins), metrics.Middleware())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	a := h.API{
		Users:          users,
		Tokens:         tokens,
		TotalRevenue:   env.StatsTotalRevenue,
		ActiveProjects: env.StatsActiveProjects,
	}
	requireAuth := middleware.RequireAuth(tokens)
	canMutate := middleware.RequireRoles(domain.RoleAdmin, domain.RoleManager)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", a.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		authGroup := api.Group("/auth")
		authGroup.POST("/login", middleware.NewRateLimiter(env.LoginRatePerMin).Middleware(), a.Login)

		// Users
		users := api.Group("/users", requireAuth)
		users.GET("", a.ListUsers)
		users.GET("/export.pdf", a.ExportUsersPDF)
		users.GET("/:id", a.GetUser)
		users.POST("", canMutate, a.CreateUser)
		users.PUT("/:id", canMutate, a.UpdateUser)
		users.DELETE("/:id", canMutate, a.DeleteUser)

		// Dashboard
		api.GET("/dashboard/stats", requireAuth, a.DashboardStats)
	}

	h.SetRouter(r)
	return r
}

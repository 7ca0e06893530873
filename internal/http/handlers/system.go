package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	intconfig "adminpanel/internal/config"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for /api/routes.
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "admin panel backend running"})
}

// DBCheck pings the SQL database and counts users through the repository.
func (a API) DBCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	storage := "memory"
	if intconfig.DB != nil {
		storage = "sql"
		if err := intconfig.EnsureDB(ctx); err != nil {
			RespondError(c, http.StatusServiceUnavailable, "database unreachable", err)
			return
		}
	}
	n, err := a.Users.Count(ctx)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to query users", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "storage OK", "storage": storage, "users_in_db": n})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router not ready"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}

package handlers

import (
	"net/http"

	"adminpanel/internal/domain"

	"github.com/gin-gonic/gin"
)

// POST /api/auth/login
func (a API) Login(c *gin.Context) {
	var req domain.LoginCredentials
	if !BindJSONOrError(c, &req) {
		return
	}

	resp, err := a.authService(c).Login(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

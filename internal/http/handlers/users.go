package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"adminpanel/internal/domain"

	"github.com/gin-gonic/gin"
)

// parsePageRequest reads page, pageSize, sortField, sortOrder and search.
// Missing values take the listing defaults.
func parsePageRequest(c *gin.Context) (domain.PageRequest, error) {
	req := domain.NewPageRequest()
	var errs domain.ValidationErrors

	if raw := strings.TrimSpace(c.Query("page")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, domain.ValidationError{Field: "page", Msg: "must be an integer", Err: err})
		}
		req.Page = n
	}
	if raw := strings.TrimSpace(c.Query("pageSize")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, domain.ValidationError{Field: "pageSize", Msg: "must be an integer", Err: err})
		}
		req.PageSize = n
	}
	if len(errs) > 0 {
		return req, errs
	}

	req.Sort = parseSort(c)
	req.Search = c.Query("search")
	return req, req.Validate()
}

func parseSort(c *gin.Context) *domain.Sort {
	field := strings.TrimSpace(c.Query("sortField"))
	if field == "" {
		return nil
	}
	dir := domain.SortDirection(strings.ToLower(strings.TrimSpace(c.Query("sortOrder"))))
	if dir == "" {
		dir = domain.SortAsc
	}
	return &domain.Sort{Field: field, Direction: dir}
}

// GET /api/users
func (a API) ListUsers(c *gin.Context) {
	req, err := parsePageRequest(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	res, err := a.userService(c).List(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/users/:id
func (a API) GetUser(c *gin.Context) {
	u, err := a.userService(c).Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// POST /api/users
func (a API) CreateUser(c *gin.Context) {
	var req domain.UserFormData
	if !BindJSONOrError(c, &req) {
		return
	}
	u, err := a.userService(c).Create(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// PUT /api/users/:id
func (a API) UpdateUser(c *gin.Context) {
	var req domain.UserFormData
	if !BindJSONOrError(c, &req) {
		return
	}
	u, err := a.userService(c).Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// DELETE /api/users/:id
func (a API) DeleteUser(c *gin.Context) {
	if err := a.userService(c).Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /api/users/export.pdf takes the list filters; paging params are ignored.
func (a API) ExportUsersPDF(c *gin.Context) {
	sort := parseSort(c)
	if sort != nil {
		probe := domain.PageRequest{PageSize: domain.DefaultPageSize, Sort: sort}
		if err := probe.Validate(); err != nil {
			RespondDomainError(c, err)
			return
		}
	}
	data, filename, err := a.exportService(c).UsersPDF(c.Request.Context(), c.Query("search"), sort)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

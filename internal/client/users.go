package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"adminpanel/internal/domain"
)

// UserClient is the remote user collection.
type UserClient struct {
	c *Client
}

func NewUserClient(c *Client) *UserClient {
	return &UserClient{c: c}
}

func pageQuery(req domain.PageRequest) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(req.Page))
	q.Set("pageSize", strconv.Itoa(req.PageSize))
	if req.Sort != nil {
		q.Set("sortField", req.Sort.Field)
		q.Set("sortOrder", string(req.Sort.Direction))
	}
	if req.Search != "" {
		q.Set("search", req.Search)
	}
	return q
}

// List fetches one page. The result is taken as the server sends it; Total is
// not checked against the requested page.
func (u *UserClient) List(ctx context.Context, req domain.PageRequest) (domain.PageResult, error) {
	var out domain.PageResult
	err := u.c.do(ctx, call{method: http.MethodGet, path: "/users", query: pageQuery(req)}, &out)
	if err != nil {
		return domain.PageResult{}, err
	}
	if out.Users == nil {
		out.Users = []domain.User{}
	}
	return out, nil
}

func (u *UserClient) Get(ctx context.Context, id string) (domain.User, error) {
	var out domain.User
	err := u.c.do(ctx, call{method: http.MethodGet, path: "/users/" + url.PathEscape(id)}, &out)
	return out, err
}

func (u *UserClient) Create(ctx context.Context, data domain.UserFormData) (domain.User, error) {
	var out domain.User
	err := u.c.do(ctx, call{method: http.MethodPost, path: "/users", body: data}, &out)
	return out, err
}

// Update replaces the editable fields of id with PUT. It never creates.
func (u *UserClient) Update(ctx context.Context, id string, data domain.UserFormData) (domain.User, error) {
	var out domain.User
	err := u.c.do(ctx, call{method: http.MethodPut, path: "/users/" + url.PathEscape(id), body: data}, &out)
	return out, err
}

func (u *UserClient) Delete(ctx context.Context, id string) error {
	return u.c.do(ctx, call{method: http.MethodDelete, path: "/users/" + url.PathEscape(id)}, nil)
}

// ExportPDF downloads the users report for the given filters.
func (u *UserClient) ExportPDF(ctx context.Context, search string, sort *domain.Sort) ([]byte, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if sort != nil {
		q.Set("sortField", sort.Field)
		q.Set("sortOrder", string(sort.Direction))
	}
	return u.c.send(ctx, call{method: http.MethodGet, path: "/users/export.pdf", query: q})
}

package domain

import (
	"math"
	"strings"
)

// PageSizeOptions lists the page sizes a listing accepts.
var PageSizeOptions = []int{5, 10, 25}

const DefaultPageSize = 10

// SortDirection is asc or desc.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sort defines sorting preference. At most one sort is active per request.
type Sort struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"direction"`
}

// sortColumns maps the public field name to its storage column.
var sortColumns = map[string]string{
	"name":      "name",
	"email":     "email",
	"role":      "role",
	"createdAt": "created_at",
}

// SortColumn returns the storage column for a sortable field.
func SortColumn(field string) (string, bool) {
	col, ok := sortColumns[field]
	return col, ok
}

// PageRequest carries paging, sorting and search params for a listing.
type PageRequest struct {
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	Sort     *Sort  `json:"sort,omitempty"`
	Search   string `json:"search,omitempty"`
}

// NewPageRequest returns the initial request of a listing: first page, default size.
func NewPageRequest() PageRequest {
	return PageRequest{Page: 0, PageSize: DefaultPageSize}
}

// Offset is the index of the first row of the page. It saturates at math.MaxInt
// and never goes below zero.
func (r PageRequest) Offset() int {
	if r.Page <= 0 || r.PageSize <= 0 {
		return 0
	}
	if r.Page > math.MaxInt/r.PageSize {
		return math.MaxInt
	}
	return r.Page * r.PageSize
}

// Validate checks page index, page size and sort options. Total is never consulted.
func (r PageRequest) Validate() error {
	var errs ValidationErrors
	if r.Page < 0 {
		errs = append(errs, ValidationError{Field: "page", Msg: "must be zero or greater"})
	}
	if !IsAllowedPageSize(r.PageSize) {
		errs = append(errs, ValidationError{Field: "pageSize", Msg: "must be one of 5, 10, 25"})
	} else if r.Page > math.MaxInt/r.PageSize {
		errs = append(errs, ValidationError{Field: "page", Msg: "is out of range"})
	}
	if r.Sort != nil {
		if _, ok := SortColumn(r.Sort.Field); !ok {
			errs = append(errs, ValidationError{Field: "sortField", Msg: "unsupported sort field"})
		}
		if r.Sort.Direction != SortAsc && r.Sort.Direction != SortDesc {
			errs = append(errs, ValidationError{Field: "sortOrder", Msg: "must be asc or desc"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// NormalizedSearch is the lower-cased, trimmed search term.
func (r PageRequest) NormalizedSearch() string {
	return strings.ToLower(strings.TrimSpace(r.Search))
}

func IsAllowedPageSize(size int) bool {
	for _, s := range PageSizeOptions {
		if s == size {
			return true
		}
	}
	return false
}

// PageResult is one page of users plus the total number of matches.
type PageResult struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

// PageCount returns how many pages total spans; zero when total is zero.
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

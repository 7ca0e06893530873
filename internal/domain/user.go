package domain

import (
	"strings"
	"time"
)

// Role is one of ADMIN, USER, MANAGER.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleUser    Role = "USER"
	RoleManager Role = "MANAGER"
)

var Roles = []Role{RoleAdmin, RoleUser, RoleManager}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleManager:
		return true
	default:
		return false
	}
}

// TimestampLayout is fixed-width so stored timestamps sort lexically.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t as an ISO-8601 UTC string.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// User is the managed record. ID and CreatedAt are server-assigned.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	CreatedAt    string `json:"createdAt"`
	PasswordHash string `json:"-"`
}

// FormData returns the editable fields of u.
func (u User) FormData() UserFormData {
	return UserFormData{Name: u.Name, Email: u.Email, Role: u.Role}
}

// UserFormData is the create/update payload. Its tags are the only rule set for
// user input: the edit form, gin binding and the service all validate against them.
type UserFormData struct {
	Name  string `json:"name" binding:"required,min=2"`
	Email string `json:"email" binding:"required,basic_email"`
	Role  Role   `json:"role" binding:"required,oneof=ADMIN USER MANAGER"`
}

// NewUserFormData returns the defaults used when creating a user.
func NewUserFormData() UserFormData {
	return UserFormData{Role: RoleUser}
}

// Normalize trims name and email and upper-cases role.
func (d UserFormData) Normalize() UserFormData {
	return UserFormData{
		Name:  strings.TrimSpace(d.Name),
		Email: strings.TrimSpace(d.Email),
		Role:  Role(strings.ToUpper(strings.TrimSpace(string(d.Role)))),
	}
}

// Validate runs the declarative rule set on the normalized data.
func (d UserFormData) Validate() error {
	return ValidateStruct(d.Normalize())
}

// DashboardStats is the aggregate shown on the dashboard.
type DashboardStats struct {
	TotalUsers     int          `json:"totalUsers"`
	TotalRevenue   int          `json:"totalRevenue"`
	ActiveProjects int          `json:"activeProjects"`
	UsersByRole    map[Role]int `json:"usersByRole,omitempty"`
}

// LoginCredentials is the login payload.
type LoginCredentials struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthUser is the user snapshot returned by login.
type AuthUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// AuthResponse is the login result.
type AuthResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

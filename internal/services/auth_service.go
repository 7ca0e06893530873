package services

import (
	"context"
	"strings"

	"adminpanel/internal/auth"
	"adminpanel/internal/domain"
	"adminpanel/internal/repositories"
	"adminpanel/internal/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var errBadCredentials = domain.AuthenticationError{Msg: "Invalid email or password"}

type AuthService struct {
	Repo      repositories.UserRepository
	Tokens    *auth.TokenIssuer
	RequestID string
	// HashCost defaults to bcrypt.DefaultCost.
	HashCost int
}

// Login checks the password against the stored bcrypt hash and issues a token.
// Unknown emails and wrong passwords produce the same error.
func (s AuthService) Login(ctx context.Context, creds domain.LoginCredentials) (domain.AuthResponse, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if err := domain.ValidateStruct(creds); err != nil {
		return domain.AuthResponse{}, err
	}

	u, err := s.Repo.GetByEmail(ctx, creds.Email)
	if err != nil {
		if domain.IsNotFound(err) {
			utils.LogEvent(s.RequestID, "auth", "login_rejected", "reason=unknown_email")
			return domain.AuthResponse{}, errBadCredentials
		}
		return domain.AuthResponse{}, err
	}
	if u.PasswordHash == "" {
		utils.LogEvent(s.RequestID, "auth", "login_rejected", "reason=no_password id="+u.ID)
		return domain.AuthResponse{}, errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(creds.Password)); err != nil {
		utils.LogEvent(s.RequestID, "auth", "login_rejected", "reason=password id="+u.ID)
		return domain.AuthResponse{}, errBadCredentials
	}

	token, _, err := s.Tokens.Issue(u)
	if err != nil {
		return domain.AuthResponse{}, domain.InternalError{Msg: "failed to issue token", Err: err}
	}
	utils.LogEvent(s.RequestID, "auth", "login", "id="+u.ID)
	return domain.AuthResponse{
		Token: token,
		User:  domain.AuthUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role},
	}, nil
}

// EnsureOperator creates a login-capable account unless the email is taken.
func (s AuthService) EnsureOperator(ctx context.Context, name, email, password string, role domain.Role) (domain.User, error) {
	if existing, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return existing, nil
	} else if !domain.IsNotFound(err) {
		return domain.User{}, err
	}

	cost := s.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return domain.User{}, domain.InternalError{Msg: "failed to hash password", Err: err}
	}

	u := domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Role:         role,
		CreatedAt:    domain.FormatTimestamp(utils.NowUTC()),
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return domain.User{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "ensure_operator", "email="+email)
	return u, nil
}

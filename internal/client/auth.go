package client

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"adminpanel/internal/domain"
	"adminpanel/internal/session"
)

// AuthClient logs in against the API and keeps the result in a session.
type AuthClient struct {
	c        *Client
	sessions *session.Manager
}

func NewAuthClient(c *Client, sessions *session.Manager) *AuthClient {
	return &AuthClient{c: c, sessions: sessions}
}

// Login exchanges credentials for a token and stores the session. Any
// rejection is an *AuthenticationError.
func (a *AuthClient) Login(ctx context.Context, creds domain.LoginCredentials) (domain.AuthResponse, error) {
	var out domain.AuthResponse
	err := a.c.do(ctx, call{method: http.MethodPost, path: "/auth/login", body: creds, anonymous: true}, &out)
	if err != nil {
		var te *TransportError
		if errors.As(err, &te) && te.Status == 0 {
			return domain.AuthResponse{}, err
		}
		return domain.AuthResponse{}, &AuthenticationError{Message: err.Error(), Status: StatusOf(err)}
	}
	if strings.TrimSpace(out.Token) == "" {
		return domain.AuthResponse{}, &AuthenticationError{Message: "login response carried no token", Status: http.StatusOK}
	}

	if a.sessions != nil {
		if err := a.sessions.Set(session.Session{Token: out.Token, User: out.User}); err != nil {
			return out, err
		}
	}
	return out, nil
}

// Logout clears the stored session. There is no server-side logout.
func (a *AuthClient) Logout() error {
	if a.sessions == nil {
		return nil
	}
	return a.sessions.Clear()
}

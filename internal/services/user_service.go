package services

import (
	"context"
	"time"

	"adminpanel/internal/domain"
	"adminpanel/internal/repositories"
	"adminpanel/internal/utils"

	"github.com/google/uuid"
)

// UserService applies the user rule set and delegates storage to Repo.
type UserService struct {
	Repo      repositories.UserRepository
	RequestID string
	Now       func() time.Time
}

func (s UserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

func (s UserService) List(ctx context.Context, req domain.PageRequest) (domain.PageResult, error) {
	if err := req.Validate(); err != nil {
		return domain.PageResult{}, err
	}
	res, err := s.Repo.List(ctx, req)
	if err != nil {
		utils.LogError(s.RequestID, "users", "list", err)
		return domain.PageResult{}, err
	}
	return res, nil
}

func (s UserService) Get(ctx context.Context, id string) (domain.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	u.PasswordHash = ""
	return u, nil
}

// Create assigns id and createdAt; neither is ever taken from the payload.
func (s UserService) Create(ctx context.Context, data domain.UserFormData) (domain.User, error) {
	data = data.Normalize()
	if err := domain.ValidateStruct(data); err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:        uuid.NewString(),
		Name:      data.Name,
		Email:     data.Email,
		Role:      data.Role,
		CreatedAt: domain.FormatTimestamp(s.now()),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		utils.LogError(s.RequestID, "users", "create", err)
		return domain.User{}, err
	}
	utils.LogEvent(s.RequestID, "users", "create", "id="+u.ID)
	return u, nil
}

// Update replaces name, email and role of an existing user. Unknown ids fail
// with NotFoundError; Update never creates.
func (s UserService) Update(ctx context.Context, id string, data domain.UserFormData) (domain.User, error) {
	data = data.Normalize()
	if err := domain.ValidateStruct(data); err != nil {
		return domain.User{}, err
	}

	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	existing.Name = data.Name
	existing.Email = data.Email
	existing.Role = data.Role
	if err := s.Repo.Update(ctx, existing); err != nil {
		utils.LogError(s.RequestID, "users", "update", err)
		return domain.User{}, err
	}
	utils.LogEvent(s.RequestID, "users", "update", "id="+id)
	existing.PasswordHash = ""
	return existing, nil
}

func (s UserService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if !domain.IsNotFound(err) {
			utils.LogError(s.RequestID, "users", "delete", err)
		}
		return err
	}
	utils.LogEvent(s.RequestID, "users", "delete", "id="+id)
	return nil
}

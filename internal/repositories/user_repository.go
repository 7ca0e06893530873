package repositories

import (
	"context"

	"adminpanel/internal/domain"
)

// UserRepository is the persistence contract for users. Implementations return
// domain.NotFoundError for unknown IDs and domain.ConflictError for duplicate emails.
type UserRepository interface {
	List(ctx context.Context, req domain.PageRequest) (domain.PageResult, error)
	ListAll(ctx context.Context, search string, sort *domain.Sort) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, u domain.User) error
	Update(ctx context.Context, u domain.User) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	CountByRole(ctx context.Context) (map[domain.Role]int, error)
}

func errUserNotFound(id string) error {
	return domain.NotFoundError{Resource: "user " + id}
}

func errDuplicateEmail(email string, err error) error {
	return domain.ConflictError{Resource: "user", Msg: "email " + email + " already registered", Err: err}
}

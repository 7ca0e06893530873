package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"

	"adminpanel/internal/domain"
)

// MemoryUserRepository keeps users in process memory. It backs the mock
// deployment and tests.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: map[string]domain.User{}}
}

func (r *MemoryUserRepository) List(ctx context.Context, req domain.PageRequest) (domain.PageResult, error) {
	matched, err := r.ListAll(ctx, req.Search, req.Sort)
	if err != nil {
		return domain.PageResult{}, err
	}

	start := min(max(req.Offset(), 0), len(matched))
	end := start + min(max(req.PageSize, 0), len(matched)-start)

	page := make([]domain.User, 0, end-start)
	page = append(page, matched[start:end]...)
	return domain.PageResult{Users: page, Total: len(matched)}, nil
}

func (r *MemoryUserRepository) ListAll(_ context.Context, search string, s *domain.Sort) ([]domain.User, error) {
	term := strings.ToLower(strings.TrimSpace(search))

	r.mu.RLock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		if term != "" &&
			!strings.Contains(strings.ToLower(u.Name), term) &&
			!strings.Contains(strings.ToLower(u.Email), term) {
			continue
		}
		out = append(out, publicUser(u))
	}
	r.mu.RUnlock()

	sortUsers(out, s)
	return out, nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return domain.User{}, errUserNotFound(id)
	}
	return u, nil
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return domain.User{}, domain.NotFoundError{Resource: "user"}
}

func (r *MemoryUserRepository) Create(_ context.Context, u domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[u.ID]; exists {
		return domain.ConflictError{Resource: "user", Msg: "id " + u.ID + " already exists"}
	}
	if r.emailTakenLocked(u.Email, "") {
		return errDuplicateEmail(u.Email, nil)
	}
	r.users[u.ID] = u
	return nil
}

func (r *MemoryUserRepository) Update(_ context.Context, u domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[u.ID]
	if !ok {
		return errUserNotFound(u.ID)
	}
	if r.emailTakenLocked(u.Email, u.ID) {
		return errDuplicateEmail(u.Email, nil)
	}
	existing.Name = u.Name
	existing.Email = u.Email
	existing.Role = u.Role
	r.users[u.ID] = existing
	return nil
}

func (r *MemoryUserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return errUserNotFound(id)
	}
	delete(r.users, id)
	return nil
}

func (r *MemoryUserRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}

func (r *MemoryUserRepository) CountByRole(_ context.Context) (map[domain.Role]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := map[domain.Role]int{}
	for _, u := range r.users {
		out[u.Role]++
	}
	return out, nil
}

func (r *MemoryUserRepository) emailTakenLocked(email, exceptID string) bool {
	for id, u := range r.users {
		if id != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func publicUser(u domain.User) domain.User {
	u.PasswordHash = ""
	return u
}

// sortUsers orders users the same way the SQL repository does: case-insensitive
// on the sort field, id as tie-breaker, newest first when no sort is given.
func sortUsers(users []domain.User, s *domain.Sort) {
	field := "createdAt"
	desc := true
	if s != nil {
		field = s.Field
		desc = s.Direction == domain.SortDesc
	}

	key := func(u domain.User) string {
		switch field {
		case "name":
			return strings.ToLower(u.Name)
		case "email":
			return strings.ToLower(u.Email)
		case "role":
			return strings.ToLower(string(u.Role))
		default:
			return u.CreatedAt
		}
	}

	sort.SliceStable(users, func(i, j int) bool {
		a, b := key(users[i]), key(users[j])
		if a == b {
			return users[i].ID < users[j].ID
		}
		if desc {
			return a > b
		}
		return a < b
	})
}

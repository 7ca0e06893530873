package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "adminpanel/internal/config"
	"adminpanel/internal/domain"

	"github.com/go-sql-driver/mysql"
)

const userColumns = "id, name, email, role, created_at"

// SQLUserRepository stores users in MySQL or SQLite through database/sql.
// Queries only use ? placeholders so both drivers share them.
type SQLUserRepository struct {
	DB *sql.DB
}

func (r SQLUserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r SQLUserRepository) List(ctx context.Context, req domain.PageRequest) (domain.PageResult, error) {
	where, args := searchClause(req.Search)

	var total int
	if err := r.db().QueryRowContext(ctx, "SELECT COUNT(*) FROM users"+where, args...).Scan(&total); err != nil {
		return domain.PageResult{}, fmt.Errorf("count users: %w", err)
	}

	query := "SELECT " + userColumns + " FROM users" + where + orderClause(req.Sort) + " LIMIT ? OFFSET ?"
	pageArgs := append(append([]any{}, args...), req.PageSize, req.Offset())
	users, err := r.queryUsers(ctx, query, pageArgs...)
	if err != nil {
		return domain.PageResult{}, err
	}
	return domain.PageResult{Users: users, Total: total}, nil
}

func (r SQLUserRepository) ListAll(ctx context.Context, search string, s *domain.Sort) ([]domain.User, error) {
	where, args := searchClause(search)
	return r.queryUsers(ctx, "SELECT "+userColumns+" FROM users"+where+orderClause(s), args...)
}

func (r SQLUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	u, err := r.scanOne(ctx, "SELECT "+userColumns+", password_hash FROM users WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, errUserNotFound(id)
	}
	return u, err
}

func (r SQLUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	u, err := r.scanOne(ctx, "SELECT "+userColumns+", password_hash FROM users WHERE LOWER(email) = ?", strings.ToLower(email))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	return u, err
}

func (r SQLUserRepository) Create(ctx context.Context, u domain.User) error {
	_, err := r.db().ExecContext(ctx,
		"INSERT INTO users (id, name, email, role, password_hash, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		u.ID, u.Name, u.Email, string(u.Role), u.PasswordHash, u.CreatedAt)
	if err != nil {
		if isDuplicateKey(err) {
			return errDuplicateEmail(u.Email, err)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Update changes name, email and role of an existing user. It never inserts.
func (r SQLUserRepository) Update(ctx context.Context, u domain.User) error {
	res, err := r.db().ExecContext(ctx,
		"UPDATE users SET name = ?, email = ?, role = ? WHERE id = ?",
		u.Name, u.Email, string(u.Role), u.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return errDuplicateEmail(u.Email, err)
		}
		return fmt.Errorf("update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if n == 0 {
		// MySQL reports 0 rows when values are unchanged; tell that apart from a missing id.
		if _, err := r.GetByID(ctx, u.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r SQLUserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db().ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n == 0 {
		return errUserNotFound(id)
	}
	return nil
}

func (r SQLUserRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db().QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r SQLUserRepository) CountByRole(ctx context.Context) (map[domain.Role]int, error) {
	rows, err := r.db().QueryContext(ctx, "SELECT role, COUNT(*) FROM users GROUP BY role")
	if err != nil {
		return nil, fmt.Errorf("count users by role: %w", err)
	}
	defer rows.Close()

	out := map[domain.Role]int{}
	for rows.Next() {
		var (
			role string
			n    int
		)
		if err := rows.Scan(&role, &n); err != nil {
			return nil, fmt.Errorf("scan role count: %w", err)
		}
		out[domain.Role(role)] = n
	}
	return out, rows.Err()
}

func (r SQLUserRepository) queryUsers(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var (
			u    domain.User
			role string
		)
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Role = domain.Role(role)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (r SQLUserRepository) scanOne(ctx context.Context, query string, args ...any) (domain.User, error) {
	var (
		u    domain.User
		role string
	)
	err := r.db().QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Name, &u.Email, &role, &u.CreatedAt, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, err
		}
		return domain.User{}, fmt.Errorf("query user: %w", err)
	}
	u.Role = domain.Role(role)
	return u, nil
}

func searchClause(search string) (string, []any) {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return "", nil
	}
	like := "%" + likeEscaper.Replace(term) + "%"
	return " WHERE (LOWER(name) LIKE ? ESCAPE '!' OR LOWER(email) LIKE ? ESCAPE '!')", []any{like, like}
}

// likeEscaper makes the search term match literally. '!' is the escape char
// because a backslash needs different quoting in mysql and sqlite.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func orderClause(s *domain.Sort) string {
	if s == nil {
		return " ORDER BY created_at DESC, id ASC"
	}
	col, ok := domain.SortColumn(s.Field)
	if !ok {
		return " ORDER BY created_at DESC, id ASC"
	}
	dir := "ASC"
	if s.Direction == domain.SortDesc {
		dir = "DESC"
	}
	if col != "created_at" {
		col = "LOWER(" + col + ")"
	}
	return " ORDER BY " + col + " " + dir + ", id ASC"
}

// isDuplicateKey recognizes unique violations from MySQL (1062) and SQLite.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == 1062 {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

package repositories

import (
	"context"
	"errors"
	"math"
	"regexp"
	"testing"

	"adminpanel/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func newSQLRepo(t *testing.T) (SQLUserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return SQLUserRepository{DB: db}, mock
}

func TestSQLListAppliesSearchSortAndPaging(t *testing.T) {
	repo, mock := newSQLRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE (LOWER(name) LIKE ? ESCAPE '!' OR LOWER(email) LIKE ? ESCAPE '!')")).
		WithArgs("%ali%", "%ali%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, role, created_at FROM users WHERE (LOWER(name) LIKE ? ESCAPE '!' OR LOWER(email) LIKE ? ESCAPE '!') ORDER BY LOWER(name) DESC, id ASC LIMIT ? OFFSET ?")).
		WithArgs("%ali%", "%ali%", 5, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role", "created_at"}).
			AddRow("a", "Alina", "alina@example.com", "ADMIN", "2024-01-01T00:00:00.000Z").
			AddRow("b", "Alice", "alice@example.com", "USER", "2024-01-02T00:00:00.000Z"))

	res, err := repo.List(context.Background(), domain.PageRequest{
		Page:     2,
		PageSize: 5,
		Search:   " ALI ",
		Sort:     &domain.Sort{Field: "name", Direction: domain.SortDesc},
	})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if res.Total != 12 || len(res.Users) != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Users[0].Role != domain.RoleAdmin {
		t.Fatalf("role not scanned: %+v", res.Users[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLListEscapesLikeWildcards(t *testing.T) {
	repo, mock := newSQLRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE")).
		WithArgs("%al!_50!%!!%", "%al!_50!%!!%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT ? OFFSET ?")).
		WithArgs("%al!_50!%!!%", "%al!_50!%!!%", 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role", "created_at"}))

	if _, err := repo.List(context.Background(), domain.PageRequest{PageSize: 10, Search: "AL_50%!"}); err != nil {
		t.Fatalf("list error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLListHugePageSaturatesOffset(t *testing.T) {
	repo, mock := newSQLRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT ? OFFSET ?")).
		WithArgs(10, math.MaxInt).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role", "created_at"}))

	res, err := repo.List(context.Background(), domain.PageRequest{Page: 1 << 62, PageSize: 10})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if res.Total != 3 || len(res.Users) != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLListDefaultOrder(t *testing.T) {
	repo, mock := newSQLRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC, id ASC LIMIT ? OFFSET ?")).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role", "created_at"}))

	res, err := repo.List(context.Background(), domain.NewPageRequest())
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if res.Users == nil || len(res.Users) != 0 {
		t.Fatalf("expected empty non-nil page, got %#v", res.Users)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLCreateDuplicateEmail(t *testing.T) {
	repo, mock := newSQLRepo(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	err := repo.Create(context.Background(), domain.User{ID: "x", Name: "X", Email: "x@example.com", Role: domain.RoleUser})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestSQLUpdateMissingUser(t *testing.T) {
	repo, mock := newSQLRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET name = ?, email = ?, role = ? WHERE id = ?")).
		WithArgs("Y", "y@example.com", "USER", "gone").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT .* FROM users WHERE id = \\?").WithArgs("gone").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role", "created_at", "password_hash"}))

	err := repo.Update(context.Background(), domain.User{ID: "gone", Name: "Y", Email: "y@example.com", Role: domain.RoleUser})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLUpdateUnchangedRowIsNotAnError(t *testing.T) {
	repo, mock := newSQLRepo(t)

	mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT .* FROM users WHERE id = \\?").WithArgs("same").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role", "created_at", "password_hash"}).
			AddRow("same", "Z", "z@example.com", "USER", "2024-01-01T00:00:00.000Z", ""))

	if err := repo.Update(context.Background(), domain.User{ID: "same", Name: "Z", Email: "z@example.com", Role: domain.RoleUser}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSQLDeleteTwice(t *testing.T) {
	repo, mock := newSQLRepo(t)

	mock.ExpectExec("DELETE FROM users WHERE id = \\?").WithArgs("u1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM users WHERE id = \\?").WithArgs("u1").WillReturnResult(sqlmock.NewResult(0, 0))

	ctx := context.Background()
	if err := repo.Delete(ctx, "u1"); err != nil {
		t.Fatalf("first delete error: %v", err)
	}
	if err := repo.Delete(ctx, "u1"); !domain.IsNotFound(err) {
		t.Fatalf("second delete should be not found, got %v", err)
	}
}

func TestSQLCountByRole(t *testing.T) {
	repo, mock := newSQLRepo(t)

	mock.ExpectQuery("SELECT role, COUNT\\(\\*\\) FROM users GROUP BY role").
		WillReturnRows(sqlmock.NewRows([]string{"role", "count"}).AddRow("ADMIN", 2).AddRow("USER", 7))

	counts, err := repo.CountByRole(context.Background())
	if err != nil {
		t.Fatalf("count error: %v", err)
	}
	if counts[domain.RoleAdmin] != 2 || counts[domain.RoleUser] != 7 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestSQLListPropagatesErrors(t *testing.T) {
	repo, mock := newSQLRepo(t)

	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("connection reset"))

	if _, err := repo.List(context.Background(), domain.NewPageRequest()); err == nil {
		t.Fatalf("expected error")
	}
}

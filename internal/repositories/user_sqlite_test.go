package repositories

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	intdb "adminpanel/internal/db"
	"adminpanel/internal/domain"

	_ "modernc.org/sqlite"
)

func openSQLite(t *testing.T) SQLUserRepository {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+filepath.Join(t.TempDir(), "users.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := intdb.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !intdb.HasTable(context.Background(), db, "sqlite", "users") {
		t.Fatalf("users table missing after migrate")
	}
	return SQLUserRepository{DB: db}
}

func TestSQLiteMatchesMemoryOrdering(t *testing.T) {
	ctx := context.Background()
	sqlRepo := openSQLite(t)
	mem := NewMemoryUserRepository()

	users := []domain.User{
		{ID: "1", Name: "carol", Email: "c@example.com", Role: domain.RoleUser, CreatedAt: "2025-01-03T00:00:00.000Z"},
		{ID: "2", Name: "Alice", Email: "a@example.com", Role: domain.RoleAdmin, CreatedAt: "2025-01-01T00:00:00.000Z"},
		{ID: "3", Name: "bob", Email: "b@corp.test", Role: domain.RoleManager, CreatedAt: "2025-01-02T00:00:00.000Z"},
		{ID: "4", Name: "Bob", Email: "bob@example.com", Role: domain.RoleUser, CreatedAt: "2025-01-02T00:00:00.000Z"},
		{ID: "5", Name: "al_ice", Email: "alice!@example.com", Role: domain.RoleUser, CreatedAt: "2025-01-04T00:00:00.000Z"},
		{ID: "6", Name: "Dana 100%", Email: "dana@example.com", Role: domain.RoleUser, CreatedAt: "2025-01-05T00:00:00.000Z"},
	}
	for _, u := range users {
		if err := sqlRepo.Create(ctx, u); err != nil {
			t.Fatalf("sql create: %v", err)
		}
		if err := mem.Create(ctx, u); err != nil {
			t.Fatalf("mem create: %v", err)
		}
	}

	reqs := []domain.PageRequest{
		{PageSize: 10},
		{PageSize: 5, Sort: &domain.Sort{Field: "name", Direction: domain.SortAsc}},
		{PageSize: 5, Sort: &domain.Sort{Field: "name", Direction: domain.SortDesc}},
		{PageSize: 5, Sort: &domain.Sort{Field: "role", Direction: domain.SortAsc}},
		{PageSize: 5, Search: "EXAMPLE"},
		{Page: 1, PageSize: 5},
		{PageSize: 10, Search: "_"},
		{PageSize: 10, Search: "%"},
		{PageSize: 10, Search: "!"},
		{PageSize: 10, Search: "l_i"},
	}
	for _, req := range reqs {
		got, err := sqlRepo.List(ctx, req)
		if err != nil {
			t.Fatalf("sql list %+v: %v", req, err)
		}
		want, _ := mem.List(ctx, req)
		if got.Total != want.Total || len(got.Users) != len(want.Users) {
			t.Fatalf("%+v: sql %d/%d, memory %d/%d", req, len(got.Users), got.Total, len(want.Users), want.Total)
		}
		for i := range got.Users {
			if got.Users[i].ID != want.Users[i].ID {
				t.Fatalf("%+v: row %d sql=%s memory=%s", req, i, got.Users[i].ID, want.Users[i].ID)
			}
		}
	}
}

func TestSQLiteConstraintsAndCounts(t *testing.T) {
	ctx := context.Background()
	repo := openSQLite(t)

	u := domain.User{ID: "x", Name: "Xena", Email: "x@example.com", Role: domain.RoleUser, CreatedAt: "2025-01-01T00:00:00.000Z"}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}
	dup := u
	dup.ID = "y"
	if err := repo.Create(ctx, dup); !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	u.Name = "Xena Prime"
	if err := repo.Update(ctx, u); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := repo.Update(ctx, domain.User{ID: "missing", Name: "N", Email: "n@example.com", Role: domain.RoleUser}); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	got, err := repo.GetByEmail(ctx, "X@EXAMPLE.COM")
	if err != nil || got.Name != "Xena Prime" || got.CreatedAt != u.CreatedAt {
		t.Fatalf("get by email: %+v %v", got, err)
	}

	byRole, err := repo.CountByRole(ctx)
	if err != nil || byRole[domain.RoleUser] != 1 {
		t.Fatalf("count by role: %v %v", byRole, err)
	}

	if err := repo.Delete(ctx, "x"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, "x"); !domain.IsNotFound(err) {
		t.Fatalf("second delete: %v", err)
	}
}

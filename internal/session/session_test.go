package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"adminpanel/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

var sample = Session{
	Token: "tok-123",
	User:  domain.AuthUser{ID: "u1", Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin},
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := FileStore{Path: filepath.Join(t.TempDir(), "nested", "session.json")}

	_, err := store.Load()
	require.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, store.Save(sample))
	info, err := os.Stat(store.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, sample, got)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear(), "clearing twice is not an error")
	_, err = store.Load()
	require.ErrorIs(t, err, ErrNoSession)
}

func TestFileStoreCorruptFileIsLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := FileStore{Path: path}.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestKeyringStoreRoundTrip(t *testing.T) {
	keyring.MockInit()
	store := NewKeyringStore("tester")

	_, err := store.Load()
	require.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, store.Save(sample))
	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, sample, got)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
}

func TestManagerLifecycle(t *testing.T) {
	store := FileStore{Path: filepath.Join(t.TempDir(), "session.json")}

	m, err := NewManager(store)
	require.NoError(t, err)
	assert.False(t, m.IsAuthenticated())
	assert.Empty(t, m.Token())

	require.NoError(t, m.Set(sample))
	assert.True(t, m.IsAuthenticated())

	reloaded, err := NewManager(store)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", reloaded.Token())
	u, ok := reloaded.User()
	require.True(t, ok)
	assert.Equal(t, domain.RoleAdmin, u.Role)

	require.NoError(t, reloaded.Clear())
	assert.False(t, reloaded.IsAuthenticated())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

type brokenStore struct{}

func (brokenStore) Load() (Session, error) { return Session{}, errors.New("disk on fire") }
func (brokenStore) Save(Session) error     { return errors.New("disk on fire") }
func (brokenStore) Clear() error           { return errors.New("disk on fire") }

func TestManagerStoreFailures(t *testing.T) {
	m, err := NewManager(brokenStore{})
	require.Error(t, err)
	require.NotNil(t, m)

	require.Error(t, m.Set(sample))
	assert.False(t, m.IsAuthenticated(), "failed save must not change the session")

	require.Error(t, m.Clear())
	assert.False(t, m.IsAuthenticated())
}

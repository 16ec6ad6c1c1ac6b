package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/repository"
)

type memUsers struct {
	mu     sync.Mutex
	byName map[string]*model.User
	nextID uint64
}

func newMemUsers() *memUsers { return &memUsers{byName: map[string]*model.User{}} }

func (m *memUsers) Create(_ context.Context, username, hash, role string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byName[username]; ok {
		return 0, repository.ErrUsernameTaken
	}
	m.nextID++
	m.byName[username] = &model.User{ID: m.nextID, Username: username, PasswordHash: hash, Role: role}
	return m.nextID, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byName[username]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUsers) GetByID(_ context.Context, id uint64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newMemUsers(), bcrypt.MinCost)
	ctx := context.Background()

	u, err := svc.Register(ctx, "  alice ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, model.RoleCustomer, u.Role)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	got, err := svc.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	byID, err := svc.User(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(newMemUsers(), bcrypt.MinCost)
	ctx := context.Background()

	_, err := svc.Register(ctx, "al", "secret1")
	assert.ErrorIs(t, err, ErrUsernameTooShort)
	_, err = svc.Register(ctx, "alice", "12345")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = svc.Register(ctx, "alice", "secret1")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "alice", "другой1")
	assert.ErrorIs(t, err, repository.ErrUsernameTaken)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := NewAuthService(newMemUsers(), bcrypt.MinCost)
	ctx := context.Background()
	_, err := svc.Register(ctx, "alice", "secret1")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepository struct {
	mu     sync.Mutex
	users  map[string]*User
	nextID int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{users: make(map[string]*User)}
}

func (m *memoryRepository) Create(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
	}

	m.nextID++
	u.ID = fmt.Sprintf("user-%d", m.nextID)
	u.CreatedAt = time.Now()

	stored := *u
	m.users[u.ID] = &stored
	return nil
}

func (m *memoryRepository) GetByID(_ context.Context, id string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memoryRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memoryRepository) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &at
	return nil
}

func (m *memoryRepository) UpdatePassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (m *memoryRepository) List(_ context.Context, filter Filter) ([]*User, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*User
	for _, u := range m.users {
		if filter.Email != "" && !strings.Contains(u.Email, filter.Email) {
			continue
		}
		if filter.IsActive != nil && u.IsActive != *filter.IsActive {
			continue
		}
		copied := *u
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (m *memoryRepository) Deactivate(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.IsActive = false
	return nil
}

// plainHasher avoids bcrypt cost in unit tests.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (plainHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return errors.New("mismatch")
	}
	return nil
}

func newTestService() (Service, *memoryRepository) {
	repo := newMemoryRepository()
	return NewService(repo, plainHasher{}), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "Guest@Example.COM", "secret-password", "Pat Guest")
	require.NoError(t, err)
	assert.Equal(t, "guest@example.com", u.Email)
	assert.True(t, u.IsActive)
	assert.False(t, u.IsOperator)
	require.NotNil(t, u.FullName)
	assert.Equal(t, "Pat Guest", *u.FullName)

	logged, err := svc.Login(ctx, "guest@example.com", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "guest@example.com", "secret-password", "")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "guest@example.com", "another-password", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestRegisterShortPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), "guest@example.com", "short", "")
	assert.Error(t, err)
}

func TestLoginFailures(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "guest@example.com", "secret-password", "")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "guest@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "secret-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, repo.Deactivate(ctx, u.ID))
	_, err = svc.Login(ctx, "guest@example.com", "secret-password")
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "guest@example.com", "secret-password", "")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, u.ID, "wrong-password", "new-password-123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(ctx, u.ID, "secret-password", "short")
	assert.Error(t, err)

	require.NoError(t, svc.ChangePassword(ctx, u.ID, "secret-password", "new-password-123"))

	_, err = svc.Login(ctx, "guest@example.com", "new-password-123")
	require.NoError(t, err)
}

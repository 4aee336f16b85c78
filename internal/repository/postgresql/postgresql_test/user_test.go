package postgresql_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/willykudo/pionix/internal/domain/user"
	"github.com/willykudo/pionix/internal/repository/postgresql"
)

func createTestUser(t *testing.T, repo user.UserRepository, username, name string, role user.Role) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	u, err := repo.Create(context.Background(), user.User{
		Username:     username,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
	})
	require.NoError(t, err)
	return u
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewUserRepository(setup.DB)
	ctx := context.Background()

	created := createTestUser(t, repo, "budi", "Budi Santoso", user.RoleEmployee)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	byName, err := repo.GetByUsername(ctx, "budi")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
	assert.Equal(t, user.RoleEmployee, byName.Role)

	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewUserRepository(setup.DB)

	createTestUser(t, repo, "sari", "Sari", user.RoleEmployee)
	_, err := repo.Create(context.Background(), user.User{Username: "sari", Name: "Other", PasswordHash: "x", Role: user.RoleAdmin})
	assert.ErrorIs(t, err, user.ErrUsernameExists)
}

func TestUserRepository_ListAndGetByIDs(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewUserRepository(setup.DB)
	ctx := context.Background()

	a := createTestUser(t, repo, "admin", "Admin Toko", user.RoleAdmin)
	b := createTestUser(t, repo, "budi", "Budi", user.RoleEmployee)
	createTestUser(t, repo, "sari", "Sari", user.RoleEmployee)

	role := string(user.RoleEmployee)
	users, total, err := repo.List(ctx, user.UserFilter{Role: &role, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 2)

	got, err := repo.GetByIDs(ctx, []string{a.ID, b.ID})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestUserRepository_UpdateAndDelete(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewUserRepository(setup.DB)
	ctx := context.Background()

	u := createTestUser(t, repo, "budi", "Budi", user.RoleEmployee)
	u.Name = "Budi S."
	require.NoError(t, repo.Update(ctx, u))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Budi S.", got.Name)

	require.NoError(t, repo.Delete(ctx, u.ID))
	assert.ErrorIs(t, repo.Delete(ctx, u.ID), user.ErrUserNotFound)
}

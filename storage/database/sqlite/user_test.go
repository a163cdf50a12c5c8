package sqliterepos_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/prepclass/core/user"
	"github.com/trezcool/prepclass/storage/database/sqlite"
	"github.com/trezcool/prepclass/tests"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := sqliterepos.NewUserRepository(setup(t))
	ctx := context.Background()

	createdAt := time.Now().UTC().Truncate(time.Second)
	usr := testutil.CreateUser(t, repo, "mentor1", "password123", createdAt)

	got, err := repo.GetUserByUsername(ctx, "mentor1")
	require.NoError(t, err)
	assert.Equal(t, usr.Username, got.Username)
	assert.Equal(t, usr.PasswordHash, got.PasswordHash)
	assert.True(t, createdAt.Equal(got.CreatedAt))
	assert.True(t, got.LastLogin.IsZero())

	_, err = repo.GetUserByUsername(ctx, "nobody")
	assert.Equal(t, user.ErrNotFound, err)
}

func TestUserRepository_Uniqueness(t *testing.T) {
	repo := sqliterepos.NewUserRepository(setup(t))
	ctx := context.Background()

	testutil.CreateUser(t, repo, "mentor1", "password123")

	assert.Equal(t, user.ErrUsernameExists, repo.CheckUsernameUniqueness(ctx, "mentor1"))
	assert.NoError(t, repo.CheckUsernameUniqueness(ctx, "mentor2"))

	dup := user.User{Username: "mentor1", CreatedAt: time.Now().UTC()}
	require.NoError(t, dup.SetPassword("anotherpwd1"))
	_, err := repo.CreateUser(ctx, dup)
	assert.Equal(t, user.ErrUsernameExists, err)
}

func TestUserRepository_Update(t *testing.T) {
	repo := sqliterepos.NewUserRepository(setup(t))
	ctx := context.Background()

	usr := testutil.CreateUser(t, repo, "mentor1", "password123")

	usr.LastLogin = time.Now().UTC().Truncate(time.Second)
	updated, err := repo.UpdateUser(ctx, usr)
	require.NoError(t, err)
	assert.True(t, usr.LastLogin.Equal(updated.LastLogin))

	got, err := repo.GetUserByUsername(ctx, "mentor1")
	require.NoError(t, err)
	assert.True(t, usr.LastLogin.Equal(got.LastLogin))

	ghost := user.User{Username: "nobody", CreatedAt: time.Now().UTC()}
	_, err = repo.UpdateUser(ctx, ghost)
	assert.Equal(t, user.ErrNotFound, err)
}

func TestUserRepository_QueryAll(t *testing.T) {
	repo := sqliterepos.NewUserRepository(setup(t))

	testutil.CreateUser(t, repo, "mentor2", "password123")
	testutil.CreateUser(t, repo, "mentor1", "password123")

	users, err := repo.QueryAllUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "mentor1", users[0].Username)
	assert.Equal(t, "mentor2", users[1].Username)
}

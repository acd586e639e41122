package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/dmitrijs2005/keyvault/internal/common"
	"github.com/dmitrijs2005/keyvault/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE,
	key TEXT NOT NULL UNIQUE,
	vault TEXT NOT NULL
)`

func newSQLiteRepo(t *testing.T) (*SQLRepository, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(schema)
	require.NoError(t, err)
	return NewSQLiteRepository(db), db
}

func TestSQLite_CreateAndList(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()

	u, err := repo.Create(ctx, &models.User{Email: "u@ex.com", Key: "k1", Vault: "aa"})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)

	byKey, err := repo.ListByKey(ctx, "k1")
	require.NoError(t, err)
	require.Len(t, byKey, 1)
	assert.Equal(t, *u, byKey[0])

	byEmail, err := repo.ListByEmail(ctx, "u@ex.com")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)

	none, err := repo.ListByKey(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLite_CreateDuplicateEmail(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{Email: "u@ex.com", Key: "k1", Vault: ""})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{Email: "u@ex.com", Key: "k2", Vault: ""})
	assert.True(t, errors.Is(err, common.ErrorAlreadyExists), "got %v", err)
}

func TestSQLite_UpdateKeyAndVault(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{Email: "u@ex.com", Key: "k1", Vault: "aa"})
	require.NoError(t, err)

	n, err := repo.UpdateKeyAndVault(ctx, "k1", "k2", "bb")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	old, err := repo.ListByKey(ctx, "k1")
	require.NoError(t, err)
	assert.Empty(t, old)

	cur, err := repo.ListByKey(ctx, "k2")
	require.NoError(t, err)
	require.Len(t, cur, 1)
	assert.Equal(t, "bb", cur[0].Vault)

	n, err = repo.UpdateKeyAndVault(ctx, "k1", "k3", "cc")
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestSQLite_UpdateKeyToTakenKey(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{Email: "a@ex.com", Key: "k1", Vault: ""})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.User{Email: "b@ex.com", Key: "k2", Vault: ""})
	require.NoError(t, err)

	_, err = repo.UpdateKeyAndVault(ctx, "k1", "k2", "")
	assert.True(t, errors.Is(err, common.ErrorAlreadyExists), "got %v", err)
}

func TestSQLite_UpdateVault(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{Email: "u@ex.com", Key: "k1", Vault: "aa"})
	require.NoError(t, err)

	n, err := repo.UpdateVault(ctx, "k1", "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := repo.ListByKey(ctx, "k1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "", got[0].Vault)
}

func TestSQLite_ClosedDB(t *testing.T) {
	repo, db := newSQLiteRepo(t)
	require.NoError(t, db.Close())

	_, err := repo.ListByEmail(context.Background(), "u@ex.com")
	assert.ErrorContains(t, err, "db error")
}

package users

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/keyvault/internal/common"
	"github.com/dmitrijs2005/keyvault/internal/dbx"
	"github.com/dmitrijs2005/keyvault/internal/server/models"
)

// dialect holds the statements and error classification of one SQL engine.
type dialect struct {
	listByKey         string
	listByEmail       string
	insert            string
	updateKeyAndVault string
	updateVault       string
	isUniqueViolation func(error) bool
}

// SQLRepository implements Repository on top of a DBTX (either *sql.DB or
// *sql.Tx) for a given dialect.
type SQLRepository struct {
	db dbx.DBTX
	d  dialect
}

func scanUser(rows *sql.Rows) (models.User, error) {
	var u models.User
	err := rows.Scan(&u.ID, &u.Email, &u.Key, &u.Vault)
	return u, err
}

func (r *SQLRepository) list(ctx context.Context, query, arg string) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	users, err := dbx.CollectRows(rows, scanUser)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return users, nil
}

func (r *SQLRepository) ListByKey(ctx context.Context, key string) ([]models.User, error) {
	return r.list(ctx, r.d.listByKey, key)
}

func (r *SQLRepository) ListByEmail(ctx context.Context, email string) ([]models.User, error) {
	return r.list(ctx, r.d.listByEmail, email)
}

func (r *SQLRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	err := r.db.QueryRowContext(ctx, r.d.insert, user.Email, user.Key, user.Vault).Scan(&user.ID)
	if err != nil {
		return nil, r.writeError(err)
	}

	return user, nil
}

func (r *SQLRepository) UpdateKeyAndVault(ctx context.Context, oldKey, newKey, vault string) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.d.updateKeyAndVault, newKey, vault, oldKey)
	if err != nil {
		return 0, r.writeError(err)
	}
	return rowsAffected(res)
}

func (r *SQLRepository) UpdateVault(ctx context.Context, key, vault string) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.d.updateVault, vault, key)
	if err != nil {
		return 0, r.writeError(err)
	}
	return rowsAffected(res)
}

func (r *SQLRepository) writeError(err error) error {
	if r.d.isUniqueViolation != nil && r.d.isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", common.ErrorAlreadyExists, err)
	}
	return fmt.Errorf("db error: %w", err)
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

package users

import (
	"context"

	"github.com/dmitrijs2005/keyvault/internal/server/models"
)

// Repository is the raw SQL surface over the users table. List* methods
// return every matching row so callers can detect duplicates; Update*
// methods return the number of rows affected.
//
// Unique-constraint violations are reported as common.ErrorAlreadyExists,
// any other driver failure is wrapped as "db error: ...".
type Repository interface {
	ListByKey(ctx context.Context, key string) ([]models.User, error)
	ListByEmail(ctx context.Context, email string) ([]models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	UpdateKeyAndVault(ctx context.Context, oldKey, newKey, vault string) (int64, error)
	UpdateVault(ctx context.Context, key, vault string) (int64, error)
}

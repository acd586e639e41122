// Package services contains server-side business logic. VaultService maps
// validated requests onto the users store and reports every failure as a
// *common.APIError.
package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/keyvault/internal/common"
	"github.com/dmitrijs2005/keyvault/internal/dbx"
	"github.com/dmitrijs2005/keyvault/internal/logging"
	"github.com/dmitrijs2005/keyvault/internal/server/guards"
	"github.com/dmitrijs2005/keyvault/internal/server/models"
	"github.com/dmitrijs2005/keyvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/keyvault/internal/server/repositories/users"
)

// VaultService implements the account operations: existence checks,
// registration, key rotation and vault storage.
//
// Every check-then-write sequence runs in one transaction so a concurrent
// request cannot slip in between the check and the write.
type VaultService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewVaultService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *VaultService {
	return &VaultService{db: db, repomanager: m, log: log}
}

// UserExistsByKey reports whether exactly one user holds key.
func (s *VaultService) UserExistsByKey(ctx context.Context, key guards.AuthKey) (bool, error) {
	u, err := s.findByKey(ctx, s.repomanager.Users(s.db), key.Hex())
	if err != nil {
		return false, err
	}
	return u != nil, nil
}

// UserExistsByEmail reports whether exactly one user is registered with email.
func (s *VaultService) UserExistsByEmail(ctx context.Context, email guards.Email) (bool, error) {
	u, err := s.findByEmail(ctx, s.repomanager.Users(s.db), string(email))
	if err != nil {
		return false, err
	}
	return u != nil, nil
}

// Authenticate reports whether key belongs to a registered user.
func (s *VaultService) Authenticate(ctx context.Context, key guards.AuthKey) (bool, error) {
	return s.UserExistsByKey(ctx, key)
}

// GetVault returns the vault stored for key.
func (s *VaultService) GetVault(ctx context.Context, key guards.AuthKey) (string, error) {
	u, err := s.findByKey(ctx, s.repomanager.Users(s.db), key.Hex())
	if err != nil {
		return "", err
	}
	if u == nil {
		s.log.Warn(ctx, "get vault: user not found")
		return "", common.ErrUserNoExists
	}
	return u.Vault, nil
}

// Register creates a user. An email or key that is already taken yields
// UserExists.
func (s *VaultService) Register(ctx context.Context, email guards.Email, key guards.AuthKey, vault guards.Vault) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		existing, err := s.findByEmail(ctx, repo, string(email))
		if err != nil {
			return err
		}
		if existing != nil {
			s.log.Warn(ctx, "register: email already registered")
			return common.ErrUserExists
		}

		_, err = repo.Create(ctx, &models.User{Email: string(email), Key: key.Hex(), Vault: string(vault)})
		return s.writeError(ctx, "register", err)
	})
	return s.txError(ctx, err)
}

// UpdateKey replaces the key of the user holding oldKey together with their
// vault, as one atomic change.
func (s *VaultService) UpdateKey(ctx context.Context, oldKey guards.AuthKey, newKey guards.NewAuthKey, vault guards.Vault) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if err := s.requireUser(ctx, repo, oldKey, "update key"); err != nil {
			return err
		}

		n, err := repo.UpdateKeyAndVault(ctx, oldKey.Hex(), newKey.Hex(), string(vault))
		if err != nil {
			return s.writeError(ctx, "update key", err)
		}
		return s.checkUpdated(ctx, "update key", n)
	})
	return s.txError(ctx, err)
}

// UpdateVault replaces the vault of the user holding key.
func (s *VaultService) UpdateVault(ctx context.Context, key guards.AuthKey, vault guards.Vault) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if err := s.requireUser(ctx, repo, key, "update vault"); err != nil {
			return err
		}

		n, err := repo.UpdateVault(ctx, key.Hex(), string(vault))
		if err != nil {
			return s.writeError(ctx, "update vault", err)
		}
		return s.checkUpdated(ctx, "update vault", n)
	})
	return s.txError(ctx, err)
}

// --- helpers below ---

func (s *VaultService) findByKey(ctx context.Context, repo users.Repository, key string) (*models.User, error) {
	found, err := repo.ListByKey(ctx, key)
	if err != nil {
		s.log.Error(ctx, "lookup by key failed", "error", err)
		return nil, common.ErrDatabaseRead.Wrap(err)
	}
	return s.single(ctx, found, "key")
}

func (s *VaultService) findByEmail(ctx context.Context, repo users.Repository, email string) (*models.User, error) {
	found, err := repo.ListByEmail(ctx, email)
	if err != nil {
		s.log.Error(ctx, "lookup by email failed", "error", err)
		return nil, common.ErrDatabaseRead.Wrap(err)
	}
	return s.single(ctx, found, "email")
}

// single returns the only user in found, nil for none, and InternalError
// when the store holds duplicates.
func (s *VaultService) single(ctx context.Context, found []models.User, field string) (*models.User, error) {
	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return &found[0], nil
	default:
		s.log.Error(ctx, "duplicate users in store",
			"integrity_violation", true, "field", field, "count", len(found))
		return nil, common.ErrInternal
	}
}

func (s *VaultService) requireUser(ctx context.Context, repo users.Repository, key guards.AuthKey, op string) error {
	u, err := s.findByKey(ctx, repo, key.Hex())
	if err != nil {
		return err
	}
	if u == nil {
		s.log.Warn(ctx, op+": user not found")
		return common.ErrUserNoExists
	}
	return nil
}

func (s *VaultService) checkUpdated(ctx context.Context, op string, n int64) error {
	switch {
	case n == 1:
		return nil
	case n == 0:
		s.log.Warn(ctx, op+": no rows updated")
		return common.ErrUserNoExists
	default:
		s.log.Error(ctx, op+": more than one row updated",
			"integrity_violation", true, "count", n)
		return common.ErrInternal
	}
}

func (s *VaultService) writeError(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, common.ErrorAlreadyExists) {
		s.log.Warn(ctx, op+": unique constraint violated", "error", err)
		return common.ErrUserExists.Wrap(err)
	}
	s.log.Error(ctx, op+": write failed", "error", err)
	return common.ErrDatabaseWrite.Wrap(err)
}

// txError passes API errors through and reports transaction plumbing
// failures (begin, commit) as DatabaseWrite.
func (s *VaultService) txError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	s.log.Error(ctx, "transaction failed", "error", err)
	return common.ErrDatabaseWrite.Wrap(err)
}

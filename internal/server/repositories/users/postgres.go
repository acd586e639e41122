package users

import (
	"errors"

	"github.com/dmitrijs2005/keyvault/internal/dbx"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is SQLSTATE unique_violation.
const pgUniqueViolation = "23505"

// FOR UPDATE keeps the matched row locked until the surrounding transaction
// ends, so an existence check and the following UPDATE see the same row.
var postgresDialect = dialect{
	listByKey: `SELECT id, email, key, vault FROM users
		 WHERE key = $1
		 FOR UPDATE`,
	listByEmail: `SELECT id, email, key, vault FROM users
		 WHERE email = $1
		 FOR UPDATE`,
	insert: `INSERT INTO users (email, key, vault)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
	updateKeyAndVault: `UPDATE users SET key = $1, vault = $2
		 WHERE key = $3`,
	updateVault: `UPDATE users SET vault = $1
		 WHERE key = $2`,
	isUniqueViolation: func(err error) bool {
		var pgErr *pgconn.PgError
		return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
	},
}

// NewPostgresRepository returns a PostgreSQL-backed Repository bound to db.
func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, d: postgresDialect}
}

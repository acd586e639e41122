package users

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/keyvault/internal/dbx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLite has no row locks; write transactions are opened IMMEDIATE by the
// connection DSN instead (see repomanager).
var sqliteDialect = dialect{
	listByKey:         `SELECT id, email, key, vault FROM users WHERE key = ?`,
	listByEmail:       `SELECT id, email, key, vault FROM users WHERE email = ?`,
	insert:            `INSERT INTO users (email, key, vault) VALUES (?, ?, ?) RETURNING id`,
	updateKeyAndVault: `UPDATE users SET key = ?, vault = ? WHERE key = ?`,
	updateVault:       `UPDATE users SET vault = ? WHERE key = ?`,
	isUniqueViolation: func(err error) bool {
		var sErr *sqlite.Error
		if !errors.As(err, &sErr) {
			return false
		}
		if sErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return true
		}
		return sErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT &&
			strings.Contains(sErr.Error(), "UNIQUE constraint failed")
	},
}

// NewSQLiteRepository returns a SQLite-backed Repository bound to db.
func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, d: sqliteDialect}
}

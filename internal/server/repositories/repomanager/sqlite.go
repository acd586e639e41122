package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/keyvault/internal/dbx"
	"github.com/dmitrijs2005/keyvault/internal/server/migrations"
	"github.com/dmitrijs2005/keyvault/internal/server/repositories/users"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends SQLite-backed repositories. The DSN should
// carry _txlock=immediate so that read-then-write transactions take the
// write lock up front.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) DriverName() string {
	return "sqlite"
}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

// RunMigrations applies the embedded SQLite migrations.
func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrate(ctx, db, migrations.SQLite, "sqlite3", "sqlite")
}

func NewSQLiteRepositoryManager() *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{}
}

package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/keyvault/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestNew_SelectsManager(t *testing.T) {
	m, err := New(DriverPostgres)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.(*PostgresRepositoryManager); !ok || m.DriverName() != "pgx" {
		t.Fatalf("unexpected manager %T", m)
	}

	m, err = New(DriverSQLite)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.(*SQLiteRepositoryManager); !ok || m.DriverName() != "sqlite" {
		t.Fatalf("unexpected manager %T", m)
	}

	if _, err := New("mysql"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestPostgresUsers_ReturnsRepo(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := NewPostgresRepositoryManager()
	if u := m.Users(db); u == nil {
		t.Fatal("Users() nil")
	}
	var _ users.Repository = m.Users(db)
	var _ RepositoryManager = m
}

func TestPostgresRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "postgres" {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
}

func TestPostgresRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	err := m.RunMigrations(context.Background(), db)
	if err == nil || err.Error() != "migrate: boom" {
		t.Fatalf("expected migrate: boom, got %v", err)
	}
}

func TestOpen_PingError(t *testing.T) {
	m := &fakeDriverManager{name: "no-such-driver"}
	if _, err := Open(context.Background(), m, "x"); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

type fakeDriverManager struct {
	SQLiteRepositoryManager
	name string
}

func (f *fakeDriverManager) DriverName() string { return f.name }

package sqliteservice

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteService struct {
	db *sql.DB
}

// OpenReadOnly opens an existing database file without write access.
// A missing file is reported as os.ErrNotExist rather than silently
// creating an empty database.
func OpenReadOnly(dbPath string) (*SQLiteService, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, err
	}

	dsn := "file:" + filepath.ToSlash(dbPath) + "?mode=ro"

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &SQLiteService{db: db}, nil
}

// Close closes the DB
func (s *SQLiteService) Close() error {
	return s.db.Close()
}

// QueryCount runs a query returning a single integer column, e.g. SELECT COUNT(*).
func (s *SQLiteService) QueryCount(ctx context.Context, query string, args ...any) (uint64, error) {
	var n sql.NullInt64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	if !n.Valid {
		return 0, fmt.Errorf("count query returned NULL")
	}
	if n.Int64 < 0 {
		return 0, fmt.Errorf("count query returned negative value %d", n.Int64)
	}
	return uint64(n.Int64), nil
}

// Count opens dbPath read-only, runs query and closes the database again.
func Count(ctx context.Context, dbPath, query string, args ...any) (uint64, error) {
	svc, err := OpenReadOnly(dbPath)
	if err != nil {
		return 0, err
	}
	defer svc.Close()

	return svc.QueryCount(ctx, query, args...)
}

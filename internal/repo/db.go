// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping: driver selection
// (PostgreSQL DSN or SQLite path), SQLite PRAGMAs, connection pooling, and
// schema migration.
//
// All repository functions are context-aware and accept a *gorm.DB handle,
// making them safe for use within transactions or connection-scoped
// operations. They follow the "thin repository" approach: no business logic,
// only CRUD persistence and query composition.
//
// Error semantics:
//   - When a record is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - Unique-constraint failures are translated to ErrDuplicate.
//   - Other DB errors (connectivity etc.) are propagated raw.
package repo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/axisapp/axis-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for consistency across the service layer
// and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate indicates a unique-constraint violation (duplicate private
// chat pair, duplicate template type, replayed idempotency key).
var ErrDuplicate = errors.New("duplicate")

// Open connects to the database described by url. A value with a postgres
// scheme is treated as a PostgreSQL DSN; anything else is a SQLite file path.
func Open(url string) (*gorm.DB, error) {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return gorm.Open(postgres.Open(url), &gorm.Config{})
	}
	return openSQLite(url)
}

// openSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func openSQLite(path string) (*gorm.DB, error) {
	// Fail early if the parent directory does not exist, instead of a cryptic
	// sqlite "out of memory (14)" later.
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// AutoMigrate creates or updates the schema for every domain model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Goal{},
		&domain.GoalType{},
		&domain.CustomFieldDefinition{},
		&domain.NotificationLog{},
		&domain.NotificationSettings{},
		&domain.NotificationTemplate{},
		&domain.Chat{},
		&domain.ChatMember{},
		&domain.Message{},
		&domain.Idempotency{},
	)
}

// isUniqueViolation reports whether err is a unique-constraint failure from
// either supported driver. glebarez/sqlite surfaces plain-text errors;
// PostgreSQL uses SQLSTATE 23505.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique") ||
		strings.Contains(low, "duplicate key value") ||
		strings.Contains(low, "sqlstate 23505")
}

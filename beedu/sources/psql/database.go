package psql

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"beedu/beedu/config"
	"beedu/beedu/sources/psql/models"
	"beedu/beedu/utils/logging"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ErrNotConfigured means no connection info was provided at all; callers
// surface it as "Database not configured" instead of a connection failure.
var ErrNotConfigured = errors.New("database not configured")

// Database is a lazy connection handle. The process boots without a
// reachable database; the first store access dials and migrates, a failure
// is reported to that caller and retried on the next access, and a success
// is cached for the process lifetime.
type Database struct {
	cfg config.Config

	mu sync.Mutex
	db *gorm.DB
}

func NewDatabase(cfg config.Config) *Database {
	return &Database{cfg: cfg}
}

// FromGorm wraps an already-open handle and migrates it. Used by tests to
// run the stores against sqlite.
func FromGorm(db *gorm.DB) (*Database, error) {
	if err := migrate(db); err != nil {
		return nil, err
	}
	return &Database{db: db}, nil
}

// Get returns the shared gorm handle, connecting and migrating on first use.
func (d *Database) Get(ctx context.Context) (*gorm.DB, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.db != nil {
		return d.db, nil
	}

	dsn := d.cfg.DatabaseURL
	if dsn == "" {
		if d.cfg.DBHost == "" {
			return nil, ErrNotConfigured
		}
		dsn = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable connect_timeout=10",
			d.cfg.DBHost,
			d.cfg.DBPort,
			d.cfg.DBUser,
			d.cfg.DBPassword,
			d.cfg.DBName,
		)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := migrate(db.WithContext(ctx)); err != nil {
		return nil, err
	}

	d.db = db
	logging.AppLogger.Info("database connected")
	return d.db, nil
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.ChatRecord{}); err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}
	return nil
}

// Ping reports backing-store reachability for the status endpoint.
func (d *Database) Ping(ctx context.Context) error {
	db, err := d.Get(ctx)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Configured reports whether any connection info was provided.
func (d *Database) Configured() bool {
	return d.db != nil || d.cfg.DatabaseConfigured()
}

func (d *Database) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.db == nil {
		return
	}
	sqlDB, err := d.db.DB()
	if err != nil {
		return
	}
	sqlDB.Close()
}

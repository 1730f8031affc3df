// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package sqlstore implements the storage repositories on gorm with the
// SQLite driver. Content type, completion, due range and grade ratio
// predicates are translated into WHERE clauses.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/poiesic/satchel/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// Store owns the gorm connection shared by the repositories.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
	closed atomic.Bool
}

// StoreOption configures a Store.
type StoreOption func(*storeConfig)

type storeConfig struct {
	logger   *slog.Logger
	logLevel logger.LogLevel
}

// WithLogger sets the logger for store diagnostics.
func WithLogger(l *slog.Logger) StoreOption {
	return func(c *storeConfig) {
		c.logger = l
	}
}

// WithSQLLogging turns on gorm's statement log at the given level.
func WithSQLLogging(level logger.LogLevel) StoreOption {
	return func(c *storeConfig) {
		c.logLevel = level
	}
}

// Open connects to the SQLite database at dsn and migrates the schema.
func Open(dsn string, opts ...StoreOption) (*Store, error) {
	cfg := storeConfig{
		logger:   slog.Default(),
		logLevel: logger.Silent,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(cfg.logLevel),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if dsn == MemoryDSN {
		// Every connection to :memory: is a separate database.
		sqlDB.SetMaxOpenConns(1)
	}

	s := &Store{db: db, logger: cfg.logger}
	if err := s.migrate(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	s.logger.Debug("opened sql store", "dsn", dsn)
	return s, nil
}

// OpenMemory opens an in-memory store.
func OpenMemory(opts ...StoreOption) (*Store, error) {
	return Open(MemoryDSN, opts...)
}

func (s *Store) migrate() error {
	if err := s.db.AutoMigrate(&studentRow{}, &materialRow{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close closes the database. Closing twice is a no-op.
func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// IsClosed reports whether Close has been called.
func (s *Store) IsClosed() bool {
	return s.closed.Load()
}

// conn returns a context-bound session.
func (s *Store) conn(ctx context.Context) (*gorm.DB, error) {
	if s.closed.Load() {
		return nil, storage.ErrStorageClosed
	}
	return s.db.WithContext(ctx), nil
}

// withTx runs fn in a transaction bound to ctx.
func (s *Store) withTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	return db.Transaction(fn)
}

// translateError maps gorm errors onto the storage sentinels.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return storage.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", storage.ErrDuplicateKey, err)
	default:
		return err
	}
}

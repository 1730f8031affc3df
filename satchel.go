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


// Package satchel opens a student's record store and wires the searcher and
// the import pipeline to it according to a config.Config.
package satchel

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/satchel/config"
	"github.com/poiesic/satchel/ingestion"
	"github.com/poiesic/satchel/search"
	"github.com/poiesic/satchel/storage"
	"github.com/poiesic/satchel/storage/badger"
	"github.com/poiesic/satchel/storage/sqlstore"
)

type Database struct {
	cfg          *config.Config
	materialRepo storage.MaterialRepository
	studentRepo  storage.StudentRepository
	closeStore   func() error
	logger       *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	logger *slog.Logger
}

// WithLogger sets the logger handed to the store, the searcher and the pipeline.
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		o.logger = logger
	}
}

// NewDatabase opens the store cfg selects. A nil cfg means config.DefaultConfig().
func NewDatabase(cfg *config.Config, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db := &Database{cfg: cfg, logger: options.logger}
	var err error
	switch cfg.Store.Driver {
	case config.DriverBadger:
		err = db.openBadger()
	case config.DriverSQLite:
		err = db.openSQLite()
	default:
		err = fmt.Errorf("%w: unknown store driver %q", config.ErrInvalidConfig, cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}

	db.logger.Debug("store opened", "driver", cfg.Store.Driver, "path", cfg.Store.Path, "in_memory", cfg.Store.InMemory)
	return db, nil
}

func (db *Database) openBadger() error {
	backend, err := badger.OpenBackend(db.cfg.Store.Path, db.cfg.Store.InMemory, badger.WithLogger(db.logger))
	if err != nil {
		return err
	}

	materialRepo, studentRepo, err := badger.NewRepositories(backend)
	if err != nil {
		backend.Close()
		return err
	}

	db.materialRepo = materialRepo
	db.studentRepo = studentRepo
	db.closeStore = backend.Close
	return nil
}

func (db *Database) openSQLite() error {
	dsn := db.cfg.Store.Path
	if db.cfg.Store.InMemory {
		dsn = sqlstore.MemoryDSN
	}
	store, err := sqlstore.Open(dsn, sqlstore.WithLogger(db.logger))
	if err != nil {
		return err
	}

	db.materialRepo, db.studentRepo = sqlstore.NewRepositories(store)
	db.closeStore = store.Close
	return nil
}

func (db *Database) Close() error {
	var errs []error

	// Close repositories
	if err := db.studentRepo.Close(); err != nil {
		db.logger.Error("error closing student repository", "err", err)
		errs = append(errs, err)
	}
	if err := db.materialRepo.Close(); err != nil {
		db.logger.Error("error closing material repository", "err", err)
		errs = append(errs, err)
	}

	// Close backend
	if err := db.closeStore(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (db *Database) Config() *config.Config {
	return db.cfg
}

func (db *Database) MaterialRepository() storage.MaterialRepository {
	return db.materialRepo
}

func (db *Database) StudentRepository() storage.StudentRepository {
	return db.studentRepo
}

// NewSearcher creates a searcher tuned by the search section of the config.
// Explicit opts are applied after the config and win.
func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	s := db.cfg.Search
	base := []search.Option{
		search.WithLogger(db.logger),
		search.WithMaxResults(s.MaxResults),
		search.WithRetry(s.MaxAttempts, s.RetryDelay),
		search.WithCandidateLimit(s.CandidateLimit),
	}
	return search.NewSearcher(db.materialRepo, db.studentRepo, append(base, opts...)...)
}

// NewIngestionPipeline creates a pipeline tuned by the import section of the config.
// Caller must Release the pipeline.
func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	i := db.cfg.Import
	base := []ingestion.Option{
		ingestion.WithLogger(db.logger),
		ingestion.WithPoolSize(i.PoolSize),
		ingestion.WithBatchSize(i.BatchSize),
	}
	return ingestion.NewPipeline(db.materialRepo, db.studentRepo, append(base, opts...)...)
}

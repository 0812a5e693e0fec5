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

// Package subnav wires the subsidy store, the AI provider and the ingestion
// pipeline together behind a single Database handle.
package subnav

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/subnav/ai"
	"github.com/poiesic/subnav/ai/openai"
	"github.com/poiesic/subnav/dispatch"
	"github.com/poiesic/subnav/ingestion"
	"github.com/poiesic/subnav/source"
	"github.com/poiesic/subnav/storage"
	"github.com/poiesic/subnav/storage/badger"
	"github.com/poiesic/subnav/storage/sqlite"
)

// Driver selects the document store implementation.
type Driver string

const (
	// DriverBadger stores subsidies in an embedded BadgerDB directory.
	DriverBadger Driver = "badger"
	// DriverSQLite stores subsidies in a SQLite database file.
	DriverSQLite Driver = "sqlite"
)

// Valid reports whether d names a known driver.
func (d Driver) Valid() bool {
	return d == DriverBadger || d == DriverSQLite
}

var (
	// ErrUnknownDriver is returned for a driver other than badger or sqlite.
	ErrUnknownDriver = errors.New("unknown store driver")
	// ErrPathRequired is returned when a persistent store has no path.
	ErrPathRequired = errors.New("store path is required unless in-memory")
)

// Database owns the store and AI provider used by pipelines and dispatchers.
type Database struct {
	repos    storage.Repositories
	provider ai.AIProvider
	logger   *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	driver   Driver
	path     string
	inMemory bool
	aiConfig *ai.Config
	provider ai.AIProvider
	logger   *slog.Logger
}

// WithDriver selects the store implementation. Default is DriverBadger.
func WithDriver(driver Driver) DatabaseOption {
	return func(o *databaseOptions) {
		o.driver = driver
	}
}

// WithPath sets the store location: a directory for badger or a file for sqlite.
func WithPath(path string) DatabaseOption {
	return func(o *databaseOptions) {
		o.path = path
	}
}

// WithInMemory selects an ephemeral store that is discarded on Close.
func WithInMemory(inMemory bool) DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = inMemory
	}
}

// WithAIConfig sets the configuration used to build the OpenAI-compatible provider.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = config
	}
}

// WithAIProvider supplies a ready-made provider, bypassing WithAIConfig.
// The Database takes ownership and closes it.
func WithAIProvider(provider ai.AIProvider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewDatabase opens the store and creates the AI provider.
// Nothing is initialized implicitly: the store location and the provider
// settings come from the options alone.
// A provider supplied with WithAIProvider is closed if the store fails to open.
func NewDatabase(opts ...DatabaseOption) (*Database, error) {
	options := applyOptions(opts)

	repos, err := openRepositories(options)
	if err != nil {
		if options.provider != nil {
			if cerr := options.provider.Close(); cerr != nil {
				options.logger.Error("error closing AI provider", "err", cerr)
			}
		}
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			repos.Close()
			return nil, fmt.Errorf("creating AI provider: %w", err)
		}
	}

	logger := options.logger.With("component", "database")
	logger.Debug("database opened", "driver", options.driver, "path", options.path, "in_memory", options.inMemory)
	return &Database{
		repos:    repos,
		provider: provider,
		logger:   logger,
	}, nil
}

// OpenStore opens only the configured repositories, for callers that read
// records and never call the AI service. AI options are ignored.
func OpenStore(opts ...DatabaseOption) (storage.Repositories, error) {
	return openRepositories(applyOptions(opts))
}

func applyOptions(opts []DatabaseOption) *databaseOptions {
	options := &databaseOptions{
		driver:   DriverBadger,
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

func openRepositories(o *databaseOptions) (storage.Repositories, error) {
	if !o.driver.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, o.driver)
	}
	if !o.inMemory && o.path == "" {
		return nil, ErrPathRequired
	}

	switch o.driver {
	case DriverSQLite:
		if o.inMemory {
			return sqlite.OpenMemory()
		}
		return sqlite.Open(o.path)
	default:
		if o.inMemory {
			return badger.NewMemoryRepositories()
		}
		return badger.NewRepositories(o.path)
	}
}

// Close releases the AI provider and the store.
func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}
	if err := db.repos.Close(); err != nil {
		db.logger.Error("error closing store", "err", err)
		return err
	}
	return nil
}

// Subsidies returns the subsidy repository.
func (db *Database) Subsidies() storage.SubsidyRepository {
	return db.repos.Subsidies()
}

// Runs returns the run repository.
func (db *Database) Runs() storage.RunRepository {
	return db.repos.Runs()
}

// Provider returns the AI provider.
func (db *Database) Provider() ai.AIProvider {
	return db.provider
}

// NewPipeline creates an ingestion pipeline over this database.
func (db *Database) NewPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.repos.Subsidies(), db.provider, opts...)
}

// NewDispatcher creates a background dispatcher that runs pipeline over src
// and records runs in this database.
func (db *Database) NewDispatcher(pipeline *ingestion.Pipeline, src source.Source, opts ...dispatch.Option) (*dispatch.Dispatcher, error) {
	if pipeline == nil {
		return nil, dispatch.ErrPipelineRequired
	}
	return dispatch.New(pipeline, src, db.repos.Runs(), opts...)
}

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

package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/poiesic/subnav/core"
	"github.com/poiesic/subnav/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store implements storage.Repositories on a SQLite database through gorm.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

var (
	_ storage.Repositories      = (*Store)(nil)
	_ storage.SubsidyRepository = (*subsidyRepository)(nil)
	_ storage.RunRepository     = (*runRepository)(nil)
)

// gormLogWriter routes gorm's logger output to slog.
type gormLogWriter struct {
	logger *slog.Logger
}

func (w *gormLogWriter) Printf(msg string, items ...any) {
	w.logger.Warn(strings.TrimSpace(fmt.Sprintf(msg, items...)))
}

// Open opens (creating if needed) the SQLite database file at path and
// migrates the schema.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlite: path is required")
	}
	return open(path)
}

// OpenMemory opens a private in-memory database. Every call gets its own database.
func OpenMemory() (*Store, error) {
	return open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
}

func open(dsn string) (*Store, error) {
	log := slog.Default().With("component", "sqlite")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger: logger.New(&gormLogWriter{logger: log}, logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite serializes writers; one connection keeps the URL check and
	// insert of AddSubsidy free of "database is locked" errors.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&subsidyRow{}, &runRow{}); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return &Store{db: db, logger: log}, nil
}

// Subsidies returns the subsidy repository.
func (s *Store) Subsidies() storage.SubsidyRepository {
	return &subsidyRepository{store: s}
}

// Runs returns the run repository.
func (s *Store) Runs() storage.RunRepository {
	return &runRepository{store: s}
}

// Close closes the database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// conn returns a session bound to ctx, failing fast on a cancelled context.
func (s *Store) conn(ctx context.Context) (*gorm.DB, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.db.WithContext(ctx), nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return storage.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %w", storage.ErrDuplicateKey, err)
	case strings.Contains(err.Error(), "database is closed"):
		return storage.ErrStorageClosed
	}
	return err
}

type subsidyRepository struct {
	store *Store
}

func (r *subsidyRepository) ExistsBySourceURL(ctx context.Context, url string) (bool, error) {
	db, err := r.store.conn(ctx)
	if err != nil {
		return false, err
	}
	var n int64
	if err := db.Model(&subsidyRow{}).Where("source_url = ?", url).Count(&n).Error; err != nil {
		return false, translate(err)
	}
	return n > 0, nil
}

func (r *subsidyRepository) AddSubsidy(ctx context.Context, subsidy *core.Subsidy) error {
	if err := core.ValidateSubsidy(subsidy); err != nil {
		return err
	}
	row, err := toSubsidyRow(subsidy)
	if err != nil {
		return err
	}
	db, err := r.store.conn(ctx)
	if err != nil {
		return err
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&subsidyRow{}).Where("source_url = ?", row.SourceURL).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: source url %s", storage.ErrDuplicateKey, row.SourceURL)
		}
		return tx.Create(row).Error
	})
	return translate(err)
}

func (r *subsidyRepository) GetSubsidy(ctx context.Context, id string) (*core.Subsidy, error) {
	db, err := r.store.conn(ctx)
	if err != nil {
		return nil, err
	}
	var row subsidyRow
	if err := db.Where("id = ?", id).First(&row).Error; err != nil {
		return nil, translate(err)
	}
	return row.toSubsidy()
}

// listQuery builds the listing SQL. Tags are matched exactly against the
// elements of the JSON array column.
func listQuery(filter storage.SubsidyFilter) (string, []any, error) {
	q := sq.Select("*").From("subsidies")
	if filter.Tag != "" {
		q = q.Where(sq.Expr(
			"EXISTS (SELECT 1 FROM json_each(subsidies.industry_tags) WHERE json_each.value = ?)",
			filter.Tag))
	}
	q = q.OrderBy("deadline ASC", "name ASC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	return q.ToSql()
}

func (r *subsidyRepository) ListSubsidies(ctx context.Context, filter storage.SubsidyFilter) ([]*core.Subsidy, error) {
	query, args, err := listQuery(filter)
	if err != nil {
		return nil, err
	}
	db, err := r.store.conn(ctx)
	if err != nil {
		return nil, err
	}
	var rows []subsidyRow
	if err := db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, translate(err)
	}

	results := make([]*core.Subsidy, 0, len(rows))
	for i := range rows {
		s, err := rows[i].toSubsidy()
		if err != nil {
			return nil, err
		}
		results = append(results, s)
	}
	return results, nil
}

func (r *subsidyRepository) CountSubsidies(ctx context.Context) (int, error) {
	db, err := r.store.conn(ctx)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := db.Model(&subsidyRow{}).Count(&n).Error; err != nil {
		return 0, translate(err)
	}
	return int(n), nil
}

type runRepository struct {
	store *Store
}

func (r *runRepository) SaveRun(ctx context.Context, run *core.Run) error {
	if run.ID == "" {
		return core.ErrEmptyID
	}
	row, err := toRunRow(run)
	if err != nil {
		return err
	}
	db, err := r.store.conn(ctx)
	if err != nil {
		return err
	}
	return translate(db.Save(row).Error)
}

func (r *runRepository) GetRun(ctx context.Context, id string) (*core.Run, error) {
	db, err := r.store.conn(ctx)
	if err != nil {
		return nil, err
	}
	var row runRow
	if err := db.Where("id = ?", id).First(&row).Error; err != nil {
		return nil, translate(err)
	}
	return row.toRun()
}

func (r *runRepository) ListRuns(ctx context.Context, limit int) ([]*core.Run, error) {
	db, err := r.store.conn(ctx)
	if err != nil {
		return nil, err
	}
	q := db.Order("submitted_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []runRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, translate(err)
	}

	runs := make([]*core.Run, 0, len(rows))
	for i := range rows {
		run, err := rows[i].toRun()
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

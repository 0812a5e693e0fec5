package subnav

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/subnav/ai"
	"github.com/poiesic/subnav/ai/mock"
	"github.com/poiesic/subnav/core"
	"github.com/poiesic/subnav/source"
	"github.com/poiesic/subnav/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase(t *testing.T) {
	t.Run("badger on disk", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "test_db")
		db, err := NewDatabase(WithPath(dir))
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		assert.NotNil(t, db.Subsidies())
		assert.NotNil(t, db.Runs())
		assert.NotNil(t, db.Provider())
		assert.NotNil(t, db.logger)
	})

	t.Run("sqlite on disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "subnav.db")
		db, err := NewDatabase(WithDriver(DriverSQLite), WithPath(path))
		require.NoError(t, err)
		defer db.Close()

		_, err = os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("in memory needs no path", func(t *testing.T) {
		for _, driver := range []Driver{DriverBadger, DriverSQLite} {
			db, err := NewDatabase(WithDriver(driver), WithInMemory(true))
			require.NoError(t, err, driver)
			require.NoError(t, db.Close())
		}
	})

	t.Run("error with invalid path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(tmpFile, []byte("test"), 0644))

		db, err := NewDatabase(WithPath(tmpFile))
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("persistent store requires path", func(t *testing.T) {
		_, err := NewDatabase()
		assert.ErrorIs(t, err, ErrPathRequired)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := NewDatabase(WithDriver("postgres"), WithInMemory(true))
		assert.ErrorIs(t, err, ErrUnknownDriver)
	})

	t.Run("invalid AI config", func(t *testing.T) {
		_, err := NewDatabase(WithInMemory(true), WithAIConfig(ai.NewConfig(ai.WithModel(""))))
		assert.ErrorIs(t, err, ai.ErrModelRequired)
	})
}

func TestDatabase_Close(t *testing.T) {
	provider := mock.NewMockProvider()
	db, err := NewDatabase(WithInMemory(true), WithAIProvider(provider))
	require.NoError(t, err)

	require.NoError(t, db.Close())
	assert.True(t, provider.Closed())
}

func TestNewDatabase_ClosesProviderOnStoreError(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
	require.NoError(t, os.WriteFile(tmpFile, []byte("test"), 0644))

	provider := mock.NewMockProvider()
	_, err := NewDatabase(WithPath(tmpFile), WithAIProvider(provider))
	require.Error(t, err)
	assert.True(t, provider.Closed())

	provider = mock.NewMockProvider()
	_, err = NewDatabase(WithDriver("postgres"), WithInMemory(true), WithAIProvider(provider))
	require.ErrorIs(t, err, ErrUnknownDriver)
	assert.True(t, provider.Closed())
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	// AI settings play no part in opening the store
	repos, err := OpenStore(WithPath(dir), WithAIConfig(ai.NewConfig(ai.WithModel(""))))
	require.NoError(t, err)
	subsidy := &core.Subsidy{
		ID:            core.NewID(),
		Name:          "小規模事業者持続化補助金",
		SourceURL:     "https://example.jp/jizokuka",
		ProcessedDate: time.Now().UTC(),
		IndustryTags:  []string{"全業種対象"},
	}
	require.NoError(t, repos.Subsidies().AddSubsidy(ctx, subsidy))
	require.NoError(t, repos.Close())

	db, err := NewDatabase(WithPath(dir), WithAIProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer db.Close()
	got, err := db.Subsidies().GetSubsidy(ctx, subsidy.ID)
	require.NoError(t, err)
	assert.Equal(t, subsidy.Name, got.Name)

	_, err = OpenStore()
	assert.ErrorIs(t, err, ErrPathRequired)
}

func TestDatabase_Reopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	db, err := NewDatabase(WithPath(dir), WithAIProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	subsidy := &core.Subsidy{
		ID:            core.NewID(),
		Name:          "DX推進補助金",
		SourceURL:     "https://example.jp/dx",
		ProcessedDate: time.Now().UTC(),
		IndustryTags:  []string{"製造業"},
	}
	require.NoError(t, db.Subsidies().AddSubsidy(ctx, subsidy))
	require.NoError(t, db.Close())

	db, err = NewDatabase(WithPath(dir), WithAIProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer db.Close()

	exists, err := db.Subsidies().ExistsBySourceURL(ctx, subsidy.SourceURL)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDatabase_FactoryMethods(t *testing.T) {
	db, err := NewDatabase(WithInMemory(true), WithAIProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer db.Close()

	pipeline, err := db.NewPipeline()
	require.NoError(t, err)
	require.NotNil(t, pipeline)

	_, err = db.NewDispatcher(nil, source.NewStatic())
	assert.Error(t, err)

	d, err := db.NewDispatcher(pipeline, source.NewStatic())
	require.NoError(t, err)
	defer d.Close()

	run, err := d.Submit(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Wait(ctx))

	final, err := db.Runs().GetRun(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, core.RunStatusSucceeded, final.Status)

	subsidies, err := db.Subsidies().ListSubsidies(context.Background(), storage.SubsidyFilter{})
	require.NoError(t, err)
	assert.Len(t, subsidies, 2)
}

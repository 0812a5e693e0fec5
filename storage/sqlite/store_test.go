package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/subnav/storage"
	"github.com/poiesic/subnav/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreConformance(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Repositories {
		s, err := OpenMemory()
		require.NoError(t, err)
		return s
	})
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestStorePersistsToFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "subnav.db")

	s, err := Open(path)
	require.NoError(t, err)
	sub := storagetest.NewSubsidy("補助金", "https://example.jp/file", time.Now(), "製造業")
	require.NoError(t, s.Subsidies().AddSubsidy(ctx, sub))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Subsidies().GetSubsidy(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"製造業"}, got.IndustryTags)
}

func TestListQuery(t *testing.T) {
	t.Run("no filter", func(t *testing.T) {
		sql, args, err := listQuery(storage.SubsidyFilter{})
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM subsidies ORDER BY deadline ASC, name ASC", sql)
		assert.Empty(t, args)
	})

	t.Run("tag and limit", func(t *testing.T) {
		sql, args, err := listQuery(storage.SubsidyFilter{Tag: "製造業", Limit: 5})
		require.NoError(t, err)
		assert.Contains(t, sql, "json_each(subsidies.industry_tags)")
		assert.Contains(t, sql, "LIMIT 5")
		assert.Equal(t, []any{"製造業"}, args)
	})
}

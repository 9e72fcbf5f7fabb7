package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewilliams-labs/blendvoice/internal/adapters/sqlite"
	"github.com/ewilliams-labs/blendvoice/internal/config"
)

func TestOpenRepository(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		repo, closeRepo, err := openRepository(config.StorageConfig{
			Driver: "sqlite",
			SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "records.db")},
		})
		require.NoError(t, err)
		defer closeRepo()

		assert.IsType(t, &sqlite.Adapter{}, repo)
		rec, err := repo.Load(context.Background(), "u1")
		require.NoError(t, err)
		assert.False(t, rec.Dirty())
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, _, err := openRepository(config.StorageConfig{Driver: "postgres"})
		assert.ErrorContains(t, err, "unknown storage driver")
	})
}

func TestRootCommand(t *testing.T) {
	root := newRootCmd()

	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serve.Name())
	assert.NotNil(t, serve.Flags().Lookup("config"))
}

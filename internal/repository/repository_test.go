package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventmanager/config"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("unsupported driver", func(t *testing.T) {
		_, err := Open(ctx, &config.Config{StoreDriver: "mongo"})
		assert.Error(t, err)
	})

	t.Run("sqlite requires a path", func(t *testing.T) {
		_, err := Open(ctx, &config.Config{StoreDriver: config.StoreSQLite})
		assert.Error(t, err)
	})

	for _, cfg := range []*config.Config{
		{StoreDriver: config.StoreMemory},
		{StoreDriver: config.StoreSQLite, SQLitePath: filepath.Join(t.TempDir(), "open.db")},
	} {
		t.Run(cfg.StoreDriver, func(t *testing.T) {
			repos, err := Open(ctx, cfg)
			require.NoError(t, err)
			defer func() { assert.NoError(t, repos.Close()) }()

			n, err := repos.Users.CountByRole(ctx)
			require.NoError(t, err)
			assert.Empty(t, n)
			require.NoError(t, repos.Tx.WithinTx(ctx, func(ctx context.Context) error {
				_, err := repos.Events.Count(ctx)
				return err
			}))
		})
	}
}

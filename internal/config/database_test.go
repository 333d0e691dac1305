package config

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/wishlists/pkg/logger"
)

func openTestDatabase(t *testing.T) *Database {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database integration test")
	}

	db, err := NewDatabase(context.Background(), dsn, logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrate_ReleasesConnection(t *testing.T) {
	db := openTestDatabase(t)
	ctx := context.Background()

	require.NoError(t, db.Migrate(ctx))
	require.NoError(t, db.Migrate(ctx))

	assert.Zero(t, db.Stats().InUse, "migration connection still checked out")
	assert.NoError(t, db.PingContext(ctx), "pool closed by migrator")

	var tables int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT count(*) FROM information_schema.tables WHERE table_name IN ('wishlist', 'item')`,
	).Scan(&tables))
	assert.Equal(t, 2, tables)
}

package db_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashdeck/internal/db"
	"github.com/vytor/flashdeck/internal/testutil"
)

func TestOpen_AppliesMigrations(t *testing.T) {
	d, err := db.Open(":memory:")
	require.NoError(t, err)
	defer testutil.MustClose(t, d)

	var count int
	err = d.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	for _, table := range []string{"decks", "cards", "review_history"} {
		var name string
		err := d.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
	}

	assert.NoError(t, d.Ping(context.Background()))
}

func TestOpen_ReopenSkipsAppliedMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flashdeck.db")

	first, err := db.Open(path)
	require.NoError(t, err)
	_, err = first.Exec(`INSERT INTO decks (id, name, created_at, updated_at) VALUES ('d1', 'Kept', '', '')`)
	require.NoError(t, err)
	testutil.MustClose(t, first)

	second, err := db.Open(path)
	require.NoError(t, err)
	defer testutil.MustClose(t, second)

	var name string
	require.NoError(t, second.QueryRow(`SELECT name FROM decks WHERE id = 'd1'`).Scan(&name))
	assert.Equal(t, "Kept", name)
}

func TestOpen_ForeignKeysCascade(t *testing.T) {
	d, err := db.Open(":memory:")
	require.NoError(t, err)
	defer testutil.MustClose(t, d)

	_, err = d.Exec(`INSERT INTO decks (id, name, created_at, updated_at) VALUES ('d1', 'Deck', '', '')`)
	require.NoError(t, err)
	_, err = d.Exec(`INSERT INTO cards (id, deck_id, front, back, created_at, updated_at) VALUES ('c1', 'd1', 'f', 'b', '', '')`)
	require.NoError(t, err)

	_, err = d.Exec(`DELETE FROM decks WHERE id = 'd1'`)
	require.NoError(t, err)

	var count int
	require.NoError(t, d.QueryRow(`SELECT COUNT(*) FROM cards`).Scan(&count))
	assert.Zero(t, count)
}

func TestTx_RollsBackOnError(t *testing.T) {
	d, err := db.Open(":memory:")
	require.NoError(t, err)
	defer testutil.MustClose(t, d)

	boom := errors.New("boom")
	err = d.Tx(context.Background(), func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO decks (id, name, created_at, updated_at) VALUES ('d1', 'Deck', '', '')`); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, d.QueryRow(`SELECT COUNT(*) FROM decks`).Scan(&count))
	assert.Zero(t, count)
}

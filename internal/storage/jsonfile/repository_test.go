package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intern-watch/internal/dedup"
	"intern-watch/internal/observability"
)

func testRepository(t *testing.T) *Repository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seen.json")
	return NewRepository(path, observability.NewLogger("", "error"))
}

func TestLoadMissingFileStartsEmpty(t *testing.T) {
	repo := testRepository(t)

	state, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, state.Len())
	assert.False(t, state.IdleNotified)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	state := dedup.NewState()
	state.Add("aaa")
	state.Add("bbb")
	state.IdleNotified = true
	require.NoError(t, repo.Save(ctx, state))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.Has("aaa"))
	assert.True(t, loaded.Has("bbb"))
	assert.True(t, loaded.IdleNotified)
	assert.Equal(t, 2, loaded.Len())
}

func TestLoadUpgradesLegacyArray(t *testing.T) {
	repo := testRepository(t)
	require.NoError(t, os.WriteFile(repo.path, []byte(`["aaa","bbb"]`), 0o644))

	state, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, state.Has("aaa"))
	assert.True(t, state.Has("bbb"))
	assert.False(t, state.IdleNotified)

	// Saving writes the current object shape back.
	require.NoError(t, repo.Save(context.Background(), state))
	data, err := os.ReadFile(repo.path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"seen":["aaa","bbb"],"idle_notified":false}`, string(data))
}

func TestLoadCorruptFileFails(t *testing.T) {
	repo := testRepository(t)
	require.NoError(t, os.WriteFile(repo.path, []byte("not json"), 0o644))

	_, err := repo.Load(context.Background())
	assert.Error(t, err)
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	repo := testRepository(t)
	require.NoError(t, repo.Save(context.Background(), dedup.NewState()))

	_, err := os.Stat(repo.path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

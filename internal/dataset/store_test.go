package dataset

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lueurxax/coverage-dashboard/internal/core/errors"
)

const minimalCSV = "DEPARTMENT,MUNICIPALITY,POPULATED_CENTER\nA,B,C\n"

func TestStore_GetMemoisesByPath(t *testing.T) {
	logger := zerolog.Nop()
	store := NewStore(DefaultSchema(), &logger)
	path := writeFile(t, "data.csv", minimalCSV)

	first, err := store.Get(path)
	require.NoError(t, err)

	// Removing the file proves the second call never touches disk.
	require.NoError(t, os.Remove(path))

	second, err := store.Get(path)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.True(t, store.Loaded(path))
}

func TestStore_RelativeAndAbsolutePathsShareEntry(t *testing.T) {
	logger := zerolog.Nop()
	store := NewStore(DefaultSchema(), &logger)

	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(minimalCSV), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	abs, err := store.Get(path)
	require.NoError(t, err)

	rel, err := store.Get("data.csv")
	require.NoError(t, err)
	assert.Same(t, abs, rel)
}

func TestStore_FailedLoadIsNotCached(t *testing.T) {
	logger := zerolog.Nop()
	store := NewStore(DefaultSchema(), &logger)
	path := filepath.Join(t.TempDir(), "late.csv")

	_, err := store.Get(path)
	require.ErrorIs(t, err, apperrors.ErrLoad)
	assert.False(t, store.Loaded(path))

	require.NoError(t, os.WriteFile(path, []byte(minimalCSV), 0o600))

	tbl, err := store.Get(path)
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())
}

func TestStore_ConcurrentGet(t *testing.T) {
	logger := zerolog.Nop()
	store := NewStore(DefaultSchema(), &logger)
	path := writeFile(t, "data.csv", minimalCSV)

	const readers = 8

	var wg sync.WaitGroup

	results := make([]*Table, readers)

	for i := 0; i < readers; i++ {
		i := i

		wg.Add(1)

		go func() {
			defer wg.Done()

			tbl, err := store.Get(path)
			if err == nil {
				results[i] = tbl
			}
		}()
	}

	wg.Wait()

	for _, tbl := range results {
		require.NotNil(t, tbl)
		assert.Same(t, results[0], tbl)
	}
}

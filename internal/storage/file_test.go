package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileStorageSaveAndGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.json")
	fs, err := NewFileStorage(path, zap.NewNop())
	require.NoError(t, err)
	defer func() {
		require.NoError(t, fs.Close())
	}()

	ctx := context.Background()
	run := makeRun("run-1")
	require.NoError(t, fs.SaveRun(ctx, run))

	got, err := fs.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, run.RunID, got.RunID)
	assert.Equal(t, run.ContextID, got.ContextID)
	assert.Equal(t, run.Summary, got.Summary)
}

func TestFileStorageReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.json")
	ctx := context.Background()

	fs, err := NewFileStorage(path, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, fs.SaveRun(ctx, makeRun("run-1")))
	require.NoError(t, fs.SaveRun(ctx, makeRun("run-2")))
	require.NoError(t, fs.Close())

	// Повторное открытие загружает сохраненные запуски
	fs2, err := NewFileStorage(path, zap.NewNop())
	require.NoError(t, err)
	defer func() {
		require.NoError(t, fs2.Close())
	}()

	runs, err := fs2.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].RunID)
	assert.Equal(t, "run-1", runs[1].RunID)
}

func TestFileStorageConflict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.json")
	fs, err := NewFileStorage(path, zap.NewNop())
	require.NoError(t, err)
	defer func() {
		require.NoError(t, fs.Close())
	}()

	ctx := context.Background()
	require.NoError(t, fs.SaveRun(ctx, makeRun("run-1")))
	assert.ErrorIs(t, fs.SaveRun(ctx, makeRun("run-1")), ErrRunConflict)
}

func TestFileStorageGetNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.json")
	fs, err := NewFileStorage(path, zap.NewNop())
	require.NoError(t, err)
	defer func() {
		require.NoError(t, fs.Close())
	}()

	_, err = fs.GetRun(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestFileStorageCheckConnection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.json")
	fs, err := NewFileStorage(path, zap.NewNop())
	require.NoError(t, err)
	defer func() {
		require.NoError(t, fs.Close())
	}()

	assert.NoError(t, fs.CheckConnection(context.Background()))
}

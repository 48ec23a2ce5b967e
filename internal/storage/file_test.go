package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoBackend/internal/models/todo"
	"todoBackend/internal/storage"
)

func sampleCollection() []todo.Todo {
	due := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	createdFirst := time.Date(2026, 8, 1, 12, 0, 0, 123456789, time.UTC)
	createdSecond := time.Date(2026, 8, 2, 9, 15, 0, 0, time.UTC)

	return []todo.Todo{
		{
			ID:          uuid.New(),
			Title:       "Buy milk",
			Description: "two liters",
			Completed:   false,
			Priority:    2,
			DueDate:     &due,
			CreatedAt:   createdFirst,
			UpdatedAt:   createdFirst,
		},
		{
			ID:        uuid.New(),
			Title:     "Call mom",
			Completed: true,
			Priority:  5,
			CreatedAt: createdSecond,
			UpdatedAt: createdSecond.Add(time.Hour),
		},
	}
}

// TestFile_Load тестирует загрузку коллекции из файла
func TestFile_Load(t *testing.T) {
	t.Run("missing file means empty collection", func(t *testing.T) {
		f, err := storage.NewFile(t.TempDir(), "todos.json")
		require.NoError(t, err)

		todos, err := f.Load(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, todos)
		assert.Empty(t, todos)
	})

	t.Run("corrupted file is reported", func(t *testing.T) {
		f, err := storage.NewFile(t.TempDir(), "todos.json")
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(f.Path(), []byte("{definitely not json"), 0o644))

		todos, err := f.Load(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, storage.ErrCorrupted))
		assert.Nil(t, todos)
	})
}

// TestFile_SaveLoadRoundTrip тестирует сохранение и полное восстановление коллекции
func TestFile_SaveLoadRoundTrip(t *testing.T) {
	f, err := storage.NewFile(t.TempDir(), "todos.json")
	require.NoError(t, err)

	want := sampleCollection()
	require.NoError(t, f.SaveAll(context.Background(), want))

	got, err := f.Load(context.Background())
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("коллекция после перезагрузки отличается (-want +got):\n%s", diff)
	}
}

// TestFile_SaveAll тестирует запись коллекции на диск
func TestFile_SaveAll(t *testing.T) {
	t.Run("nil collection becomes empty json array", func(t *testing.T) {
		f, err := storage.NewFile(t.TempDir(), "todos.json")
		require.NoError(t, err)

		require.NoError(t, f.SaveAll(context.Background(), nil))

		raw, err := os.ReadFile(f.Path())
		require.NoError(t, err)
		assert.JSONEq(t, "[]", string(raw))

		todos, err := f.Load(context.Background())
		require.NoError(t, err)
		assert.Empty(t, todos)
	})

	t.Run("rewrite replaces previous contents entirely", func(t *testing.T) {
		dir := t.TempDir()
		f, err := storage.NewFile(dir, "todos.json")
		require.NoError(t, err)

		require.NoError(t, f.SaveAll(context.Background(), sampleCollection()))

		survivor := sampleCollection()[:1]
		require.NoError(t, f.SaveAll(context.Background(), survivor))

		got, err := f.Load(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, survivor[0].ID, got[0].ID)

		// Атомарная запись не оставляет временных файлов рядом.
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "todos.json", entries[0].Name())
	})
}

// TestNewFile тестирует подготовку каталога данных
func TestNewFile(t *testing.T) {
	t.Run("creates missing data dir", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "data")

		f, err := storage.NewFile(dir, "todos.json")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "todos.json"), f.Path())

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}

// TestMemory тестирует хранилище без персистентности
func TestMemory(t *testing.T) {
	m := storage.NewMemory()

	todos, err := m.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, todos)
	assert.Empty(t, todos)

	require.NoError(t, m.SaveAll(context.Background(), sampleCollection()))

	// Memory ничего не хранит: после «перезапуска» коллекция пуста.
	todos, err = m.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, todos)
}

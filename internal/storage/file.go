package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"todoBackend/internal/logger"
	"todoBackend/internal/models/todo"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"
)

// File зеркалирует коллекцию в один JSON-файл: массив записей.
// Файл переписывается целиком и атомарно после каждой мутации.
type File struct {
	path string
}

func NewFile(dataDir, fileName string) (*File, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		logger.Error("Storage: Ошибка создания каталога данных", err, zap.String("dir", dataDir))
		return nil, fmt.Errorf("создание каталога данных %s: %w", dataDir, err)
	}

	return &File{path: filepath.Join(dataDir, fileName)}, nil
}

func (f *File) Path() string {
	return f.path
}

func (f *File) Load(ctx context.Context) ([]todo.Todo, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		// отсутствие файла — это пустая коллекция, а не ошибка
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("Storage: Файл данных отсутствует, коллекция пуста", zap.String("path", f.path))
			return []todo.Todo{}, nil
		}

		logger.Error("Storage: Ошибка чтения файла данных", err, zap.String("path", f.path))
		return nil, fmt.Errorf("чтение файла данных %s: %w", f.path, err)
	}

	var todos []todo.Todo
	if err := json.Unmarshal(raw, &todos); err != nil {
		logger.Error("Storage: Файл данных не разбирается", err, zap.String("path", f.path))
		return nil, fmt.Errorf("разбор файла данных %s: %w", f.path, ErrCorrupted)
	}

	logger.Info("Storage: Данные загружены", zap.String("path", f.path), zap.Int("count", len(todos)))
	return todos, nil
}

func (f *File) SaveAll(ctx context.Context, todos []todo.Todo) error {
	if todos == nil {
		todos = []todo.Todo{}
	}

	raw, err := json.MarshalIndent(todos, "", "  ")
	if err != nil {
		return fmt.Errorf("сериализация записей: %w", err)
	}

	if err := atomic.WriteFile(f.path, bytes.NewReader(raw)); err != nil {
		logger.Error("Storage: Ошибка записи файла данных", err, zap.String("path", f.path))
		return fmt.Errorf("запись файла данных %s: %w", f.path, err)
	}

	return nil
}

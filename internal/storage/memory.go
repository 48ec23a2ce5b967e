package storage

import (
	"context"

	"todoBackend/internal/models/todo"
)

// Memory держит данные только в памяти процесса: после перезапуска
// коллекция пуста. Используется в тестах и при TODO_STORAGE_MODE=memory.
type Memory struct{}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(ctx context.Context) ([]todo.Todo, error) {
	return []todo.Todo{}, nil
}

func (m *Memory) SaveAll(ctx context.Context, todos []todo.Todo) error {
	return nil
}

package storage

import (
	"context"
	"errors"

	"todoBackend/internal/models/todo"
)

// Backend отвечает за то, где живёт коллекция записей между запусками.
// Load вызывается один раз при старте, SaveAll — после каждой мутации.
type Backend interface {
	Load(ctx context.Context) ([]todo.Todo, error)
	SaveAll(ctx context.Context, todos []todo.Todo) error
}

var ErrCorrupted = errors.New("некорректный формат файла данных")

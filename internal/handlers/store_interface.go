package handlers

import (
	"context"

	"github.com/google/uuid"

	"todoBackend/internal/models/todo"
	"todoBackend/internal/store"
)

// TodoStore — операции хранилища, которые нужны HTTP-слою.
type TodoStore interface {
	Create(context.Context, store.CreateParams) (*todo.Todo, error)
	Get(context.Context, uuid.UUID) (*todo.Todo, error)
	List(context.Context, store.ListOptions) ([]todo.Todo, store.ListMeta, error)
	Replace(context.Context, uuid.UUID, store.ReplaceParams) (*todo.Todo, error)
	Patch(context.Context, uuid.UUID, ...todo.Option) (*todo.Todo, error)
	Toggle(context.Context, uuid.UUID) (*todo.Todo, error)
	Delete(context.Context, uuid.UUID) error
}

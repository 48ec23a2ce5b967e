package dto

import (
	"time"

	"github.com/google/uuid"

	"todoBackend/internal/models/todo"
	"todoBackend/internal/store"
)

// Опциональные поля запросов — указатели: так отличается «поле не прислали»
// от «прислали нулевое значение».
type CreateTodoRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Completed   *bool      `json:"completed"`
	Priority    *int       `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

type ReplaceTodoRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Completed   *bool      `json:"completed"`
	Priority    *int       `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

type UpdateTodoRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
	Priority    *int       `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

type TodoResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    int        `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ListTodosResponse struct {
	Items []TodoResponse `json:"items"`
	Meta  store.ListMeta `json:"meta"`
}

// ToParams подставляет значения по умолчанию вместо не присланных полей.
func (r *CreateTodoRequest) ToParams() store.CreateParams {
	return store.CreateParams{
		Title:       r.Title,
		Description: stringOrDefault(r.Description, ""),
		Completed:   boolOrDefault(r.Completed, false),
		Priority:    intOrDefault(r.Priority, todo.DefaultPriority),
		DueDate:     r.DueDate,
	}
}

// ToParams для PUT: не присланные поля заменяются умолчаниями, а не
// текущими значениями записи — полная замена есть полная замена.
func (r *ReplaceTodoRequest) ToParams() store.ReplaceParams {
	return store.ReplaceParams{
		Title:       r.Title,
		Description: stringOrDefault(r.Description, ""),
		Completed:   boolOrDefault(r.Completed, false),
		Priority:    intOrDefault(r.Priority, todo.DefaultPriority),
		DueDate:     r.DueDate,
	}
}

// Options собирает опции только из присланных полей.
func (r *UpdateTodoRequest) Options() []todo.Option {
	opts := make([]todo.Option, 0, 5)
	if r.Title != nil {
		opts = append(opts, todo.WithTitle(*r.Title))
	}
	if r.Description != nil {
		opts = append(opts, todo.WithDescription(*r.Description))
	}
	if r.Completed != nil {
		opts = append(opts, todo.WithCompleted(*r.Completed))
	}
	if r.Priority != nil {
		opts = append(opts, todo.WithPriority(*r.Priority))
	}
	if r.DueDate != nil {
		opts = append(opts, todo.WithDueDate(*r.DueDate))
	}
	return opts
}

func FromTodo(t *todo.Todo) TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func FromTodoList(todos []todo.Todo) []TodoResponse {
	result := make([]TodoResponse, len(todos))
	for i := range todos {
		result[i] = FromTodo(&todos[i])
	}
	return result
}

func stringOrDefault(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}

func boolOrDefault(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func intOrDefault(value *int, fallback int) int {
	if value == nil {
		return fallback
	}
	return *value
}

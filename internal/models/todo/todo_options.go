package todo

import (
	"time"
)

// Option меняет одно поле записи при частичном обновлении.
// Проверка инвариантов остаётся за хранилищем.
type Option func(*Todo)

func WithTitle(title string) Option {
	return func(t *Todo) {
		t.Title = title
	}
}

func WithDescription(description string) Option {
	return func(t *Todo) {
		t.Description = description
	}
}

func WithCompleted(completed bool) Option {
	return func(t *Todo) {
		t.Completed = completed
	}
}

func WithPriority(priority int) Option {
	return func(t *Todo) {
		t.Priority = priority
	}
}

func WithDueDate(dueDate time.Time) Option {
	return func(t *Todo) {
		due := dueDate.UTC()
		t.DueDate = &due
	}
}

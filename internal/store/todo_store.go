package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"todoBackend/internal/logger"
	"todoBackend/internal/models/todo"
	"todoBackend/internal/storage"
)

// CreateParams — поля новой записи. Значения по умолчанию для опциональных
// полей подставляет HTTP-слой, хранилище лишь проверяет инварианты.
type CreateParams struct {
	Title       string
	Description string
	Completed   bool
	Priority    int
	DueDate     *time.Time
}

// ReplaceParams — полный набор полей для замены записи целиком.
type ReplaceParams struct {
	Title       string
	Description string
	Completed   bool
	Priority    int
	DueDate     *time.Time
}

// TodoStore хранит коллекцию в памяти и после каждой мутации целиком
// переписывает её через backend. Одна RWMutex на всю коллекцию: чтения
// идут параллельно, мутации строго по одной.
type TodoStore struct {
	mtx     sync.RWMutex
	todos   map[uuid.UUID]*todo.Todo
	order   []uuid.UUID
	backend storage.Backend
}

// New загружает коллекцию из backend и строит хранилище поверх неё.
// Ошибка загрузки фатальна: работать с непонятным состоянием нельзя.
func New(ctx context.Context, backend storage.Backend) (*TodoStore, error) {
	loaded, err := backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("загрузка данных: %w", err)
	}

	s := &TodoStore{
		todos:   make(map[uuid.UUID]*todo.Todo, len(loaded)),
		order:   make([]uuid.UUID, 0, len(loaded)),
		backend: backend,
	}
	for i := range loaded {
		record := loaded[i]
		s.todos[record.ID] = &record
		s.order = append(s.order, record.ID)
	}

	logger.Info("Хранилище инициализировано", zap.Int("count", len(s.order)))
	return s, nil
}

func (s *TodoStore) Create(ctx context.Context, params CreateParams) (*todo.Todo, error) {
	now := time.Now().UTC()
	record := &todo.Todo{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(params.Title),
		Description: params.Description,
		Completed:   params.Completed,
		Priority:    params.Priority,
		DueDate:     cloneDueDate(params.DueDate),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validate(record); err != nil {
		return nil, err
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.todos[record.ID] = record
	s.order = append(s.order, record.ID)

	if err := s.persistLocked(ctx, "create"); err != nil {
		return nil, err
	}
	return record.Clone(), nil
}

func (s *TodoStore) Get(ctx context.Context, id uuid.UUID) (*todo.Todo, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	record, ok := s.todos[id]
	if !ok {
		return nil, NewNotFound(id)
	}
	return record.Clone(), nil
}

// Replace заменяет запись целиком: не переданные клиентом поля HTTP-слой
// уже заполнил значениями по умолчанию. ID и created_at неизменны.
func (s *TodoStore) Replace(ctx context.Context, id uuid.UUID, params ReplaceParams) (*todo.Todo, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	current, ok := s.todos[id]
	if !ok {
		return nil, NewNotFound(id)
	}

	updated := &todo.Todo{
		ID:          current.ID,
		Title:       strings.TrimSpace(params.Title),
		Description: params.Description,
		Completed:   params.Completed,
		Priority:    params.Priority,
		DueDate:     cloneDueDate(params.DueDate),
		CreatedAt:   current.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := validate(updated); err != nil {
		return nil, err
	}

	s.todos[id] = updated
	if err := s.persistLocked(ctx, "replace"); err != nil {
		return nil, err
	}
	return updated.Clone(), nil
}

// Patch меняет только присланные поля. Изменения сначала применяются к
// рабочей копии: если инварианты нарушены, запись остаётся нетронутой.
func (s *TodoStore) Patch(ctx context.Context, id uuid.UUID, opts ...todo.Option) (*todo.Todo, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	current, ok := s.todos[id]
	if !ok {
		return nil, NewNotFound(id)
	}

	updated := current.Clone()
	for _, opt := range opts {
		opt(updated)
	}
	updated.Title = strings.TrimSpace(updated.Title)
	updated.UpdatedAt = time.Now().UTC()

	if err := validate(updated); err != nil {
		return nil, err
	}

	s.todos[id] = updated
	if err := s.persistLocked(ctx, "patch"); err != nil {
		return nil, err
	}
	return updated.Clone(), nil
}

// Toggle переключает флаг completed и обновляет updated_at.
func (s *TodoStore) Toggle(ctx context.Context, id uuid.UUID) (*todo.Todo, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	current, ok := s.todos[id]
	if !ok {
		return nil, NewNotFound(id)
	}

	updated := current.Clone()
	updated.Completed = !updated.Completed
	updated.UpdatedAt = time.Now().UTC()

	s.todos[id] = updated
	if err := s.persistLocked(ctx, "toggle"); err != nil {
		return nil, err
	}
	return updated.Clone(), nil
}

func (s *TodoStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.todos[id]; !ok {
		return NewNotFound(id)
	}

	delete(s.todos, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return s.persistLocked(ctx, "delete")
}

// persistLocked сбрасывает всю коллекцию в backend. Вызывается строго под
// write-локом. Ошибка записи НЕ откатывает изменения в памяти: данные в
// памяти остаются источником истины, клиент получает PERSISTENCE_ERROR.
func (s *TodoStore) persistLocked(ctx context.Context, operation string) error {
	if err := s.backend.SaveAll(ctx, s.snapshotLocked()); err != nil {
		logger.Error("Не удалось сохранить коллекцию", err, zap.String("operation", operation))
		return NewPersistenceError(operation, err)
	}
	return nil
}

// snapshotLocked возвращает копию коллекции в порядке создания записей.
func (s *TodoStore) snapshotLocked() []todo.Todo {
	snapshot := make([]todo.Todo, 0, len(s.order))
	for _, id := range s.order {
		snapshot = append(snapshot, *s.todos[id].Clone())
	}
	return snapshot
}

func cloneDueDate(due *time.Time) *time.Time {
	if due == nil {
		return nil
	}
	cp := due.UTC()
	return &cp
}

// validate проверяет инварианты записи. Дублирует проверки JSON-схем на
// уровне домена: хранилище не доверяет вызывающему коду.
func validate(record *todo.Todo) error {
	// Схемы пропускают строку из одних пробелов (minLength считает пробел),
	// по смыслу это пустой title.
	if strings.TrimSpace(record.Title) == "" {
		return NewValidationError("title", "не может быть пустым")
	}
	if record.Priority < todo.MinPriority || record.Priority > todo.MaxPriority {
		return NewValidationError("priority", fmt.Sprintf("допустимы значения от %d до %d", todo.MinPriority, todo.MaxPriority))
	}
	return nil
}

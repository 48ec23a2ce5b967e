package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoBackend/internal/models/todo"
	"todoBackend/internal/store"
)

var seedBase = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func seedTodo(title, description string, completed bool, priority int, offset time.Duration) todo.Todo {
	at := seedBase.Add(offset)
	return todo.Todo{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Completed:   completed,
		Priority:    priority,
		CreatedAt:   at,
		UpdatedAt:   at,
	}
}

func seededStore(t *testing.T, items []todo.Todo) *store.TodoStore {
	t.Helper()

	s, err := store.New(context.Background(), &stubBackend{loaded: items})
	require.NoError(t, err)
	return s
}

func titles(items []todo.Todo) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Title)
	}
	return out
}

// TestTodoStore_List_Filter тестирует фильтры поиска и статуса
func TestTodoStore_List_Filter(t *testing.T) {
	s := seededStore(t, []todo.Todo{
		seedTodo("Buy milk", "", false, 2, 0),
		seedTodo("Call mom", "remind about MILK delivery", true, 3, time.Second),
		seedTodo("Write report", "quarterly numbers", false, 5, 2*time.Second),
	})

	tests := []struct {
		name string
		opts store.ListOptions
		want []string
	}{
		{
			name: "no filters returns everything",
			opts: store.ListOptions{},
			want: []string{"Buy milk", "Call mom", "Write report"},
		},
		{
			name: "search is case-insensitive and covers description",
			opts: store.ListOptions{Search: "mIlK"},
			want: []string{"Buy milk", "Call mom"},
		},
		{
			name: "search matches description only",
			opts: store.ListOptions{Search: "quarterly"},
			want: []string{"Write report"},
		},
		{
			name: "search without matches",
			opts: store.ListOptions{Search: "zzz"},
			want: []string{},
		},
		{
			name: "completed true",
			opts: store.ListOptions{Completed: boolPtr(true)},
			want: []string{"Call mom"},
		},
		{
			name: "completed false",
			opts: store.ListOptions{Completed: boolPtr(false)},
			want: []string{"Buy milk", "Write report"},
		},
		{
			name: "search and completed combined",
			opts: store.ListOptions{Search: "milk", Completed: boolPtr(false)},
			want: []string{"Buy milk"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, meta, err := s.List(context.Background(), tt.opts)
			require.NoError(t, err)

			assert.Equal(t, tt.want, titles(items))
			assert.Equal(t, len(tt.want), meta.Total)
		})
	}
}

func boolPtr(v bool) *bool {
	return &v
}

// TestTodoStore_List_Sort тестирует сортировку по разрешённым полям
func TestTodoStore_List_Sort(t *testing.T) {
	apple := seedTodo("Apple", "", false, 2, 2*time.Second)
	banana := seedTodo("banana", "", false, 5, 0)
	banana.UpdatedAt = seedBase.Add(5 * time.Second)
	cherry := seedTodo("Cherry", "", false, 5, time.Second)

	s := seededStore(t, []todo.Todo{apple, banana, cherry})

	// У banana и Cherry одинаковый приоритет: при равенстве значений
	// записи идут по id по возрастанию независимо от направления.
	tieFirst, tieSecond := banana.Title, cherry.Title
	if cherry.ID.String() < banana.ID.String() {
		tieFirst, tieSecond = cherry.Title, banana.Title
	}

	tests := []struct {
		name    string
		sortBy  string
		sortDir string
		want    []string
	}{
		{
			name: "default is created_at ascending",
			want: []string{"banana", "Cherry", "Apple"},
		},
		{
			name:    "created_at descending",
			sortBy:  store.SortByCreatedAt,
			sortDir: store.SortDesc,
			want:    []string{"Apple", "Cherry", "banana"},
		},
		{
			name:   "title is case-insensitive",
			sortBy: store.SortByTitle,
			want:   []string{"Apple", "banana", "Cherry"},
		},
		{
			name:    "title descending",
			sortBy:  store.SortByTitle,
			sortDir: store.SortDesc,
			want:    []string{"Cherry", "banana", "Apple"},
		},
		{
			name:   "priority ascending with id tie-break",
			sortBy: store.SortByPriority,
			want:   []string{"Apple", tieFirst, tieSecond},
		},
		{
			name:    "priority descending keeps id tie-break ascending",
			sortBy:  store.SortByPriority,
			sortDir: store.SortDesc,
			want:    []string{tieFirst, tieSecond, "Apple"},
		},
		{
			name:   "updated_at ascending",
			sortBy: store.SortByUpdatedAt,
			want:   []string{"Cherry", "Apple", "banana"},
		},
		{
			name:   "unknown sort field falls back to created_at",
			sortBy: "hacker",
			want:   []string{"banana", "Cherry", "Apple"},
		},
		{
			name:    "unknown direction falls back to ascending",
			sortBy:  store.SortByTitle,
			sortDir: "sideways",
			want:    []string{"Apple", "banana", "Cherry"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, _, err := s.List(context.Background(), store.ListOptions{
				SortBy:  tt.sortBy,
				SortDir: tt.sortDir,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(items))
		})
	}

	t.Run("order is stable between calls", func(t *testing.T) {
		first, _, err := s.List(context.Background(), store.ListOptions{SortBy: store.SortByPriority})
		require.NoError(t, err)
		second, _, err := s.List(context.Background(), store.ListOptions{SortBy: store.SortByPriority})
		require.NoError(t, err)

		assert.Equal(t, titles(first), titles(second))
	})
}

// TestTodoStore_List_Pagination тестирует нарезку на страницы
func TestTodoStore_List_Pagination(t *testing.T) {
	items := make([]todo.Todo, 0, 25)
	for i := 0; i < 25; i++ {
		items = append(items, seedTodo(fmt.Sprintf("todo-%02d", i+1), "", false, 3, time.Duration(i)*time.Second))
	}
	s := seededStore(t, items)

	tests := []struct {
		name       string
		opts       store.ListOptions
		wantLen    int
		wantFirst  string
		wantMeta   store.ListMeta
		wantNoneAt bool
	}{
		{
			name:      "defaults give first twenty",
			opts:      store.ListOptions{},
			wantLen:   20,
			wantFirst: "todo-01",
			wantMeta:  store.ListMeta{Page: 1, PerPage: 20, Total: 25, Pages: 2},
		},
		{
			name:      "second page holds the remainder",
			opts:      store.ListOptions{Page: 2},
			wantLen:   5,
			wantFirst: "todo-21",
			wantMeta:  store.ListMeta{Page: 2, PerPage: 20, Total: 25, Pages: 2},
		},
		{
			name:      "custom per_page",
			opts:      store.ListOptions{Page: 3, PerPage: 10},
			wantLen:   5,
			wantFirst: "todo-21",
			wantMeta:  store.ListMeta{Page: 3, PerPage: 10, Total: 25, Pages: 3},
		},
		{
			name:      "per_page is capped",
			opts:      store.ListOptions{PerPage: 1000},
			wantLen:   25,
			wantFirst: "todo-01",
			wantMeta:  store.ListMeta{Page: 1, PerPage: 100, Total: 25, Pages: 1},
		},
		{
			name:       "page beyond range is empty, not an error",
			opts:       store.ListOptions{Page: 99, PerPage: 10},
			wantLen:    0,
			wantMeta:   store.ListMeta{Page: 99, PerPage: 10, Total: 25, Pages: 3},
			wantNoneAt: true,
		},
		{
			name:      "zero page is treated as first",
			opts:      store.ListOptions{Page: 0, PerPage: 10},
			wantLen:   10,
			wantFirst: "todo-01",
			wantMeta:  store.ListMeta{Page: 1, PerPage: 10, Total: 25, Pages: 3},
		},
		{
			name:      "negative per_page falls back to default",
			opts:      store.ListOptions{PerPage: -5},
			wantLen:   20,
			wantFirst: "todo-01",
			wantMeta:  store.ListMeta{Page: 1, PerPage: 20, Total: 25, Pages: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, meta, err := s.List(context.Background(), tt.opts)
			require.NoError(t, err)

			assert.Len(t, got, tt.wantLen)
			assert.Equal(t, tt.wantMeta, meta)
			if !tt.wantNoneAt {
				require.NotEmpty(t, got)
				assert.Equal(t, tt.wantFirst, got[0].Title)
			} else {
				assert.NotNil(t, got)
			}
		})
	}

	t.Run("pages cover the collection exactly once", func(t *testing.T) {
		seen := make(map[uuid.UUID]bool)
		for page := 1; page <= 3; page++ {
			got, _, err := s.List(context.Background(), store.ListOptions{Page: page, PerPage: 10})
			require.NoError(t, err)

			for _, item := range got {
				assert.False(t, seen[item.ID], "запись %s встретилась дважды", item.ID)
				seen[item.ID] = true
			}
		}
		assert.Len(t, seen, 25)
	})
}

// TestTodoStore_List_EmptyStore тестирует выборку из пустого хранилища
func TestTodoStore_List_EmptyStore(t *testing.T) {
	s, _ := newTestStore(t)

	got, meta, err := s.List(context.Background(), store.ListOptions{})
	require.NoError(t, err)

	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, store.ListMeta{Page: 1, PerPage: store.DefaultPerPage, Total: 0, Pages: 1}, meta)
}

// TestTodoStore_List_SnapshotIsolation тестирует независимость выборки от хранилища
func TestTodoStore_List_SnapshotIsolation(t *testing.T) {
	s := seededStore(t, []todo.Todo{seedTodo("Original", "", false, 3, 0)})

	got, _, err := s.List(context.Background(), store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, got, 1)

	got[0].Title = "mutated"

	again, _, err := s.List(context.Background(), store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, "Original", again[0].Title)
}

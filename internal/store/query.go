package store

import (
	"context"
	"sort"
	"strings"

	"todoBackend/internal/models/todo"
)

const DefaultPerPage = 20
const MaxPerPage = 100

const SortByCreatedAt = "created_at"
const SortByUpdatedAt = "updated_at"
const SortByPriority = "priority"
const SortByTitle = "title"

const SortAsc = "asc"
const SortDesc = "desc"

// ListOptions — параметры выборки. Нулевые значения означают «без фильтра»
// и значения по умолчанию для сортировки и пагинации.
type ListOptions struct {
	Search    string
	Completed *bool
	SortBy    string
	SortDir   string
	Page      int
	PerPage   int
}

// ListMeta — сведения о пагинации для ответа списка.
type ListMeta struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}

// List возвращает страницу записей: снимок коллекции фильтруется, сортируется
// и режется на страницы уже без блокировки, чтобы не задерживать писателей.
func (s *TodoStore) List(ctx context.Context, opts ListOptions) ([]todo.Todo, ListMeta, error) {
	s.mtx.RLock()
	items := s.snapshotLocked()
	s.mtx.RUnlock()

	items = filterTodos(items, opts)
	sortTodos(items, opts.SortBy, opts.SortDir)
	page, meta := paginate(items, opts.Page, opts.PerPage)
	return page, meta, nil
}

func filterTodos(items []todo.Todo, opts ListOptions) []todo.Todo {
	if opts.Completed == nil && opts.Search == "" {
		return items
	}

	needle := strings.ToLower(opts.Search)
	filtered := items[:0]
	for _, item := range items {
		if opts.Completed != nil && item.Completed != *opts.Completed {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(item.Title), needle) &&
			!strings.Contains(strings.ToLower(item.Description), needle) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// sortTodos упорядочивает записи по разрешённому полю. Неизвестное поле
// молча заменяется на created_at, неизвестное направление — на asc.
// Равные значения всегда упорядочены по id по возрастанию, чтобы порядок
// страниц был стабилен между запросами.
func sortTodos(items []todo.Todo, sortBy, sortDir string) {
	field := normalizeSortField(sortBy)
	desc := strings.ToLower(sortDir) == SortDesc

	sort.Slice(items, func(i, j int) bool {
		cmp := compareByField(field, &items[i], &items[j])
		if cmp == 0 {
			return items[i].ID.String() < items[j].ID.String()
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

func normalizeSortField(sortBy string) string {
	switch sortBy {
	case SortByCreatedAt, SortByUpdatedAt, SortByPriority, SortByTitle:
		return sortBy
	default:
		return SortByCreatedAt
	}
}

func compareByField(field string, a, b *todo.Todo) int {
	switch field {
	case SortByUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	case SortByPriority:
		switch {
		case a.Priority < b.Priority:
			return -1
		case a.Priority > b.Priority:
			return 1
		default:
			return 0
		}
	case SortByTitle:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

// paginate режет отсортированный список на страницы. Номер страницы за
// пределами диапазона даёт пустую страницу, а не ошибку.
func paginate(items []todo.Todo, page, perPage int) ([]todo.Todo, ListMeta) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	total := len(items)
	pages := (total + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}

	meta := ListMeta{
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pages,
	}

	start := (page - 1) * perPage
	if start >= total {
		return []todo.Todo{}, meta
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return items[start:end], meta
}

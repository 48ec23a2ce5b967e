package docs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"todoBackend/internal/schemas"
	"todoBackend/internal/store"
)

// Document собирает OpenAPI 3.1 документ по таблице маршрутов. В components
// попадают те же схемы, которыми проверяются входящие запросы, поэтому
// опубликованный контракт не может разойтись с фактической валидацией.
func Document() (map[string]any, error) {
	components, err := schemas.Components()
	if err != nil {
		return nil, fmt.Errorf("сборка components: %w", err)
	}

	return map[string]any{
		"openapi": "3.1.0",
		"info": map[string]any{
			"title":       "Todo API",
			"version":     "v1",
			"description": "HTTP API для управления списком задач: CRUD, фильтрация, сортировка и пагинация.",
		},
		"servers": []any{
			map[string]any{"url": "/"},
		},
		"paths": buildPaths(),
		"components": map[string]any{
			"schemas": components,
		},
	}, nil
}

// Export пишет документ в файл. Используется флагом --export-openapi, чтобы
// контракт можно было опубликовать без запуска сервера.
func Export(path string) error {
	doc, err := Document()
	if err != nil {
		return err
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("сериализация документа: %w", err)
	}
	raw = append(raw, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("создание каталога %s: %w", dir, err)
		}
	}
	if err := atomic.WriteFile(path, bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("запись документа %s: %w", path, err)
	}
	return nil
}

func buildPaths() map[string]any {
	listQueryParams := []any{
		queryParam("search", "подстрока для поиска по title и description без учёта регистра",
			map[string]any{"type": "string"}),
		queryParam("completed", "фильтр по статусу выполнения",
			map[string]any{"type": "boolean"}),
		queryParam("sort_by", "поле сортировки",
			map[string]any{
				"type":    "string",
				"enum":    []any{store.SortByCreatedAt, store.SortByUpdatedAt, store.SortByPriority, store.SortByTitle},
				"default": store.SortByCreatedAt,
			}),
		queryParam("sort_dir", "направление сортировки",
			map[string]any{
				"type":    "string",
				"enum":    []any{store.SortAsc, store.SortDesc},
				"default": store.SortAsc,
			}),
		queryParam("page", "номер страницы, начиная с 1",
			map[string]any{"type": "integer", "minimum": 1, "default": 1}),
		queryParam("per_page", "размер страницы",
			map[string]any{"type": "integer", "minimum": 1, "maximum": store.MaxPerPage, "default": store.DefaultPerPage}),
	}

	listResponseSchema := map[string]any{
		"type":     "object",
		"required": []any{"items", "meta"},
		"properties": map[string]any{
			"items": map[string]any{
				"type":  "array",
				"items": schemaRef("Todo"),
			},
			"meta": schemaRef("PaginationMeta"),
		},
	}

	healthSchema := map[string]any{
		"type":     "object",
		"required": []any{"message"},
		"properties": map[string]any{
			"message": map[string]any{"type": "string"},
		},
	}

	return map[string]any{
		"/": map[string]any{
			"get": map[string]any{
				"operationId": "healthCheck",
				"summary":     "Проверка доступности сервиса",
				"responses": map[string]any{
					"200": response("Сервис доступен", healthSchema),
				},
			},
		},
		"/todos/": map[string]any{
			"get": map[string]any{
				"operationId": "listTodos",
				"summary":     "Список записей с фильтрацией, сортировкой и пагинацией",
				"parameters":  listQueryParams,
				"responses": map[string]any{
					"200": response("Страница записей", listResponseSchema),
					"400": errResponse("Неверные параметры запроса"),
				},
			},
			"post": map[string]any{
				"operationId": "createTodo",
				"summary":     "Создание записи",
				"requestBody": requestBody("TodoCreate"),
				"responses": map[string]any{
					"201": response("Созданная запись", schemaRef("Todo")),
					"400": errResponse("Неверное тело запроса"),
					"415": errResponse("Неверный Content-Type"),
					"422": errResponse("Тело запроса не соответствует схеме"),
					"500": errResponse("Ошибка сохранения данных"),
				},
			},
		},
		"/todos/{id}": map[string]any{
			"parameters": []any{pathIDParam()},
			"get": map[string]any{
				"operationId": "getTodo",
				"summary":     "Получение записи по id",
				"responses": map[string]any{
					"200": response("Запись", schemaRef("Todo")),
					"400": errResponse("Неверный id"),
					"404": errResponse("Запись не найдена"),
				},
			},
			"put": map[string]any{
				"operationId": "replaceTodo",
				"summary":     "Полная замена записи",
				"requestBody": requestBody("TodoReplace"),
				"responses": map[string]any{
					"200": response("Заменённая запись", schemaRef("Todo")),
					"400": errResponse("Неверный id или тело запроса"),
					"404": errResponse("Запись не найдена"),
					"415": errResponse("Неверный Content-Type"),
					"422": errResponse("Тело запроса не соответствует схеме"),
					"500": errResponse("Ошибка сохранения данных"),
				},
			},
			"patch": map[string]any{
				"operationId": "updateTodo",
				"summary":     "Частичное обновление записи",
				"requestBody": requestBody("TodoUpdate"),
				"responses": map[string]any{
					"200": response("Обновлённая запись", schemaRef("Todo")),
					"400": errResponse("Неверный id или тело запроса"),
					"404": errResponse("Запись не найдена"),
					"415": errResponse("Неверный Content-Type"),
					"422": errResponse("Тело запроса не соответствует схеме"),
					"500": errResponse("Ошибка сохранения данных"),
				},
			},
			"delete": map[string]any{
				"operationId": "deleteTodo",
				"summary":     "Удаление записи",
				"responses": map[string]any{
					"204": response("Запись удалена", nil),
					"400": errResponse("Неверный id"),
					"404": errResponse("Запись не найдена"),
					"500": errResponse("Ошибка сохранения данных"),
				},
			},
		},
		"/todos/{id}/toggle": map[string]any{
			"parameters": []any{pathIDParam()},
			"patch": map[string]any{
				"operationId": "toggleTodo",
				"summary":     "Переключение статуса выполнения",
				"responses": map[string]any{
					"200": response("Запись с новым статусом", schemaRef("Todo")),
					"400": errResponse("Неверный id"),
					"404": errResponse("Запись не найдена"),
					"500": errResponse("Ошибка сохранения данных"),
				},
			},
		},
	}
}

func schemaRef(name string) map[string]any {
	return map[string]any{"$ref": "#/components/schemas/" + name}
}

func response(description string, schema any) map[string]any {
	resp := map[string]any{"description": description}
	if schema != nil {
		resp["content"] = map[string]any{
			"application/json": map[string]any{"schema": schema},
		}
	}
	return resp
}

func errResponse(description string) map[string]any {
	return response(description, schemaRef("Error"))
}

func requestBody(schemaName string) map[string]any {
	return map[string]any{
		"required": true,
		"content": map[string]any{
			"application/json": map[string]any{"schema": schemaRef(schemaName)},
		},
	}
}

func queryParam(name, description string, schema map[string]any) map[string]any {
	return map[string]any{
		"name":        name,
		"in":          "query",
		"required":    false,
		"description": description,
		"schema":      schema,
	}
}

func pathIDParam() map[string]any {
	return map[string]any{
		"name":        "id",
		"in":          "path",
		"required":    true,
		"description": "идентификатор записи",
		"schema":      map[string]any{"type": "string", "format": "uuid"},
	}
}

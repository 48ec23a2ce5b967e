package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"todoBackend/internal/handlers/dto"
	"todoBackend/internal/logger"
	"todoBackend/internal/schemas"
	"todoBackend/internal/store"
)

type TodoHandler struct {
	Store TodoStore
}

func NewTodoHandler(todoStore TodoStore) TodoHandler {
	return TodoHandler{
		Store: todoStore,
	}
}

func (h *TodoHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {

	logger.HttpRequestInfo(r, "HTTP: Health check")

	responseWithJSON(w, http.StatusOK, map[string]string{"message": "Healthy"})
}

func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	query := r.URL.Query()
	opts := store.ListOptions{
		Search:  query.Get("search"),
		SortBy:  query.Get("sort_by"),
		SortDir: query.Get("sort_dir"),
	}

	if raw := query.Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {

			logger.Warn("HTTP: Неверное значение параметра",
				zap.String("query", "completed"),
				zap.String("received", raw),
				zap.String("client_ip", r.RemoteAddr))

			responseWithError(w, http.StatusBadRequest, codeBadRequest, "неверное значение completed: "+raw)
			return
		}
		opts.Completed = &completed
	}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {

			logger.Warn("HTTP: Неверное значение параметра",
				zap.String("query", "page"),
				zap.String("received", raw),
				zap.String("client_ip", r.RemoteAddr))

			responseWithError(w, http.StatusBadRequest, codeBadRequest, "неверное значение page: "+raw)
			return
		}
		opts.Page = page
	}

	if raw := query.Get("per_page"); raw != "" {
		perPage, err := strconv.Atoi(raw)
		if err != nil {

			logger.Warn("HTTP: Неверное значение параметра",
				zap.String("query", "per_page"),
				zap.String("received", raw),
				zap.String("client_ip", r.RemoteAddr))

			responseWithError(w, http.StatusBadRequest, codeBadRequest, "неверное значение per_page: "+raw)
			return
		}
		opts.PerPage = perPage
	}

	logger.Info("HTTP: Вызов хранилища для получения списка")

	items, meta, err := h.Store.List(r.Context(), opts)
	if err != nil {
		if handleStoreError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка хранилища", err)
		responseWithError(w, http.StatusInternalServerError, codeInternal, "внутренняя ошибка сервера")
		return
	}

	logger.Info("HTTP_OUT: Список получен",
		zap.Int("count", len(items)),
		zap.Int("total", meta.Total),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.ListTodosResponse{
		Items: dto.FromTodoList(items),
		Meta:  meta,
	})
}

func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {

		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnsupportedMediaType, codeUnsupportedMedia, "Content-Type должен быть application/json")
		return
	}

	var request dto.CreateTodoRequest
	if !decodeBody(w, r, schemas.ValidateCreate, &request) {
		return
	}

	logger.Info("HTTP: Вызов хранилища для создания записи")

	created, err := h.Store.Create(r.Context(), request.ToParams())
	if err != nil {
		if handleStoreError(w, err) {
			return
		}

		logger.Error("HTTP: Ошибка хранилища", err,
			zap.String("operation", "create_todo"),
			zap.String("client_ip", r.RemoteAddr),
			zap.Duration("ms", time.Since(start)))

		responseWithError(w, http.StatusInternalServerError, codeInternal, "внутренняя ошибка сервера")
		return
	}

	logger.Info("HTTP_OUT: Запись создана",
		zap.String("todo_id", created.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, dto.FromTodo(created))
}

func (h *TodoHandler) GetTodoByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := todoIDFromRequest(w, r)
	if !ok {
		return
	}

	logger.Info("HTTP: Вызов хранилища для получения записи")

	item, err := h.Store.Get(r.Context(), id)
	if err != nil {
		if handleStoreError(w, err) {
			return
		}

		logger.Error("HTTP: Ошибка хранилища", err,
			zap.String("operation", "get_todo"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, codeInternal, "внутренняя ошибка сервера")
		return
	}

	logger.Info("HTTP_OUT: Запись получена",
		zap.String("todo_id", item.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTodo(item))
}

func (h *TodoHandler) ReplaceTodoByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := todoIDFromRequest(w, r)
	if !ok {
		return
	}

	if !checkContentType(r, "application/json") {

		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnsupportedMediaType, codeUnsupportedMedia, "Content-Type должен быть application/json")
		return
	}

	var request dto.ReplaceTodoRequest
	if !decodeBody(w, r, schemas.ValidateReplace, &request) {
		return
	}

	logger.Info("HTTP: Вызов хранилища для полной замены записи")

	updated, err := h.Store.Replace(r.Context(), id, request.ToParams())
	if err != nil {
		if handleStoreError(w, err) {
			return
		}

		logger.Error("HTTP: Ошибка хранилища", err,
			zap.String("operation", "replace_todo"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, codeInternal, "внутренняя ошибка сервера")
		return
	}

	logger.Info("HTTP_OUT: Запись заменена",
		zap.String("todo_id", updated.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTodo(updated))
}

func (h *TodoHandler) UpdateTodoByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := todoIDFromRequest(w, r)
	if !ok {
		return
	}

	if !checkContentType(r, "application/json") {

		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnsupportedMediaType, codeUnsupportedMedia, "Content-Type должен быть application/json")
		return
	}

	var request dto.UpdateTodoRequest
	if !decodeBody(w, r, schemas.ValidateUpdate, &request) {
		return
	}

	logger.Info("HTTP: Вызов хранилища для частичного обновления")

	updated, err := h.Store.Patch(r.Context(), id, request.Options()...)
	if err != nil {
		if handleStoreError(w, err) {
			return
		}

		logger.Error("HTTP: Ошибка хранилища", err,
			zap.String("operation", "update_todo"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, codeInternal, "внутренняя ошибка сервера")
		return
	}

	logger.Info("HTTP_OUT: Запись обновлена",
		zap.String("todo_id", updated.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTodo(updated))
}

func (h *TodoHandler) ToggleTodoByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := todoIDFromRequest(w, r)
	if !ok {
		return
	}

	logger.Info("HTTP: Вызов хранилища для переключения статуса")

	updated, err := h.Store.Toggle(r.Context(), id)
	if err != nil {
		if handleStoreError(w, err) {
			return
		}

		logger.Error("HTTP: Ошибка хранилища", err,
			zap.String("operation", "toggle_todo"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, codeInternal, "внутренняя ошибка сервера")
		return
	}

	logger.Info("HTTP_OUT: Статус переключён",
		zap.String("todo_id", updated.ID.String()),
		zap.Bool("completed", updated.Completed),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTodo(updated))
}

func (h *TodoHandler) DeleteTodoByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := todoIDFromRequest(w, r)
	if !ok {
		return
	}

	logger.Info("HTTP: Вызов хранилища для удаления записи")

	if err := h.Store.Delete(r.Context(), id); err != nil {
		if handleStoreError(w, err) {
			return
		}

		logger.Error("HTTP: Ошибка хранилища", err,
			zap.String("operation", "delete_todo"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, codeInternal, "внутренняя ошибка сервера")
		return
	}

	logger.Info("HTTP_OUT: Запись удалена",
		zap.String("todo_id", id.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	responseWithJSON(w, http.StatusNoContent, nil)
}

// todoIDFromRequest достаёт id из пути. При false ответ 400 уже записан.
func todoIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idParam := chi.URLParam(r, "id")
	id, err := uuid.Parse(idParam)
	if err != nil {

		logger.Warn("HTTP: Не удалось получить id",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, codeBadRequest, "не удалось получить id: "+err.Error())
		return uuid.Nil, false
	}

	if id == uuid.Nil {

		logger.Warn("HTTP: Неверное значение id",
			zap.String("error", "nil id"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, codeBadRequest, "id не может быть пустым")
		return uuid.Nil, false
	}

	return id, true
}

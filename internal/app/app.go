package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"todoBackend/internal/config"
	"todoBackend/internal/handlers"
	"todoBackend/internal/logger"
	"todoBackend/internal/middleware"
	"todoBackend/internal/storage"
	"todoBackend/internal/store"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config    *config.Config
	server    *http.Server
	router    *chi.Mux
	store     *store.TodoStore
	shutdowns []func() // функции для graceful shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

// Init поднимает все зависимости в порядке: логгер, хранение, хранилище,
// обработчики, маршруты. Ошибка на любом шаге фатальна — полупустое
// приложение запускать нельзя.
func (a *App) Init(ctx context.Context) error {

	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	backend, err := a.buildBackend()
	if err != nil {
		return err
	}

	todoStore, err := store.New(ctx, backend)
	if err != nil {
		return fmt.Errorf("инициализация хранилища: %w", err)
	}
	a.store = todoStore

	todoHandler := handlers.NewTodoHandler(a.store)
	docsHandler, err := handlers.NewDocsHandler()
	if err != nil {
		return fmt.Errorf("инициализация документации: %w", err)
	}

	a.router = a.buildRouter(&todoHandler, docsHandler)
	a.server = &http.Server{
		Addr:    a.config.GetServerAddr(),
		Handler: a.router,
	}

	return nil
}

func (a *App) buildBackend() (storage.Backend, error) {
	switch a.config.Storage.Mode {
	case config.ModeMemory:
		logger.Info("Режим хранения: память, данные не переживут перезапуск")
		return storage.NewMemory(), nil
	case config.ModeFile:
		backend, err := storage.NewFile(a.config.Storage.DataDir, a.config.Storage.DataFile)
		if err != nil {
			return nil, fmt.Errorf("инициализация файлового хранения: %w", err)
		}
		logger.Info("Режим хранения: файл", zap.String("path", backend.Path()))
		return backend, nil
	default:
		return nil, fmt.Errorf("неизвестный режим хранения: %s", a.config.Storage.Mode)
	}
}

func (a *App) buildRouter(todoHandler *handlers.TodoHandler, docsHandler *handlers.DocsHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Timeout(a.config.RequestTimeout()))
	r.Use(middleware.RateLimit(a.config.Server.RateLimit))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/", todoHandler.HealthCheck)

	r.Route("/todos", func(r chi.Router) {
		r.Get("/", todoHandler.ListTodos)   // GET /todos/
		r.Post("/", todoHandler.CreateTodo) // POST /todos/

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", todoHandler.GetTodoByID)        // GET /todos/{id}
			r.Put("/", todoHandler.ReplaceTodoByID)    // PUT /todos/{id}
			r.Patch("/", todoHandler.UpdateTodoByID)   // PATCH /todos/{id}
			r.Delete("/", todoHandler.DeleteTodoByID)  // DELETE /todos/{id}

			r.Patch("/toggle", todoHandler.ToggleTodoByID) // PATCH /todos/{id}/toggle
		})
	})

	r.Route("/docs", func(r chi.Router) {
		r.Get("/", docsHandler.SwaggerUI)            // GET /docs
		r.Get("/openapi.json", docsHandler.OpenAPISpec) // GET /docs/openapi.json
	})

	return r
}

// Run запускает HTTP-сервер и блокируется до отмены контекста или ошибки
// сервера. Завершение мягкое: активным запросам даётся shutdownTimeout.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		logger.Info("Сервер запущен", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http-сервер: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Получен сигнал остановки, завершаем работу...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("остановка сервера: %w", err)
	}

	logger.Info("Сервер остановлен")
	return nil
}

// Close выполняет shutdown-функции в обратном порядке регистрации.
func (a *App) Close() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}

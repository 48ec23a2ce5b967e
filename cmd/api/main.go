package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"todoBackend/internal/app"
	"todoBackend/internal/config"
	"todoBackend/internal/docs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := pflag.String("config", "config.yml", "путь к файлу конфигурации")
	exportOpenAPI := pflag.String("export-openapi", "", "выгрузить OpenAPI документ в указанный файл и выйти")
	pflag.Parse()

	// Выгрузка контракта не требует ни конфигурации, ни запуска сервера.
	if *exportOpenAPI != "" {
		if err := docs.Export(*exportOpenAPI); err != nil {
			return fmt.Errorf("выгрузка OpenAPI документа: %w", err)
		}
		return nil
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("загрузка конфигурации: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg)
	if err := application.Init(ctx); err != nil {
		return fmt.Errorf("инициализация приложения: %w", err)
	}
	defer application.Close()

	return application.Run(ctx)
}

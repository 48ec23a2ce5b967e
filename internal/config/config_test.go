package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoBackend/internal/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoad_Defaults тестирует значения по умолчанию
func TestLoad_Defaults(t *testing.T) {
	t.Run("without config path", func(t *testing.T) {
		cfg, err := config.Load("")
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.Equal(t, 30, cfg.Server.TimeoutSeconds)
		assert.Equal(t, config.ModeFile, cfg.Storage.Mode)
		assert.Equal(t, "./data", cfg.Storage.DataDir)
		assert.Equal(t, "todos.json", cfg.Storage.DataFile)
		assert.True(t, cfg.Logging.Development)
	})

	t.Run("missing config file is not an error", func(t *testing.T) {
		cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yml"))
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Server.Port)
	})
}

// TestLoad_ConfigFile тестирует чтение config.yml
func TestLoad_ConfigFile(t *testing.T) {
	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeConfigFile(t, `
server:
  port: "9090"
  rate_limit: 5
storage:
  mode: memory
logging:
  development: false
`)

		cfg, err := config.Load(path)
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 5, cfg.Server.RateLimit)
		assert.Equal(t, config.ModeMemory, cfg.Storage.Mode)
		assert.False(t, cfg.Logging.Development)

		// Не указанные в файле ключи остаются на умолчаниях.
		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, 30, cfg.Server.TimeoutSeconds)
	})

	t.Run("blank storage paths fall back to defaults", func(t *testing.T) {
		path := writeConfigFile(t, `
storage:
  data_dir: ""
  data_file: "  "
`)

		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "./data", cfg.Storage.DataDir)
		assert.Equal(t, "todos.json", cfg.Storage.DataFile)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := writeConfigFile(t, "server: [broken")

		_, err := config.Load(path)
		assert.Error(t, err)
	})
}

// TestLoad_Env тестирует переменные окружения
func TestLoad_Env(t *testing.T) {
	t.Run("automatic TODO_ prefix", func(t *testing.T) {
		t.Setenv("TODO_SERVER_PORT", "7070")
		t.Setenv("TODO_SERVER_RATE_LIMIT", "7")

		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, "7070", cfg.Server.Port)
		assert.Equal(t, 7, cfg.Server.RateLimit)
	})

	t.Run("historic storage variables", func(t *testing.T) {
		t.Setenv("TODO_STORAGE_MODE", "memory")
		t.Setenv("TODO_DATA_DIR", "/var/lib/todo")
		t.Setenv("TODO_DATA_FILE", "db.json")

		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, config.ModeMemory, cfg.Storage.Mode)
		assert.Equal(t, "/var/lib/todo", cfg.Storage.DataDir)
		assert.Equal(t, "db.json", cfg.Storage.DataFile)
	})

	t.Run("env beats config file", func(t *testing.T) {
		path := writeConfigFile(t, `
server:
  port: "9090"
`)
		t.Setenv("TODO_SERVER_PORT", "6060")

		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "6060", cfg.Server.Port)
	})

	t.Run("mode is normalized", func(t *testing.T) {
		t.Setenv("TODO_STORAGE_MODE", "  FILE  ")

		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, config.ModeFile, cfg.Storage.Mode)
	})

	t.Run("unknown mode is rejected", func(t *testing.T) {
		t.Setenv("TODO_STORAGE_MODE", "postgres")

		_, err := config.Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "неизвестный режим хранения")
	})
}

// TestConfig_Helpers тестирует производные значения конфигурации
func TestConfig_Helpers(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:           "127.0.0.1",
			Port:           "8081",
			TimeoutSeconds: 15,
		},
	}

	assert.Equal(t, "127.0.0.1:8081", cfg.GetServerAddr())
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout())
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const ModeFile = "file"
const ModeMemory = "memory"

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type ServerConfig struct {
	Host           string `mapstructure:"host"`
	Port           string `mapstructure:"port"`
	RateLimit      int    `mapstructure:"rate_limit"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type StorageConfig struct {
	Mode     string `mapstructure:"mode"`
	DataDir  string `mapstructure:"data_dir"`
	DataFile string `mapstructure:"data_file"`
}

type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load собирает конфигурацию: переменные окружения перекрывают config.yml,
// config.yml перекрывает значения по умолчанию. Файл необязателен —
// сервис запускается и вовсе без него.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.rate_limit", 100)
	v.SetDefault("server.timeout_seconds", 30)
	v.SetDefault("storage.mode", ModeFile)
	v.SetDefault("storage.data_dir", "./data")
	v.SetDefault("storage.data_file", "todos.json")
	v.SetDefault("logging.development", true)

	v.SetEnvPrefix("TODO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Исторические имена переменных: они не совпадают с автоматической
	// схемой TODO_<секция>_<ключ>, поэтому привязаны явно.
	if err := v.BindEnv("storage.mode", "TODO_STORAGE_MODE"); err != nil {
		return nil, fmt.Errorf("привязка переменных окружения: %w", err)
	}
	if err := v.BindEnv("storage.data_dir", "TODO_DATA_DIR"); err != nil {
		return nil, fmt.Errorf("привязка переменных окружения: %w", err)
	}
	if err := v.BindEnv("storage.data_file", "TODO_DATA_FILE"); err != nil {
		return nil, fmt.Errorf("привязка переменных окружения: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !os.IsNotExist(err) && !errors.As(err, &notFound) {
				return nil, fmt.Errorf("чтение %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации: %w", err)
	}

	cfg.Storage.Mode = strings.ToLower(strings.TrimSpace(cfg.Storage.Mode))
	if cfg.Storage.Mode != ModeFile && cfg.Storage.Mode != ModeMemory {
		return nil, fmt.Errorf("неизвестный режим хранения %q: допустимы %q и %q", cfg.Storage.Mode, ModeFile, ModeMemory)
	}

	if strings.TrimSpace(cfg.Storage.DataDir) == "" {
		cfg.Storage.DataDir = "./data"
	}
	if strings.TrimSpace(cfg.Storage.DataFile) == "" {
		cfg.Storage.DataFile = "todos.json"
	}

	return &cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.TimeoutSeconds) * time.Second
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации приложения.
type Config struct {
	World   WorldConfig   `yaml:"world"`
	Capture CaptureConfig `yaml:"capture"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
}

// WorldConfig - параметры измерения, которые не передаются в пакетах.
type WorldConfig struct {
	Height int `yaml:"height"`
	// NoSkyLight - измерение без небесного света (ад).
	NoSkyLight bool `yaml:"no_sky_light"`
}

type CaptureConfig struct {
	Path string `yaml:"path"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level   string `yaml:"level"`
	Console *bool  `yaml:"console"`
}

// GetWorldHeight возвращает высоту мира с поддержкой fallback значений
func (w *WorldConfig) GetWorldHeight() int {
	return getIntWithEnvFallback(w.Height, "PROTOBRIDGE_WORLD_HEIGHT", 256)
}

// GetPath возвращает каталог записи кадров
func (c *CaptureConfig) GetPath() string {
	return getStringWithEnvFallback(c.Path, "PROTOBRIDGE_CAPTURE_PATH", "data")
}

// GetAddr возвращает адрес эндпоинта метрик; пустая строка - метрики выключены
func (m *MetricsConfig) GetAddr() string {
	return getStringWithEnvFallback(m.Addr, "PROTOBRIDGE_METRICS_ADDR", "")
}

// GetLevel возвращает уровень логирования
func (l *LogConfig) GetLevel() string {
	return getStringWithEnvFallback(l.Level, "PROTOBRIDGE_LOG_LEVEL", "info")
}

// IsConsole сообщает, писать ли логи в человекочитаемом виде (по умолчанию да)
func (l *LogConfig) IsConsole() bool {
	if l.Console == nil {
		return true
	}
	return *l.Console
}

// getIntWithEnvFallback возвращает значение с приоритетом: config -> env -> default
func getIntWithEnvFallback(configValue int, envVar string, defaultValue int) int {
	if configValue > 0 {
		return configValue
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		if v, err := strconv.Atoi(envVal); err == nil && v > 0 {
			return v
		}
	}
	return defaultValue
}

func getStringWithEnvFallback(configValue, envVar, defaultValue string) string {
	if configValue != "" {
		return configValue
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		return envVal
	}
	return defaultValue
}

// Validate проверяет значения, заданные явно.
func (c *Config) Validate() error {
	if h := c.World.GetWorldHeight(); h%16 != 0 || h > 4064 {
		return fmt.Errorf("высота мира %d должна быть кратна 16 и не больше 4064", h)
	}
	return nil
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV PROTOBRIDGE_CONFIG или возвращает
// пустую конфигурацию со значениями по умолчанию.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("PROTOBRIDGE_CONFIG")
		if path == "" {
			return &Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения конфигурации: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

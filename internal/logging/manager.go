package logging

import (
	"fmt"
	"sort"
	"sync"
)

// LoggerManager управляет логгерами компонентов
type LoggerManager struct {
	mu      sync.RWMutex
	loggers map[string]*Logger
	levels  map[string]LogLevel
}

var (
	globalManager *LoggerManager
	managerOnce   sync.Once
)

// GetLoggerManager возвращает глобальный менеджер логгеров
func GetLoggerManager() *LoggerManager {
	managerOnce.Do(func() {
		globalManager = &LoggerManager{
			loggers: make(map[string]*Logger),
			levels:  make(map[string]LogLevel),
		}
	})
	return globalManager
}

// GetLogger возвращает логгер для компонента, создавая его при необходимости
func (lm *LoggerManager) GetLogger(component string) *Logger {
	lm.mu.RLock()
	if logger, exists := lm.loggers[component]; exists {
		lm.mu.RUnlock()
		return logger
	}
	lm.mu.RUnlock()

	lm.mu.Lock()
	defer lm.mu.Unlock()

	// Проверяем еще раз на случай гонки
	if logger, exists := lm.loggers[component]; exists {
		return logger
	}
	logger := lm.build(component)
	lm.loggers[component] = logger
	return logger
}

// build создаёт логгер с учётом уровня компонента. Вызывается под lm.mu.
func (lm *LoggerManager) build(component string) *Logger {
	l := NewLogger(component)
	if level, ok := lm.levels[component]; ok {
		l.zl = l.zl.Level(level.zerolog())
	}
	return l
}

// rebuild пересоздаёт выданные логгеры после смены корневого.
func (lm *LoggerManager) rebuild() {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	for component, logger := range lm.loggers {
		*logger = *lm.build(component)
	}
}

// ListComponents возвращает отсортированный список зарегистрированных компонентов
func (lm *LoggerManager) ListComponents() []string {
	lm.mu.RLock()
	defer lm.mu.RUnlock()

	components := make([]string, 0, len(lm.loggers))
	for component := range lm.loggers {
		components = append(components, component)
	}
	sort.Strings(components)
	return components
}

// SetLogLevel устанавливает уровень логирования для компонента
func (lm *LoggerManager) SetLogLevel(component string, level LogLevel) error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	logger, exists := lm.loggers[component]
	if !exists {
		return fmt.Errorf("логгер компонента %s не найден", component)
	}
	lm.levels[component] = level
	*logger = *lm.build(component)
	return nil
}

// GetComponentLogger возвращает логгер компонента из глобального менеджера.
func GetComponentLogger(component string) *Logger {
	return GetLoggerManager().GetLogger(component)
}

func GetCodecLogger() *Logger {
	return GetComponentLogger("codec")
}

func GetCaptureLogger() *Logger {
	return GetComponentLogger("capture")
}

package logging

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// LogLevel определяет уровни логирования
type LogLevel int

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
)

// String возвращает строковое представление уровня логирования
func (l LogLevel) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel разбирает имя уровня без учёта регистра.
func ParseLevel(s string) (LogLevel, error) {
	for l := TRACE; l <= ERROR; l++ {
		if strings.EqualFold(l.String(), s) {
			return l, nil
		}
	}
	return INFO, fmt.Errorf("неизвестный уровень логирования %q", s)
}

func (l LogLevel) zerolog() zerolog.Level {
	switch l {
	case TRACE:
		return zerolog.TraceLevel
	case DEBUG:
		return zerolog.DebugLevel
	case WARN:
		return zerolog.WarnLevel
	case ERROR:
		return zerolog.ErrorLevel
	}
	return zerolog.InfoLevel
}

// Options - настройки корневого логгера.
type Options struct {
	Level LogLevel
	// Console включает человекочитаемый вывод вместо JSON.
	Console bool
	// Output - куда писать; по умолчанию stderr.
	Output io.Writer
}

// Logger - логгер компонента.
type Logger struct {
	component string
	zl        zerolog.Logger
}

var (
	rootMu sync.RWMutex
	root   = zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()
)

// Init настраивает корневой логгер. Уже выданные логгеры компонентов
// пересоздаются менеджером.
func Init(opts Options) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if opts.Console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}
	// порог задают логгеры компонентов
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	rootMu.Lock()
	root = zerolog.New(out).Level(opts.Level.zerolog()).With().Timestamp().Logger()
	rootMu.Unlock()
	GetLoggerManager().rebuild()
}

func rootLogger() zerolog.Logger {
	rootMu.RLock()
	defer rootMu.RUnlock()
	return root
}

// NewLogger создаёт логгер компонента поверх корневого.
func NewLogger(component string) *Logger {
	return &Logger{
		component: component,
		zl:        rootLogger().With().Str("component", component).Logger(),
	}
}

// Component возвращает имя компонента.
func (l *Logger) Component() string { return l.component }

// Zerolog возвращает нижележащий логгер для структурных полей.
func (l *Logger) Zerolog() *zerolog.Logger { return &l.zl }

func (l *Logger) Trace(format string, args ...interface{}) { l.zl.Trace().Msgf(format, args...) }
func (l *Logger) Debug(format string, args ...interface{}) { l.zl.Debug().Msgf(format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.zl.Info().Msgf(format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.zl.Warn().Msgf(format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.zl.Error().Msgf(format, args...) }

// Frame логирует кадр протокола с hex дампом на уровне TRACE.
func (l *Logger) Frame(session, direction, packetType string, payload []byte) {
	ev := l.zl.Trace()
	if !ev.Enabled() {
		return
	}
	ev.Str("session", session).
		Str("direction", direction).
		Str("type", packetType).
		Int("size", len(payload)).
		Msg(HexDump(payload))
}

// ProtocolError логирует ошибку разбора протокола вместе с сырыми данными.
func (l *Logger) ProtocolError(session string, err error, data []byte) {
	ev := l.zl.Error().Str("session", session).Err(err)
	if len(data) > 0 {
		ev = ev.Int("size", len(data)).Str("dump", HexDump(data))
	}
	ev.Msg("ошибка протокола")
}

// HexDump создает hex дамп данных
func HexDump(data []byte) string {
	if len(data) == 0 {
		return "No data"
	}

	// Ограничиваем размер дампа до 256 байт
	size := len(data)
	if size > 256 {
		size = 256
	}

	return hex.Dump(data[:size])
}

// Функции корневого логгера.

func Debug(format string, args ...interface{}) {
	l := rootLogger()
	l.Debug().Msgf(format, args...)
}

func Info(format string, args ...interface{}) {
	l := rootLogger()
	l.Info().Msgf(format, args...)
}

func Warn(format string, args ...interface{}) {
	l := rootLogger()
	l.Warn().Msgf(format, args...)
}

func Error(format string, args ...interface{}) {
	l := rootLogger()
	l.Error().Msgf(format, args...)
}

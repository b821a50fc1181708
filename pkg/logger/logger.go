package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Level уровень логирования
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

const timestampFormat = "2006-01-02T15:04:05.000Z07:00"

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
	LevelFatal: "FATAL",
}

var levelColors = map[Level]*color.Color{
	LevelDebug: color.New(color.FgCyan),
	LevelInfo:  color.New(color.FgGreen),
	LevelWarn:  color.New(color.FgYellow),
	LevelError: color.New(color.FgRed),
	LevelFatal: color.New(color.FgRed, color.Bold),
}

// Logger логгер с уровнями и printf-форматированием
// Пишет в консоль (с подсветкой уровня) и, если указан, в файл
type Logger struct {
	mu      sync.Mutex
	level   Level
	console io.Writer
	file    *os.File
	now     func() time.Time
	exit    func(code int)
}

// New создает логгер. Пустой filePath означает вывод только в консоль
func New(filePath string, level string) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	l := &Logger{
		level:   lvl,
		console: color.Output,
		now:     time.Now,
		exit:    os.Exit,
	}

	if filePath != "" {
		if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
			return nil, fmt.Errorf("logger: create log directory: %w", err)
		}
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: open log file: %w", err)
		}
		l.file = f
	}

	return l, nil
}

// NewWithWriter создает логгер, пишущий без подсветки в w
func NewWithWriter(w io.Writer, level Level) *Logger {
	return &Logger{
		level:   level,
		console: w,
		now:     time.Now,
		exit:    os.Exit,
	}
}

// ParseLevel разбирает уровень из конфигурации
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("logger: unknown level %q", level)
	}
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.log(LevelDebug, format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.log(LevelInfo, format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.log(LevelWarn, format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.log(LevelError, format, v...)
}

// Fatal логирует сообщение и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.log(LevelFatal, format, v...)
	l.Close()
	l.exit(1)
}

// Close закрывает файл логов
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}
}

func (l *Logger) log(level Level, format string, v ...interface{}) {
	if level < l.level {
		return
	}

	msg := fmt.Sprintf(format, v...)
	ts := l.now().Format(timestampFormat)
	name := levelNames[level]

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.console != nil {
		tag := fmt.Sprintf("%-5s", name)
		if c, ok := levelColors[level]; ok && l.console == color.Output {
			tag = c.Sprint(tag)
		}
		fmt.Fprintf(l.console, "%s %s %s\n", ts, tag, msg)
	}
	if l.file != nil {
		fmt.Fprintf(l.file, "%s %-5s %s\n", ts, name, msg)
	}
}

// Package logging — логгер с уровнями и префиксами подсистем.
// Нулевой *Logger допустим и ничего не пишет.
package logging

import (
	"fmt"
	"io"
	"log"

	"github.com/fatih/color"
)

// Logger можно использовать конкурентно. Методы nil-логгера ничего не делают.
type Logger struct {
	prefix string
	// максимальный записываемый уровень
	level Level
	output *log.Logger
}

// New создаёт корневой логгер, пишущий в output с датой и временем.
func New(output io.Writer, level Level) *Logger {
	return &Logger{
		level:  level,
		output: log.New(output, "", log.LstdFlags),
	}
}

// Sublogger создаёт дочерний логгер; префиксы склеиваются через точку.
func (l *Logger) Sublogger(name string) *Logger {
	if l == nil {
		return nil
	}

	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "." + name
	}

	return &Logger{
		prefix: prefix,
		level:  l.level,
		output: l.output,
	}
}

// Level возвращает уровень логгера.
func (l *Logger) Level() Level {
	if l == nil {
		return LevelDisabled
	}
	return l.level
}

func (l *Logger) enabled(level Level) bool {
	return l != nil && l.level >= level
}

func (l *Logger) write(line string) {
	if l.prefix != "" {
		line = fmt.Sprintf("[%s] %s", l.prefix, line)
	}
	l.output.Output(3, line)
}

// Print пишет на уровне info как fmt.Print. Нужен, чтобы логгер подходил
// для middleware.DefaultLogFormatter.
func (l *Logger) Print(v ...interface{}) {
	if l.enabled(LevelInfo) {
		l.write(fmt.Sprint(v...))
	}
}

// Infof пишет основные сообщения о работе.
func (l *Logger) Infof(format string, v ...interface{}) {
	if l.enabled(LevelInfo) {
		l.write(fmt.Sprintf(format, v...))
	}
}

// Debugf пишет только при уровне debug.
func (l *Logger) Debugf(format string, v ...interface{}) {
	if l.enabled(LevelDebug) {
		l.write(fmt.Sprintf(format, v...))
	}
}

// Warn пишет ошибку как предупреждение жёлтым цветом.
func (l *Logger) Warn(err error) {
	if l.enabled(LevelWarn) {
		l.write(color.YellowString("Warning: %v", err))
	}
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	if l.enabled(LevelWarn) {
		l.write(color.YellowString("Warning: "+format, v...))
	}
}

// Error пишет ошибку красным цветом.
func (l *Logger) Error(err error) {
	if l.enabled(LevelError) {
		l.write(color.RedString("Error: %v", err))
	}
}

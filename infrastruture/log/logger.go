// Package logger provides a prefixed, colored line logger.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/fatih/color"
)

var (
	ErrNilWriter = errors.New("logger writer is nil")
	ErrNoPrefix  = errors.New("logger prefix is empty")
)

var (
	infoColor  = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed, color.Bold)
)

// Logger writes lines formatted as "[PREFIX] [LEVEL] message".
type Logger struct {
	prefix string
	out    *log.Logger
}

// New creates a logger whose prefix is printed in the given color.
func New(prefix string, c color.Attribute, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, ErrNilWriter
	}
	if prefix == "" {
		return nil, ErrNoPrefix
	}

	return &Logger{
		prefix: color.New(c).Sprintf("[%s]", prefix),
		out:    log.New(w, "", log.LstdFlags),
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.print(infoColor, "INFO", msg)
}

// Warn logs a recoverable problem.
func (l *Logger) Warn(msg string) {
	l.print(warnColor, "WARN", msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.print(errorColor, "ERROR", msg)
}

func (l *Logger) print(c *color.Color, level, msg string) {
	l.out.Println(fmt.Sprintf("%s %s %s", l.prefix, c.Sprintf("[%s]", level), msg))
}

// Package logx is the structured logger used across the service.
//
// The package level functions write through a default logger configured
// from LOG_* environment variables at init.
package logx

import (
	"context"
	"fmt"
	"io"
)

var std = NewLogger(LoadFromEnv())

// SetDefault replaces the package level logger.
func SetDefault(l *Logger) { std = l }

// Default returns the package level logger.
func Default() *Logger { return std }

func SetLevel(level Level) { std.SetLevel(level) }

func SetOutput(w io.Writer) { std.SetOutput(w) }

func Debug(msg string) { std.write(LevelDebug, msg, nil, nil) }
func Info(msg string)  { std.write(LevelInfo, msg, nil, nil) }
func Warn(msg string)  { std.write(LevelWarn, msg, nil, nil) }
func Error(msg string) { std.write(LevelError, msg, nil, nil) }
func Fatal(msg string) { std.write(LevelFatal, msg, nil, nil) }

func Debugf(format string, args ...any) {
	std.write(LevelDebug, fmt.Sprintf(format, args...), nil, nil)
}
func Infof(format string, args ...any) { std.write(LevelInfo, fmt.Sprintf(format, args...), nil, nil) }
func Warnf(format string, args ...any) { std.write(LevelWarn, fmt.Sprintf(format, args...), nil, nil) }
func Errorf(format string, args ...any) {
	std.write(LevelError, fmt.Sprintf(format, args...), nil, nil)
}
func Fatalf(format string, args ...any) {
	std.write(LevelFatal, fmt.Sprintf(format, args...), nil, nil)
}

func WithField(key string, value any) *Entry { return std.WithField(key, value) }
func WithFields(fields Fields) *Entry        { return std.WithFields(fields) }
func WithError(err error) *Entry             { return std.WithError(err) }

func WithContext(ctx context.Context) *Entry {
	return newEntry(std).WithContext(ctx)
}

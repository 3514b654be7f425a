package logx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// Logger writes formatted records to an output.
type Logger struct {
	mu        sync.Mutex
	level     Level
	caller    bool
	formatter Formatter
	out       io.Writer
	exit      func(int)
}

// NewLogger builds a logger from cfg. A nil cfg uses DefaultConfig.
func NewLogger(cfg *Config) *Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = time.RFC3339
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	var f Formatter = &ConsoleFormatter{cfg: cfg}
	if cfg.Format == FormatJSON {
		f = &JSONFormatter{cfg: cfg}
	}

	return &Logger{
		level:     cfg.Level,
		caller:    cfg.EnableCaller,
		formatter: f,
		out:       out,
		exit:      os.Exit,
	}
}

func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	l.out = w
	l.mu.Unlock()
}

func (l *Logger) enabled(level Level) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level.Enabled(level)
}

func (l *Logger) write(level Level, msg string, fields Fields, err error) {
	if !l.enabled(level) {
		return
	}

	rec := &Record{
		Time:    time.Now(),
		Level:   level,
		Message: msg,
		Fields:  fields,
		Err:     err,
	}
	if l.caller {
		if _, file, line, ok := runtime.Caller(2); ok {
			rec.Caller = fmt.Sprintf("%s:%d", filepath.Base(file), line)
		}
	}

	data, ferr := l.formatter.Format(rec)
	if ferr != nil {
		fmt.Fprintf(os.Stderr, "logx: format: %v\n", ferr)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, werr := l.out.Write(data); werr != nil {
		fmt.Fprintf(os.Stderr, "logx: write: %v\n", werr)
	}
	if level == LevelFatal {
		l.exit(1)
	}
}

func (l *Logger) WithField(key string, value any) *Entry {
	return newEntry(l).WithField(key, value)
}

func (l *Logger) WithFields(fields Fields) *Entry {
	return newEntry(l).WithFields(fields)
}

func (l *Logger) WithError(err error) *Entry {
	return newEntry(l).WithError(err)
}

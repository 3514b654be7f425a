package logx

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Fields holds structured key/value data.
type Fields map[string]any

// Record is a single log line before encoding.
type Record struct {
	Time    time.Time
	Level   Level
	Message string
	Fields  Fields
	Err     error
	Caller  string
}

// Formatter encodes a record.
type Formatter interface {
	Format(r *Record) ([]byte, error)
}

const (
	ansiReset  = "\033[0m"
	ansiGray   = "\033[90m"
	ansiCyan   = "\033[36m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[1;32m"
	ansiYellow = "\033[1;33m"
	ansiBlue   = "\033[1;36m"
	ansiBold   = "\033[1;31m"
)

// ConsoleFormatter writes human readable lines with sorted fields.
type ConsoleFormatter struct {
	cfg *Config
}

func (f *ConsoleFormatter) paint(color, s string) string {
	if !f.cfg.EnableColors {
		return s
	}
	return color + s + ansiReset
}

func (f *ConsoleFormatter) Format(r *Record) ([]byte, error) {
	var b strings.Builder

	b.WriteString(f.paint(ansiGray, r.Time.Format(f.cfg.TimeFormat)))
	b.WriteByte(' ')
	b.WriteString(f.level(r.Level))
	b.WriteByte(' ')
	if r.Caller != "" {
		b.WriteString(f.paint(ansiGray, "["+r.Caller+"] "))
	}
	b.WriteString(r.Message)

	if len(r.Fields) > 0 {
		keys := make([]string, 0, len(r.Fields))
		for k := range r.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, r.Fields[k]))
		}
		b.WriteByte(' ')
		b.WriteString(f.paint(ansiCyan, strings.Join(pairs, " ")))
	}

	if r.Err != nil {
		b.WriteString("\n")
		b.WriteString(f.paint(ansiRed, "  ╰─→ error: "+r.Err.Error()))
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

func (f *ConsoleFormatter) level(l Level) string {
	label := fmt.Sprintf("[%-5s]", l.String())
	switch l {
	case LevelDebug:
		return f.paint(ansiBlue, label)
	case LevelInfo:
		return f.paint(ansiGreen, label)
	case LevelWarn:
		return f.paint(ansiYellow, label)
	default:
		return f.paint(ansiBold, label)
	}
}

// JSONFormatter writes one JSON object per line.
type JSONFormatter struct {
	cfg *Config
}

func (f *JSONFormatter) Format(r *Record) ([]byte, error) {
	out := make(map[string]any, len(r.Fields)+5)
	for k, v := range r.Fields {
		out[k] = v
	}
	out["level"] = r.Level.String()
	out["message"] = r.Message
	out["timestamp"] = r.Time.Format(time.RFC3339Nano)
	if r.Caller != "" {
		out["caller"] = r.Caller
	}
	if r.Err != nil {
		out["error"] = r.Err.Error()
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

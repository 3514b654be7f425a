package logx

import (
	"context"
	"fmt"

	"github.com/Abraxas-365/resumeforge/pkg/kernel"
)

// Entry accumulates fields before logging.
type Entry struct {
	logger *Logger
	fields Fields
	err    error
}

func newEntry(l *Logger) *Entry {
	return &Entry{logger: l, fields: make(Fields)}
}

func (e *Entry) WithField(key string, value any) *Entry {
	e.fields[key] = value
	return e
}

func (e *Entry) WithFields(fields Fields) *Entry {
	for k, v := range fields {
		e.fields[k] = v
	}
	return e
}

func (e *Entry) WithError(err error) *Entry {
	e.err = err
	return e
}

// WithContext copies the request id and client ip from ctx, when set.
func (e *Entry) WithContext(ctx context.Context) *Entry {
	if ctx == nil {
		return e
	}
	if id, ok := ctx.Value(kernel.RequestIDKey).(string); ok && id != "" {
		e.fields["request_id"] = id
	}
	if ip, ok := ctx.Value(kernel.ClientIPKey).(string); ok && ip != "" {
		e.fields["client_ip"] = ip
	}
	return e
}

func (e *Entry) Debug(msg string) { e.logger.write(LevelDebug, msg, e.fields, e.err) }
func (e *Entry) Info(msg string)  { e.logger.write(LevelInfo, msg, e.fields, e.err) }
func (e *Entry) Warn(msg string)  { e.logger.write(LevelWarn, msg, e.fields, e.err) }
func (e *Entry) Error(msg string) { e.logger.write(LevelError, msg, e.fields, e.err) }
func (e *Entry) Fatal(msg string) { e.logger.write(LevelFatal, msg, e.fields, e.err) }

func (e *Entry) Debugf(format string, args ...any) {
	e.logger.write(LevelDebug, fmt.Sprintf(format, args...), e.fields, e.err)
}

func (e *Entry) Infof(format string, args ...any) {
	e.logger.write(LevelInfo, fmt.Sprintf(format, args...), e.fields, e.err)
}

func (e *Entry) Warnf(format string, args ...any) {
	e.logger.write(LevelWarn, fmt.Sprintf(format, args...), e.fields, e.err)
}

func (e *Entry) Errorf(format string, args ...any) {
	e.logger.write(LevelError, fmt.Sprintf(format, args...), e.fields, e.err)
}

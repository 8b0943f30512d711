package logging

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// traceMark travels as the last argument of an entry logged through a RequestLogger. The base logger strips
// it from the arguments and writes it as the trace_id field.
type traceMark string

// RequestLogger logs on behalf of one inbound request, so that every line a handler writes while serving
// /user/{id} or /userList can be matched with the request log and the upstream call logs of that request.
type RequestLogger struct {
	base Logger
	mark traceMark
}

func NewRequestLogger(ctx context.Context, base Logger) *RequestLogger {
	l := &RequestLogger{base: base}

	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		l.mark = traceMark(sc.TraceID().String())
	}

	return l
}

func (l *RequestLogger) marked(args []any) []any {
	if l.mark == "" {
		return args
	}

	return append(args, l.mark)
}

func (l *RequestLogger) Debug(args ...any)            { l.base.Debug(l.marked(args)...) }
func (l *RequestLogger) Debugf(f string, args ...any) { l.base.Debugf(f, l.marked(args)...) }
func (l *RequestLogger) Info(args ...any)             { l.base.Info(l.marked(args)...) }
func (l *RequestLogger) Infof(f string, args ...any)  { l.base.Infof(f, l.marked(args)...) }
func (l *RequestLogger) Warn(args ...any)             { l.base.Warn(l.marked(args)...) }
func (l *RequestLogger) Warnf(f string, args ...any)  { l.base.Warnf(f, l.marked(args)...) }
func (l *RequestLogger) Error(args ...any)            { l.base.Error(l.marked(args)...) }
func (l *RequestLogger) Errorf(f string, args ...any) { l.base.Errorf(f, l.marked(args)...) }

package logging

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func requestContext(t *testing.T) context.Context {
	t.Helper()

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)

	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	return trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))
}

func TestRequestLogger_AddsTraceID(t *testing.T) {
	tests := []struct {
		desc    string
		log     func(l *RequestLogger)
		message string
		toErr   bool
	}{
		{"formatted info", func(l *RequestLogger) { l.Infof("fetched user %d", 7) }, "fetched user 7", false},
		{"plain debug", func(l *RequestLogger) { l.Debug("listing users") }, "listing users", false},
		{"formatted error", func(l *RequestLogger) { l.Errorf("user %d: %v", 7, "decode failed") }, "user 7: decode failed", true},
	}

	for i, tc := range tests {
		base, out, errOut := newBufferedLogger(DEBUG)

		tc.log(NewRequestLogger(requestContext(t), base))

		written := out
		if tc.toErr {
			written = errOut
		}

		var entry logEntry

		require.NoError(t, json.Unmarshal(written.Bytes(), &entry), "TEST[%d], Failed.\n%s", i, tc.desc)
		assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", entry.TraceID, "TEST[%d], Failed.\n%s", i, tc.desc)
		assert.Equal(t, tc.message, entry.Message, "TEST[%d], Failed.\n%s", i, tc.desc)
	}
}

func TestRequestLogger_WithoutSpan(t *testing.T) {
	base, out, _ := newBufferedLogger(INFO)
	l := NewRequestLogger(context.Background(), base)

	l.Info("no trace")

	assert.NotContains(t, out.String(), "trace_id")
	assert.Contains(t, out.String(), "no trace")
}

func TestExtractTraceID_KeepsOtherArgs(t *testing.T) {
	traceID, args := extractTraceID([]any{"users/7", 503, traceMark("abc"), traceMark("ignored")})

	assert.Equal(t, "abc", traceID)
	assert.Equal(t, []any{"users/7", 503, traceMark("ignored")}, args)
}

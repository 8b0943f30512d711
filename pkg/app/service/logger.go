package service

import (
	"context"
	"fmt"
	"io"
	"time"
)

type Logger interface {
	Log(args ...any)
	Error(args ...any)
}

type Metrics interface {
	RecordHistogram(ctx context.Context, name string, value float64, labels ...string)
	SetGauge(name string, value float64, labels ...string)
}

// Log is the entry written for every outbound call.
type Log struct {
	Timestamp     time.Time `json:"timestamp"`
	ResponseTime  int64     `json:"latency"`
	CorrelationID string    `json:"correlationId"`
	ResponseCode  int       `json:"responseCode"`
	HTTPMethod    string    `json:"httpMethod"`
	URI           string    `json:"uri"`
}

func (l *Log) PrettyPrint(writer io.Writer) {
	fmt.Fprintf(writer, "\u001B[38;5;8m%s \u001B[38;5;%dm%d\u001B[0m %8d\u001B[38;5;8mµs\u001B[0m %s %s \n",
		l.CorrelationID, colorForResponseCode(l.ResponseCode), l.ResponseCode, l.ResponseTime, l.HTTPMethod, l.URI)
}

// ErrorLog is written instead of Log when the call failed at the transport level.
type ErrorLog struct {
	*Log
	ErrorMessage string `json:"errorMessage"`
}

func (el *ErrorLog) PrettyPrint(writer io.Writer) {
	fmt.Fprintf(writer, "\u001B[38;5;8m%s \u001B[38;5;%dm%d\u001B[0m %8d\u001B[38;5;8mµs\u001B[0m %s %s \033[0;31m%s\033[0m\n",
		el.CorrelationID, colorForResponseCode(el.ResponseCode), el.ResponseCode, el.ResponseTime, el.HTTPMethod, el.URI,
		el.ErrorMessage)
}

func colorForResponseCode(status int) int {
	const (
		blue   = 34
		red    = 202
		yellow = 220
	)

	switch {
	case status >= 200 && status < 300:
		return blue
	case status >= 400 && status < 500:
		return yellow
	case status >= 500 && status < 600:
		return red
	}

	return 0
}

package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		desc string
		err  error
		msg  string
	}{
		{"invalid param", ErrorInvalidParam{Params: []string{"id"}}, "invalid value for parameter id"},
		{"missing params", ErrorMissingParam{Params: []string{"id", "name"}}, "missing value for parameters id, name"},
		{"invalid route", ErrorInvalidRoute{}, "route not registered"},
		{"timeout without duration", ErrorRequestTimeout{}, "request timed out"},
		{"timeout with duration", ErrorRequestTimeout{After: 5 * time.Second}, "request timed out after 5s"},
		{"panic", ErrorPanicRecovery{}, "handler panicked"},
	}

	for i, tc := range tests {
		assert.Equal(t, tc.msg, tc.err.Error(), "TEST[%d], Failed.\n%s", i, tc.desc)
	}
}

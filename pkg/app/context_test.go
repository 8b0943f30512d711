package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/jorge/userclient/pkg/app/container"
	apphttp "github.com/jorge/userclient/pkg/app/http"
)

func TestContext_Trace(t *testing.T) {
	otel.SetTracerProvider(sdktrace.NewTracerProvider())

	c, _ := container.NewMockContainer(t)
	r := httptest.NewRequest(http.MethodGet, "/user/1", http.NoBody)

	ctx := NewContext(apphttp.NewResponder(httptest.NewRecorder()), apphttp.NewRequest(r), c)

	assert.Equal(t, "00000000000000000000000000000000", ctx.GetCorrelationID())

	span := ctx.Trace("fetch user")
	defer span.End()

	assert.Equal(t, span.SpanContext().TraceID().String(), ctx.GetCorrelationID())
	assert.Equal(t, "test-app", ctx.GetAppName())
}

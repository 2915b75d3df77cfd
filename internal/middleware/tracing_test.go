package middleware

import (
	"net/http/httptest"
	"testing"

	"commons/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := observability.Tracer
	observability.Tracer = tp.Tracer("middleware-test")
	t.Cleanup(func() {
		observability.Tracer = prev
		_ = tp.Shutdown(t.Context())
	})
	return sr
}

func TestTracingMiddleware_SpanNames(t *testing.T) {
	sr := recordSpans(t)

	app := fiber.New()
	app.Use(TracingMiddleware())
	app.Get("/api/groups/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	tests := []struct {
		path string
		want string
	}{
		{"/api/groups/7", "GET /api/groups/:id"},
		{"/api/unknown", "GET /api/unknown"},
	}

	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))

		ended := sr.Ended()
		require.NotEmpty(t, ended)
		assert.Equal(t, tt.want, ended[len(ended)-1].Name(), tt.path)
	}
}

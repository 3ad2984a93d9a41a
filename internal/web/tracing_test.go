package web

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"pinatatracks/internal/tracing"
)

func TestTracksRequestIsTraced(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := tracing.Setup(exporter)
	t.Cleanup(func() {
		otel.SetTracerProvider(noop.NewTracerProvider())
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator())
		_ = tp.Shutdown(context.Background())
	})

	var traceparent string
	u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		traceparent = r.Header.Get("traceparent")
		io.WriteString(w, filesBody)
	})
	h := newTestServer(u, "jwt").Handler()

	rec := get(t, h, TracksPath+"?group=g", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, tp.ForceFlush(context.Background()))

	var server, client *tracetest.SpanStub
	spans := exporter.GetSpans()
	for i := range spans {
		switch spans[i].SpanKind {
		case trace.SpanKindServer:
			server = &spans[i]
		case trace.SpanKindClient:
			client = &spans[i]
		}
	}
	require.NotNil(t, server, "server span")
	require.NotNil(t, client, "pinata client span")

	assert.Equal(t, server.SpanContext.TraceID(), client.SpanContext.TraceID())
	assert.Equal(t, server.SpanContext.SpanID(), client.Parent.SpanID())
	assert.Contains(t, traceparent, client.SpanContext.TraceID().String())
}

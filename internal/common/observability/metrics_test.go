// internal/common/observability/metrics_test.go
package observability

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestObservability_SpansAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	recorder := tracetest.NewSpanRecorder()

	obs, err := New("mafatih-test", WithRegisterer(reg), WithSpanProcessor(recorder), WithoutGlobal())
	require.NoError(t, err)
	defer obs.Shutdown(context.Background())

	ctx, span := obs.StartSpan(context.Background(), "resolve.question", attribute.String("feature", "question"))
	obs.RecordResolution(ctx, "question", "static_kb", 12*time.Millisecond)
	obs.RecordJobProcessed(ctx, "completed")
	obs.RecordJobDuration(ctx, 5*time.Millisecond, "completed")
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "resolve.question", ended[0].Name())

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if strings.HasPrefix(f.GetName(), "resolutions_completed") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestNewNoop(t *testing.T) {
	obs := NewNoop()
	assert.NotPanics(t, func() {
		ctx, span := obs.StartSpan(context.Background(), "noop")
		obs.RecordResolution(ctx, "verse", "default", time.Millisecond)
		span.End()
		assert.NoError(t, obs.Shutdown(context.Background()))
	})
}

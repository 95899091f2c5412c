package monitoring

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveAttempt(t *testing.T) {
	before := testutil.ToFloat64(ExamAttemptCounter.WithLabelValues("expired"))
	ObserveAttempt("expired")
	after := testutil.ToFloat64(ExamAttemptCounter.WithLabelValues("expired"))

	assert.Equal(t, before+1, after)
}

func TestMetriquesSousEspaceDeNomsOlympiades(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(RequestCounter))
	require.NoError(t, reg.Register(RequestDuration))
	require.NoError(t, reg.Register(ExamAttemptCounter))

	RequestCounter.WithLabelValues("GET", "/api/exam/status", "200").Inc()
	RequestDuration.WithLabelValues("GET", "/api/exam/status").Observe(0.2)
	ObserveAttempt("started")

	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["olympiades_http_requests_total"])
	assert.True(t, names["olympiades_http_request_duration_seconds"])
	assert.True(t, names["olympiades_exam_attempts_total"])
}

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ContadoresPorTramo(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	m.IncSecondaryFailure("audit")
	m.IncSecondaryFailure("audit")
	m.IncSecondaryWrite("feedback_text")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SecondaryFailures.WithLabelValues("audit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SecondaryWrites.WithLabelValues("feedback_text")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.SecondaryFailures.WithLabelValues("access_log")))
}

func TestMetrics_ObserveRequest(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	m.ObserveRequest("POST", "/api/feedbacks", 201, 20*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/feedbacks", "201")))
}

func TestMetrics_DobleRegistroFalla(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}

package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"trackbench/internal/domain/entity"
)

func TestRecorder_ObserveUpdate(t *testing.T) {
	r := NewRecorder(nil)

	r.ObserveUpdate(entity.AlgorithmKCF, 10*time.Millisecond, true)
	r.ObserveUpdate(entity.AlgorithmKCF, 20*time.Millisecond, true)
	r.ObserveUpdate(entity.AlgorithmKCF, 5*time.Millisecond, false)

	require.Equal(t, 2.0, testutil.ToFloat64(r.updates.WithLabelValues("KCF", "tracked")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.updates.WithLabelValues("KCF", "lost")))
	require.Equal(t, 200.0, testutil.ToFloat64(r.fps.WithLabelValues("KCF")))
	require.Equal(t, 1, testutil.CollectAndCount(r.updateLatency))
}

func TestRecorder_ZeroLatencyKeepsFPS(t *testing.T) {
	r := NewRecorder([]float64{1, 10})

	r.ObserveUpdate(entity.AlgorithmMIL, 10*time.Millisecond, true)
	r.ObserveUpdate(entity.AlgorithmMIL, 0, true)

	require.Equal(t, 100.0, testutil.ToFloat64(r.fps.WithLabelValues("MIL")))
}

func TestRecorder_ObserveRun(t *testing.T) {
	r := NewRecorder(nil)
	r.ObserveRun(&entity.RunSummary{Algorithm: entity.AlgorithmCSRT, Failures: 4, Elapsed: 2500 * time.Millisecond})

	require.Equal(t, 2.5, testutil.ToFloat64(r.runDuration.WithLabelValues("CSRT")))
	require.Equal(t, 4.0, testutil.ToFloat64(r.runFailures.WithLabelValues("CSRT")))
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder(nil)
	r.ObserveUpdate(entity.AlgorithmKCF, time.Millisecond, true)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.True(t, strings.Contains(body, `tracker_updates_total{algorithm="KCF",outcome="tracked"} 1`), body)
}

package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"trackbench/internal/domain/entity"
	"trackbench/internal/domain/port"
)

// DefaultLatencyBuckets задаёт границы гистограммы времени обновления в мс.
var DefaultLatencyBuckets = []float64{1, 2, 5, 10, 20, 50, 100, 200, 500}

// Recorder хранит метрики прогона в собственном реестре.
type Recorder struct {
	registry *prometheus.Registry

	updateLatency *prometheus.HistogramVec
	updates       *prometheus.CounterVec
	fps           *prometheus.GaugeVec
	runDuration   *prometheus.GaugeVec
	runFailures   *prometheus.GaugeVec
}

// NewRecorder регистрирует метрики. buckets задаются в миллисекундах, nil даёт значения по умолчанию.
func NewRecorder(buckets []float64) *Recorder {
	if len(buckets) == 0 {
		buckets = DefaultLatencyBuckets
	}

	r := &Recorder{
		registry: prometheus.NewRegistry(),
		updateLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tracker_update_latency_ms",
				Help:    "Histogram of tracker update times.",
				Buckets: buckets,
			},
			[]string{"algorithm"},
		),
		updates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_updates_total",
				Help: "Tracker updates by outcome.",
			},
			[]string{"algorithm", "outcome"},
		),
		fps: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tracker_fps",
				Help: "Instantaneous frames per second of the last update.",
			},
			[]string{"algorithm"},
		),
		runDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tracker_run_duration_seconds",
				Help: "Wall-clock duration of the last run.",
			},
			[]string{"algorithm"},
		),
		runFailures: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tracker_run_failed_loops",
				Help: "Frames where the tracker lost the object in the last run.",
			},
			[]string{"algorithm"},
		),
	}

	r.registry.MustRegister(r.updateLatency, r.updates, r.fps, r.runDuration, r.runFailures)
	return r
}

func (r *Recorder) ObserveUpdate(algorithm entity.Algorithm, latency time.Duration, tracked bool) {
	alg := string(algorithm)
	r.updateLatency.WithLabelValues(alg).Observe(float64(latency) / float64(time.Millisecond))

	outcome := "tracked"
	if !tracked {
		outcome = "lost"
	}
	r.updates.WithLabelValues(alg, outcome).Inc()

	if latency > 0 {
		r.fps.WithLabelValues(alg).Set(float64(time.Second) / float64(latency))
	}
}

func (r *Recorder) ObserveRun(summary *entity.RunSummary) {
	alg := string(summary.Algorithm)
	r.runDuration.WithLabelValues(alg).Set(summary.Elapsed.Seconds())
	r.runFailures.WithLabelValues(alg).Set(float64(summary.Failures))
}

// Registry возвращает реестр (для тестов и встраивания).
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler отдаёт метрики в формате Prometheus.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Server HTTP-сервер с /metrics на время прогона.
type Server struct {
	srv *http.Server
	log *zap.Logger
}

// Serve поднимает /metrics на addr в отдельной горутине.
func Serve(addr string, r *Recorder, log *zap.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())

	s := &Server{
		srv: &http.Server{Addr: addr, Handler: mux},
		log: log,
	}

	go func() {
		log.Info("starting metrics server", zap.String("addr", addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", zap.Error(err))
		}
	}()

	return s
}

// Shutdown останавливает сервер.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

var _ port.RunRecorder = (*Recorder)(nil)

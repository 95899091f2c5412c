package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestCounter compte les requêtes HTTP par méthode, route et statut
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "olympiades",
			Name:      "http_requests_total",
			Help:      "Nombre total de requêtes HTTP",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "olympiades",
			Name:      "http_request_duration_seconds",
			Help:      "Durée des requêtes HTTP",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// ExamAttemptCounter suit le cycle de vie des tentatives de QCM :
	// started, resumed, completed, expired, flagged
	ExamAttemptCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "olympiades",
			Name:      "exam_attempts_total",
			Help:      "Événements du cycle de vie des tentatives de QCM",
		},
		[]string{"event"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(ExamAttemptCounter)
}

// ObserveAttempt incrémente le compteur de cycle de vie des tentatives
func ObserveAttempt(event string) {
	ExamAttemptCounter.WithLabelValues(event).Inc()
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

// PrometheusHandler expose /metrics au format Prometheus
func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	QuizSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_submissions_total",
			Help: "Total number of scored quiz submissions",
		},
		[]string{"quiz_id"},
	)

	QuizScores = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quiz_score",
			Help:    "Distribution of total scores per quiz",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
		[]string{"quiz_id"},
	)

	ProgressCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "progress_cache_lookups_total",
			Help: "Progress stats cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(QuizSubmissions)
		prometheus.MustRegister(QuizScores)
		prometheus.MustRegister(ProgressCacheLookups)
	})
}

// RecordSubmission 记录一次已计分的提交
func RecordSubmission(quizID string, score float64) {
	QuizSubmissions.WithLabelValues(quizID).Inc()
	QuizScores.WithLabelValues(quizID).Observe(score)
}

func RecordCacheLookup(hit bool) {
	if hit {
		ProgressCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	ProgressCacheLookups.WithLabelValues("miss").Inc()
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

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)
)

var (
	DatabaseQueries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "database_queries_total",
			Help: "Total database queries",
		},
	)

	RemindersSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminders_sent_total",
			Help: "Task reminders by delivery status",
		},
		[]string{"status"},
	)
)

// Init registers every collector with the default registry. Call it once.
func Init() {
	prometheus.MustRegister(RequestsTotal, RequestDuration, DatabaseQueries, RemindersSent)
}

func Handler() http.Handler {
	return promhttp.Handler()
}

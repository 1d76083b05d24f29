package echoapi

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "edutrack_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)

	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edutrack_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"},
	)

	lessonsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "edutrack_lessons_created_total",
			Help: "Total number of lessons created",
		},
	)

	standardCodesSubmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "edutrack_standard_codes_submitted_total",
			Help: "Total number of standard codes submitted with lessons, unknown codes included",
		},
	)

	metricsHandler = echo.WrapHandler(promhttp.Handler())
)

func metricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		start := time.Now()
		err := next(ctx)
		if err != nil {
			ctx.Error(err) // writes the error response so its status is known
		}

		path := ctx.Path() // route template, e.g. /api/stats/:teacherId
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(ctx.Response().Status)
		apiRequestDuration.WithLabelValues(path, ctx.Request().Method, status).
			Observe(time.Since(start).Seconds())
		return err
	}
}

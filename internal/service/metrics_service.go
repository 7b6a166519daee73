package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/cohort-attendance/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation for HTTP traffic and tracker events.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cohortRequests  *prometheus.CounterVec
	registrations   *prometheus.CounterVec
	promotions      *prometheus.CounterVec
	sheetsGenerated prometheus.Counter
	storeDuration   *prometheus.HistogramVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cohortRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cohort_requests_total",
		Help: "Requests against cohort routes by course and resource",
	}, []string{"course", "resource", "status"})

	registrations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "enrollment_registrations_total",
		Help: "Registrations by resulting status",
	}, []string{"course", "status"})

	promotions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_promotions_total",
		Help: "Students moved to the failed or completed list",
	}, []string{"outcome"})

	sheetsGenerated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "attendance_sheets_generated_total",
		Help: "Attendance sheets generated",
	})

	storeDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tracker_operation_duration_seconds",
		Help:    "Duration of tracker operations including file reads and rewrites",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, cohortRequests, registrations, promotions, sheetsGenerated, storeDuration, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		cohortRequests:  cohortRequests,
		registrations:   registrations,
		promotions:      promotions,
		sheetsGenerated: sheetsGenerated,
		storeDuration:   storeDuration,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveCohortRequest counts a request made against one cohort's routes.
func (m *MetricsService) ObserveCohortRequest(course, resource string, status int) {
	if m == nil {
		return
	}
	m.cohortRequests.WithLabelValues(course, resource, fmt.Sprintf("%d", status)).Inc()
}

// RecordRegistration counts a registration by course and resulting status.
func (m *MetricsService) RecordRegistration(course string, status models.EnrollmentStatus) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(course, string(status)).Inc()
}

// RecordPromotions counts students moved to an outcome list.
func (m *MetricsService) RecordPromotions(kind models.OutcomeKind, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.promotions.WithLabelValues(string(kind)).Add(float64(n))
}

// RecordSheetGenerated counts a generated sheet.
func (m *MetricsService) RecordSheetGenerated() {
	if m == nil {
		return
	}
	m.sheetsGenerated.Inc()
}

// ObserveOperation records how long a tracker operation took.
func (m *MetricsService) ObserveOperation(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.storeDuration.WithLabelValues(label).Observe(duration.Seconds())
}

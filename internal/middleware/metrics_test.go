package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/cohort-attendance/internal/service"
)

func TestMetricsRecordsRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metricsSvc := service.NewMetricsService()

	r := gin.New()
	r.Use(Metrics(metricsSvc))
	r.GET("/cohorts/:key", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/cohorts/Hardware_Monday_and_Wednesday_7h", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	out := httptest.NewRecorder()
	metricsReq, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	metricsSvc.Handler().ServeHTTP(out, metricsReq)
	assert.Contains(t, out.Body.String(), `http_requests_total{method="GET",path="/cohorts/:key",status="200"} 1`)
}

func TestMetricsWithoutService(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics(nil))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsCountsCohortRequestsByCourse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metricsSvc := service.NewMetricsService()

	r := gin.New()
	r.Use(Metrics(metricsSvc))
	r.GET("/cohorts/:key/sheets/:period/export", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.PUT("/cohorts/:key/sheets/:period/outcomes/:kind", func(c *gin.Context) { c.Status(http.StatusConflict) })

	for _, call := range []struct{ method, path string }{
		{http.MethodGet, "/cohorts/English_Tuesday_and_Thursday_20h/sheets/2024-03/export"},
		{http.MethodPut, "/cohorts/Hardware_Monday_and_Wednesday_7h/sheets/2024-04/outcomes/failed"},
		{http.MethodGet, "/cohorts/Cooking_Monday_and_Wednesday_7h/sheets/2024-03/export"},
		{http.MethodGet, "/wp-login.php"},
	} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(call.method, call.path, nil)
		r.ServeHTTP(w, req)
	}

	out := httptest.NewRecorder()
	metricsReq, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	metricsSvc.Handler().ServeHTTP(out, metricsReq)
	body := out.Body.String()
	assert.Contains(t, body, `cohort_requests_total{course="English",resource="export",status="200"} 1`)
	assert.Contains(t, body, `cohort_requests_total{course="Hardware",resource="outcomes",status="409"} 1`)
	assert.Contains(t, body, `cohort_requests_total{course="unknown",resource="export",status="200"} 1`)
	assert.Contains(t, body, `http_requests_total{method="GET",path="unmatched",status="404"} 1`)
	assert.NotContains(t, body, "wp-login")
}

func TestCohortResource(t *testing.T) {
	assert.Equal(t, "cohort", cohortResource("/api/v1/cohorts/:key"))
	assert.Equal(t, "admissions", cohortResource("/api/v1/cohorts/:key/admissions"))
	assert.Equal(t, "sheets", cohortResource("/api/v1/cohorts/:key/sheets/:period"))
	assert.Equal(t, "outcomes", cohortResource("/api/v1/cohorts/:key/sheets/:period/outcomes/:kind"))
	assert.Equal(t, "export", cohortResource("/api/v1/cohorts/:key/sheets/:period/outcomes/:kind/export"))
}

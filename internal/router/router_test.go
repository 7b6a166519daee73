package router

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/cohort-attendance/internal/handler"
	"github.com/noah-isme/cohort-attendance/internal/repository"
	"github.com/noah-isme/cohort-attendance/internal/service"
	"github.com/noah-isme/cohort-attendance/pkg/config"
)

func newTestEngine(t *testing.T, ready func() error) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	roster := repository.NewRosterRepository(store)
	sheets := repository.NewSheetRepository(store)
	validate := service.NewValidator()
	metrics := service.NewMetricsService()
	logr := zap.NewNop()

	enrollments := service.NewEnrollmentService(roster, service.DefaultEnrollmentPolicy(), validate, metrics, logr)
	cohorts := service.NewCohortService(roster, service.DefaultEnrollmentPolicy(), validate, logr)
	attendance := service.NewAttendanceService(sheets, roster, service.DefaultAttendancePolicy(), validate, metrics, logr)
	exports := service.NewExportService(sheets, logr, nil, nil, nil)

	cfg := &config.Config{Env: config.EnvDevelopment, APIPrefix: "/api/v1"}
	cfg.Metrics.Enabled = true

	return Setup(cfg, Handlers{
		Enrollment: handler.NewEnrollmentHandler(enrollments),
		Cohort:     handler.NewCohortHandler(cohorts),
		Attendance: handler.NewAttendanceHandler(attendance, exports),
		Schedule:   handler.NewScheduleHandler(service.NewScheduleService()),
		Metrics:    handler.NewMetricsHandler(metrics, ready),
	}, metrics, logr)
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouterHealthAndReady(t *testing.T) {
	r := newTestEngine(t, func() error { return errors.New("data dir missing") })

	w := doJSON(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = doJSON(r, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouterRegisterThenGenerateSheet(t *testing.T) {
	r := newTestEngine(t, nil)

	form := `{
		"guardian_name": "maria silva",
		"contact_number": "11987654321",
		"identity_number": "12345678901",
		"address": "rua das flores, 10",
		"student_name": "ana souza",
		"course": "Hardware",
		"day_pattern": "Monday and Wednesday",
		"time_slot": "7h",
		"start_date": "2024-03-04"
	}`
	w := doJSON(r, http.MethodPost, "/api/v1/enrollments", form)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(r, http.MethodGet, "/api/v1/cohorts/Hardware_Monday_and_Wednesday_7h", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(r, http.MethodPost, "/api/v1/cohorts/Hardware_Monday_and_Wednesday_7h/sheets", `{"month":3,"year":2024}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body struct {
		Data struct {
			Period string   `json:"period"`
			Dates  []string `json:"dates"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "2024-03", body.Data.Period)
	assert.Len(t, body.Data.Dates, 8)

	w = doJSON(r, http.MethodGet, "/api/v1/cohorts/Hardware_Monday_and_Wednesday_7h/sheets/2024-03/export?format=csv", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ana Souza")

	w = doJSON(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "enrollment_registrations_total")
}

func TestRouterUnknownCohort(t *testing.T) {
	r := newTestEngine(t, nil)

	w := doJSON(r, http.MethodGet, "/api/v1/cohorts/English_Tuesday_and_Thursday_20h", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouterScheduleDates(t *testing.T) {
	r := newTestEngine(t, nil)

	w := doJSON(r, http.MethodGet, "/api/v1/schedule/dates?pattern=Tuesday+and+Thursday&month=2&year=2024", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "29/02")
}

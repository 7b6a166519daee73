package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/cohort-attendance/internal/models"
)

func TestMetricsServiceExposesTrackerCounters(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/enrollments", http.StatusCreated, 5*time.Millisecond)
	m.RecordRegistration("Hardware", models.EnrollmentStatusWaitlisted)
	m.RecordPromotions(models.OutcomeFailed, 2)
	m.RecordPromotions(models.OutcomeCompleted, 0)
	m.RecordSheetGenerated()
	m.ObserveOperation("save_sheet", time.Millisecond)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	m.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `enrollment_registrations_total{course="Hardware",status="waitlisted"} 1`)
	assert.Contains(t, body, `attendance_promotions_total{outcome="failed"} 2`)
	assert.NotContains(t, body, `outcome="completed"`)
	assert.Contains(t, body, "attendance_sheets_generated_total 1")
}

func TestNilMetricsServiceIsSafe(t *testing.T) {
	var m *MetricsService
	m.RecordRegistration("Hardware", models.EnrollmentStatusActive)
	m.RecordPromotions(models.OutcomeFailed, 1)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	m.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

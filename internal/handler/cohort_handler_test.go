package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/cohort-attendance/internal/dto"
	"github.com/noah-isme/cohort-attendance/internal/models"
	appErrors "github.com/noah-isme/cohort-attendance/pkg/errors"
	"github.com/noah-isme/cohort-attendance/pkg/response"
)

type cohortServiceMock struct {
	listResp    []models.CohortSummary
	getResp     *dto.CohortDetail
	getErr      error
	replaceResp *dto.CohortDetail
	deleteErr   error
	admitResp   *dto.AdmissionResult
	lastKey     string
	lastReplace dto.ReplaceCohortRequest
	lastAdmit   dto.AdmitWaitlistedRequest
}

func (m *cohortServiceMock) List(ctx context.Context) ([]models.CohortSummary, error) {
	return m.listResp, nil
}

func (m *cohortServiceMock) Get(ctx context.Context, key string) (*dto.CohortDetail, error) {
	m.lastKey = key
	return m.getResp, m.getErr
}

func (m *cohortServiceMock) Replace(ctx context.Context, key string, req dto.ReplaceCohortRequest) (*dto.CohortDetail, error) {
	m.lastKey = key
	m.lastReplace = req
	return m.replaceResp, nil
}

func (m *cohortServiceMock) Delete(ctx context.Context, key string) error {
	m.lastKey = key
	return m.deleteErr
}

func (m *cohortServiceMock) AdmitWaitlisted(ctx context.Context, key string, req dto.AdmitWaitlistedRequest) (*dto.AdmissionResult, error) {
	m.lastKey = key
	m.lastAdmit = req
	return m.admitResp, nil
}

func TestCohortHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &cohortServiceMock{getErr: appErrors.Clone(appErrors.ErrCohortNotFound, "cohort English_Monday_and_Wednesday_7h not found")}
	handler := NewCohortHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/cohorts/English_Monday_and_Wednesday_7h", nil)
	c.Params = gin.Params{{Key: "key", Value: "English_Monday_and_Wednesday_7h"}}

	handler.Get(c)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "English_Monday_and_Wednesday_7h", mockSvc.lastKey)
	assert.Equal(t, "COHORT_NOT_FOUND", decodeEnvelope(t, w).Error.Code)
}

func TestCohortHandlerReplace(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &cohortServiceMock{replaceResp: &dto.CohortDetail{Cohort: models.Cohort{Key: "k"}}}
	handler := NewCohortHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPut, "/cohorts/k", bytes.NewBufferString(`{"enrollments":[{"id":3,"student_name":"Ana","status":"active"}]}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "key", Value: "k"}}

	handler.Replace(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, mockSvc.lastReplace.Enrollments, 1)
	assert.Equal(t, 3, mockSvc.lastReplace.Enrollments[0].ID)
	assert.Equal(t, response.NoticeSuccess, decodeEnvelope(t, w).Meta.Notice.Level)
}

func TestCohortHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCohortHandler(&cohortServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/cohorts/k", nil)
	c.Params = gin.Params{{Key: "key", Value: "k"}}

	handler.Delete(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCohortHandlerAdmit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &cohortServiceMock{admitResp: &dto.AdmissionResult{
		Admitted: []models.Enrollment{{ID: 21}},
		Notice:   &response.Notice{Level: response.NoticeSuccess, Message: "1 student(s) admitted"},
	}}
	handler := NewCohortHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/cohorts/k/admissions", bytes.NewBufferString(`{"start_date":"2024-04-01"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "key", Value: "k"}}

	handler.Admit(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-04-01", mockSvc.lastAdmit.StartDate)
	assert.Contains(t, decodeEnvelope(t, w).Meta.Notice.Message, "admitted")
}

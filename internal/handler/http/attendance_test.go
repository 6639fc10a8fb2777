package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
)

func TestAttendanceHandler_CreateRejectsDuplicate(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RoleAdmin, nil)
	body := map[string]string{"employeeId": empAsha, "date": "2024-05-10", "status": "Present"}

	rec := s.do(t, http.MethodPost, "/api/v1/attendance", token, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/v1/attendance", token, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Attendance already marked for this date", decode(t, rec).Error.Message)
}

func TestAttendanceHandler_MarkSelf(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RoleUser, strPtr(empAsha))

	rec := s.do(t, http.MethodPost, "/api/v1/attendance/mark", token, nil)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/v1/attendance/mark", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Attendance already marked for today", decode(t, rec).Message)

	rec = s.do(t, http.MethodGet, "/api/v1/attendance/today", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(decode(t, rec).Data), `"marked":true`)

	// Accounts without an employee record cannot mark
	rec = s.do(t, http.MethodPost, "/api/v1/attendance/mark", s.token(t, user.RoleAdmin, nil), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAttendanceHandler_ListAndSummary(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RoleAdmin, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/attendance?startDate=2024-05-01&endDate=2024-05-03", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, string(decode(t, rec).Data), "virtual-absent-"+empAsha+"-2024-05-03")

	rec = s.do(t, http.MethodGet, "/api/v1/attendance?startDate=2024-05-01&endDate=2024-05-03&summaryOnly=true", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, string(decode(t, rec).Data), "virtual-")

	rec = s.do(t, http.MethodGet, "/api/v1/attendance?startDate=2024-05-03&endDate=2024-05-01", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/attendance?employeeId=0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAttendanceHandler_Export(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RoleAdmin, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/attendance/export?startDate=2024-05-01&endDate=2024-05-02", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attendance_2024-05-01_2024-05-02.xlsx")
	assert.Equal(t, "PK", rec.Body.String()[:2])
}

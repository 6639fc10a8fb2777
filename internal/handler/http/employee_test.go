package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
)

func TestEmployeeHandler_AdminLifecycle(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, user.RoleAdmin, nil)

	rec := s.do(t, http.MethodPost, "/api/v1/employees", admin, map[string]string{"name": "Ravi", "email": "ravi@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created employee.EmployeeResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &created))
	assert.Equal(t, 20, created.RemainingDays)

	rec = s.do(t, http.MethodPost, "/api/v1/employees", admin, map[string]string{"name": "Dup", "email": "asha@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPatch, "/api/v1/employees/"+created.ID+"/leave-quota", admin, map[string]int{"leaveQuota": 12})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodDelete, "/api/v1/employees/"+created.ID, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/employees/"+created.ID, admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEmployeeHandler_Salary(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, user.RoleAdmin, nil)
	path := "/api/v1/employees/" + empAsha + "/salary/2024-05"

	rec := s.do(t, http.MethodGet, path, admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPatch, "/api/v1/employees/"+empAsha, admin, map[string]string{"salary": "30000"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, path, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var salary employee.SalaryResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &salary))
	assert.Equal(t, "1000.00", salary.PerDaySalary)

	rec = s.do(t, http.MethodGet, path+"/slip", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "salary-slip-2024-05.pdf")
}

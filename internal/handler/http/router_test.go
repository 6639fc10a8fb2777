package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/shiftday"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	authService "github.com/cmlabs-hris/attendance-backend-go/internal/service/auth"
	calllogService "github.com/cmlabs-hris/attendance-backend-go/internal/service/calllog"
	employeeService "github.com/cmlabs-hris/attendance-backend-go/internal/service/employee"
	leaveService "github.com/cmlabs-hris/attendance-backend-go/internal/service/leave"
	loginhourService "github.com/cmlabs-hris/attendance-backend-go/internal/service/loginhour"
	reportService "github.com/cmlabs-hris/attendance-backend-go/internal/service/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/servicetest"
	weeklyoffService "github.com/cmlabs-hris/attendance-backend-go/internal/service/weeklyoff"
)

const (
	handlerTestSecret = "test-secret-key-for-jwt"
	empAsha           = "3f2504e0-4f89-41d3-9a0c-0305e82c3301"
)

type testServer struct {
	router    http.Handler
	jwt       jwt.Service
	employees *servicetest.EmployeeRepo
	users     *servicetest.UserRepo
	leaves    *servicetest.LeaveRepo
	mailer    *servicetest.Mailer
	files     *servicetest.Storage
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	policy := config.DefaultPolicy()
	calendar := shiftday.Default()
	employees := servicetest.NewEmployeeRepo(employee.Employee{
		ID: empAsha, Name: "Asha", Email: "asha@example.com", Role: "Agent",
		Status: employee.EmploymentStatusActive, LeaveQuota: 20, RemainingDays: 20,
	})
	s := &testServer{
		jwt:       jwt.NewJWTService(handlerTestSecret, "1h"),
		employees: employees,
		users:     &servicetest.UserRepo{Employees: employees},
		leaves:    &servicetest.LeaveRepo{},
		mailer:    &servicetest.Mailer{},
		files:     servicetest.NewStorage(),
	}
	notifier := &servicetest.Notifier{}
	records := servicetest.NewAttendanceRepo(employees)
	weeklyOffs := &servicetest.WeeklyOffRepo{}
	tx := servicetest.PassThroughTx{}
	locker := lock.NewLocalLocker()

	attendance := attendanceService.NewAttendanceService(records, employees, weeklyOffs, s.leaves, calendar, policy, notifier)
	loginHours := loginhourService.NewLoginHourService(&servicetest.LoginHourRepo{}, employees, attendance, tx, locker, calendar, policy)
	callLogs := calllogService.NewCallLogService(&servicetest.CallLogRepo{}, employees, calendar)

	handlers := Handlers{
		Auth: NewAuthHandler(authService.NewAuthService(s.users, employees, s.jwt, tx, s.mailer,
			config.AppConfig{MaxAdmins: 1}, policy), nil),
		Attendance: NewAttendanceHandler(attendance),
		LoginHour:  NewLoginHourHandler(loginHours),
		Leave: NewLeaveHandler(leaveService.NewLeaveService(s.leaves, employees, tx, locker, s.files, notifier,
			policy, calendar.Location())),
		Employee: NewEmployeeHandler(employeeService.NewEmployeeService(employees, s.users, records, s.leaves,
			tx, s.files, policy)),
		WeeklyOff: NewWeeklyOffHandler(weeklyoffService.NewWeeklyOffService(weeklyOffs, employees)),
		CallLog:   NewCallLogHandler(callLogs),
		Report:    NewReportHandler(reportService.NewReportService(employees, callLogs, loginHours, s.mailer, calendar)),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.router = NewRouter(logger, config.AppConfig{AllowedOrigins: []string{"*"}}, config.StorageConfig{}, s.jwt, handlers)
	return s
}

func (s *testServer) token(t *testing.T, role user.Role, employeeID *string) string {
	t.Helper()
	token, _, err := s.jwt.GenerateAccessToken("5a0c9b1e-3f7d-4c2a-9e8b-1d2c3b4a5f60", "caller@example.com", employeeID, role)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func strPtr(s string) *string { return &s }

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/employees", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/employees", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/employees", s.token(t, user.RoleUser, nil), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AdminOnlyRoutes(t *testing.T) {
	s := newTestServer(t)
	staff := s.token(t, user.RoleSupervisor, strPtr(empAsha))

	tests := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodPatch, "/api/v1/attendance/virtual-absent-" + empAsha + "-2024-05-10", map[string]string{"status": "Present"}},
		{http.MethodPatch, "/api/v1/leaves/0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b/status", map[string]string{"status": "Approved"}},
		{http.MethodPatch, "/api/v1/employees/" + empAsha + "/leave-quota", map[string]int{"leaveQuota": 10}},
		{http.MethodPatch, "/api/v1/employees/" + empAsha + "/used-days", map[string]int{"usedDays": 1}},
		{http.MethodPost, "/api/v1/employees", map[string]string{"name": "Ravi", "email": "ravi@example.com"}},
		{http.MethodDelete, "/api/v1/employees/" + empAsha, nil},
		{http.MethodPost, "/api/v1/weekly-offs", map[string]string{"employeeId": empAsha, "date": "2024-05-12"}},
		{http.MethodPut, "/api/v1/auth/admin/change-password", map[string]string{"email": "asha@example.com", "newPassword": "fresh22"}},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := s.do(t, tt.method, tt.path, staff, tt.body)
			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}

	// The same attendance edit succeeds for an admin
	rec := s.do(t, http.MethodPatch, "/api/v1/attendance/virtual-absent-"+empAsha+"-2024-05-10",
		s.token(t, user.RoleAdmin, nil), map[string]string{"status": "Present"})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestRouter_MalformedIDsAreNotFound(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RoleAdmin, nil)

	for _, path := range []string{
		"/api/v1/employees/42",
		"/api/v1/leaves/abc",
		"/api/v1/login-hours/xyz/today",
		"/api/v1/call-logs/summary/today/nope",
	} {
		rec := s.do(t, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestRouter_PublicEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/auth/admin-count", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Google login is disabled without a client
	rec = s.do(t, http.MethodGet, "/api/v1/auth/login/google", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_ValidationErrorsAreBadRequests(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RoleAdmin, nil)

	rec := s.do(t, http.MethodPost, "/api/v1/attendance", token, map[string]string{"employeeId": empAsha, "date": "10/05/2024", "status": "Sleeping"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decode(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "date")
	assert.Contains(t, env.Error.Details, "status")

	rec = s.do(t, http.MethodPost, "/api/v1/attendance", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

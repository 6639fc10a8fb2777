// Package servicetest provides in-memory repositories and collaborators for service tests.
package servicetest

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/calllog"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/loginhour"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/weeklyoff"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/email"
)

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// PassThroughTx runs fn directly.
type PassThroughTx struct{}

func (PassThroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Notifier records messages.
type Notifier struct {
	mu       sync.Mutex
	Messages []string
	Err      error
}

func (n *Notifier) Info(ctx context.Context, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Messages = append(n.Messages, message)
	return n.Err
}

func (n *Notifier) Error(ctx context.Context, message string) error {
	return n.Info(ctx, message)
}

// Employees

type EmployeeRepo struct {
	mu   sync.Mutex
	rows map[string]employee.Employee
	seq  int
}

func NewEmployeeRepo(emps ...employee.Employee) *EmployeeRepo {
	r := &EmployeeRepo{rows: map[string]employee.Employee{}}
	for _, e := range emps {
		r.put(e)
	}
	return r
}

func (r *EmployeeRepo) put(e employee.Employee) employee.Employee {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		r.seq++
		e.CreatedAt = time.Date(2024, 1, 1, 0, 0, r.seq, 0, time.UTC)
	}
	r.rows[e.ID] = e
	return e
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rows[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *EmployeeRepo) GetForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	return r.GetByID(ctx, id)
}

func (r *EmployeeRepo) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.rows {
		if e.UserID != nil && *e.UserID == userID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *EmployeeRepo) GetByIDs(ctx context.Context, ids []string) (map[string]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]employee.Employee{}
	for _, id := range ids {
		if e, ok := r.rows[id]; ok {
			out[id] = e
		}
	}
	return out, nil
}

func (r *EmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rows {
		if strings.EqualFold(existing.Email, e.Email) {
			return employee.Employee{}, employee.ErrEmailExists
		}
	}
	return r.put(e), nil
}

func (r *EmployeeRepo) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[e.ID]; !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	r.rows[e.ID] = e
	return e, nil
}

func (r *EmployeeRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *EmployeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	filter.Normalize()
	all, _ := r.ListAll(ctx)
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	var matched []employee.Employee
	for _, e := range all {
		if filter.Search == "" || strings.Contains(strings.ToLower(e.Name), strings.ToLower(filter.Search)) {
			matched = append(matched, e)
		}
	}
	start := (filter.Page - 1) * filter.PerPage
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], int64(len(matched)), nil
}

func (r *EmployeeRepo) ListAll(ctx context.Context) ([]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]employee.Employee, 0, len(r.rows))
	for _, e := range r.rows {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *EmployeeRepo) UpdateBalance(ctx context.Context, id string, quota, used, remaining int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rows[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.LeaveQuota, e.UsedDays, e.RemainingDays = quota, used, remaining
	r.rows[id] = e
	return nil
}

func (r *EmployeeRepo) UpdatePhoto(ctx context.Context, id string, photoURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rows[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.Photo = &photoURL
	r.rows[id] = e
	return nil
}

// Attendance

type AttendanceRepo struct {
	mu        sync.Mutex
	rows      []attendance.Attendance
	Employees *EmployeeRepo
}

func NewAttendanceRepo(employees *EmployeeRepo) *AttendanceRepo {
	return &AttendanceRepo{Employees: employees}
}

func (r *AttendanceRepo) decorate(a attendance.Attendance) attendance.Attendance {
	if r.Employees == nil {
		return a
	}
	if e, err := r.Employees.GetByID(context.Background(), a.EmployeeID); err == nil {
		name, email, role := e.Name, e.Email, e.Role
		a.EmployeeName, a.EmployeeEmail, a.EmployeeRole = &name, &email, &role
	}
	return a
}

func (r *AttendanceRepo) find(employeeID string, date time.Time) int {
	for i, a := range r.rows {
		if a.EmployeeID == employeeID && dayKey(a.Date) == dayKey(date) {
			return i
		}
	}
	return -1
}

func (r *AttendanceRepo) insert(a attendance.Attendance) attendance.Attendance {
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	r.rows = append(r.rows, a)
	return a
}

func (r *AttendanceRepo) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.find(a.EmployeeID, a.Date) >= 0 {
		return attendance.Attendance{}, attendance.ErrAlreadyMarked
	}
	return r.decorate(r.insert(a)), nil
}

func (r *AttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.rows {
		if a.ID == id {
			return r.decorate(a), nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (r *AttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.find(employeeID, date); i >= 0 {
		a := r.decorate(r.rows[i])
		return &a, nil
	}
	return nil, nil
}

func (r *AttendanceRepo) UpdateStatus(ctx context.Context, id string, status attendance.Status, isWeeklyOff bool) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].Status = status
			r.rows[i].IsWeeklyOff = isWeeklyOff
			return r.decorate(r.rows[i]), nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (r *AttendanceRepo) Upsert(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.find(a.EmployeeID, a.Date); i >= 0 {
		r.rows[i].Status = a.Status
		r.rows[i].IsWeeklyOff = a.IsWeeklyOff
		return r.decorate(r.rows[i]), nil
	}
	return r.decorate(r.insert(a)), nil
}

func (r *AttendanceRepo) ForceStatus(ctx context.Context, employeeID string, date time.Time, status attendance.Status, reason string) (attendance.Attendance, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.find(employeeID, date); i >= 0 {
		if attendance.SeverityOf(r.rows[i].Status) >= attendance.SeverityOf(status) {
			return attendance.Attendance{}, false, nil
		}
		r.rows[i].Status = status
		r.rows[i].Reason = reason
		return r.decorate(r.rows[i]), true, nil
	}
	return r.decorate(r.insert(attendance.Attendance{
		EmployeeID: employeeID, Date: date, Status: status, Reason: reason,
	})), true, nil
}

func (r *AttendanceRepo) ListInRange(ctx context.Context, employeeID *string, from, to time.Time) ([]attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []attendance.Attendance
	for _, a := range r.rows {
		if employeeID != nil && a.EmployeeID != *employeeID {
			continue
		}
		if a.Date.Before(from) || a.Date.After(to) {
			continue
		}
		out = append(out, r.decorate(a))
	}
	return out, nil
}

func (r *AttendanceRepo) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []attendance.Attendance
	for _, a := range r.rows {
		if a.EmployeeID == employeeID {
			out = append(out, r.decorate(a))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *AttendanceRepo) CountByStatus(ctx context.Context, employeeID string, status attendance.Status, from, to time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, a := range r.rows {
		if a.EmployeeID == employeeID && a.Status == status && !a.Date.Before(from) && !a.Date.After(to) {
			n++
		}
	}
	return n, nil
}

// Weekly offs

type WeeklyOffRepo struct {
	mu   sync.Mutex
	rows []weeklyoff.WeeklyOff
}

func (r *WeeklyOffRepo) Create(ctx context.Context, off weeklyoff.WeeklyOff) (weeklyoff.WeeklyOff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	off.ID = uuid.NewString()
	off.CreatedAt = time.Now()
	r.rows = append(r.rows, off)
	return off, nil
}

func (r *WeeklyOffRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, w := range r.rows {
		if w.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return weeklyoff.ErrWeeklyOffNotFound
}

func (r *WeeklyOffRepo) ListAll(ctx context.Context) ([]weeklyoff.WeeklyOff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]weeklyoff.WeeklyOff(nil), r.rows...), nil
}

func (r *WeeklyOffRepo) ListByEmployee(ctx context.Context, employeeID string) ([]weeklyoff.WeeklyOff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []weeklyoff.WeeklyOff
	for _, w := range r.rows {
		if w.EmployeeID == employeeID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *WeeklyOffRepo) ListRelevant(ctx context.Context, employeeID *string, from, to time.Time) ([]weeklyoff.WeeklyOff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []weeklyoff.WeeklyOff
	for _, w := range r.rows {
		if employeeID != nil && w.EmployeeID != *employeeID {
			continue
		}
		if w.Date.After(to) || (!w.Recurring() && w.Date.Before(from)) {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

// Leave requests

type LeaveRepo struct {
	mu   sync.Mutex
	rows []leave.LeaveRequest
}

func (r *LeaveRepo) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req.ID = uuid.NewString()
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	req.UpdatedAt = req.CreatedAt
	r.rows = append(r.rows, req)
	return req, nil
}

func (r *LeaveRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.rows {
		if l.ID == id {
			return l, nil
		}
	}
	return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
}

func (r *LeaveRepo) GetForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *LeaveRepo) UpdateStatus(ctx context.Context, id string, status leave.Status) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].Status = status
			return r.rows[i], nil
		}
	}
	return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
}

func (r *LeaveRepo) CountCreatedBetween(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, l := range r.rows {
		if l.EmployeeID == employeeID && !l.CreatedAt.Before(from) && l.CreatedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

func (r *LeaveRepo) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveRequest, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []leave.LeaveRequest
	for _, l := range r.rows {
		if filter.EmployeeID != nil && l.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(l.Status) != *filter.Status {
			continue
		}
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].From.After(out[j].From) })
	total := int64(len(out))
	if filter.PerPage > 0 {
		start := (filter.Page - 1) * filter.PerPage
		if start > len(out) {
			start = len(out)
		}
		end := start + filter.PerPage
		if end > len(out) {
			end = len(out)
		}
		out = out[start:end]
	}
	return out, total, nil
}

func (r *LeaveRepo) ListOverlapping(ctx context.Context, employeeID *string, status *leave.Status, from, to time.Time) ([]leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []leave.LeaveRequest
	for _, l := range r.rows {
		if employeeID != nil && l.EmployeeID != *employeeID {
			continue
		}
		if status != nil && l.Status != *status {
			continue
		}
		if l.From.After(to) || l.To.Before(from) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *LeaveRepo) SumApprovedDays(ctx context.Context, employeeID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, l := range r.rows {
		if l.EmployeeID == employeeID && l.Status == leave.StatusApproved {
			total += l.Days()
		}
	}
	return total, nil
}

// Login hours

type LoginHourRepo struct {
	mu   sync.Mutex
	rows []loginhour.LoginHour
}

func cloneLoginHour(l loginhour.LoginHour) loginhour.LoginHour {
	l.Breaks = append(loginhour.Breaks{}, l.Breaks...)
	return l
}

func (r *LoginHourRepo) find(employeeID string, date time.Time) int {
	for i, l := range r.rows {
		if l.EmployeeID == employeeID && dayKey(l.Date) == dayKey(date) {
			return i
		}
	}
	return -1
}

func (r *LoginHourRepo) Create(ctx context.Context, record loginhour.LoginHour) (loginhour.LoginHour, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.find(record.EmployeeID, record.Date); i >= 0 {
		return cloneLoginHour(r.rows[i]), nil
	}
	record.ID = uuid.NewString()
	if record.Breaks == nil {
		record.Breaks = loginhour.Breaks{}
	}
	r.rows = append(r.rows, cloneLoginHour(record))
	return record, nil
}

func (r *LoginHourRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (loginhour.LoginHour, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.find(employeeID, date); i >= 0 {
		return cloneLoginHour(r.rows[i]), nil
	}
	return loginhour.LoginHour{}, loginhour.ErrLoginHourNotFound
}

func (r *LoginHourRepo) GetForUpdate(ctx context.Context, employeeID string, date time.Time) (loginhour.LoginHour, error) {
	return r.GetByEmployeeAndDate(ctx, employeeID, date)
}

func (r *LoginHourRepo) Save(ctx context.Context, record loginhour.LoginHour) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == record.ID {
			r.rows[i] = cloneLoginHour(record)
			return nil
		}
	}
	return loginhour.ErrLoginHourNotFound
}

func (r *LoginHourRepo) ListAll(ctx context.Context) ([]loginhour.LoginHour, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]loginhour.LoginHour, 0, len(r.rows))
	for _, l := range r.rows {
		out = append(out, cloneLoginHour(l))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *LoginHourRepo) ListOpenBreaks(ctx context.Context, date time.Time) ([]loginhour.LoginHour, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []loginhour.LoginHour
	for _, l := range r.rows {
		if dayKey(l.Date) == dayKey(date) && l.Breaks.OnBreak() {
			out = append(out, cloneLoginHour(l))
		}
	}
	return out, nil
}

// Call logs

type CallLogRepo struct {
	mu   sync.Mutex
	rows []calllog.CallLog
}

func (r *CallLogRepo) Create(ctx context.Context, l calllog.CallLog) (calllog.CallLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.ID = strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
	r.rows = append(r.rows, l)
	return l, nil
}

func (r *CallLogRepo) List(ctx context.Context, page, limit int) ([]calllog.CallLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	start := (page - 1) * limit
	if start > len(r.rows) {
		start = len(r.rows)
	}
	end := start + limit
	if end > len(r.rows) {
		end = len(r.rows)
	}
	return append([]calllog.CallLog(nil), r.rows[start:end]...), int64(len(r.rows)), nil
}

func (r *CallLogRepo) ListByEmployee(ctx context.Context, employeeID string) ([]calllog.CallLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []calllog.CallLog
	for _, l := range r.rows {
		if l.EmployeeID == employeeID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *CallLogRepo) ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]calllog.CallLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []calllog.CallLog
	for _, l := range r.rows {
		if l.EmployeeID == employeeID && !l.CreatedAt.Before(from) && !l.CreatedAt.After(to) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *CallLogRepo) Summary(ctx context.Context, from, to *time.Time) (calllog.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var s calllog.Summary
	for _, l := range r.rows {
		if from != nil && l.CreatedAt.Before(*from) || to != nil && l.CreatedAt.After(*to) {
			continue
		}
		s.TotalCalls++
		if l.WasSaleConverted == calllog.SaleYes {
			s.TotalSales++
			s.TotalProfit = s.TotalProfit.Add(l.ProfitAmount)
		}
	}
	return s, nil
}

// Users

type UserRepo struct {
	mu        sync.Mutex
	rows      []user.User
	Employees *EmployeeRepo
}

func (r *UserRepo) link(u user.User) user.User {
	if r.Employees == nil {
		return u
	}
	if e, err := r.Employees.GetByUserID(context.Background(), u.ID); err == nil {
		id := e.ID
		u.EmployeeID = &id
	}
	return u
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.rows {
		if u.Email == email {
			return r.link(u), nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.rows {
		if u.ID == id {
			return r.link(u), nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *UserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rows {
		if existing.Email == u.Email {
			return user.User{}, user.ErrUserEmailExists
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	r.rows = append(r.rows, u)
	return u, nil
}

func (r *UserRepo) CountByRole(ctx context.Context, role user.Role) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, u := range r.rows {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == userID {
			r.rows[i].PasswordHash = passwordHash
			return nil
		}
	}
	return user.ErrUserNotFound
}

// Files

type Storage struct {
	mu    sync.Mutex
	Files map[string][]byte
	Err   error
}

func NewStorage() *Storage {
	return &Storage{Files: map[string][]byte{}}
}

func (s *Storage) Save(ctx context.Context, dir, filename string, content io.Reader) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	url := "/uploads/" + dir + "/" + uuid.NewString()[:8] + "-" + filename
	s.Files[url] = data
	return url, nil
}

func (s *Storage) Delete(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Files, url)
	return nil
}

// Email

type SentReport struct {
	To   string
	Data email.DailyReportData
}

type SentPasswordNotice struct {
	To   string
	Data email.PasswordChangedData
}

type Mailer struct {
	mu        sync.Mutex
	Reports   []SentReport
	Passwords []SentPasswordNotice
	Err       error
}

func (m *Mailer) SendDailyReport(ctx context.Context, to string, data email.DailyReportData) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reports = append(m.Reports, SentReport{To: to, Data: data})
	return nil
}

func (m *Mailer) SendPasswordChanged(ctx context.Context, to string, data email.PasswordChangedData) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Passwords = append(m.Passwords, SentPasswordNotice{To: to, Data: data})
	return nil
}

package attendance

import (
	"sort"
	"time"
)

const (
	reasonWeeklyOff = "Weekly Off"
	reasonLeave     = "Leave Applied"
	reasonAbsent    = "No record found"
)

// Record is one row of the reconciled sequence, explicit or virtual.
type Record struct {
	ID          string
	Employee    EmployeeRef
	Date        time.Time
	Status      Status
	Reason      string
	IsWeeklyOff bool
	IsVirtual   bool
	CreatedAt   *time.Time
}

// Counters tallies statuses. Half-Day and unrecognized statuses keep their own buckets.
type Counters struct {
	Present   int `json:"present"`
	Absent    int `json:"absent"`
	Leave     int `json:"leave"`
	WeeklyOff int `json:"weeklyOff"`
	HalfDay   int `json:"halfDay"`
	Other     int `json:"other"`
}

func (c *Counters) add(s Status) {
	switch s {
	case StatusPresent:
		c.Present++
	case StatusAbsent:
		c.Absent++
	case StatusLeave:
		c.Leave++
	case StatusWeeklyOff:
		c.WeeklyOff++
	case StatusHalfDay:
		c.HalfDay++
	default:
		c.Other++
	}
}

func (c Counters) Total() int {
	return c.Present + c.Absent + c.Leave + c.WeeklyOff + c.HalfDay + c.Other
}

type EmployeeStats struct {
	Employee EmployeeRef
	Counters
}

// ReconcileInput is everything the projection needs. From and To are civil dates, both included.
type ReconcileInput struct {
	Employees  []EmployeeRef
	From       time.Time
	To         time.Time
	Records    []Attendance
	WeeklyOffs []WeeklyOffDay
	Leaves     []LeaveSpan
	// ApprovedLeaveOnly ignores Pending and Rejected leave spans.
	ApprovedLeaveOnly bool
}

type Reconciliation struct {
	Records   []Record
	Employees []EmployeeStats
	Overall   Counters
}

// Reconcile merges explicit records, weekly offs and leave spans into one status per employee per day.
// Precedence is explicit record, then weekly off, then leave, then a synthesized Absent.
// Records come back newest first; ties keep employee order.
func Reconcile(in ReconcileInput) Reconciliation {
	explicit := make(map[string]map[string]Attendance, len(in.Employees))
	for _, r := range in.Records {
		if explicit[r.EmployeeID] == nil {
			explicit[r.EmployeeID] = make(map[string]Attendance)
		}
		explicit[r.EmployeeID][dayKey(r.Date)] = r
	}

	weeklyOffs := make(map[string]map[string]WeeklyOffDay)
	for _, w := range in.WeeklyOffs {
		if weeklyOffs[w.EmployeeID] == nil {
			weeklyOffs[w.EmployeeID] = make(map[string]WeeklyOffDay)
		}
		weeklyOffs[w.EmployeeID][dayKey(w.Date)] = w
	}

	leaves := make(map[string][]LeaveSpan)
	for _, l := range in.Leaves {
		if in.ApprovedLeaveOnly && !l.Approved {
			continue
		}
		leaves[l.EmployeeID] = append(leaves[l.EmployeeID], l)
	}

	from, to := civil(in.From), civil(in.To)

	var out Reconciliation
	for _, emp := range in.Employees {
		stats := EmployeeStats{Employee: emp}

		for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
			key := dayKey(day)
			rec := resolveDay(emp, day, explicit[emp.ID][key], weeklyOffs[emp.ID], key, leaves[emp.ID])

			stats.add(rec.Status)
			out.Overall.add(rec.Status)
			out.Records = append(out.Records, rec)
		}

		out.Employees = append(out.Employees, stats)
	}

	sort.SliceStable(out.Records, func(i, j int) bool {
		return out.Records[i].Date.After(out.Records[j].Date)
	})

	return out
}

func resolveDay(emp EmployeeRef, day time.Time, rec Attendance, offs map[string]WeeklyOffDay, key string, spans []LeaveSpan) Record {
	if rec.ID != "" {
		created := rec.CreatedAt
		return Record{
			ID:          rec.ID,
			Employee:    emp,
			Date:        day,
			Status:      rec.Status,
			Reason:      rec.Reason,
			IsWeeklyOff: rec.IsWeeklyOff,
			CreatedAt:   &created,
		}
	}

	if off, ok := offs[key]; ok {
		return virtual(KindWeeklyOff, emp, day, StatusWeeklyOff, orDefault(off.Reason, reasonWeeklyOff))
	}

	for _, span := range spans {
		if span.Covers(day) {
			return virtual(KindLeave, emp, day, StatusLeave, orDefault(span.Reason, reasonLeave))
		}
	}

	return virtual(KindAbsent, emp, day, StatusAbsent, reasonAbsent)
}

func virtual(kind Kind, emp EmployeeRef, day time.Time, status Status, reason string) Record {
	return Record{
		ID:          VirtualID(kind, emp.ID, day),
		Employee:    emp,
		Date:        day,
		Status:      status,
		Reason:      reason,
		IsWeeklyOff: status == StatusWeeklyOff,
		IsVirtual:   true,
	}
}

// Paginate returns the 1-based page of records and the page count.
func Paginate(records []Record, page, perPage int) ([]Record, int) {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if page <= 0 {
		page = 1
	}
	totalPages := (len(records) + perPage - 1) / perPage

	start := (page - 1) * perPage
	if start >= len(records) {
		return []Record{}, totalPages
	}
	end := start + perPage
	if end > len(records) {
		end = len(records)
	}
	return records[start:end], totalPages
}

func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dayKey(t time.Time) string {
	return t.Format(dateLayout)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

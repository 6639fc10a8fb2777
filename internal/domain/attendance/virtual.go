package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind names the rule that synthesized a virtual record.
type Kind string

const (
	KindWeeklyOff Kind = "weeklyoff"
	KindLeave     Kind = "leave"
	KindAbsent    Kind = "absent"

	virtualPrefix = "virtual-"
	dateLayout    = "2006-01-02"
)

// VirtualRef identifies the employee day behind a virtual id.
type VirtualRef struct {
	Kind       Kind
	EmployeeID string
	Date       time.Time
}

func VirtualID(kind Kind, employeeID string, date time.Time) string {
	return fmt.Sprintf("%s%s-%s-%s", virtualPrefix, kind, employeeID, date.Format(dateLayout))
}

func IsVirtualID(id string) bool {
	return strings.HasPrefix(id, virtualPrefix)
}

// ParseVirtualID splits virtual-{kind}-{employeeId}-{YYYY-MM-DD}.
// Employee ids contain hyphens, so the date is read from the fixed-width suffix.
func ParseVirtualID(id string) (VirtualRef, error) {
	if !IsVirtualID(id) {
		return VirtualRef{}, ErrInvalidVirtualID
	}
	rest := strings.TrimPrefix(id, virtualPrefix)
	if len(rest) < len(dateLayout)+2 || rest[len(rest)-len(dateLayout)-1] != '-' {
		return VirtualRef{}, ErrInvalidVirtualID
	}

	date, err := time.ParseInLocation(dateLayout, rest[len(rest)-len(dateLayout):], time.UTC)
	if err != nil {
		return VirtualRef{}, ErrInvalidVirtualID
	}

	head := rest[:len(rest)-len(dateLayout)-1]
	kindStr, employeeID, ok := strings.Cut(head, "-")
	if !ok {
		return VirtualRef{}, ErrInvalidVirtualID
	}

	kind := Kind(kindStr)
	switch kind {
	case KindWeeklyOff, KindLeave, KindAbsent:
	default:
		return VirtualRef{}, ErrInvalidVirtualID
	}

	if _, err := uuid.Parse(employeeID); err != nil {
		return VirtualRef{}, ErrInvalidVirtualID
	}

	return VirtualRef{Kind: kind, EmployeeID: employeeID, Date: date}, nil
}

// MaterializeReason is the reason stored when a virtual row is first written.
func (v VirtualRef) MaterializeReason() string {
	return fmt.Sprintf("Updated from virtual %s record", v.Kind)
}

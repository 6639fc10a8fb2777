package loginhour

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Break is one interval of the ledger. End is nil while the break is open.
type Break struct {
	Start             time.Time  `json:"start"`
	End               *time.Time `json:"end,omitempty"`
	RequestedDuration *int       `json:"requestedDuration,omitempty"` // minutes
}

// Breaks is the ordered, append-only break ledger of one shift day.
type Breaks []Break

// Value implements driver.Valuer for the JSONB column
func (b Breaks) Value() (driver.Value, error) {
	if b == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(b)
}

// Scan implements sql.Scanner for the JSONB column
func (b *Breaks) Scan(value interface{}) error {
	if value == nil {
		*b = Breaks{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("failed to scan Breaks: invalid type")
	}

	return json.Unmarshal(raw, b)
}

// LoginHour is the session record of one employee on one shift day.
type LoginHour struct {
	ID         string
	EmployeeID string
	Date       time.Time
	LoginTime  time.Time
	LogoutTime *time.Time
	Breaks     Breaks
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName  *string
	EmployeeEmail *string
}

package report

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// CallSummary is the optional client-provided summary. Missing fields count as zero.
type CallSummary struct {
	TotalCalls       int              `json:"totalCalls"`
	SalesCount       int              `json:"salesCount"`
	RejectionCount   int              `json:"rejectionCount"`
	ProfitEarned     *decimal.Decimal `json:"profitEarned,omitempty"`
	ChargebackRefund *decimal.Decimal `json:"chargebackRefund,omitempty"`
	NetProfit        *decimal.Decimal `json:"netProfit,omitempty"`
	LanguageBarriers int              `json:"languageBarriers"`
	ReasonBreakdown  map[string]int   `json:"reasonBreakdown"`
}

type DailyReportRequest struct {
	EmployeeID string       `json:"employeeId"`
	Email      *string      `json:"email,omitempty"`
	Summary    *CallSummary `json:"summary,omitempty"`
}

func (r *DailyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "Employee ID is required",
		})
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId must be a valid id",
		})
	}

	if r.Email != nil {
		email := strings.TrimSpace(*r.Email)
		if email == "" {
			r.Email = nil
		} else if !validator.IsValidEmail(email) {
			errs = append(errs, validator.ValidationError{
				Field:   "email",
				Message: "email must be a valid email address",
			})
		} else {
			r.Email = &email
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DailyReportResponse struct {
	Recipient  string `json:"recipient"`
	Employee   string `json:"employee"`
	ReportDate string `json:"reportDate"`
}

package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/calllog"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/loginhour"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/weeklyoff"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/oauth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Configured limits carry their own message
	var policyErr *validator.PolicyError
	if errors.As(err, &policyErr) {
		BadRequest(w, policyErr.Message, nil)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid credentials")
	case errors.Is(err, jwt.ErrMissingClaims):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrMaxAdminsReached):
		Forbidden(w, "Maximum number of admins reached")
	case errors.Is(err, auth.ErrNotPrimaryAdmin):
		Forbidden(w, "Only the primary admin can change passwords")
	case errors.Is(err, auth.ErrGoogleLoginOff):
		NotFound(w, "Google login is not configured")
	case errors.Is(err, oauth.ErrStateMismatch):
		BadRequest(w, "Invalid OAuth state", nil)
	case errors.Is(err, oauth.ErrEmailNotVerified):
		Forbidden(w, "Google email is not verified")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "User already exists with this email")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		BadRequest(w, "Email already registered", nil)
	case errors.Is(err, employee.ErrInvalidLeaveQuota):
		BadRequest(w, "Invalid leave quota", nil)
	case errors.Is(err, employee.ErrInvalidUsedDays):
		BadRequest(w, "Invalid used days value", nil)
	case errors.Is(err, employee.ErrUsedDaysBelowApproved),
		errors.Is(err, employee.ErrUsedDaysAboveQuota):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, employee.ErrNoSalary):
		BadRequest(w, "Salary not set for this employee", nil)
	case errors.Is(err, employee.ErrPhotoRequired):
		BadRequest(w, "No photo uploaded", nil)
	case errors.Is(err, employee.ErrInvalidPhotoType):
		BadRequest(w, "Photo must be a jpg, jpeg, png or webp file", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyMarked):
		BadRequest(w, "Attendance already marked for this date", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInvalidVirtualID):
		BadRequest(w, "Invalid virtual attendance id", nil)
	case errors.Is(err, attendance.ErrNoEmployeeProfile):
		Forbidden(w, "No employee profile linked to this account")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "To date must not be before from date", nil)
	case errors.Is(err, leave.ErrInvalidDocument):
		BadRequest(w, "Document must be a pdf, doc, docx, jpg, jpeg or png file", nil)

	// Login hour domain errors
	case errors.Is(err, loginhour.ErrLoginHourNotFound):
		NotFound(w, "Login record not found for this shift")
	case errors.Is(err, loginhour.ErrBreakAlreadyOpen):
		BadRequest(w, "A break is already in progress", nil)
	case errors.Is(err, loginhour.ErrNoBreaksRecorded):
		BadRequest(w, "No breaks recorded", nil)
	case errors.Is(err, loginhour.ErrNoActiveBreak):
		BadRequest(w, "No active break to end", nil)

	// Weekly off domain errors
	case errors.Is(err, weeklyoff.ErrWeeklyOffNotFound):
		NotFound(w, "Weekly off not found")
	case errors.Is(err, weeklyoff.ErrInvalidRecurrence):
		BadRequest(w, "Invalid recurrence rule", nil)

	// Call log domain errors
	case errors.Is(err, calllog.ErrCallLogNotFound):
		NotFound(w, "Call log not found")
	case errors.Is(err, calllog.ErrInvalidSaleConverted),
		errors.Is(err, calllog.ErrProfitRequired),
		errors.Is(err, calllog.ErrSaleChannelRequired),
		errors.Is(err, calllog.ErrNoSaleReasonRequired),
		errors.Is(err, calllog.ErrNegativeChargeback):
		BadRequest(w, err.Error(), nil)

	// Report domain errors
	case errors.Is(err, report.ErrNoRecipient):
		BadRequest(w, "Email address is required", nil)
	case errors.Is(err, report.ErrSendFailed):
		slog.Error("daily report delivery failed", "error", err)
		InternalServerError(w, "Failed to send daily report")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

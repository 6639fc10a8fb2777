package calllog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

const DefaultLimit = 10

const (
	FilterMonthly = "monthly"
	FilterRange   = "range"
)

type CreateCallLogRequest struct {
	EmployeeID           string           `json:"employeeId" validate:"required,uuid"`
	CallDirection        string           `json:"callDirection" validate:"required,oneof=INBOUND OUTBOUND"`
	ReasonForCall        string           `json:"reasonForCall" validate:"required"`
	TypeOfCall           string           `json:"typeOfCall" validate:"required"`
	CallCategory         *string          `json:"callCategory,omitempty"`
	CallDescription      string           `json:"callDescription" validate:"required"`
	WasSaleConverted     string           `json:"wasSaleConverted" validate:"required"`
	SaleConvertedThrough *string          `json:"saleConvertedThrough,omitempty"`
	ProfitAmount         *decimal.Decimal `json:"profitAmount,omitempty"`
	ChargebackRefund     *decimal.Decimal `json:"chargebackRefund,omitempty"`
	ReasonForNoSale      string           `json:"reasonForNoSale"`
	CustomerName         string           `json:"customerName" validate:"required"`
	CustomerEmail        string           `json:"customerEmail" validate:"required,email"`
	CustomerPhone        string           `json:"customerPhone" validate:"required"`
	Language             string           `json:"language" validate:"required,oneof=English Spanish Other"`
}

// Validate checks presence and enums. Sale rules are applied by Build.
func (r *CreateCallLogRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}

	var errs validator.ValidationErrors
	if !validator.IsInSlice(r.ReasonForCall, CallReasons) {
		errs = append(errs, validator.ValidationError{
			Field:   "reasonForCall",
			Message: "reasonForCall is not a supported value",
		})
	}
	if !validator.IsInSlice(r.TypeOfCall, CallTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "typeOfCall",
			Message: "typeOfCall is not a supported value",
		})
	}
	if r.TypeOfCall == TypeSalesInquiry {
		if r.CallCategory == nil || !validator.IsInSlice(*r.CallCategory, CallCategories) {
			errs = append(errs, validator.ValidationError{
				Field:   "callCategory",
				Message: "callCategory is required for Sales Inquiry calls",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListFilter struct {
	Page  int
	Limit int
}

func (f *ListFilter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
}

// SummaryFilter selects the createdAt window: the current month, an explicit range, or everything.
type SummaryFilter struct {
	FilterType string
	StartDate  *string
	EndDate    *string
}

// Window resolves the filter. A nil pair means no createdAt restriction.
func (f SummaryFilter) Window(now time.Time, loc *time.Location) (*time.Time, *time.Time, error) {
	switch f.FilterType {
	case FilterMonthly:
		local := now.In(loc)
		start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
		end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
		return &start, &end, nil
	case FilterRange:
		if f.StartDate == nil || f.EndDate == nil {
			return nil, nil, nil
		}
		var errs validator.ValidationErrors
		from, ok := validator.IsValidDate(*f.StartDate)
		if !ok {
			errs.Add("startDate", "startDate must be in YYYY-MM-DD format")
		}
		to, ok := validator.IsValidDate(*f.EndDate)
		if !ok {
			errs.Add("endDate", "endDate must be in YYYY-MM-DD format")
		}
		if err := errs.Err(); err != nil {
			return nil, nil, err
		}
		start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)
		end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
		return &start, &end, nil
	default:
		return nil, nil, nil
	}
}

type EmployeeSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CallLogResponse struct {
	ID                   string           `json:"id"`
	EmployeeID           string           `json:"employeeId"`
	Employee             *EmployeeSummary `json:"employee,omitempty"`
	CallDirection        string           `json:"callDirection"`
	ReasonForCall        string           `json:"reasonForCall"`
	TypeOfCall           string           `json:"typeOfCall"`
	CallCategory         *string          `json:"callCategory,omitempty"`
	CallDescription      string           `json:"callDescription"`
	WasSaleConverted     string           `json:"wasSaleConverted"`
	SaleConvertedThrough *string          `json:"saleConvertedThrough,omitempty"`
	ProfitAmount         decimal.Decimal  `json:"profitAmount"`
	ChargebackRefund     decimal.Decimal  `json:"chargebackRefund"`
	NetProfit            decimal.Decimal  `json:"netProfit"`
	ReasonForNoSale      string           `json:"reasonForNoSale"`
	CustomerName         string           `json:"customerName"`
	CustomerEmail        string           `json:"customerEmail"`
	CustomerPhone        string           `json:"customerPhone"`
	Language             string           `json:"language"`
	CreatedAt            string           `json:"createdAt"`
}

func NewCallLogResponse(l CallLog) CallLogResponse {
	resp := CallLogResponse{
		ID:                   l.ID,
		EmployeeID:           l.EmployeeID,
		CallDirection:        l.CallDirection,
		ReasonForCall:        l.ReasonForCall,
		TypeOfCall:           l.TypeOfCall,
		CallCategory:         l.CallCategory,
		CallDescription:      l.CallDescription,
		WasSaleConverted:     l.WasSaleConverted,
		SaleConvertedThrough: l.SaleConvertedThrough,
		ProfitAmount:         l.ProfitAmount,
		ChargebackRefund:     l.ChargebackRefund,
		NetProfit:            l.NetProfit,
		ReasonForNoSale:      l.ReasonForNoSale,
		CustomerName:         l.CustomerName,
		CustomerEmail:        l.CustomerEmail,
		CustomerPhone:        l.CustomerPhone,
		Language:             l.Language,
		CreatedAt:            l.CreatedAt.Format(time.RFC3339),
	}
	if l.EmployeeName != nil {
		emp := EmployeeSummary{ID: l.EmployeeID, Name: *l.EmployeeName}
		if l.EmployeeEmail != nil {
			emp.Email = *l.EmployeeEmail
		}
		resp.Employee = &emp
	}
	return resp
}

type Pagination struct {
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	TotalItems      int64 `json:"totalItems"`
	ItemsPerPage    int   `json:"itemsPerPage"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage:     page,
		TotalPages:      totalPages,
		TotalItems:      total,
		ItemsPerPage:    limit,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

type ListCallLogResponse struct {
	Pagination Pagination        `json:"pagination"`
	Data       []CallLogResponse `json:"data"`
}

type SummaryResponse struct {
	TotalCalls                int64           `json:"totalCalls"`
	TotalSales                int64           `json:"totalSales"`
	TotalProfit               decimal.Decimal `json:"totalProfit"`
	TopCallCategories         []CountBucket   `json:"topCallCategories"`
	CallDirectionStats        []CountBucket   `json:"callDirectionStats"`
	SaleConvertedThroughStats []CountBucket   `json:"saleConvertedThroughStats"`
}

func NewSummaryResponse(s Summary) SummaryResponse {
	return SummaryResponse{
		TotalCalls:                s.TotalCalls,
		TotalSales:                s.TotalSales,
		TotalProfit:               s.TotalProfit,
		TopCallCategories:         nonNil(s.TopCallCategories),
		CallDirectionStats:        nonNil(s.CallDirectionStats),
		SaleConvertedThroughStats: nonNil(s.SaleConvertedThroughStats),
	}
}

type TodaySummaryResponse struct {
	Date             string            `json:"date"`
	TotalCalls       int               `json:"totalCalls"`
	SalesCount       int               `json:"salesCount"`
	RejectionCount   int               `json:"rejectionCount"`
	ProfitEarned     decimal.Decimal   `json:"profitEarned"`
	ChargebackRefund decimal.Decimal   `json:"chargebackRefund"`
	NetProfit        decimal.Decimal   `json:"netProfit"`
	LanguageBarriers int               `json:"languageBarriers"`
	ReasonBreakdown  map[string]int    `json:"reasonBreakdown"`
	CallLogs         []CallLogResponse `json:"callLogs"`
}

func NewTodaySummaryResponse(date string, logs []CallLog) TodaySummaryResponse {
	s := Summarize(logs)
	resp := TodaySummaryResponse{
		Date:             date,
		TotalCalls:       s.TotalCalls,
		SalesCount:       s.SalesCount,
		RejectionCount:   s.RejectionCount,
		ProfitEarned:     s.ProfitEarned,
		ChargebackRefund: s.ChargebackRefund,
		NetProfit:        s.NetProfit,
		LanguageBarriers: s.LanguageBarriers,
		ReasonBreakdown:  s.ReasonBreakdown,
		CallLogs:         make([]CallLogResponse, 0, len(logs)),
	}
	for _, l := range logs {
		resp.CallLogs = append(resp.CallLogs, NewCallLogResponse(l))
	}
	return resp
}

func nonNil(b []CountBucket) []CountBucket {
	if b == nil {
		return []CountBucket{}
	}
	return b
}

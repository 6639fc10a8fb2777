package calllog

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

func strPtr(s string) *string { return &s }

func decPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func baseRequest() CreateCallLogRequest {
	return CreateCallLogRequest{
		EmployeeID:      "3f2504e0-4f89-41d3-9a0c-0305e82c3301",
		CallDirection:   DirectionInbound,
		ReasonForCall:   "Flight Inquiry",
		TypeOfCall:      TypeSalesInquiry,
		CallCategory:    strPtr("Flight"),
		CallDescription: "Wants a return to Lisbon",
		CustomerName:    "Maria",
		CustomerEmail:   "maria@example.com",
		CustomerPhone:   "+1 555 0100",
		Language:        "Spanish",
	}
}

func TestBuild_Sale(t *testing.T) {
	req := baseRequest()
	req.WasSaleConverted = SaleYes
	req.SaleConvertedThrough = strPtr("WhatsApp")
	req.ProfitAmount = decPtr("120.50")
	req.ChargebackRefund = decPtr("20.25")
	req.ReasonForNoSale = "should be dropped"

	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	log, err := Build(req, now)
	require.NoError(t, err)

	assert.Equal(t, "100.25", log.NetProfit.StringFixed(2))
	assert.Empty(t, log.ReasonForNoSale)
	assert.Equal(t, "Flight", *log.CallCategory)
	assert.Equal(t, now, log.CreatedAt)
}

func TestBuild_NoSale(t *testing.T) {
	req := baseRequest()
	req.WasSaleConverted = SaleNo
	req.ReasonForNoSale = LanguageBarrier
	req.ProfitAmount = decPtr("50")
	req.ChargebackRefund = decPtr("5")
	req.SaleConvertedThrough = strPtr("Phone")

	log, err := Build(req, time.Now())
	require.NoError(t, err)

	assert.True(t, log.ProfitAmount.IsZero())
	assert.True(t, log.ChargebackRefund.IsZero())
	assert.True(t, log.NetProfit.IsZero())
	assert.Nil(t, log.SaleConvertedThrough)
}

func TestBuild_CategoryOnlyForSalesInquiry(t *testing.T) {
	req := baseRequest()
	req.TypeOfCall = "Customer Service"
	req.WasSaleConverted = SaleNo
	req.ReasonForNoSale = "Price"

	log, err := Build(req, time.Now())
	require.NoError(t, err)
	assert.Nil(t, log.CallCategory)
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *CreateCallLogRequest)
		want   error
	}{
		{"unknown conversion", func(r *CreateCallLogRequest) { r.WasSaleConverted = "N/A" }, ErrInvalidSaleConverted},
		{"sale without profit", func(r *CreateCallLogRequest) {
			r.WasSaleConverted = SaleYes
			r.SaleConvertedThrough = strPtr("Phone")
		}, ErrProfitRequired},
		{"sale with zero profit", func(r *CreateCallLogRequest) {
			r.WasSaleConverted = SaleYes
			r.ProfitAmount = decPtr("0")
			r.SaleConvertedThrough = strPtr("Phone")
		}, ErrProfitRequired},
		{"sale without channel", func(r *CreateCallLogRequest) {
			r.WasSaleConverted = SaleYes
			r.ProfitAmount = decPtr("10")
		}, ErrSaleChannelRequired},
		{"sale with unknown channel", func(r *CreateCallLogRequest) {
			r.WasSaleConverted = SaleYes
			r.ProfitAmount = decPtr("10")
			r.SaleConvertedThrough = strPtr("Carrier pigeon")
		}, ErrSaleChannelRequired},
		{"no sale without reason", func(r *CreateCallLogRequest) { r.WasSaleConverted = SaleNo }, ErrNoSaleReasonRequired},
		{"negative chargeback", func(r *CreateCallLogRequest) {
			r.WasSaleConverted = SaleNo
			r.ReasonForNoSale = "x"
			r.ChargebackRefund = decPtr("-1")
		}, ErrNegativeChargeback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)
			_, err := Build(req, time.Now())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCreateCallLogRequest_Validate(t *testing.T) {
	req := baseRequest()
	req.WasSaleConverted = SaleNo
	require.NoError(t, req.Validate())

	req.CallDirection = "SIDEWAYS"
	req.CustomerEmail = "nope"
	err := req.Validate()
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "callDirection")
	assert.Contains(t, errs.ToMap(), "customerEmail")

	req = baseRequest()
	req.WasSaleConverted = SaleNo
	req.ReasonForCall = "Weather"
	req.CallCategory = nil
	err = req.Validate()
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "reasonForCall")
	assert.Contains(t, errs.ToMap(), "callCategory")
}

func TestSummarize(t *testing.T) {
	logs := []CallLog{
		{WasSaleConverted: SaleYes, ProfitAmount: decimal.NewFromInt(100), ChargebackRefund: decimal.NewFromInt(10), NetProfit: decimal.NewFromInt(90)},
		{WasSaleConverted: SaleYes, ProfitAmount: decimal.NewFromInt(50), NetProfit: decimal.NewFromInt(50)},
		{WasSaleConverted: SaleNo, ReasonForNoSale: LanguageBarrier},
		{WasSaleConverted: SaleNo, ReasonForNoSale: "Price"},
		{WasSaleConverted: SaleNo, ReasonForNoSale: "Price"},
		{WasSaleConverted: SaleNo},
	}

	s := Summarize(logs)
	assert.Equal(t, 6, s.TotalCalls)
	assert.Equal(t, 2, s.SalesCount)
	assert.Equal(t, 4, s.RejectionCount)
	assert.Equal(t, "150", s.ProfitEarned.String())
	assert.Equal(t, "10", s.ChargebackRefund.String())
	assert.Equal(t, "140", s.NetProfit.String())
	assert.Equal(t, 1, s.LanguageBarriers)
	assert.Equal(t, map[string]int{LanguageBarrier: 1, "Price": 2, "Unknown": 1}, s.ReasonBreakdown)
}

func TestSummaryFilter_Window(t *testing.T) {
	loc := time.FixedZone("ORG", 330*60)
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	from, to, err := SummaryFilter{FilterType: FilterMonthly}.Window(now, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, loc), *from)
	assert.Equal(t, 31, to.Day())

	from, to, err = SummaryFilter{FilterType: FilterRange, StartDate: strPtr("2024-05-01"), EndDate: strPtr("2024-05-02")}.Window(now, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, loc), *from)
	assert.True(t, to.Before(time.Date(2024, 5, 3, 0, 0, 0, 0, loc)))

	from, to, err = SummaryFilter{}.Window(now, loc)
	require.NoError(t, err)
	assert.Nil(t, from)
	assert.Nil(t, to)

	_, _, err = SummaryFilter{FilterType: FilterRange, StartDate: strPtr("May 1"), EndDate: strPtr("2024-05-02")}.Window(now, loc)
	assert.Error(t, err)
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 25)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNextPage)
	assert.True(t, p.HasPreviousPage)

	p = NewPagination(1, 10, 0)
	assert.Zero(t, p.TotalPages)
	assert.False(t, p.HasNextPage)
	assert.False(t, p.HasPreviousPage)
}

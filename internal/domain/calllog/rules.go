package calllog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// Build applies the conditional sale rules to a validated request.
//   - A converted sale needs a positive profit and a known channel, and drops any no-sale reason.
//   - A lost sale needs a reason, and zeroes profit and chargeback.
//   - The category is only kept for Sales Inquiry calls.
func Build(r CreateCallLogRequest, now time.Time) (CallLog, error) {
	profit := decimal.Zero
	if r.ProfitAmount != nil {
		profit = *r.ProfitAmount
	}
	chargeback := decimal.Zero
	if r.ChargebackRefund != nil {
		chargeback = *r.ChargebackRefund
	}
	if chargeback.IsNegative() {
		return CallLog{}, ErrNegativeChargeback
	}

	reasonForNoSale := r.ReasonForNoSale
	channel := r.SaleConvertedThrough

	switch r.WasSaleConverted {
	case SaleYes:
		reasonForNoSale = ""
		if !profit.IsPositive() {
			return CallLog{}, ErrProfitRequired
		}
		if channel == nil || !validator.IsInSlice(*channel, SaleChannels) {
			return CallLog{}, ErrSaleChannelRequired
		}
	case SaleNo:
		profit = decimal.Zero
		chargeback = decimal.Zero
		channel = nil
		if reasonForNoSale == "" {
			return CallLog{}, ErrNoSaleReasonRequired
		}
	default:
		return CallLog{}, ErrInvalidSaleConverted
	}

	var category *string
	if r.TypeOfCall == TypeSalesInquiry && r.CallCategory != nil && *r.CallCategory != "" {
		category = r.CallCategory
	}

	return CallLog{
		EmployeeID:           r.EmployeeID,
		CallDirection:        r.CallDirection,
		ReasonForCall:        r.ReasonForCall,
		TypeOfCall:           r.TypeOfCall,
		CallCategory:         category,
		CallDescription:      r.CallDescription,
		WasSaleConverted:     r.WasSaleConverted,
		SaleConvertedThrough: channel,
		ProfitAmount:         profit,
		ChargebackRefund:     chargeback,
		NetProfit:            profit.Sub(chargeback),
		ReasonForNoSale:      reasonForNoSale,
		CustomerName:         r.CustomerName,
		CustomerEmail:        r.CustomerEmail,
		CustomerPhone:        r.CustomerPhone,
		Language:             r.Language,
		CreatedAt:            now,
		UpdatedAt:            now,
	}, nil
}

// TodaySummary tallies one employee's calls of a day.
type TodaySummary struct {
	TotalCalls       int
	SalesCount       int
	RejectionCount   int
	ProfitEarned     decimal.Decimal
	ChargebackRefund decimal.Decimal
	NetProfit        decimal.Decimal
	LanguageBarriers int
	ReasonBreakdown  map[string]int
}

func Summarize(logs []CallLog) TodaySummary {
	s := TodaySummary{
		TotalCalls:       len(logs),
		ProfitEarned:     decimal.Zero,
		ChargebackRefund: decimal.Zero,
		NetProfit:        decimal.Zero,
		ReasonBreakdown:  map[string]int{},
	}

	for _, l := range logs {
		switch l.WasSaleConverted {
		case SaleYes:
			s.SalesCount++
			s.ProfitEarned = s.ProfitEarned.Add(l.ProfitAmount)
			s.ChargebackRefund = s.ChargebackRefund.Add(l.ChargebackRefund)
			s.NetProfit = s.NetProfit.Add(l.NetProfit)
		case SaleNo:
			s.RejectionCount++
			reason := l.ReasonForNoSale
			if reason == "" {
				reason = "Unknown"
			}
			s.ReasonBreakdown[reason]++
		}
		if l.ReasonForNoSale == LanguageBarrier {
			s.LanguageBarriers++
		}
	}
	return s
}

package calllog

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DirectionInbound  = "INBOUND"
	DirectionOutbound = "OUTBOUND"

	TypeSalesInquiry = "Sales Inquiry"

	SaleYes = "Yes"
	SaleNo  = "No"

	// LanguageBarrier is the no-sale reason counted separately in summaries.
	LanguageBarrier = "Language barrier"
)

var (
	CallDirections = []string{DirectionInbound, DirectionOutbound}
	CallReasons    = []string{"Flight Inquiry", "Hotel Inquiry", "Seat Selection", "Refund/Cancel", "Price too high", "Language preference"}
	CallTypes      = []string{TypeSalesInquiry, "Post-Sale Inquiry", "Non-Sales Inquiry", "Customer Service", "Blank Call"}
	CallCategories = []string{"Flight", "Hotel", "Car Rental", "Packages", "Other"}
	SaleChannels   = []string{"Phone", "WhatsApp", "Email", "Offline"}
	Languages      = []string{"English", "Spanish", "Other"}
)

// CallLog is one handled customer call.
type CallLog struct {
	ID                   string
	EmployeeID           string
	CallDirection        string
	ReasonForCall        string
	TypeOfCall           string
	CallCategory         *string
	CallDescription      string
	WasSaleConverted     string
	SaleConvertedThrough *string
	ProfitAmount         decimal.Decimal
	ChargebackRefund     decimal.Decimal
	NetProfit            decimal.Decimal
	ReasonForNoSale      string
	CustomerName         string
	CustomerEmail        string
	CustomerPhone        string
	Language             string
	CreatedAt            time.Time
	UpdatedAt            time.Time

	// DTO
	EmployeeName  *string
	EmployeeEmail *string
}

// CountBucket is one group of an aggregation.
type CountBucket struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Summary is the aggregated view over a createdAt window.
type Summary struct {
	TotalCalls                int64
	TotalSales                int64
	TotalProfit               decimal.Decimal
	TopCallCategories         []CountBucket
	CallDirectionStats        []CountBucket
	SaleConvertedThroughStats []CountBucket
}

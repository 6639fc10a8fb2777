package calllog

import "errors"

var (
	ErrCallLogNotFound      = errors.New("call log not found")
	ErrInvalidSaleConverted = errors.New("wasSaleConverted must be Yes or No")
	ErrProfitRequired       = errors.New("profit amount required for successful sale")
	ErrSaleChannelRequired  = errors.New("valid saleConvertedThrough is required when sale is converted")
	ErrNoSaleReasonRequired = errors.New("reason for no sale is required")
	ErrNegativeChargeback   = errors.New("chargebackRefund must not be negative")
)

package core

import "github.com/shopspring/decimal"

const (
	// WaitTime is the per-request timeout budget in seconds.
	WaitTime = 15

	// SuffixMatchMaxLen splits scanned codes into suffix matches (operators
	// key in the last digits of a label) and full exact matches.
	SuffixMatchMaxLen = 5

	// MaxTrackingCandidates caps how many orders a suffix lookup fetches.
	MaxTrackingCandidates = 10

	InvoiceDueDays  = 7
	InvoiceCurrency = "usd"
)

// Prices and pay rates. Authoritative here; the record store only stores the
// computed results back.
var (
	UnitOveragePrice = decimal.RequireFromString("15.00")
	BasePay          = decimal.RequireFromString("7.50")
	PerItemPay       = decimal.RequireFromString("2.00")
)

// Operational statuses, owned by the record store schema.
const (
	StatusReadyToDigitize = "Ready to Digitize"
	StatusCompleted       = "Completed"

	PayPeriodStatusPaid = "Paid"
	DefaultPeriodName   = "Current Period"
)

type ServerParams struct {
	Port int
}

package orders

import "time"

// MeetsCancellationLead reports whether a cancellation requested at now
// still leaves the required lead before departure. The boundary itself is
// allowed: exactly the lead time before departure passes.
func MeetsCancellationLead(departure, now time.Time, lead time.Duration) bool {
	return departure.Sub(now) >= lead
}

// CancellationBreakdown splits an order total into the retained fee and the
// refunded remainder.
func CancellationBreakdown(total, feeRate float64) (fee, refund float64) {
	fee = total * feeRate
	refund = total - fee
	return fee, refund
}

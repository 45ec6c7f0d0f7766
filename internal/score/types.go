// internal/score/types.go
package score

import "time"

// PaymentStatus classifies a scored month. Only PAID, OVERPAID, OVERDUE and
// UNKNOWN are produced today; the remaining values are reserved for the
// upcoming statement view of the API.
type PaymentStatus string

const (
	StatusPaid          PaymentStatus = "PAID"
	StatusPaidPartially PaymentStatus = "PAID_PARTIALLY"
	StatusOverpaid      PaymentStatus = "OVERPAID"
	StatusPaidLate      PaymentStatus = "PAID_LATE"
	StatusOverdue       PaymentStatus = "OVERDUE"
	StatusUpcoming      PaymentStatus = "UPCOMING"
	StatusPending       PaymentStatus = "PENDING"
	StatusUnknown       PaymentStatus = "UNKNOWN"
)

// ScoreError marks a business-level condition on an otherwise successful
// score response. It is not a computation failure.
type ScoreError string

const (
	ErrStartDateInFuture ScoreError = "START_DATE_IN_FUTURE"
	ErrNoScoredMonths    ScoreError = "NO_SCORED_MONTHS"
)

// Payment is a single payment event on the wire. Date accepts RFC 3339, an
// offsetless date-time, or a bare date; offsetless values are taken as UTC.
type Payment struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// ScoreInput is the validated request payload the engine consumes.
type ScoreInput struct {
	PaymentStartDate      string    `json:"paymentStartDate"`
	PaymentEndDate        string    `json:"paymentEndDate,omitempty"`
	ExpectedPaymentDay    int       `json:"expectedPaymentDay"`
	ExpectedPaymentAmount float64   `json:"expectedPaymentAmount"`
	Payments              []Payment `json:"payments"`
	Reference             string    `json:"reference,omitempty"`
	ScoreBeforeStartDate  bool      `json:"scoreBeforeStartDate,omitempty"`
	CurrentDate           string    `json:"currentDate,omitempty"`
}

// ScoredMonth is the result for a single due period. Immutable once created.
type ScoredMonth struct {
	Status  PaymentStatus `json:"status"`
	Score   float64       `json:"score"`
	DueDate time.Time     `json:"dueDate"`
	Balance float64       `json:"balance"`
}

// Score is the aggregate result for the whole schedule.
type Score struct {
	OverallScore          float64       `json:"overallScore"`
	PaidStreak            int           `json:"paidStreak"`
	OverDueStreak         int           `json:"overDueStreak"`
	Balance               float64       `json:"balance"`
	ScoredMonths          []ScoredMonth `json:"scoredMonths"`
	ExpectedPaymentAmount float64       `json:"expectedPaymentAmount"`
	Error                 *ScoreError   `json:"error,omitempty"`
}

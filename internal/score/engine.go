// internal/score/engine.go
package score

import (
	"fmt"
	"sort"
	"time"

	"github.com/openfinanceafrica/scoreapi/internal/common/logger"
)

// Engine computes payment-reliability scores. It is stateless apart from the
// injected clock; a single instance is safe for concurrent use.
type Engine struct {
	log logger.Logger
	now func() time.Time
}

func New(log logger.Logger) *Engine {
	return &Engine{log: log, now: time.Now}
}

// NewWithClock builds an Engine with a fixed clock, used by tests and by
// callers that replay historic requests.
func NewWithClock(log logger.Logger, now func() time.Time) *Engine {
	return &Engine{log: log, now: now}
}

// payment is a parsed, UTC-normalized payment event.
type payment struct {
	at     time.Time
	amount float64
}

// Score walks the schedule and returns the aggregate result. Business
// conditions (start date in the future, no due dates in the window) ride in
// the result's Error field; the returned error is reserved for unparseable
// input that slipped past validation.
func (e *Engine) Score(in ScoreInput) (Score, error) {
	start, err := ParseTime(in.PaymentStartDate)
	if err != nil {
		return Score{}, fmt.Errorf("paymentStartDate: %w", err)
	}

	asOf := e.now().UTC()
	if in.CurrentDate != "" {
		if asOf, err = ParseTime(in.CurrentDate); err != nil {
			return Score{}, fmt.Errorf("currentDate: %w", err)
		}
	}

	end := asOf
	if in.PaymentEndDate != "" {
		if end, err = ParseTime(in.PaymentEndDate); err != nil {
			return Score{}, fmt.Errorf("paymentEndDate: %w", err)
		}
	}

	result := Score{
		ScoredMonths:          []ScoredMonth{},
		ExpectedPaymentAmount: in.ExpectedPaymentAmount,
	}

	// Scoring a schedule that has not started is opt-in; callers must say
	// so explicitly rather than silently receive an empty window.
	if asOf.Before(start) && !in.ScoreBeforeStartDate {
		errVal := ErrStartDateInFuture
		result.Error = &errVal
		return result, nil
	}

	payments, err := parsePayments(in.Payments)
	if err != nil {
		return Score{}, err
	}

	months, finalBalance := e.walk(in, start, end, asOf, payments)

	overall, paidStreak, overDueStreak := aggregate(months)
	result.ScoredMonths = months
	result.OverallScore = overall
	result.PaidStreak = paidStreak
	result.OverDueStreak = overDueStreak
	result.Balance = finalBalance

	if len(months) == 0 {
		errVal := ErrNoScoredMonths
		result.Error = &errVal
	}
	return result, nil
}

func parsePayments(in []Payment) ([]payment, error) {
	out := make([]payment, 0, len(in))
	for i, p := range in {
		at, err := ParseTime(p.Date)
		if err != nil {
			return nil, fmt.Errorf("payments[%d].date: %w", i, err)
		}
		out = append(out, payment{at: at, amount: p.Amount})
	}
	// The walker consumes payments through a forward cursor, so order
	// matters. Sort rather than trust the caller.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].at.Before(out[j].at)
	})
	return out, nil
}

// internal/score/scorer.go
package score

import (
	"math"
	"time"
)

// scoreMonth classifies and scores a single due period.
//
// The balance is cumulative paid minus cumulative expected as of this
// period. A zero balance is a full payment, positive is an overpayment, and
// negative is overdue; overdue periods with a later crossover payment earn a
// decaying partial credit, and overdue periods that scored zero earn credit
// proportional to the share of expectations already paid.
func (e *Engine) scoreMonth(expectedAmount, paidByDue, totalExpected float64, due time.Time, lastPayment, crossover *time.Time) ScoredMonth {
	balance := paidByDue - totalExpected

	if lastPayment == nil && crossover == nil {
		return ScoredMonth{Status: StatusOverdue, Score: 0, DueDate: due, Balance: balance}
	}

	var (
		value    float64
		resolved bool
		status   PaymentStatus
	)
	switch {
	case balance == 0:
		value, status, resolved = 1, StatusPaid, true
	case balance > 0:
		value = 1 + (balance/expectedAmount)*overpaymentMultiplier
		status, resolved = StatusOverpaid, true
	case balance < 0:
		value, status, resolved = 0, StatusOverdue, true
	}

	if !resolved {
		// Unreachable unless the balance is NaN; keep the request alive
		// with an inspectable sentinel instead of failing it.
		e.log.Error("score could not be calculated", map[string]interface{}{
			"balance": balance,
			"dueDate": due,
		})
		return ScoredMonth{Status: StatusUnknown, Score: unknownScore, DueDate: due, Balance: balance}
	}

	if balance >= 0 {
		if lastPayment != nil && lastPayment.Before(due) {
			daysEarly := due.Sub(*lastPayment).Seconds() / secondsPerDay
			value += daysEarly * earlyPaymentMultiplier
		}
	} else if crossover != nil {
		daysLate := crossover.Sub(due).Seconds() / secondsPerDay
		if credit := 1 - daysLate*lateCrossoverDecay; credit > 0 {
			value += credit
		}
	}

	// A zero score on a negative balance still rewards partial progress.
	if value == 0 && balance < 0 {
		value += (paidByDue / totalExpected) * partialPaymentMultiplier
	}

	return ScoredMonth{Status: status, Score: round2(value), DueDate: due, Balance: balance}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// internal/score/walker.go
package score

import "time"

// walk iterates calendar days from start through min(end, asOf) inclusive
// and scores each due period it encounters. Evaluation happens on the day
// after the expected payment day, so a payment made any time on the due day
// itself still counts as on-time.
//
// Expectations and payments accumulate across the whole schedule: the
// balance handed to the scorer is cumulative, which lets an overpayment in
// one month carry forward into the next.
func (e *Engine) walk(in ScoreInput, start, end, asOf time.Time, payments []payment) ([]ScoredMonth, float64) {
	limit := end
	if asOf.Before(limit) {
		limit = asOf
	}

	months := []ScoredMonth{}
	var (
		totalExpected float64
		paidByDue     float64
		finalBalance  float64
		lastPayment   *time.Time
		cursor        int
	)

	for cur := start; !cur.After(limit); cur = cur.AddDate(0, 0, 1) {
		if cur.Day() != in.ExpectedPaymentDay+1 {
			continue
		}

		totalExpected += in.ExpectedPaymentAmount

		// Everything before the start of the evaluation day was paid by
		// the end of the due day.
		cutoff := time.Date(cur.Year(), cur.Month(), cur.Day(), 0, 0, 0, 0, time.UTC)
		for cursor < len(payments) && payments[cursor].at.Before(cutoff) {
			paidByDue += payments[cursor].amount
			at := payments[cursor].at
			lastPayment = &at
			cursor++
		}

		// If the period is short, look ahead for the first payment that
		// brings the cumulative total back level: the crossover date.
		var crossover *time.Time
		if paidByDue < totalExpected {
			sum := paidByDue
			for i := cursor; i < len(payments); i++ {
				sum += payments[i].amount
				if sum >= totalExpected {
					at := payments[i].at
					crossover = &at
					break
				}
			}
		}

		due := cur.AddDate(0, 0, -1)
		month := e.scoreMonth(in.ExpectedPaymentAmount, paidByDue, totalExpected, due, lastPayment, crossover)
		months = append(months, month)
		finalBalance = month.Balance
	}

	return months, finalBalance
}

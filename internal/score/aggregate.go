// internal/score/aggregate.go
package score

// aggregate folds the ordered months into the overall score and the longest
// paid/overdue runs. UNKNOWN periods leave both streak counters untouched.
func aggregate(months []ScoredMonth) (overall float64, longestPaid, longestOverDue int) {
	var (
		paidStreak    int
		overDueStreak int
		total         float64
	)

	for _, m := range months {
		total += m.Score

		switch m.Status {
		case StatusPaid, StatusOverpaid:
			paidStreak++
			overDueStreak = 0
		case StatusOverdue:
			overDueStreak++
			paidStreak = 0
		}

		if paidStreak > longestPaid {
			longestPaid = paidStreak
		}
		if overDueStreak > longestOverDue {
			longestOverDue = overDueStreak
		}
	}

	if len(months) > 0 {
		overall = round2(total / float64(len(months)))
		if overall > 1 {
			overall = 1
		}
	}
	return overall, longestPaid, longestOverDue
}

// internal/score/aggregate_test.go
package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func months(statuses ...PaymentStatus) []ScoredMonth {
	out := make([]ScoredMonth, len(statuses))
	for i, s := range statuses {
		out[i] = ScoredMonth{Status: s, Score: 1}
	}
	return out
}

func TestAggregate_Streaks(t *testing.T) {
	tests := []struct {
		name            string
		months          []ScoredMonth
		expectedPaid    int
		expectedOverDue int
	}{
		{
			name:            "empty",
			months:          nil,
			expectedPaid:    0,
			expectedOverDue: 0,
		},
		{
			name:            "all paid",
			months:          months(StatusPaid, StatusPaid, StatusOverpaid),
			expectedPaid:    3,
			expectedOverDue: 0,
		},
		{
			name:            "overdue resets paid streak",
			months:          months(StatusPaid, StatusPaid, StatusOverdue, StatusPaid),
			expectedPaid:    2,
			expectedOverDue: 1,
		},
		{
			name:            "longest run wins over current run",
			months:          months(StatusOverdue, StatusOverdue, StatusOverdue, StatusPaid, StatusOverdue),
			expectedPaid:    1,
			expectedOverDue: 3,
		},
		{
			// UNKNOWN deliberately leaves both counters untouched; the
			// original behaved this way and product has not said otherwise.
			name:            "unknown is streak-neutral",
			months:          months(StatusPaid, StatusUnknown, StatusPaid),
			expectedPaid:    2,
			expectedOverDue: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, paid, overDue := aggregate(tt.months)
			assert.Equal(t, tt.expectedPaid, paid)
			assert.Equal(t, tt.expectedOverDue, overDue)
		})
	}
}

func TestAggregate_OverallScore(t *testing.T) {
	t.Run("zero when empty", func(t *testing.T) {
		overall, _, _ := aggregate(nil)
		assert.Equal(t, 0.0, overall)
	})

	t.Run("average of period scores", func(t *testing.T) {
		overall, _, _ := aggregate([]ScoredMonth{
			{Status: StatusPaid, Score: 1},
			{Status: StatusOverdue, Score: 0.5},
		})
		assert.Equal(t, 0.75, overall)
	})

	t.Run("clamped to one", func(t *testing.T) {
		overall, _, _ := aggregate([]ScoredMonth{
			{Status: StatusOverpaid, Score: 1.2},
			{Status: StatusPaid, Score: 1.1},
		})
		assert.Equal(t, 1.0, overall)
	})
}

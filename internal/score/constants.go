// internal/score/constants.go
package score

// Request-level bounds shared with the validation layer. The due day is
// capped at 28 so it exists in every month.
const (
	ExpectedPaymentDayMinimum    = 1
	ExpectedPaymentDayMaximum    = 28
	ExpectedPaymentAmountMinimum = 0
)

// Scoring rule constants.
const (
	// overpaymentMultiplier scales the bonus for a positive balance,
	// relative to one expected payment.
	overpaymentMultiplier = 0.01

	// earlyPaymentMultiplier scales the bonus per fractional day the last
	// payment landed before the due date.
	earlyPaymentMultiplier = 0.01

	// lateCrossoverDecay reduces the late-payment credit per fractional day
	// between the due date and the balance crossover; credit bottoms out at
	// zero after ten days.
	lateCrossoverDecay = 0.1

	// partialPaymentMultiplier scales the credit for partial progress when a
	// period otherwise nets to a zero score.
	partialPaymentMultiplier = 0.3

	secondsPerDay = 86400

	// unknownScore is the sentinel for a period the sign trichotomy could
	// not classify.
	unknownScore = -1
)

// internal/workers/scoring/payment-score/models.go
package paymentscore

import "github.com/openfinanceafrica/scoreapi/internal/score"

// Input is the score request carried in the job variables. The fields mirror
// the public API payload so one process model serves both surfaces.
type Input = score.ScoreInput

// Output is the computed score merged back into the process variables.
type Output struct {
	Score  score.Score `json:"score"`
	Cached bool        `json:"scoreFromCache"`
}

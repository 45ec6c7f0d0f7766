// internal/server/handler.go
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/openfinanceafrica/scoreapi/internal/cache"
	"github.com/openfinanceafrica/scoreapi/internal/common/metrics"
	"github.com/openfinanceafrica/scoreapi/internal/score"
	"github.com/openfinanceafrica/scoreapi/internal/validation"
)

// maxBodyBytes caps the request body. A year of daily payments is well under
// this; anything larger is not a score request.
const maxBodyBytes = 1 << 20

// handleScore serves POST /v1/score. Validation failures come back as plain
// text with the public template message; valid requests get the score JSON,
// including business conditions carried in-band on the error field.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	started := time.Now()
	requestID := RequestIDFromContext(r.Context())
	log := s.logger.WithFields(map[string]interface{}{"requestId": requestID})

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		metrics.ScoreRequestsTotal.WithLabelValues("http", "invalid").Inc()
		s.badRequest(w, validation.MsgUnparseableRequest)
		return
	}

	if msg := validation.ValidateScoreInput(body); msg != "" {
		log.Info("score request rejected", map[string]interface{}{
			"reason": msg,
		})
		metrics.ScoreRequestsTotal.WithLabelValues("http", "invalid").Inc()
		s.badRequest(w, msg)
		return
	}

	var input score.ScoreInput
	if err := json.Unmarshal(body, &input); err != nil {
		metrics.ScoreRequestsTotal.WithLabelValues("http", "invalid").Inc()
		s.badRequest(w, validation.MsgUnparseableRequest)
		return
	}

	key := cache.Key(body)
	result, cached := s.cache.Get(r.Context(), key)
	if !cached {
		result, err = s.engine.Score(input)
		if err != nil {
			log.Error("score computation failed", map[string]interface{}{
				"error": err.Error(),
			})
			metrics.ScoreRequestsTotal.WithLabelValues("http", "error").Inc()
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if result.Error == nil {
			s.cache.Set(r.Context(), key, result)
		}
	}

	metrics.ScoreRequestsTotal.WithLabelValues("http", "ok").Inc()
	metrics.ScoreRequestDuration.WithLabelValues("http").Observe(time.Since(started).Seconds())
	metrics.ScoredMonthsPerRequest.Observe(float64(len(result.ScoredMonths)))

	log.Info("score request served", map[string]interface{}{
		"reference":    input.Reference,
		"overallScore": result.OverallScore,
		"scoredMonths": len(result.ScoredMonths),
		"fromCache":    cached,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

func (s *Server) badRequest(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintf(w, "Bad Request. %s", msg)
}

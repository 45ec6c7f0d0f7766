// internal/workers/scoring/payment-score/handler_test.go
package paymentscore

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfinanceafrica/scoreapi/internal/cache"
	"github.com/openfinanceafrica/scoreapi/internal/common/config"
	"github.com/openfinanceafrica/scoreapi/internal/common/database"
	"github.com/openfinanceafrica/scoreapi/internal/common/logger"
	"github.com/openfinanceafrica/scoreapi/internal/score"
	"github.com/openfinanceafrica/scoreapi/internal/validation"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout:  10 * time.Second,
		CacheTTL: time.Hour,
	}
}

func newTestEngine(t *testing.T) *score.Engine {
	return score.NewWithClock(logger.NewTestLogger(t), func() time.Time {
		return time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC)
	})
}

func newTestCache(t *testing.T) *cache.ScoreCache {
	mr := miniredis.RunT(t)
	rdb, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return cache.New(rdb, time.Hour, logger.NewTestLogger(t))
}

func newTestHandler(t *testing.T, scoreCache *cache.ScoreCache) *Handler {
	return NewHandler(createTestConfig(), newTestEngine(t), scoreCache, logger.NewTestLogger(t))
}

func createQuarterVariables(t *testing.T) ([]byte, *Input) {
	input := &Input{
		PaymentStartDate:      "2021-01-01",
		PaymentEndDate:        "2021-03-31",
		ExpectedPaymentDay:    15,
		ExpectedPaymentAmount: 500,
		CurrentDate:           "2021-04-01",
		Reference:             "tenant-42",
		Payments: []score.Payment{
			{Date: "2021-01-15", Amount: 500},
			{Date: "2021-02-15", Amount: 500},
			{Date: "2021-03-15", Amount: 500},
		},
	}
	raw, err := json.Marshal(input)
	require.NoError(t, err)
	return raw, input
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_ComputesScore(t *testing.T) {
	h := newTestHandler(t, newTestCache(t))
	raw, input := createQuarterVariables(t)

	output, err := h.Execute(context.Background(), raw, input)
	require.NoError(t, err)

	assert.False(t, output.Cached)
	assert.Equal(t, 1.0, output.Score.OverallScore)
	assert.Equal(t, 3, output.Score.PaidStreak)
	assert.Len(t, output.Score.ScoredMonths, 3)
	assert.Nil(t, output.Score.Error)
}

func TestHandler_Execute_ServesSecondCallFromCache(t *testing.T) {
	h := newTestHandler(t, newTestCache(t))
	raw, input := createQuarterVariables(t)

	first, err := h.Execute(context.Background(), raw, input)
	require.NoError(t, err)
	require.False(t, first.Cached)

	second, err := h.Execute(context.Background(), raw, input)
	require.NoError(t, err)

	assert.True(t, second.Cached)
	assert.Equal(t, first.Score, second.Score)
}

func TestHandler_Execute_WorksWithoutCache(t *testing.T) {
	h := newTestHandler(t, nil)
	raw, input := createQuarterVariables(t)

	output, err := h.Execute(context.Background(), raw, input)
	require.NoError(t, err)

	assert.False(t, output.Cached)
	assert.Equal(t, 1.0, output.Score.OverallScore)
}

func TestHandler_Execute_DoesNotCacheBusinessErrors(t *testing.T) {
	h := newTestHandler(t, newTestCache(t))

	input := &Input{
		PaymentStartDate:      "2022-01-01",
		ExpectedPaymentDay:    15,
		ExpectedPaymentAmount: 500,
		CurrentDate:           "2021-04-01",
		Payments:              []score.Payment{},
	}
	raw, err := json.Marshal(input)
	require.NoError(t, err)

	first, err := h.Execute(context.Background(), raw, input)
	require.NoError(t, err)
	require.NotNil(t, first.Score.Error)
	assert.Equal(t, score.ErrStartDateInFuture, *first.Score.Error)

	second, err := h.Execute(context.Background(), raw, input)
	require.NoError(t, err)
	assert.False(t, second.Cached)
}

// ==========================
// Input Validation Tests
// ==========================

func TestJobVariablesValidation(t *testing.T) {
	tests := []struct {
		name      string
		variables string
		wantValid bool
	}{
		{
			name:      "valid variables",
			variables: `{"paymentStartDate": "2021-01-01", "expectedPaymentDay": 15, "expectedPaymentAmount": 500, "payments": []}`,
			wantValid: true,
		},
		{
			name:      "extra process variables are allowed",
			variables: `{"paymentStartDate": "2021-01-01", "expectedPaymentDay": 15, "expectedPaymentAmount": 500, "payments": [], "processId": "abc"}`,
			wantValid: true,
		},
		{
			name:      "missing required field",
			variables: `{"expectedPaymentDay": 15, "expectedPaymentAmount": 500, "payments": []}`,
			wantValid: false,
		},
		{
			name:      "payment day out of range",
			variables: `{"paymentStartDate": "2021-01-01", "expectedPaymentDay": 30, "expectedPaymentAmount": 500, "payments": []}`,
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validation.ValidateScoreInput([]byte(tt.variables))
			if tt.wantValid {
				assert.Empty(t, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

// internal/server/handler_test.go
package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
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

func newTestServer(t *testing.T, scoreCache *cache.ScoreCache) *Server {
	engine := score.NewWithClock(logger.NewTestLogger(t), func() time.Time {
		return time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC)
	})
	return New(config.ServerConfig{Port: 0}, engine, scoreCache, logger.NewTestLogger(t))
}

func newTestServerWithCache(t *testing.T) *Server {
	mr := miniredis.RunT(t)
	rdb, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	return newTestServer(t, cache.New(rdb, time.Hour, logger.NewTestLogger(t)))
}

const quarterRequest = `{
	"paymentStartDate": "2021-01-01",
	"paymentEndDate": "2021-03-31",
	"expectedPaymentDay": 15,
	"expectedPaymentAmount": 500,
	"currentDate": "2021-04-01",
	"payments": [
		{"date": "2021-01-15", "amount": 500},
		{"date": "2021-02-15", "amount": 500},
		{"date": "2021-03-15", "amount": 500}
	]
}`

func postScore(s *Server, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/score", strings.NewReader(body))
	rr := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rr, req)
	return rr
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandleScore_PerfectQuarter(t *testing.T) {
	s := newTestServer(t, nil)

	rr := postScore(s, quarterRequest)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var result score.Score
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, 1.0, result.OverallScore)
	assert.Equal(t, 3, result.PaidStreak)
	assert.Len(t, result.ScoredMonths, 3)
	assert.Nil(t, result.Error)
}

func TestHandleScore_BusinessErrorStaysInBand(t *testing.T) {
	s := newTestServer(t, nil)

	rr := postScore(s, `{
		"paymentStartDate": "2022-01-01",
		"expectedPaymentDay": 15,
		"expectedPaymentAmount": 500,
		"currentDate": "2021-04-01",
		"payments": []
	}`)

	require.Equal(t, http.StatusOK, rr.Code)

	var result score.Score
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	require.NotNil(t, result.Error)
	assert.Equal(t, score.ErrStartDateInFuture, *result.Error)
	assert.Empty(t, result.ScoredMonths)
}

func TestHandleScore_SecondRequestHitsCache(t *testing.T) {
	s := newTestServerWithCache(t)

	first := postScore(s, quarterRequest)
	require.Equal(t, http.StatusOK, first.Code)

	second := postScore(s, quarterRequest)
	require.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

// ==========================
// Request Validation Tests
// ==========================

func TestHandleScore_RejectsInvalidBodies(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectedMsg string
	}{
		{
			name:        "not json",
			body:        "hello",
			expectedMsg: validation.MsgUnparseableRequest,
		},
		{
			name:        "missing start date",
			body:        `{"expectedPaymentDay": 15, "expectedPaymentAmount": 500, "payments": []}`,
			expectedMsg: validation.MsgInvalidStartDate,
		},
		{
			name:        "payment day out of range",
			body:        `{"paymentStartDate": "2021-01-01", "expectedPaymentDay": 31, "expectedPaymentAmount": 500, "payments": []}`,
			expectedMsg: validation.MsgInvalidPaymentDay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postScore(newTestServer(t, nil), tt.body)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, "Bad Request. "+tt.expectedMsg, rr.Body.String())
		})
	}
}

func TestHandleScore_RejectsWrongMethod(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/score", nil)
	rr := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, http.MethodPost, rr.Header().Get("Allow"))
}

// ==========================
// Middleware & Infra Tests
// ==========================

func TestRequestIDMiddleware(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("generates an id", func(t *testing.T) {
		rr := postScore(s, quarterRequest)
		assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
	})

	t.Run("preserves the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/score", strings.NewReader(quarterRequest))
		req.Header.Set("X-Request-Id", "gateway-123")
		rr := httptest.NewRecorder()
		s.httpServer.Handler.ServeHTTP(rr, req)

		assert.Equal(t, "gateway-123", rr.Header().Get("X-Request-Id"))
	})
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	for _, path := range []string{"/health", "/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		s.httpServer.Handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, path)

		var payload map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
		assert.NotEmpty(t, payload["status"])
	}
}

// internal/workers/scoring/payment-score/handler.go
package paymentscore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"github.com/openfinanceafrica/scoreapi/internal/cache"
	"github.com/openfinanceafrica/scoreapi/internal/common/errors"
	"github.com/openfinanceafrica/scoreapi/internal/common/logger"
	"github.com/openfinanceafrica/scoreapi/internal/common/metrics"
	"github.com/openfinanceafrica/scoreapi/internal/score"
	"github.com/openfinanceafrica/scoreapi/internal/validation"
)

const (
	TaskType = "payment-score"
)

type Handler struct {
	config *Config
	engine *score.Engine
	cache  *cache.ScoreCache
	logger logger.Logger
	errs   *errors.ErrorHandler
}

// NewHandler builds the worker handler. cache may be nil when caching is
// disabled.
func NewHandler(config *Config, engine *score.Engine, scoreCache *cache.ScoreCache, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		engine: engine,
		cache:  scoreCache,
		logger: scoped,
		errs:   errors.NewErrorHandler(scoped),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	started := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	if msg := validation.ValidateScoreInput([]byte(job.Variables)); msg != "" {
		metrics.ScoreRequestsTotal.WithLabelValues("worker", "invalid").Inc()
		h.errs.HandleJobError(ctx, client, job, errors.NewInputValidationFailedError(msg))
		return
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		metrics.ScoreRequestsTotal.WithLabelValues("worker", "invalid").Inc()
		h.errs.HandleJobError(ctx, client, job, errors.NewRequestParseFailedError(err.Error()))
		return
	}

	output, err := h.execute(ctx, []byte(job.Variables), &input)
	if err != nil {
		metrics.ScoreRequestsTotal.WithLabelValues("worker", "error").Inc()
		h.errs.HandleJobError(ctx, client, job, errors.NewScoreComputeFailedError(err))
		return
	}

	metrics.ScoreRequestsTotal.WithLabelValues("worker", "ok").Inc()
	metrics.ScoreRequestDuration.WithLabelValues("worker").Observe(time.Since(started).Seconds())

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, rawInput []byte, input *Input) (*Output, error) {
	key := cache.Key(rawInput)
	if cached, ok := h.cache.Get(ctx, key); ok {
		h.logger.Debug("score served from cache", map[string]interface{}{
			"reference": input.Reference,
		})
		return &Output{Score: cached, Cached: true}, nil
	}

	result, err := h.engine.Score(*input)
	if err != nil {
		return nil, err
	}

	// Results carrying a business error are valid responses but are not
	// worth caching.
	if result.Error == nil {
		h.cache.Set(ctx, key, result)
	}

	h.logger.Info("score computed", map[string]interface{}{
		"reference":    input.Reference,
		"overallScore": result.OverallScore,
		"scoredMonths": len(result.ScoredMonths),
	})

	return &Output{Score: result}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, rawInput []byte, input *Input) (*Output, error) {
	return h.execute(ctx, rawInput, input)
}

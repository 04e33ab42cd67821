// internal/workers/resolution/ask-question/handler.go
package askquestion

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"mafatih/internal/common/errors"
	"mafatih/internal/common/metrics"
	"mafatih/internal/common/validation"
	"mafatih/internal/models"
)

const TaskType = "ask-question"

type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

// Resolver is the part of the resolution pipeline this worker drives.
type Resolver interface {
	ResolveQuestion(ctx context.Context, query models.Query) models.AnswerRecord
}

type Handler struct {
	config     *Config
	resolver   Resolver
	logger     Logger
	errHandler *errors.ErrorHandler
}

func NewHandler(config *Config, resolver Resolver, log Logger) (*Handler, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if resolver == nil {
		return nil, fmt.Errorf("%s requires a resolver", TaskType)
	}
	log = log.With(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		resolver:   resolver,
		logger:     log,
		errHandler: errors.NewErrorHandler(log),
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.GetKey(),
		"workflowKey": job.GetProcessInstanceKey(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := h.parseInput(job)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	variables, err := job.GetVariablesAsMap()
	if err != nil {
		return nil, errors.NewInvalidInputError(fmt.Sprintf("parse job variables: %v", err))
	}

	result, err := validation.Validate(variables, GetInputSchema(h.config.MaxTextLength))
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if !result.Valid {
		return nil, errors.NewInvalidInputError(result.Summary())
	}

	var input Input
	if err := json.Unmarshal([]byte(job.GetVariables()), &input); err != nil {
		return nil, errors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err))
	}
	return &input, nil
}

// Execute never fails on pipeline errors: those already surface as a
// lower-confidence answer.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewInvalidInputError("input cannot be nil")
	}

	answer := h.resolver.ResolveQuestion(ctx, models.Query{
		Text:      input.Question,
		Language:  input.Language,
		Context:   input.Context,
		SessionID: input.SessionID,
	})

	return &Output{
		Answer:     answer,
		Tier:       answer.Tier,
		Confidence: answer.Confidence,
		IsFromAI:   answer.IsFromAI,
		Category:   answer.Category,
	}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().JobKey(job.GetKey()).VariablesFromObject(output)
	if err != nil {
		h.logger.Error("Failed to create complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("Failed to complete job", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}
	h.logger.Info("job completed", map[string]interface{}{
		"jobKey":     job.GetKey(),
		"tier":       string(output.Tier),
		"confidence": output.Confidence,
	})
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	code := string(errors.ErrCodeInternal)
	if stdErr, ok := errors.AsStandard(err); ok {
		code = string(stdErr.Code)
	}
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, code).Inc()
	h.errHandler.HandleJobError(ctx, client, job, err)
}

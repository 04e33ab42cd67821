// internal/workers/resolution/interpret-dream/handler.go
package interpretdream

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

const TaskType = "interpret-dream"

type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

type Interpreter interface {
	InterpretDream(ctx context.Context, query models.Query) models.DreamRecord
}

type Handler struct {
	config      *Config
	interpreter Interpreter
	logger      Logger
	errHandler  *errors.ErrorHandler
}

func NewHandler(config *Config, interpreter Interpreter, log Logger) (*Handler, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if interpreter == nil {
		return nil, fmt.Errorf("%s requires an interpreter", TaskType)
	}
	log = log.With(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:      config,
		interpreter: interpreter,
		logger:      log,
		errHandler:  errors.NewErrorHandler(log),
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
		return nil, errors.NewInvalidInputError(result.Summary()).
			WithMetadata("fields", result.InvalidFields())
	}

	var input Input
	if err := json.Unmarshal([]byte(job.GetVariables()), &input); err != nil {
		return nil, errors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err))
	}
	return &input, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewInvalidInputError("input cannot be nil")
	}

	dream := h.interpreter.InterpretDream(ctx, models.Query{
		Text:      input.Dream,
		Language:  input.Language,
		SessionID: input.SessionID,
	})

	h.logger.Info("dream interpreted", map[string]interface{}{
		"tier":       string(dream.Tier),
		"confidence": dream.Confidence,
	})

	return &Output{
		Dream:      dream,
		Category:   dream.Category,
		Confidence: dream.Confidence,
		IsFromAI:   dream.IsFromAI,
	}, nil
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	code := string(errors.ErrCodeInternal)
	if stdErr, ok := errors.AsStandard(err); ok {
		code = string(stdErr.Code)
	}
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, code).Inc()
	h.errHandler.HandleJobError(ctx, client, job, err)
}

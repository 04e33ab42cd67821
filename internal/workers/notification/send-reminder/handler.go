// internal/workers/notification/send-reminder/handler.go
package sendreminder

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"mafatih/internal/common/errors"
	"mafatih/internal/common/logger"
	"mafatih/internal/common/metrics"
	"mafatih/internal/models"
	"mafatih/internal/reminder"
)

const (
	TaskType = "send-reminder"
)

type Sender interface {
	Send(ctx context.Context, req reminder.Request) (*models.Reminder, error)
}

type Handler struct {
	config     *Config
	sender     Sender
	logger     logger.Logger
	errHandler *errors.ErrorHandler
}

func NewHandler(config *Config, sender Sender, log logger.Logger) (*Handler, error) {
	if sender == nil {
		return nil, fmt.Errorf("%s requires a reminder sender", TaskType)
	}
	if config == nil {
		config = LoadConfig()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		sender:     sender,
		logger:     log,
		errHandler: errors.NewErrorHandler(log),
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(ctx, client, job, errors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	rem, err := h.sender.Send(ctx, reminder.Request{
		Kind:      input.Kind,
		Key:       input.Key,
		Channel:   input.Channel,
		Recipient: input.Recipient,
		Title:     input.Title,
		Body:      input.Body,
	})
	switch {
	case stderrors.Is(err, reminder.ErrInvalidReminder):
		return nil, errors.NewInvalidInputError(err.Error())
	case stderrors.Is(err, reminder.ErrDeliveryFailed):
		return nil, errors.NewNotificationSendFailedError(string(input.Channel), err)
	case err != nil:
		return nil, errors.NewInternalError(err)
	}

	if rem.Status == reminder.StatusDisabled {
		h.logger.Warn("reminder channel disabled", map[string]interface{}{
			"channel": string(rem.Channel),
		})
		if h.config.FailOnDisabled {
			return nil, errors.NewNotificationChannelDisabledError(string(rem.Channel))
		}
	}

	return &Output{
		ReminderID: rem.ID,
		Status:     rem.Status,
		MessageID:  rem.MessageID,
		SentAt:     rem.SentAt.Format(time.RFC3339),
	}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().JobKey(job.Key).VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete command", map[string]interface{}{"error": err.Error()})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{"error": err.Error()})
	}
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	code := string(errors.ErrCodeInternal)
	if stdErr, ok := errors.AsStandard(err); ok {
		code = string(stdErr.Code)
	}
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, code).Inc()
	h.errHandler.HandleJobError(ctx, client, job, err)
}

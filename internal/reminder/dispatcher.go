// Package reminder delivers prayer, dhikr, verse and spiritual reminders
// over SES email or SNS SMS/push, and records every attempt in the
// reminder_log table. It does no scheduling: callers decide when.
package reminder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/google/uuid"

	"mafatih/internal/common/logger"
	"mafatih/internal/common/metrics"
	"mafatih/internal/models"
)

const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

var (
	ErrInvalidReminder = errors.New("INVALID_REMINDER")
	ErrDeliveryFailed  = errors.New("NOTIFICATION_SEND_FAILED")
)

type EmailSender interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type Publisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	PushEnabled  bool
	FromEmail    string
	SMSSenderID  string
}

// Request asks for one reminder. Title and Body override the template.
type Request struct {
	Kind      models.ReminderKind `json:"kind"`
	Key       string              `json:"key,omitempty"`
	Channel   models.Channel      `json:"channel"`
	Recipient string              `json:"recipient"`
	Title     string              `json:"title,omitempty"`
	Body      string              `json:"body,omitempty"`
}

type Dispatcher struct {
	config    Config
	email     EmailSender
	publisher Publisher
	db        *sql.DB
	logger    logger.Logger
}

// NewDispatcher wires the delivery clients. Any of email, publisher and db
// may be nil: the matching channel reports disabled, and attempts are not
// persisted without a db.
func NewDispatcher(cfg Config, email EmailSender, publisher Publisher, db *sql.DB, log logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Dispatcher{
		config:    cfg,
		email:     email,
		publisher: publisher,
		db:        db,
		logger:    log.With(map[string]interface{}{"component": "reminder"}),
	}
}

// Send delivers one reminder. The returned record is non-nil whenever the
// request was valid, including failed deliveries.
func (d *Dispatcher) Send(ctx context.Context, req Request) (*models.Reminder, error) {
	tmpl, err := validate(req)
	if err != nil {
		return nil, err
	}

	rem := &models.Reminder{
		ID:        uuid.New().String(),
		Kind:      req.Kind,
		Key:       tmpl.Key,
		Title:     firstNonEmpty(req.Title, tmpl.Title),
		Body:      firstNonEmpty(req.Body, tmpl.Body),
		Channel:   req.Channel,
		Recipient: req.Recipient,
		SentAt:    time.Now().UTC(),
	}

	messageID, enabled, deliverErr := d.deliver(ctx, rem)
	switch {
	case !enabled:
		rem.Status = StatusDisabled
	case deliverErr != nil:
		rem.Status = StatusFailed
	default:
		rem.Status = StatusSent
		rem.MessageID = messageID
	}
	metrics.RemindersTotal.WithLabelValues(string(rem.Channel), rem.Status).Inc()

	if err := d.record(ctx, rem); err != nil {
		d.logger.Warn("Failed to record reminder", map[string]interface{}{
			"reminderId": rem.ID,
			"error":      err.Error(),
		})
	}

	fields := map[string]interface{}{
		"reminderId": rem.ID,
		"kind":       string(rem.Kind),
		"channel":    string(rem.Channel),
		"status":     rem.Status,
	}
	if deliverErr != nil {
		fields["error"] = deliverErr.Error()
		d.logger.Error("Reminder delivery failed", fields)
		return rem, fmt.Errorf("%w: %v", ErrDeliveryFailed, deliverErr)
	}
	d.logger.Info("Reminder processed", fields)
	return rem, nil
}

func validate(req Request) (Template, error) {
	tmpl, ok := Lookup(req.Kind, req.Key)
	if !ok {
		return Template{}, fmt.Errorf("%w: unknown reminder %s/%s", ErrInvalidReminder, req.Kind, req.Key)
	}
	switch req.Channel {
	case models.ChannelEmail, models.ChannelSMS, models.ChannelPush:
	default:
		return Template{}, fmt.Errorf("%w: unknown channel %q", ErrInvalidReminder, req.Channel)
	}
	if strings.TrimSpace(req.Recipient) == "" {
		return Template{}, fmt.Errorf("%w: recipient is required", ErrInvalidReminder)
	}
	return tmpl, nil
}

// deliver reports enabled=false when the channel is switched off or has no
// client.
func (d *Dispatcher) deliver(ctx context.Context, rem *models.Reminder) (string, bool, error) {
	switch rem.Channel {
	case models.ChannelEmail:
		if !d.config.EmailEnabled || d.email == nil {
			return "", false, nil
		}
		out, err := d.email.SendEmail(ctx, &ses.SendEmailInput{
			Destination: &sestypes.Destination{ToAddresses: []string{rem.Recipient}},
			Message: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(rem.Title), Charset: aws.String("UTF-8")},
				Body: &sestypes.Body{
					Text: &sestypes.Content{Data: aws.String(rem.Body), Charset: aws.String("UTF-8")},
				},
			},
			Source: aws.String(d.config.FromEmail),
		})
		if err != nil {
			return "", true, err
		}
		return aws.ToString(out.MessageId), true, nil

	case models.ChannelSMS:
		if !d.config.SMSEnabled || d.publisher == nil {
			return "", false, nil
		}
		input := &sns.PublishInput{
			PhoneNumber: aws.String(rem.Recipient),
			Message:     aws.String(rem.Title + "\n" + rem.Body),
		}
		if d.config.SMSSenderID != "" {
			input.MessageAttributes = map[string]snstypes.MessageAttributeValue{
				"AWS.SNS.SMS.SenderID": {DataType: aws.String("String"), StringValue: aws.String(d.config.SMSSenderID)},
			}
		}
		out, err := d.publisher.Publish(ctx, input)
		if err != nil {
			return "", true, err
		}
		return aws.ToString(out.MessageId), true, nil

	default:
		if !d.config.PushEnabled || d.publisher == nil {
			return "", false, nil
		}
		out, err := d.publisher.Publish(ctx, &sns.PublishInput{
			TargetArn: aws.String(rem.Recipient),
			Subject:   aws.String(rem.Title),
			Message:   aws.String(rem.Body),
		})
		if err != nil {
			return "", true, err
		}
		return aws.ToString(out.MessageId), true, nil
	}
}

const insertReminderLog = `INSERT INTO reminder_log
	(id, kind, reminder_key, channel, recipient, title, status, message_id, sent_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func (d *Dispatcher) record(ctx context.Context, rem *models.Reminder) error {
	if d.db == nil {
		return nil
	}
	_, err := d.db.ExecContext(ctx, insertReminderLog,
		rem.ID, string(rem.Kind), rem.Key, string(rem.Channel), rem.Recipient,
		rem.Title, rem.Status, rem.MessageID, rem.SentAt,
	)
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

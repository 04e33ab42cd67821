// internal/workers/notification/send-reminder/models.go
package sendreminder

import "mafatih/internal/models"

type Input struct {
	Kind      models.ReminderKind `json:"reminderKind"`
	Key       string              `json:"reminderKey,omitempty"`
	Channel   models.Channel      `json:"channel"`
	Recipient string              `json:"recipient"`
	Title     string              `json:"title,omitempty"`
	Body      string              `json:"body,omitempty"`
}

type Output struct {
	ReminderID string `json:"reminderId"`
	Status     string `json:"status"` // "sent", "failed", "disabled"
	MessageID  string `json:"messageId,omitempty"`
	SentAt     string `json:"sentAt"` // ISO 8601
}

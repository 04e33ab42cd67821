// internal/models/reminder.go
package models

import "time"

type ReminderKind string

const (
	ReminderPrayer  ReminderKind = "prayer"
	ReminderDhikr   ReminderKind = "dhikr"
	ReminderVerse   ReminderKind = "verse"
	ReminderGeneral ReminderKind = "reminder"
)

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelPush  Channel = "push"
)

// Reminder is one delivered (or attempted) notification.
type Reminder struct {
	ID        string       `json:"id"`
	Kind      ReminderKind `json:"kind"`
	Key       string       `json:"key,omitempty"`
	Title     string       `json:"title"`
	Body      string       `json:"body"`
	Channel   Channel      `json:"channel"`
	Recipient string       `json:"recipient"`
	Status    string       `json:"status"`
	MessageID string       `json:"messageId,omitempty"`
	SentAt    time.Time    `json:"sentAt"`
}

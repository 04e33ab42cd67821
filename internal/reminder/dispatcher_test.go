// internal/reminder/dispatcher_test.go
package reminder

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mafatih/internal/common/logger"
	"mafatih/internal/models"
)

// ==========================
// Mocks
// ==========================

type MockSES struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
	calls         int
}

func (m *MockSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.calls++
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(ctx, params, optFns...)
	}
	return &ses.SendEmailOutput{MessageId: aws.String("ses-1")}, nil
}

type MockSNS struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	calls       int
}

func (m *MockSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.calls++
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, params, optFns...)
	}
	return &sns.PublishOutput{MessageId: aws.String("sns-1")}, nil
}

func allEnabled() Config {
	return Config{
		EmailEnabled: true,
		SMSEnabled:   true,
		PushEnabled:  true,
		FromEmail:    "noreply@mafatih.app",
		SMSSenderID:  "Mafatih",
	}
}

// ==========================
// Templates
// ==========================

func TestLookup(t *testing.T) {
	tests := []struct {
		name      string
		kind      models.ReminderKind
		key       string
		wantTitle string
		wantOK    bool
	}{
		{"prayer by key", models.ReminderPrayer, "maghrib", "وقت صلاة المغرب", true},
		{"dhikr by key", models.ReminderDhikr, "evening", "أذكار المساء", true},
		{"single verse template without key", models.ReminderVerse, "", "آية اليوم", true},
		{"single general template without key", models.ReminderGeneral, "", "تذكير روحاني", true},
		{"prayer requires key", models.ReminderPrayer, "", "", false},
		{"unknown key", models.ReminderPrayer, "tahajjud", "", false},
		{"unknown kind", models.ReminderKind("alarm"), "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, ok := Lookup(tt.kind, tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantTitle, tmpl.Title)
		})
	}
}

func TestTemplates_ReturnsCopy(t *testing.T) {
	list := Templates()
	require.Len(t, list, 9)
	list[0].Title = "changed"

	tmpl, ok := Lookup(models.ReminderPrayer, "fajr")
	require.True(t, ok)
	assert.Equal(t, "وقت صلاة الفجر", tmpl.Title)
}

func TestDefaultPrayerTimes(t *testing.T) {
	times := DefaultPrayerTimes()
	assert.Equal(t, map[string]string{
		"fajr":    "05:30",
		"dhuhr":   "12:30",
		"asr":     "15:45",
		"maghrib": "18:20",
		"isha":    "19:45",
	}, times)

	times["fajr"] = "04:00"
	assert.Equal(t, "05:30", DefaultPrayerTimes()["fajr"])
}

// ==========================
// Send
// ==========================

func TestSend_Email(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO reminder_log").
		WithArgs(sqlmock.AnyArg(), "prayer", "fajr", "email", "user@example.com",
			"وقت صلاة الفجر", StatusSent, "ses-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	var captured *ses.SendEmailInput
	mockSES := &MockSES{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			captured = params
			return &ses.SendEmailOutput{MessageId: aws.String("ses-1")}, nil
		},
	}
	d := NewDispatcher(allEnabled(), mockSES, &MockSNS{}, db, logger.NewTestLogger(t))

	rem, err := d.Send(context.Background(), Request{
		Kind:      models.ReminderPrayer,
		Key:       "fajr",
		Channel:   models.ChannelEmail,
		Recipient: "user@example.com",
	})
	require.NoError(t, err)
	require.NotNil(t, rem)
	assert.Equal(t, StatusSent, rem.Status)
	assert.Equal(t, "ses-1", rem.MessageID)
	assert.NotEmpty(t, rem.ID)
	assert.False(t, rem.SentAt.IsZero())

	require.NotNil(t, captured)
	assert.Equal(t, []string{"user@example.com"}, captured.Destination.ToAddresses)
	assert.Equal(t, "وقت صلاة الفجر", aws.ToString(captured.Message.Subject.Data))
	assert.Equal(t, "حان وقت صلاة الفجر. بارك الله فيك", aws.ToString(captured.Message.Body.Text.Data))
	assert.Equal(t, "noreply@mafatih.app", aws.ToString(captured.Source))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSend_SMSWithOverrides(t *testing.T) {
	var captured *sns.PublishInput
	mockSNS := &MockSNS{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			captured = params
			return &sns.PublishOutput{MessageId: aws.String("sms-9")}, nil
		},
	}
	d := NewDispatcher(allEnabled(), &MockSES{}, mockSNS, nil, logger.NewTestLogger(t))

	rem, err := d.Send(context.Background(), Request{
		Kind:      models.ReminderDhikr,
		Key:       "morning",
		Channel:   models.ChannelSMS,
		Recipient: "+966500000000",
		Body:      "سبحان الله وبحمده",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSent, rem.Status)
	assert.Equal(t, "أذكار الصباح", rem.Title)
	assert.Equal(t, "سبحان الله وبحمده", rem.Body)

	require.NotNil(t, captured)
	assert.Equal(t, "+966500000000", aws.ToString(captured.PhoneNumber))
	assert.Equal(t, "أذكار الصباح\nسبحان الله وبحمده", aws.ToString(captured.Message))
	assert.Equal(t, "Mafatih", aws.ToString(captured.MessageAttributes["AWS.SNS.SMS.SenderID"].StringValue))
}

func TestSend_Push(t *testing.T) {
	var captured *sns.PublishInput
	mockSNS := &MockSNS{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			captured = params
			return &sns.PublishOutput{MessageId: aws.String("push-1")}, nil
		},
	}
	d := NewDispatcher(allEnabled(), nil, mockSNS, nil, logger.NewTestLogger(t))

	rem, err := d.Send(context.Background(), Request{
		Kind:      models.ReminderVerse,
		Channel:   models.ChannelPush,
		Recipient: "arn:aws:sns:us-east-1:123:endpoint/APNS/app/abc",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSent, rem.Status)
	assert.Equal(t, "daily", rem.Key)
	require.NotNil(t, captured)
	assert.Equal(t, "arn:aws:sns:us-east-1:123:endpoint/APNS/app/abc", aws.ToString(captured.TargetArn))
	assert.Nil(t, captured.PhoneNumber)
	assert.Equal(t, "آية اليوم", aws.ToString(captured.Subject))
}

func TestSend_ChannelDisabled(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO reminder_log").
		WithArgs(sqlmock.AnyArg(), "reminder", "spiritual", "sms", "+10000000000",
			"تذكير روحاني", StatusDisabled, "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mockSNS := &MockSNS{}
	cfg := allEnabled()
	cfg.SMSEnabled = false
	d := NewDispatcher(cfg, &MockSES{}, mockSNS, db, logger.NewTestLogger(t))

	rem, err := d.Send(context.Background(), Request{
		Kind:      models.ReminderGeneral,
		Channel:   models.ChannelSMS,
		Recipient: "+10000000000",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusDisabled, rem.Status)
	assert.Equal(t, 0, mockSNS.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSend_NilClientIsDisabled(t *testing.T) {
	d := NewDispatcher(allEnabled(), nil, nil, nil, nil)

	rem, err := d.Send(context.Background(), Request{
		Kind:      models.ReminderPrayer,
		Key:       "isha",
		Channel:   models.ChannelEmail,
		Recipient: "user@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusDisabled, rem.Status)
}

func TestSend_DeliveryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO reminder_log").
		WithArgs(sqlmock.AnyArg(), "prayer", "asr", "email", "user@example.com",
			"وقت صلاة العصر", StatusFailed, "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mockSES := &MockSES{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, errors.New("throttled")
		},
	}
	d := NewDispatcher(allEnabled(), mockSES, nil, db, logger.NewTestLogger(t))

	rem, err := d.Send(context.Background(), Request{
		Kind:      models.ReminderPrayer,
		Key:       "asr",
		Channel:   models.ChannelEmail,
		Recipient: "user@example.com",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDeliveryFailed)
	assert.Contains(t, err.Error(), "throttled")
	require.NotNil(t, rem)
	assert.Equal(t, StatusFailed, rem.Status)
	assert.Empty(t, rem.MessageID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSend_LogFailureDoesNotFailDelivery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO reminder_log").WillReturnError(errors.New("relation does not exist"))

	d := NewDispatcher(allEnabled(), &MockSES{}, nil, db, logger.NewTestLogger(t))
	rem, err := d.Send(context.Background(), Request{
		Kind:      models.ReminderDhikr,
		Key:       "evening",
		Channel:   models.ChannelEmail,
		Recipient: "user@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSent, rem.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSend_InvalidRequests(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"unknown kind", Request{Kind: "alarm", Channel: models.ChannelEmail, Recipient: "a@b.c"}},
		{"unknown prayer", Request{Kind: models.ReminderPrayer, Key: "duha", Channel: models.ChannelEmail, Recipient: "a@b.c"}},
		{"unknown channel", Request{Kind: models.ReminderVerse, Channel: "pigeon", Recipient: "a@b.c"}},
		{"blank recipient", Request{Kind: models.ReminderVerse, Channel: models.ChannelEmail, Recipient: "  "}},
	}

	mockSES := &MockSES{}
	mockSNS := &MockSNS{}
	d := NewDispatcher(allEnabled(), mockSES, mockSNS, nil, logger.NewTestLogger(t))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rem, err := d.Send(context.Background(), tt.req)
			assert.Nil(t, rem)
			assert.ErrorIs(t, err, ErrInvalidReminder)
		})
	}
	assert.Equal(t, 0, mockSES.calls)
	assert.Equal(t, 0, mockSNS.calls)
}

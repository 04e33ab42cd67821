// internal/workers/notification/send-reminder/config.go
package sendreminder

import "time"

type Config struct {
	Timeout time.Duration
	// FailOnDisabled throws NOTIFICATION_CHANNEL_DISABLED instead of
	// completing the job with status "disabled".
	FailOnDisabled bool
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}

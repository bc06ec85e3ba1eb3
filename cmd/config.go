package cmd

import "time"

// Config carries every runtime setting the service needs. Values come from
// the environment; main fills defaults for the optional ones.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string
	TokenTTL  time.Duration

	HubQueueSize         int
	ConnectionBufferSize int

	WebhookTimeout       time.Duration
	PendingReminderAfter time.Duration
}

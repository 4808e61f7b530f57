package types

import (
	"fmt"
	"time"
)

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	DatabaseSchema  string `envconfig:"DATABASE_SCHEMA" default:"epitrack"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`

	// Calendar days are evaluated in this zone
	Timezone string `envconfig:"TIMEZONE" default:"Europe/Paris"`

	UpcomingLimit  int    `envconfig:"UPCOMING_LIMIT" default:"5"`
	OverduePreview int    `envconfig:"OVERDUE_PREVIEW" default:"3"`
	DigestCron     string `envconfig:"DIGEST_CRON" default:"0 7 * * *"`

	// Schedule exports, disabled when the bucket is empty
	ExportBucket string `envconfig:"EXPORT_BUCKET"`
	ExportPrefix string `envconfig:"EXPORT_PREFIX" default:"exports"`
	// Digest workbooks kept in the bucket, 0 keeps them all
	ExportRetention int `envconfig:"EXPORT_RETENTION" default:"30"`

	// Flash cookie keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	FlashCookieName string `envconfig:"FLASH_COOKIE_NAME" default:"epitrack_flash"`
	CookieHashKey   string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey  string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes
}

func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}

	return loc, nil
}

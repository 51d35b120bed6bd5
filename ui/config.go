package ui

import "time"

// Config contains TUI-specific configuration.
type Config struct {
	// Initial form values.
	Voice string
	Text  string

	// Synthesis API
	APIBaseURL string
	APITimeout time.Duration

	EnableMouse bool
	NoColor     bool
	InputTTY    bool // stdin was consumed, read keys from the tty

	NotificationTimeout time.Duration `env:"SPEAK_NOTIFICATION_TIMEOUT" envDefault:"3s"`

	// For debugging the UI
	Debug   bool   `env:"SPEAK_DEBUG"`
	LogFile string `env:"SPEAK_LOG_FILE"`
}

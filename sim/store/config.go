package store

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultBanThreshold     = 5
	DefaultMaxMessageLength = 140
)

// Config holds the moderation limits of the board.
type Config struct {
	// BanThreshold is the number of distinct reporters that bans a user.
	BanThreshold int `yaml:"ban_threshold" envconfig:"BAN_THRESHOLD" validate:"gte=1"`
	// MaxMessageLength caps message text in bytes. Zero disables the cap.
	MaxMessageLength int `yaml:"max_message_length" envconfig:"MAX_MESSAGE_LENGTH" validate:"gte=0"`
}

// DefaultConfig returns the standard moderation limits.
func DefaultConfig() Config {
	return Config{
		BanThreshold:     DefaultBanThreshold,
		MaxMessageLength: DefaultMaxMessageLength,
	}
}

// Validate checks the field bounds.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid store config: %w", err)
	}
	return nil
}

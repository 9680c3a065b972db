package board

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultStorePhaseTicks is how long a Worker spends in each store phase.
	DefaultStorePhaseTicks = 4
	// DefaultMinOperationTicks is the floor on an operation's execution time.
	DefaultMinOperationTicks = 1
)

// Config holds the timing of the session protocol.
type Config struct {
	// StorePhaseTicks is the number of ticks the preparing and persisting
	// phases each take at minimum.
	StorePhaseTicks int64 `yaml:"store_phase_ticks" envconfig:"STORE_PHASE_TICKS" validate:"gte=1"`
	// MinOperationTicks bounds an operation's execution time from below.
	MinOperationTicks int64 `yaml:"min_operation_ticks" envconfig:"MIN_OPERATION_TICKS" validate:"gte=0"`
}

// DefaultConfig returns the standard session timing.
func DefaultConfig() Config {
	return Config{
		StorePhaseTicks:   DefaultStorePhaseTicks,
		MinOperationTicks: DefaultMinOperationTicks,
	}
}

// Validate checks the field bounds.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid board config: %w", err)
	}
	return nil
}

// OperationTicks returns how long a Worker executes op.
func (c Config) OperationTicks(op Operation) int64 {
	return max(op.Duration(), c.MinOperationTicks)
}

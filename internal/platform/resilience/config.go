package resilience

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	defaultFailureThreshold = 5
	defaultOpenTimeout      = 30 * time.Second
	defaultHalfOpenMaxReq   = 1
)

// CircuitBreakerConfig tunes the breaker in front of the odds provider.
// Zero fields take the package defaults.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int           `validate:"gte=1"`
	OpenTimeout      time.Duration `validate:"gt=0"`
	HalfOpenMaxReq   int           `validate:"gte=1"`
}

var configValidate = validator.New()

// WithDefaults fills unset or non-positive fields.
func (c CircuitBreakerConfig) WithDefaults() CircuitBreakerConfig {
	if c.FailureThreshold < 1 {
		c.FailureThreshold = defaultFailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = defaultOpenTimeout
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = defaultHalfOpenMaxReq
	}
	return c
}

// Validate rejects explicit settings that WithDefaults would silently replace.
func (c CircuitBreakerConfig) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("circuit breaker config: %w", err)
	}
	return nil
}

package relay

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestErrorRendering(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "verification",
			err:      &VerificationError{Relay: Num(2), Expected: On, Actual: Off, Attempts: 4},
			expected: "state verification failed for relay 2: expected ON, got OFF after 4 attempts",
		},
		{
			name:     "timeout",
			err:      &TimeoutError{Relay: Num(1), Op: "set", Elapsed: 1500 * time.Millisecond},
			expected: "timeout during set for relay 1 after 1.5s",
		},
		{
			name:     "timeout on unit relay",
			err:      &TimeoutError{Relay: Unit, Op: "toggle", Elapsed: 2 * time.Second},
			expected: "timeout during toggle for relay after 2s",
		},
		{
			name:     "relay number",
			err:      &NumberError{Num: 5, Max: 4},
			expected: "invalid relay number 5: board has 4 relays",
		},
		{
			name:     "address",
			err:      &AddressError{Addr: 0x07},
			expected: "invalid I2C address 0x07: legal range is 0x08-0x77",
		},
		{
			name:     "config",
			err:      &ConfigError{Reason: "relay count must be at least 1"},
			expected: "invalid configuration: relay count must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestErrorsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("switching pump circuit: %w",
		&VerificationError{Relay: Num(1), Expected: On, Actual: Off, Attempts: 1})

	var verr *VerificationError
	assert.True(t, errors.As(wrapped, &verr))
	assert.Equal(t, 1, verr.Attempts)

	var terr *TimeoutError
	assert.False(t, errors.As(wrapped, &terr))
}

package relay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimingPresets(t *testing.T) {
	standard := StandardTiming()
	assert.Equal(t, 10*time.Microsecond, standard.WriteDelay)
	assert.Equal(t, 10*time.Millisecond, standard.StateChangeDelay)
	assert.Equal(t, 200*time.Millisecond, standard.InitDelay)

	solid := SolidStateTiming()
	mechanical := MechanicalTiming()
	assert.Less(t, solid.StateChangeDelay, standard.StateChangeDelay)
	assert.Greater(t, mechanical.StateChangeDelay, standard.StateChangeDelay)
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(2)
	assert.Equal(t, uint8(2), cfg.RelayCount)
	assert.Equal(t, StandardTiming(), cfg.Timing)
	assert.Equal(t, StrictVerification(), cfg.Verification)
	assert.NoError(t, cfg.Validate())

	assert.Equal(t, NewConfig(4), DefaultConfig())
	assert.Equal(t, SolidStateTiming(), SolidStateConfig(4).Timing)
	assert.Equal(t, MechanicalTiming(), MechanicalConfig(1).Timing)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		reason string
	}{
		{
			name:   "zero relay count",
			mutate: func(c *Config) { c.RelayCount = 0 },
			reason: "relay count",
		},
		{
			name:   "negative write delay",
			mutate: func(c *Config) { c.Timing.WriteDelay = -time.Microsecond },
			reason: "timing delays",
		},
		{
			name:   "negative state change delay",
			mutate: func(c *Config) { c.Timing.StateChangeDelay = -time.Millisecond },
			reason: "timing delays",
		},
		{
			name:   "negative max retries",
			mutate: func(c *Config) { c.Verification.MaxRetries = -1 },
			reason: "max retries",
		},
		{
			name:   "negative timeout",
			mutate: func(c *Config) { c.Verification.Timeout = -time.Second },
			reason: "verification delays",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestConfigZeroDelaysAreValid(t *testing.T) {
	// Zero delays mean "skip the sleep", not "invalid"; tests and solid-state
	// setups rely on that.
	cfg := Config{RelayCount: 1}
	assert.NoError(t, cfg.Validate())
}

package relay

import "time"

// Timing groups the settle delays applied around bus writes. A zero value
// skips the corresponding sleep.
type Timing struct {
	// WriteDelay follows every command write.
	WriteDelay time.Duration
	// StateChangeDelay lets the output physically settle after an effective
	// state change.
	StateChangeDelay time.Duration
	// InitDelay is the power-on settle time consumed by Init.
	InitDelay time.Duration
}

// StandardTiming is a safe default for any board type.
func StandardTiming() Timing {
	return Timing{
		WriteDelay:       10 * time.Microsecond,
		StateChangeDelay: 10 * time.Millisecond,
		InitDelay:        200 * time.Millisecond,
	}
}

// SolidStateTiming suits boards without mechanical switching latency.
func SolidStateTiming() Timing {
	return Timing{
		WriteDelay:       5 * time.Microsecond,
		StateChangeDelay: 5 * time.Millisecond,
		InitDelay:        100 * time.Millisecond,
	}
}

// MechanicalTiming adds headroom for armature travel time.
func MechanicalTiming() Timing {
	return Timing{
		WriteDelay:       15 * time.Microsecond,
		StateChangeDelay: 20 * time.Millisecond,
		InitDelay:        250 * time.Millisecond,
	}
}

// Config describes the attached board and the policies applied to it. It is
// a plain value; the board copies it on every update.
type Config struct {
	// RelayCount bounds explicit relay numbers (1..RelayCount). Must be at
	// least 1.
	RelayCount   uint8
	Timing       Timing
	Verification Verification
}

// NewConfig returns the packaged default for a board with count relays:
// standard timing and strict verification.
func NewConfig(count uint8) Config {
	return Config{
		RelayCount:   count,
		Timing:       StandardTiming(),
		Verification: StrictVerification(),
	}
}

// DefaultConfig targets the common quad-relay board.
func DefaultConfig() Config {
	return NewConfig(4)
}

// SolidStateConfig is NewConfig with solid-state timing.
func SolidStateConfig(count uint8) Config {
	cfg := NewConfig(count)
	cfg.Timing = SolidStateTiming()
	return cfg
}

// MechanicalConfig is NewConfig with conservative mechanical timing.
func MechanicalConfig(count uint8) Config {
	cfg := NewConfig(count)
	cfg.Timing = MechanicalTiming()
	return cfg
}

func (c Config) Validate() error {
	if c.RelayCount < 1 {
		return &ConfigError{Reason: "relay count must be at least 1"}
	}
	if c.Timing.WriteDelay < 0 || c.Timing.StateChangeDelay < 0 || c.Timing.InitDelay < 0 {
		return &ConfigError{Reason: "timing delays must not be negative"}
	}
	if c.Verification.MaxRetries < 0 {
		return &ConfigError{Reason: "max retries must not be negative"}
	}
	if c.Verification.RetryDelay < 0 || c.Verification.VerificationDelay < 0 || c.Verification.Timeout < 0 {
		return &ConfigError{Reason: "verification delays must not be negative"}
	}
	return nil
}

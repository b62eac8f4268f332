package relay

import (
	"fmt"
	"time"
)

// VerificationError reports that a commanded transition could not be
// confirmed after exhausting all attempts. Actual reflects the last observed
// state; the physical relay may be in either position.
type VerificationError struct {
	Relay    Relay
	Expected Status
	Actual   Status
	Attempts int
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("state verification failed for %s: expected %s, got %s after %d attempts",
		e.Relay, e.Expected, e.Actual, e.Attempts)
}

// TimeoutError reports that the wall-clock budget ran out before the
// operation resolved. Elapsed is the measured time, not the configured
// budget.
type TimeoutError struct {
	Relay   Relay
	Op      string
	Elapsed time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout during %s for %s after %s", e.Op, e.Relay, e.Elapsed)
}

// NumberError rejects a relay number outside 1..Max. Nothing was written to
// the bus.
type NumberError struct {
	Num uint8
	Max uint8
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("invalid relay number %d: board has %d relays", e.Num, e.Max)
}

// AddressError rejects a target I2C address outside the legal range.
// Nothing was written to the bus.
type AddressError struct {
	Addr byte
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("invalid I2C address %#04x: legal range is %#04x-%#04x", e.Addr, addrMin, addrMax)
}

// ConfigError rejects an invalid board configuration.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}

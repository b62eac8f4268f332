package relay

import "time"

// Mode selects how hard the engine insists on confirmed state.
type Mode uint8

const (
	// ModeDisabled skips post-write confirmation entirely.
	ModeDisabled Mode = iota
	// ModeStrict confirms every transition and fails on exhaustion.
	ModeStrict
	// ModeLenient carries more tolerant defaults; exhaustion still returns
	// the hard error, but the final mismatch is logged first so callers that
	// decide to continue have a trace.
	ModeLenient
)

func (m Mode) String() string {
	switch m {
	case ModeStrict:
		return "strict"
	case ModeLenient:
		return "lenient"
	default:
		return "disabled"
	}
}

// Verification parameterizes the retry and timeout behavior of state
// confirmation. The zero value disables verification.
type Verification struct {
	Mode Mode
	// MaxRetries counts retries after the first attempt; 0 means a single
	// attempt.
	MaxRetries int
	// RetryDelay separates consecutive attempts.
	RetryDelay time.Duration
	// VerificationDelay precedes every confirmation read.
	VerificationDelay time.Duration
	// Timeout bounds the whole operation; it is checked between attempts,
	// not within one.
	Timeout time.Duration
}

// StrictVerification fails loudly: up to 4 attempts within a second.
func StrictVerification() Verification {
	return Verification{
		Mode:              ModeStrict,
		MaxRetries:        3,
		RetryDelay:        50 * time.Millisecond,
		VerificationDelay: 20 * time.Millisecond,
		Timeout:           time.Second,
	}
}

// LenientVerification tolerates noisy buses with more retries and a longer
// budget.
func LenientVerification() Verification {
	return Verification{
		Mode:              ModeLenient,
		MaxRetries:        5,
		RetryDelay:        100 * time.Millisecond,
		VerificationDelay: 50 * time.Millisecond,
		Timeout:           2 * time.Second,
	}
}

// NoVerification turns confirmation off; writes are fire-and-forget.
func NoVerification() Verification {
	return Verification{}
}

func (v Verification) WithMode(mode Mode) Verification {
	v.Mode = mode
	return v
}

func (v Verification) WithMaxRetries(retries int) Verification {
	v.MaxRetries = retries
	return v
}

func (v Verification) WithRetryDelay(delay time.Duration) Verification {
	v.RetryDelay = delay
	return v
}

func (v Verification) WithVerificationDelay(delay time.Duration) Verification {
	v.VerificationDelay = delay
	return v
}

func (v Verification) WithTimeout(timeout time.Duration) Verification {
	v.Timeout = timeout
	return v
}

func (v Verification) enabled() bool { return v.Mode != ModeDisabled }

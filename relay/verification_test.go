package relay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVerificationZeroValueIsDisabled(t *testing.T) {
	var v Verification
	assert.False(t, v.enabled())
	assert.Equal(t, NoVerification(), v)
	assert.Equal(t, "disabled", v.Mode.String())
}

func TestVerificationPresets(t *testing.T) {
	strict := StrictVerification()
	assert.Equal(t, ModeStrict, strict.Mode)
	assert.Equal(t, 3, strict.MaxRetries)
	assert.Equal(t, 50*time.Millisecond, strict.RetryDelay)
	assert.Equal(t, 20*time.Millisecond, strict.VerificationDelay)
	assert.Equal(t, time.Second, strict.Timeout)
	assert.True(t, strict.enabled())

	lenient := LenientVerification()
	assert.Equal(t, ModeLenient, lenient.Mode)
	assert.Equal(t, 5, lenient.MaxRetries)
	assert.Equal(t, 100*time.Millisecond, lenient.RetryDelay)
	assert.Equal(t, 50*time.Millisecond, lenient.VerificationDelay)
	assert.Equal(t, 2*time.Second, lenient.Timeout)
	assert.True(t, lenient.enabled())
}

func TestVerificationBuilders(t *testing.T) {
	base := StrictVerification()
	custom := base.
		WithMode(ModeLenient).
		WithMaxRetries(7).
		WithRetryDelay(5 * time.Millisecond).
		WithVerificationDelay(time.Millisecond).
		WithTimeout(10 * time.Second)

	assert.Equal(t, ModeLenient, custom.Mode)
	assert.Equal(t, 7, custom.MaxRetries)
	assert.Equal(t, 5*time.Millisecond, custom.RetryDelay)
	assert.Equal(t, time.Millisecond, custom.VerificationDelay)
	assert.Equal(t, 10*time.Second, custom.Timeout)

	// Builders work on copies.
	assert.Equal(t, StrictVerification(), base)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "strict", ModeStrict.String())
	assert.Equal(t, "lenient", ModeLenient.String())
	assert.Equal(t, "disabled", ModeDisabled.String())
}

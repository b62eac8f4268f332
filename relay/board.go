package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	qwiic "github.com/ktheindifferent/qwiic-relay"
)

const defaultRetryLimit = 2

// changeAddrSettle is how long the board needs to commit a new address to
// non-volatile storage.
const changeAddrSettle = 100 * time.Millisecond

var _ Controller = &Board{}

// Board drives a SparkFun Qwiic Relay board over an exclusively owned I2C
// transport.
// Typical usage:
//
//	board := NewBoard(bus, QuadRelayDefault)
//	err := board.Set(ctx, Num(2), On)
//
// All operations block the calling goroutine through their settle and
// verification delays. The transport handle is not guarded internally;
// sharing a bus between goroutines requires external locking.
type Board struct {
	transport  qwiic.I2CBus
	addr       byte
	config     Config
	retryLimit int
	buf        []byte
}

type BoardOpts struct {
	Config        Config
	BusRetryLimit int
}

type BoardOpt func(*BoardOpts)

func WithConfig(cfg Config) BoardOpt {
	return func(o *BoardOpts) {
		o.Config = cfg
	}
}

// WithBusRetryLimit bounds the release-and-retry cycles performed when the
// transport reports a busy I2C engine. Limits below 1 are raised to 1 so
// every operation still reaches the bus once.
func WithBusRetryLimit(limit int) BoardOpt {
	return func(o *BoardOpts) {
		o.BusRetryLimit = limit
	}
}

// NewBoard creates a driver for the board at addr. Without options it
// assumes a quad relay with standard timing and strict verification. The
// constructor has no error path: an invalid Config falls back to those
// defaults, and SetConfig is the way to find out why a config is rejected.
func NewBoard(transport qwiic.I2CBus, addr byte, opts ...BoardOpt) *Board {
	config := BoardOpts{
		Config:        DefaultConfig(),
		BusRetryLimit: defaultRetryLimit,
	}
	for _, opt := range opts {
		opt(&config)
	}
	if config.BusRetryLimit < 1 {
		config.BusRetryLimit = 1
	}
	if err := config.Config.Validate(); err != nil {
		slog.Warn("invalid board configuration, using defaults", "error", err)
		config.Config = DefaultConfig()
	}
	return &Board{
		transport:  transport,
		addr:       addr,
		config:     config.Config,
		retryLimit: config.BusRetryLimit,
		buf:        make([]byte, 1),
	}
}

// Addr returns the I2C address this handle was opened at.
func (b *Board) Addr() byte { return b.addr }

// Config returns a copy of the active configuration.
func (b *Board) Config() Config { return b.config }

// SetConfig swaps the configuration without reopening the bus.
func (b *Board) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	b.config = cfg
	return nil
}

// SetWriteDelay adjusts the post-write settle at runtime.
func (b *Board) SetWriteDelay(d time.Duration) {
	b.config.Timing.WriteDelay = d
}

// SetStateChangeDelay adjusts the state-change settle at runtime.
func (b *Board) SetStateChangeDelay(d time.Duration) {
	b.config.Timing.StateChangeDelay = d
}

// Init waits out the board's power-on setup time.
func (b *Board) Init(ctx context.Context) error {
	return b.sleep(ctx, b.config.Timing.InitDelay)
}

// Set drives r to the desired state. With verification disabled this is a
// single conditional command; otherwise the write is confirmed by read-back
// under the configured retry and timeout policy.
func (b *Board) Set(ctx context.Context, r Relay, desired Status) error {
	if err := b.checkRelay(r); err != nil {
		return err
	}
	if !b.config.Verification.enabled() {
		_, err := b.apply(ctx, r, desired)
		return err
	}
	return b.setVerified(ctx, r, desired, "set")
}

// On is shorthand for Set(ctx, r, On).
func (b *Board) On(ctx context.Context, r Relay) error {
	return b.Set(ctx, r, On)
}

// Off is shorthand for Set(ctx, r, Off).
func (b *Board) Off(ctx context.Context, r Relay) error {
	return b.Set(ctx, r, Off)
}

// GetState reads the current state of r. No retry, no settle delays.
func (b *Board) GetState(ctx context.Context, r Relay) (Status, error) {
	if err := b.checkRelay(r); err != nil {
		return Off, err
	}
	return b.readState(ctx, r)
}

// Toggle reads the current state once and drives r to the opposite. The
// read and the write are not atomic; an external state change in between
// surfaces as a verification mismatch rather than being masked.
func (b *Board) Toggle(ctx context.Context, r Relay) error {
	if err := b.checkRelay(r); err != nil {
		return err
	}
	current, err := b.readState(ctx, r)
	if err != nil {
		return err
	}
	desired := current.Opposite()
	if !b.config.Verification.enabled() {
		_, err = b.apply(ctx, r, desired)
		return err
	}
	return b.setVerified(ctx, r, desired, "toggle")
}

// SetAll drives every output with a single whole-board command, then, when
// verification is enabled, confirms each relay independently. Lower-cost
// boards do not switch all outputs atomically, so per-relay read-back is the
// only reliable confirmation.
func (b *Board) SetAll(ctx context.Context, desired Status) error {
	cmd := cmdAllOff
	if desired == On {
		cmd = cmdAllOn
	}
	if err := b.writeCommand(ctx, cmd); err != nil {
		return fmt.Errorf("could not set all relays: %w", err)
	}
	if err := b.sleep(ctx, b.config.Timing.StateChangeDelay); err != nil {
		return err
	}
	if !b.config.Verification.enabled() {
		return nil
	}
	// counter wider than RelayCount so the full range 1..255 terminates
	for n := 1; n <= int(b.config.RelayCount); n++ {
		if err := b.setVerified(ctx, Num(uint8(n)), desired, "set all"); err != nil {
			return err
		}
	}
	return nil
}

// ToggleAll inverts every output with a single whole-board command. There is
// no fixed target state to confirm, so the command is never verified.
func (b *Board) ToggleAll(ctx context.Context) error {
	if err := b.writeCommand(ctx, cmdToggleAll); err != nil {
		return fmt.Errorf("could not toggle all relays: %w", err)
	}
	return b.sleep(ctx, b.config.Timing.StateChangeDelay)
}

// GetFirmwareVersion reads the board's firmware version byte.
func (b *Board) GetFirmwareVersion(ctx context.Context) (byte, error) {
	version, err := b.readRegister(ctx, regVersion)
	if err != nil {
		return 0, fmt.Errorf("could not read firmware version: %w", err)
	}
	return version, nil
}

// ChangeAddress moves the device to a new I2C address, committed to its
// non-volatile storage. This handle keeps pointing at the old address and
// must be reopened at the new one; there is no way back short of another
// address change.
func (b *Board) ChangeAddress(ctx context.Context, newAddr byte) error {
	if newAddr < addrMin || newAddr > addrMax {
		return &AddressError{Addr: newAddr}
	}
	if err := b.writeBytes(ctx, cmdChangeAddr, newAddr); err != nil {
		return fmt.Errorf("could not change device address: %w", err)
	}
	return b.sleep(ctx, changeAddrSettle)
}

// AutoDetectTiming probes the board and, when the handle's address matches a
// factory default, adopts the timing preset for that relay technology. It
// reports whether timing was adjusted; boards on reassigned addresses are
// left untouched.
func (b *Board) AutoDetectTiming(ctx context.Context) (bool, error) {
	if _, err := b.GetFirmwareVersion(ctx); err != nil {
		return false, err
	}
	switch b.addr {
	case DualSolidState, DualSolidStateJumperClosed, QuadSolidState, QuadSolidStateJumperClosed:
		b.config.Timing = SolidStateTiming()
	case SingleRelayDefault, SingleRelayJumperClosed, QuadRelayDefault, QuadRelayJumperClosed:
		b.config.Timing = MechanicalTiming()
	default:
		return false, nil
	}
	slog.Debug("adopted timing preset", "addr", fmt.Sprintf("%#04x", b.addr),
		"state_change_delay", b.config.Timing.StateChangeDelay)
	return true, nil
}

func (b *Board) checkRelay(r Relay) error {
	if r.IsUnit() {
		return nil
	}
	if r.Number() < 1 || r.Number() > b.config.RelayCount {
		return &NumberError{Num: r.Number(), Max: b.config.RelayCount}
	}
	return nil
}

// setVerified runs the commanded-write/confirm loop. The wall-clock budget
// is checked at the top of every iteration, so it can expire before the
// retry count does; retry exhaustion is only decided after a completed
// attempt.
func (b *Board) setVerified(ctx context.Context, r Relay, desired Status, op string) error {
	verification := b.config.Verification
	start := time.Now()
	for attempt := 0; ; attempt++ {
		if elapsed := time.Since(start); elapsed > verification.Timeout {
			return &TimeoutError{Relay: r, Op: op, Elapsed: elapsed}
		}
		last := attempt >= verification.MaxRetries
		actual, confirmed, err := b.attempt(ctx, r, desired)
		switch {
		case err != nil:
			if last || ctx.Err() != nil {
				return err
			}
			slog.Debug("transport error, retrying", "op", op, "relay", r.String(),
				"attempt", attempt+1, "error", err)
		case confirmed:
			return nil
		default:
			if last {
				if verification.Mode == ModeLenient {
					slog.Warn("state mismatch after final attempt", "op", op, "relay", r.String(),
						"expected", desired.String(), "actual", actual.String())
				}
				return &VerificationError{Relay: r, Expected: desired, Actual: actual, Attempts: attempt + 1}
			}
			slog.Debug("state mismatch, retrying", "op", op, "relay", r.String(),
				"attempt", attempt+1, "expected", desired.String(), "actual", actual.String())
		}
		if err := b.sleep(ctx, verification.RetryDelay); err != nil {
			return err
		}
	}
}

// attempt performs one unverified apply plus a confirmation read.
func (b *Board) attempt(ctx context.Context, r Relay, desired Status) (Status, bool, error) {
	wrote, err := b.apply(ctx, r, desired)
	if err != nil {
		return Off, false, err
	}
	if wrote {
		if err = b.sleep(ctx, b.config.Timing.StateChangeDelay); err != nil {
			return Off, false, err
		}
	}
	if err = b.sleep(ctx, b.config.Verification.VerificationDelay); err != nil {
		return Off, false, err
	}
	actual, err := b.readState(ctx, r)
	if err != nil {
		return Off, false, err
	}
	return actual, actual == desired, nil
}

// apply issues the minimal traffic that moves r toward desired and reports
// whether a command was written. Numbered relays expose only a toggle
// command, so the current state is read first and the toggle sent on
// mismatch; an already-correct relay is not touched. Unit uses the absolute
// whole-board command and needs no read.
func (b *Board) apply(ctx context.Context, r Relay, desired Status) (bool, error) {
	if r.IsUnit() {
		cmd := cmdSingleOff
		if desired == On {
			cmd = cmdSingleOn
		}
		if err := b.writeCommand(ctx, cmd); err != nil {
			return false, fmt.Errorf("could not set %s: %w", r, err)
		}
		return true, nil
	}
	current, err := b.readState(ctx, r)
	if err != nil {
		return false, err
	}
	if current == desired {
		return false, nil
	}
	if err = b.writeCommand(ctx, cmdToggleBase+r.Number()); err != nil {
		return false, fmt.Errorf("could not toggle %s: %w", r, err)
	}
	return true, nil
}

func (b *Board) readState(ctx context.Context, r Relay) (Status, error) {
	reg := regUnitStatus
	if !r.IsUnit() {
		reg = regStatusBase + r.Number()
	}
	raw, err := b.readRegister(ctx, reg)
	if err != nil {
		return Off, fmt.Errorf("could not read %s state: %w", r, err)
	}
	return StatusFromByte(raw), nil
}

// readRegister selects reg and reads one byte back, releasing and retrying
// when the I2C engine is busy.
func (b *Board) readRegister(ctx context.Context, reg byte) (byte, error) {
	var err error
	for i := b.retryLimit; i > 0; i-- {
		err = b.transport.WriteToAddr(ctx, b.addr, []byte{reg})
		if err == nil {
			break
		}
		if !errors.Is(err, qwiic.ErrBusBusy) {
			return 0x00, fmt.Errorf("could not select register %#04x: %w", reg, err)
		}
		// try to release the bus
		_ = b.transport.Release(ctx)
	}
	if err != nil {
		return 0x00, fmt.Errorf("could not select register %#04x (retry limit reached): %w", reg, err)
	}
	for i := b.retryLimit; i > 0; i-- {
		err = b.transport.ReadFromAddr(ctx, b.addr, b.buf)
		if err == nil {
			return b.buf[0], nil
		}
		if !errors.Is(err, qwiic.ErrBusBusy) {
			return 0x00, fmt.Errorf("could not read register %#04x: %w", reg, err)
		}
		// try to release the bus
		_ = b.transport.Release(ctx)
	}
	return 0x00, fmt.Errorf("could not read register %#04x (retry limit reached): %w", reg, err)
}

// writeCommand sends a single command byte and applies the post-write
// settle.
func (b *Board) writeCommand(ctx context.Context, cmd byte) error {
	if err := b.writeBytes(ctx, cmd); err != nil {
		return err
	}
	return b.sleep(ctx, b.config.Timing.WriteDelay)
}

func (b *Board) writeBytes(ctx context.Context, data ...byte) error {
	var err error
	for i := b.retryLimit; i > 0; i-- {
		err = b.transport.WriteToAddr(ctx, b.addr, data)
		if err == nil {
			return nil
		}
		if !errors.Is(err, qwiic.ErrBusBusy) {
			return err
		}
		// try to release the bus
		_ = b.transport.Release(ctx)
	}
	return fmt.Errorf("write failed (retry limit reached): %w", err)
}

// sleep waits for d unless the context ends first. Zero and negative
// durations return immediately.
func (b *Board) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

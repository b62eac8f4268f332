// Package lite drives Qwiic Relay boards with the smallest possible bus
// footprint: single conditional commands and fixed settle delays, no
// read-back verification, no retry, no busy-bus recovery. It implements the
// same relay.Controller capability as the full engine and suits
// embedded-style deployments where that machinery is unwanted.
package lite

import (
	"context"
	"fmt"
	"time"

	qwiic "github.com/ktheindifferent/qwiic-relay"
	"github.com/ktheindifferent/qwiic-relay/relay"
)

const (
	cmdToggleBase byte = 0x00
	cmdSingleOff  byte = 0x00
	cmdSingleOn   byte = 0x01
	cmdAllOff     byte = 0x0A
	cmdAllOn      byte = 0x0B
	cmdToggleAll  byte = 0x0C

	regVersion    byte = 0x04
	regStatusBase byte = 0x04
	regUnitStatus byte = 0x05
)

var _ relay.Controller = &Board{}

// Board is the reduced driver. One transport, one address, fixed timing.
type Board struct {
	transport qwiic.I2CBus
	addr      byte
	count     uint8
	timing    relay.Timing
	buf       []byte
}

type BoardOpts struct {
	RelayCount uint8
	Timing     relay.Timing
}

type BoardOpt func(*BoardOpts)

func WithRelayCount(count uint8) BoardOpt {
	return func(o *BoardOpts) {
		o.RelayCount = count
	}
}

func WithTiming(timing relay.Timing) BoardOpt {
	return func(o *BoardOpts) {
		o.Timing = timing
	}
}

// NewBoard creates a reduced driver for the board at addr. Defaults assume a
// quad relay with standard timing.
func NewBoard(transport qwiic.I2CBus, addr byte, opts ...BoardOpt) *Board {
	config := BoardOpts{
		RelayCount: 4,
		Timing:     relay.StandardTiming(),
	}
	for _, opt := range opts {
		opt(&config)
	}
	return &Board{
		transport: transport,
		addr:      addr,
		count:     config.RelayCount,
		timing:    config.Timing,
		buf:       make([]byte, 1),
	}
}

// Init waits out the board's power-on setup time.
func (b *Board) Init(ctx context.Context) error {
	return b.sleep(ctx, b.timing.InitDelay)
}

// Set drives r to the desired state with a single conditional command.
// Numbered relays only expose a toggle, so the current state decides whether
// anything is written; there is no confirmation read afterwards.
func (b *Board) Set(ctx context.Context, r relay.Relay, desired relay.Status) error {
	if err := b.checkRelay(r); err != nil {
		return err
	}
	if r.IsUnit() {
		cmd := cmdSingleOff
		if desired == relay.On {
			cmd = cmdSingleOn
		}
		return b.writeCommand(ctx, cmd)
	}
	current, err := b.readState(ctx, r)
	if err != nil {
		return err
	}
	if current == desired {
		return nil
	}
	return b.writeCommand(ctx, cmdToggleBase+r.Number())
}

// GetState reads the current state of r.
func (b *Board) GetState(ctx context.Context, r relay.Relay) (relay.Status, error) {
	if err := b.checkRelay(r); err != nil {
		return relay.Off, err
	}
	return b.readState(ctx, r)
}

// Toggle inverts r. Numbered relays go straight to the hardware toggle
// without reading first; the unit relay has no toggle command, so its state
// is read and the opposite written.
func (b *Board) Toggle(ctx context.Context, r relay.Relay) error {
	if err := b.checkRelay(r); err != nil {
		return err
	}
	if !r.IsUnit() {
		return b.writeCommand(ctx, cmdToggleBase+r.Number())
	}
	current, err := b.readState(ctx, r)
	if err != nil {
		return err
	}
	cmd := cmdSingleOff
	if current == relay.Off {
		cmd = cmdSingleOn
	}
	return b.writeCommand(ctx, cmd)
}

// SetAll drives every output with one whole-board command.
func (b *Board) SetAll(ctx context.Context, desired relay.Status) error {
	cmd := cmdAllOff
	if desired == relay.On {
		cmd = cmdAllOn
	}
	if err := b.writeCommand(ctx, cmd); err != nil {
		return err
	}
	return b.sleep(ctx, b.timing.StateChangeDelay)
}

// ToggleAll inverts every output with one whole-board command.
func (b *Board) ToggleAll(ctx context.Context) error {
	if err := b.writeCommand(ctx, cmdToggleAll); err != nil {
		return err
	}
	return b.sleep(ctx, b.timing.StateChangeDelay)
}

// GetFirmwareVersion reads the board's firmware version byte.
func (b *Board) GetFirmwareVersion(ctx context.Context) (byte, error) {
	version, err := b.readRegister(ctx, regVersion)
	if err != nil {
		return 0, fmt.Errorf("could not read firmware version: %w", err)
	}
	return version, nil
}

func (b *Board) checkRelay(r relay.Relay) error {
	if r.IsUnit() {
		return nil
	}
	if r.Number() < 1 || r.Number() > b.count {
		return &relay.NumberError{Num: r.Number(), Max: b.count}
	}
	return nil
}

func (b *Board) readState(ctx context.Context, r relay.Relay) (relay.Status, error) {
	reg := regUnitStatus
	if !r.IsUnit() {
		reg = regStatusBase + r.Number()
	}
	raw, err := b.readRegister(ctx, reg)
	if err != nil {
		return relay.Off, fmt.Errorf("could not read %s state: %w", r, err)
	}
	return relay.StatusFromByte(raw), nil
}

func (b *Board) readRegister(ctx context.Context, reg byte) (byte, error) {
	if err := b.transport.WriteToAddr(ctx, b.addr, []byte{reg}); err != nil {
		return 0x00, fmt.Errorf("could not select register %#04x: %w", reg, err)
	}
	if err := b.transport.ReadFromAddr(ctx, b.addr, b.buf); err != nil {
		return 0x00, fmt.Errorf("could not read register %#04x: %w", reg, err)
	}
	return b.buf[0], nil
}

func (b *Board) writeCommand(ctx context.Context, cmd byte) error {
	if err := b.transport.WriteToAddr(ctx, b.addr, []byte{cmd}); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	return b.sleep(ctx, b.timing.WriteDelay)
}

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

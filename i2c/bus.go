package i2c

import (
	"context"
	"fmt"
	"log/slog"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	qwiic "github.com/ktheindifferent/qwiic-relay"
)

var _ qwiic.I2CBus = &GenericBus{}

// GenericBus exposes a kernel-managed I2C bus (i2c-dev) as the transport the
// relay drivers consume. Bus arbitration is the kernel's job, so Release is a
// no-op.
type GenericBus struct {
	bus i2c.BusCloser
}

// NewGenericBus opens the named bus; an empty name selects the first one the
// host reports.
func NewGenericBus(dev string) (*GenericBus, error) {
	state, err := host.Init()
	if err != nil {
		return nil, fmt.Errorf("could not init host: %w", err)
	}
	for _, driver := range state.Loaded {
		slog.Debug("host driver loaded", "driver", driver.String())
	}
	bus, err := i2creg.Open(dev)
	if err != nil {
		return nil, fmt.Errorf("could not open i2c bus: %w", err)
	}
	return &GenericBus{
		bus: bus,
	}, nil
}

func (b *GenericBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	err := b.bus.Tx(uint16(address), nil, buffer)
	if err != nil {
		return fmt.Errorf("could not read from i2c bus %x: %w", address, err)
	}
	return nil
}

func (b *GenericBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	err := b.bus.Tx(uint16(address), buffer, nil)
	if err != nil {
		return fmt.Errorf("could not write to i2c bus %x: %w", address, err)
	}
	return nil
}

func (b *GenericBus) Release(ctx context.Context) error {
	return nil
}

// SetSpeed switches the bus clock, e.g. 100*physic.KiloHertz for boards on
// long cable runs.
func (b *GenericBus) SetSpeed(freq physic.Frequency) error {
	err := b.bus.SetSpeed(freq)
	if err != nil {
		return fmt.Errorf("could not set i2c bus speed: %w", err)
	}
	return nil
}

func (b *GenericBus) Close() error {
	return b.bus.Close()
}

package qwiic

import (
	"context"
	"fmt"
)

// ErrBusBusy is returned by transport adapters when the I2C engine has not
// completed the previous command. Callers may Release the bus and retry.
var ErrBusBusy = fmt.Errorf("I2C engine is busy (command not completed)")

type BusReader interface {
	Read(ctx context.Context, buffer []byte) error
}

type BusWriter interface {
	Write(ctx context.Context, buffer []byte) error
}

type AddressableReader interface {
	ReadFromAddr(ctx context.Context, address byte, buffer []byte) error
}

type AddressableWriter interface {
	WriteToAddr(ctx context.Context, address byte, buffer []byte) error
	Release(ctx context.Context) error
}

// I2CBus is the transport capability consumed by relay drivers. A bus handle
// is exclusively owned by a single board handle; sharing one between
// goroutines requires external locking.
type I2CBus interface {
	AddressableReader
	AddressableWriter
}

type I2CDevice interface {
	BusReader
	BusWriter
}

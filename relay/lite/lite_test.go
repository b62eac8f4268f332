package lite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	qwiic "github.com/ktheindifferent/qwiic-relay"
	"github.com/ktheindifferent/qwiic-relay/relay"
)

// MockI2CBus is a mock implementation of qwiic.I2CBus using testify/mock.
type MockI2CBus struct {
	mock.Mock
}

func (m *MockI2CBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	args := m.Called(ctx, address, buffer)
	return args.Error(0)
}

func (m *MockI2CBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	args := m.Called(ctx, address, buffer)
	if args.Get(0) != nil {
		if data, ok := args.Get(0).([]byte); ok && len(data) <= len(buffer) {
			copy(buffer, data)
		}
	}
	return args.Error(1)
}

func (m *MockI2CBus) Release(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func fastBoard(bus qwiic.I2CBus, addr byte, opts ...BoardOpt) *Board {
	opts = append(opts, WithTiming(relay.Timing{}))
	return NewBoard(bus, addr, opts...)
}

func TestLite_SetUnit(t *testing.T) {
	tests := []struct {
		name     string
		desired  relay.Status
		expected []byte
	}{
		{name: "on", desired: relay.On, expected: []byte{0x01}},
		{name: "off", desired: relay.Off, expected: []byte{0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := new(MockI2CBus)
			bus.On("WriteToAddr", mock.Anything, byte(relay.SingleRelayDefault), tt.expected).
				Return(nil).Once()

			board := fastBoard(bus, relay.SingleRelayDefault, WithRelayCount(1))
			assert.NoError(t, board.Set(context.Background(), relay.Unit, tt.desired))

			bus.AssertExpectations(t)
			bus.AssertNotCalled(t, "ReadFromAddr", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestLite_SetNumbered(t *testing.T) {
	t.Run("mismatch toggles", func(t *testing.T) {
		bus := new(MockI2CBus)
		bus.On("WriteToAddr", mock.Anything, byte(relay.QuadRelayDefault), []byte{0x06}).
			Return(nil).Once()
		bus.On("ReadFromAddr", mock.Anything, byte(relay.QuadRelayDefault), mock.Anything).
			Return([]byte{0x00}, nil).Once()
		bus.On("WriteToAddr", mock.Anything, byte(relay.QuadRelayDefault), []byte{0x02}).
			Return(nil).Once()

		board := fastBoard(bus, relay.QuadRelayDefault)
		assert.NoError(t, board.Set(context.Background(), relay.Num(2), relay.On))
		bus.AssertExpectations(t)
	})

	t.Run("already correct skips the write", func(t *testing.T) {
		bus := new(MockI2CBus)
		bus.On("WriteToAddr", mock.Anything, byte(relay.QuadRelayDefault), []byte{0x06}).
			Return(nil).Once()
		bus.On("ReadFromAddr", mock.Anything, byte(relay.QuadRelayDefault), mock.Anything).
			Return([]byte{0x01}, nil).Once()

		board := fastBoard(bus, relay.QuadRelayDefault)
		assert.NoError(t, board.Set(context.Background(), relay.Num(2), relay.On))
		bus.AssertExpectations(t)
	})
}

func TestLite_ToggleNumberedSkipsRead(t *testing.T) {
	bus := new(MockI2CBus)
	bus.On("WriteToAddr", mock.Anything, byte(relay.QuadRelayDefault), []byte{0x03}).
		Return(nil).Once()

	board := fastBoard(bus, relay.QuadRelayDefault)
	assert.NoError(t, board.Toggle(context.Background(), relay.Num(3)))

	bus.AssertExpectations(t)
	bus.AssertNotCalled(t, "ReadFromAddr", mock.Anything, mock.Anything, mock.Anything)
}

func TestLite_ToggleUnitReadsThenInverts(t *testing.T) {
	bus := new(MockI2CBus)
	bus.On("WriteToAddr", mock.Anything, byte(relay.SingleRelayDefault), []byte{0x05}).
		Return(nil).Once()
	bus.On("ReadFromAddr", mock.Anything, byte(relay.SingleRelayDefault), mock.Anything).
		Return([]byte{0x01}, nil).Once()
	bus.On("WriteToAddr", mock.Anything, byte(relay.SingleRelayDefault), []byte{0x00}).
		Return(nil).Once()

	board := fastBoard(bus, relay.SingleRelayDefault, WithRelayCount(1))
	assert.NoError(t, board.Toggle(context.Background(), relay.Unit))
	bus.AssertExpectations(t)
}

func TestLite_WholeBoardCommands(t *testing.T) {
	tests := []struct {
		name     string
		run      func(context.Context, *Board) error
		expected []byte
	}{
		{
			name:     "all on",
			run:      func(ctx context.Context, b *Board) error { return b.SetAll(ctx, relay.On) },
			expected: []byte{0x0B},
		},
		{
			name:     "all off",
			run:      func(ctx context.Context, b *Board) error { return b.SetAll(ctx, relay.Off) },
			expected: []byte{0x0A},
		},
		{
			name:     "toggle all",
			run:      func(ctx context.Context, b *Board) error { return b.ToggleAll(ctx) },
			expected: []byte{0x0C},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := new(MockI2CBus)
			bus.On("WriteToAddr", mock.Anything, byte(relay.QuadRelayDefault), tt.expected).
				Return(nil).Once()

			board := fastBoard(bus, relay.QuadRelayDefault)
			assert.NoError(t, tt.run(context.Background(), board))
			bus.AssertExpectations(t)
		})
	}
}

func TestLite_GetFirmwareVersion(t *testing.T) {
	bus := new(MockI2CBus)
	bus.On("WriteToAddr", mock.Anything, byte(relay.QuadRelayDefault), []byte{0x04}).
		Return(nil).Once()
	bus.On("ReadFromAddr", mock.Anything, byte(relay.QuadRelayDefault), mock.Anything).
		Return([]byte{0x03}, nil).Once()

	board := fastBoard(bus, relay.QuadRelayDefault)
	version, err := board.GetFirmwareVersion(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, byte(0x03), version)
	bus.AssertExpectations(t)
}

func TestLite_RelayNumberValidation(t *testing.T) {
	bus := new(MockI2CBus)
	board := fastBoard(bus, relay.QuadRelayDefault, WithRelayCount(2))
	ctx := context.Background()

	err := board.Set(ctx, relay.Num(3), relay.On)
	var nerr *relay.NumberError
	assert.True(t, errors.As(err, &nerr))
	assert.Equal(t, uint8(3), nerr.Num)
	assert.Equal(t, uint8(2), nerr.Max)

	bus.AssertNotCalled(t, "WriteToAddr", mock.Anything, mock.Anything, mock.Anything)
	bus.AssertNotCalled(t, "ReadFromAddr", mock.Anything, mock.Anything, mock.Anything)
}

func TestLite_NoBusyRecovery(t *testing.T) {
	// The reduced driver propagates a busy engine instead of releasing and
	// retrying; that machinery belongs to relay.Board.
	bus := new(MockI2CBus)
	bus.On("WriteToAddr", mock.Anything, byte(relay.QuadRelayDefault), []byte{0x0B}).
		Return(qwiic.ErrBusBusy).Once()

	board := fastBoard(bus, relay.QuadRelayDefault)
	err := board.SetAll(context.Background(), relay.On)

	assert.ErrorIs(t, err, qwiic.ErrBusBusy)
	bus.AssertExpectations(t)
	bus.AssertNotCalled(t, "Release", mock.Anything)
}

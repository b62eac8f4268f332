package relay

import "context"

// MockController is a Controller backed by per-operation behavior functions,
// for testing relay consumers without hardware. Unset behaviors succeed with
// zero values, so a test only wires the operations it cares about.
//
// Example usage:
//
//	// Static state
//	ctrl := &MockController{
//		GetStateFunc: func(ctx context.Context, r Relay) (Status, error) {
//			return On, nil
//		},
//	}
//
//	// Error simulation
//	ctrl = &MockController{
//		SetFunc: func(ctx context.Context, r Relay, desired Status) error {
//			return fmt.Errorf("bus gone")
//		},
//	}
type MockController struct {
	SetFunc                func(ctx context.Context, r Relay, desired Status) error
	GetStateFunc           func(ctx context.Context, r Relay) (Status, error)
	ToggleFunc             func(ctx context.Context, r Relay) error
	SetAllFunc             func(ctx context.Context, desired Status) error
	ToggleAllFunc          func(ctx context.Context) error
	GetFirmwareVersionFunc func(ctx context.Context) (byte, error)
}

var _ Controller = &MockController{}

func (m *MockController) Set(ctx context.Context, r Relay, desired Status) error {
	if m.SetFunc == nil {
		return nil
	}
	return m.SetFunc(ctx, r, desired)
}

func (m *MockController) GetState(ctx context.Context, r Relay) (Status, error) {
	if m.GetStateFunc == nil {
		return Off, nil
	}
	return m.GetStateFunc(ctx, r)
}

func (m *MockController) Toggle(ctx context.Context, r Relay) error {
	if m.ToggleFunc == nil {
		return nil
	}
	return m.ToggleFunc(ctx, r)
}

func (m *MockController) SetAll(ctx context.Context, desired Status) error {
	if m.SetAllFunc == nil {
		return nil
	}
	return m.SetAllFunc(ctx, desired)
}

func (m *MockController) ToggleAll(ctx context.Context) error {
	if m.ToggleAllFunc == nil {
		return nil
	}
	return m.ToggleAllFunc(ctx)
}

func (m *MockController) GetFirmwareVersion(ctx context.Context) (byte, error) {
	if m.GetFirmwareVersionFunc == nil {
		return 0, nil
	}
	return m.GetFirmwareVersionFunc(ctx)
}

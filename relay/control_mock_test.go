package relay

import (
	"context"
	"errors"
	"testing"
)

func TestMockControllerDefaults(t *testing.T) {
	var c MockController
	ctx := context.Background()

	if err := c.Set(ctx, Num(1), On); err != nil {
		t.Errorf("default Set should succeed, got %v", err)
	}
	state, err := c.GetState(ctx, Num(1))
	if err != nil || state != Off {
		t.Errorf("default GetState should report OFF, got %s, %v", state, err)
	}
	if err := c.Toggle(ctx, Num(1)); err != nil {
		t.Errorf("default Toggle should succeed, got %v", err)
	}
	if err := c.SetAll(ctx, On); err != nil {
		t.Errorf("default SetAll should succeed, got %v", err)
	}
	if err := c.ToggleAll(ctx); err != nil {
		t.Errorf("default ToggleAll should succeed, got %v", err)
	}
	version, err := c.GetFirmwareVersion(ctx)
	if err != nil || version != 0 {
		t.Errorf("default GetFirmwareVersion should report 0, got %#02x, %v", version, err)
	}
}

func TestMockControllerDelegation(t *testing.T) {
	ctx := context.Background()
	failure := errors.New("contacts welded")
	var sets []Relay

	c := MockController{
		SetFunc: func(_ context.Context, r Relay, desired Status) error {
			sets = append(sets, r)
			if desired == Off {
				return failure
			}
			return nil
		},
		GetStateFunc: func(context.Context, Relay) (Status, error) {
			return On, nil
		},
		GetFirmwareVersionFunc: func(context.Context) (byte, error) {
			return 0x19, nil
		},
	}

	if err := c.Set(ctx, Num(3), On); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if err := c.Set(ctx, Num(1), Off); !errors.Is(err, failure) {
		t.Errorf("expected the injected failure, got %v", err)
	}
	if len(sets) != 2 || sets[0] != Num(3) || sets[1] != Num(1) {
		t.Errorf("unexpected recorded calls %v", sets)
	}

	state, err := c.GetState(ctx, Unit)
	if err != nil || state != On {
		t.Errorf("expected injected ON, got %s, %v", state, err)
	}
	version, err := c.GetFirmwareVersion(ctx)
	if err != nil || version != 0x19 {
		t.Errorf("expected injected version, got %#02x, %v", version, err)
	}
}

package relay

import "context"

// Controller is the relay-control capability shared by the full engine
// (Board) and the lite variant. Implementations differ in how hard they try
// to confirm state, not in the protocol they speak.
type Controller interface {
	Set(ctx context.Context, r Relay, desired Status) error
	GetState(ctx context.Context, r Relay) (Status, error)
	Toggle(ctx context.Context, r Relay) error
	SetAll(ctx context.Context, desired Status) error
	ToggleAll(ctx context.Context) error
	GetFirmwareVersion(ctx context.Context) (byte, error)
}

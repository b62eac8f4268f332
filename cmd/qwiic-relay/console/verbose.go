package console

import (
	"context"

	"github.com/ktheindifferent/qwiic-relay/rlyctx"
)

// SetVerbose marks ctx for wire-level tracing; the adapters dump raw frames
// when they see it.
func SetVerbose(parent context.Context, value bool) context.Context {
	return rlyctx.SetVerbose(parent, value)
}

func IsVerbose(ctx context.Context) bool {
	return rlyctx.IsVerbose(ctx)
}

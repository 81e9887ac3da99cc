package bus

import (
	"context"

	"github.com/troovstudio/troov-backend/internal/realtime"
)

// Bus fans realtime messages out to every API instance. Each instance runs
// one forwarder that feeds its local hub.
type Bus interface {
	Publish(ctx context.Context, msg realtime.SSEMessage) error
	StartForwarder(ctx context.Context, onMsg func(m realtime.SSEMessage)) error
	Close() error
}

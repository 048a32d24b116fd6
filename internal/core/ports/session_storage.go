package ports

import "context"

// SessionStorage is the durable slot backing the session store: a single
// key holding one JSON-encoded identity. Load returns (nil, nil) when the
// slot is empty; Clear on an empty slot is a no-op.
type SessionStorage interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, value []byte) error
	Clear(ctx context.Context) error

	// Ping reports whether the backing store is reachable, for readiness
	// probes. Always nil for local drivers.
	Ping(ctx context.Context) error
}

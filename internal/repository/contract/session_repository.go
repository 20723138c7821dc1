package contract

import (
	"context"

	"ai-docdraft-be/pkg/store"
)

// SessionRepository is the key-value abstraction the conversation engine reads
// and writes session state through. Backings are pluggable: in-memory for
// tests and single-node deployments, Redis for shared production state. A
// session absent from the store (never created, or evicted after the idle
// window) is reported via found=false, never as an error.
type SessionRepository interface {
	Get(ctx context.Context, sessionID string) (*store.Session, bool, error)
	Save(ctx context.Context, session *store.Session) error
	Delete(ctx context.Context, sessionID string) error
}

package session

import (
	"context"
	"errors"
	"time"

	"github.com/yuanzicheng/dev-tools/internal/view"
)

// DefaultTimeout is the default length of time to wait
// for a store operation to complete.
const DefaultTimeout = time.Second * 3

// Store errors
var (
	ErrNotFound = errors.New("view state not found")
	ErrStale    = errors.New("view state changed since it was loaded")
)

// StateDB stores the state of each utility page per session. Entries
// expire after the configured lifetime.
type StateDB interface {
	// GetView returns the saved view, or ErrNotFound.
	GetView(ctx context.Context, sessionID, tool string) (*view.Snapshot, error)
	// SaveView stores s if the stored revision still equals s.Revision
	// and returns the new revision. Otherwise it returns ErrStale.
	SaveView(ctx context.Context, sessionID, tool string, s view.Snapshot) (uint64, error)
	// DeleteSession drops every view of a session.
	DeleteSession(ctx context.Context, sessionID string) error
	Close() error
}

package models

import (
	"errors"
	"fmt"
	"strings"
)

// Domain error taxonomy. Callers distinguish these with errors.Is/As:
// a version conflict is recoverable by re-fetching, a locked rejection
// only by a privileged unlock, a validation error by fixing the
// submission.
var (
	ErrLayoutNotFound         = errors.New("layout not found")
	ErrConveyorSystemNotFound = errors.New("conveyor system not found")
	ErrAssetNotFound          = errors.New("asset not found")
	ErrLayoutLocked           = errors.New("layout is locked")
)

// VersionConflictError signals that a graph write presented a stale
// expected version. CurrentVersion carries the version the store holds
// so the client can re-fetch and reconcile.
type VersionConflictError struct {
	CurrentVersion int
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("layout has been modified by another user (current version %d)", e.CurrentVersion)
}

// ValidationError rejects a graph submission before anything is
// persisted. Details lists every violation found.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "invalid graph submission: " + strings.Join(e.Details, "; ")
}

package inventory

import (
	"fmt"

	"github.com/vbonduro/labinv/internal/domain"
)

// ValidationError is returned when a draft is rejected before reaching the
// backend.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == domain.ErrInvalid
}

// BackendError wraps a failure reported by the backend. Its message is the
// backend's message unchanged.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return e.Err.Error()
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// ReferentialIntegrityError is returned when deleting a location that items
// still point at. ItemCount is zero when only the backend knew about them, in
// which case Err holds the backend's refusal.
type ReferentialIntegrityError struct {
	LocationID int64
	ItemCount  int
	Err        error
}

func (e *ReferentialIntegrityError) Error() string {
	if e.ItemCount == 0 {
		if e.Err != nil {
			return e.Err.Error()
		}
		return fmt.Sprintf("location %d is still used by items", e.LocationID)
	}
	return fmt.Sprintf("location %d is still used by %d item(s)", e.LocationID, e.ItemCount)
}

func (e *ReferentialIntegrityError) Is(target error) bool {
	return target == domain.ErrLocationInUse
}

func (e *ReferentialIntegrityError) Unwrap() error {
	return e.Err
}

// SyncError reports a failed reload of the mirror. When Op names a mutation,
// the backend accepted the change but the mirror no longer reflects it.
type SyncError struct {
	Op  string
	Err error
}

func (e *SyncError) Error() string {
	if e.Op == opLoad {
		return fmt.Sprintf("failed to load inventory: %v", e.Err)
	}
	return fmt.Sprintf("%s succeeded but reload failed, inventory is stale: %v", e.Op, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

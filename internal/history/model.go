package history

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("cancellation record not found")

// CancellationRecord is an append-only audit entry written exactly once per
// booking cancellation. Records are never updated or deleted.
type CancellationRecord struct {
	ID        string
	UserID    string
	BookingID string
	CreatedAt time.Time
}

// Filter defines parameters for listing cancellation records.
type Filter struct {
	UserID   string
	Page     int
	PageSize int
}

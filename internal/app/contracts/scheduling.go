package contracts

import (
	"context"
	"time"
)

// SchedulingGuard admits or rejects a booking time for a doctor and lists
// the free slot grid for a day.
type SchedulingGuard interface {
	IsAvailable(ctx context.Context, doctorID int64, requestedStart time.Time) (bool, error)
	AvailableSlots(ctx context.Context, doctorID int64, date time.Time) ([]string, error)
}

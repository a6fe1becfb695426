package scheduling

import (
	"tabib-service/internal/pkg/constvars"
	"time"
)

// A consultation starting at T blocks every requested start inside
// [T-14min, T+15min). The asymmetry keeps a slot that begins exactly
// 15 minutes after an existing booking open.
const (
	ConflictWindowBefore = 14 * time.Minute
	ConflictWindowAfter  = 15 * time.Minute

	WorkingDayStartHour = 9
	WorkingDayEndHour   = 17
	SlotInterval        = 30 * time.Minute
)

// InConflictWindow reports whether requestedStart falls inside the blocking
// window of a consultation starting at existingStart. The window is anchored
// on the existing start; anchoring [start-14min, start+15min) on the
// requested start instead yields the same answer for whole-minute starts.
func InConflictWindow(existingStart, requestedStart time.Time) bool {
	windowStart := existingStart.Add(-ConflictWindowBefore)
	windowEnd := existingStart.Add(ConflictWindowAfter)
	return !requestedStart.Before(windowStart) && requestedStart.Before(windowEnd)
}

// DailySlots returns every slot start of the working day containing date,
// from 09:00 up to but not including 17:00, on the half hour.
func DailySlots(date time.Time) []time.Time {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), WorkingDayStartHour, 0, 0, 0, date.Location())
	dayEnd := time.Date(date.Year(), date.Month(), date.Day(), WorkingDayEndHour, 0, 0, 0, date.Location())

	var slots []time.Time
	for slot := dayStart; slot.Before(dayEnd); slot = slot.Add(SlotInterval) {
		slots = append(slots, slot)
	}
	return slots
}

// FormatSlot renders a slot start as the wall-clock time of day.
func FormatSlot(slot time.Time) string {
	return slot.Format(constvars.SlotTimeOfDayFormat)
}

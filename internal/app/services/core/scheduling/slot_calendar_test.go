package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInConflictWindow(t *testing.T) {
	existing := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("Same Start Conflicts", func(t *testing.T) {
		assert.True(t, InConflictWindow(existing, existing))
	})

	t.Run("Window Lower Bound Is Inclusive", func(t *testing.T) {
		assert.True(t, InConflictWindow(existing, existing.Add(-14*time.Minute)),
			"start 14 minutes before an existing consultation should conflict")
		assert.False(t, InConflictWindow(existing, existing.Add(-15*time.Minute)),
			"start 15 minutes before an existing consultation should be free")
	})

	t.Run("Window Upper Bound Is Exclusive", func(t *testing.T) {
		assert.True(t, InConflictWindow(existing, existing.Add(14*time.Minute)),
			"start 14 minutes after an existing consultation should conflict")
		assert.False(t, InConflictWindow(existing, existing.Add(15*time.Minute)),
			"start exactly 15 minutes after an existing consultation should be free")
	})

	t.Run("Far Apart Starts Do Not Conflict", func(t *testing.T) {
		assert.False(t, InConflictWindow(existing, existing.Add(30*time.Minute)))
		assert.False(t, InConflictWindow(existing, existing.Add(-2*time.Hour)))
	})
}

func TestDailySlots(t *testing.T) {
	date := time.Date(2026, 3, 10, 13, 45, 0, 0, time.UTC)
	slots := DailySlots(date)

	assert.Len(t, slots, 16, "a 09:00-17:00 day on the half hour has 16 slots")
	assert.Equal(t, "09:00", FormatSlot(slots[0]))
	assert.Equal(t, "09:30", FormatSlot(slots[1]))
	assert.Equal(t, "16:30", FormatSlot(slots[len(slots)-1]))

	for _, slot := range slots {
		assert.Equal(t, date.Day(), slot.Day(), "every slot stays on the requested day")
	}
}

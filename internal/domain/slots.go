package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// ResolveOpenSlots computes the bookable windows for a provider on one
// calendar date. It is pure: every call works only on the rows passed in,
// nothing is cached or mutated.
//
// A window is open when it recurs on the date's weekday, is toggled on, is
// not fully covered by a block on that exact date, and its start is not
// already taken by a live appointment. Blocks remove a window only by full
// containment; a block overlapping part of a window leaves it bookable.
//
// exclude names an appointment whose reservation is ignored, so a reschedule
// does not collide with the slot it currently holds.
func ResolveOpenSlots(date time.Time, windows []AvailabilityWindow, blocks []ScheduleBlock, appts []Appointment, exclude uuid.UUID) []AvailabilityWindow {
	day := int(DateOnly(date).Weekday())

	open := make([]AvailabilityWindow, 0, len(windows))
	for _, w := range windows {
		if w.DayOfWeek != day || !w.IsAvailable {
			continue
		}
		if windowBlocked(w, date, blocks) {
			continue
		}
		if slotTaken(w, date, appts, exclude) {
			continue
		}
		open = append(open, w)
	}

	sort.Slice(open, func(i, j int) bool {
		return open[i].StartTime < open[j].StartTime
	})

	return open
}

func windowBlocked(w AvailabilityWindow, date time.Time, blocks []ScheduleBlock) bool {
	for _, b := range blocks {
		if !SameDate(b.BlockDate, date) {
			continue
		}
		if b.StartTime <= w.StartTime && b.EndTime >= w.EndTime {
			return true
		}
	}
	return false
}

func slotTaken(w AvailabilityWindow, date time.Time, appts []Appointment, exclude uuid.UUID) bool {
	for _, a := range appts {
		if !a.Status.IsLive() {
			continue
		}
		if exclude != uuid.Nil && a.ID == exclude {
			continue
		}
		if SameDate(a.Date, date) && a.StartTime == w.StartTime {
			return true
		}
	}
	return false
}

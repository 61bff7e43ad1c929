package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

var (
	monday  = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	tuesday = time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)
)

func window(id string, day int, start, end TimeOfDay) AvailabilityWindow {
	return AvailabilityWindow{
		ID:          uuid.MustParse(id),
		ProviderID:  "p1",
		DayOfWeek:   day,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: true,
	}
}

func TestResolveOpenSlots_FiltersByWeekdayAndToggle(t *testing.T) {
	mondayMorning := window("00000000-0000-0000-0000-000000000001", 1, NewTimeOfDay(8, 0), NewTimeOfDay(9, 0))
	tuesdayMorning := window("00000000-0000-0000-0000-000000000002", 2, NewTimeOfDay(8, 0), NewTimeOfDay(9, 0))
	disabled := window("00000000-0000-0000-0000-000000000003", 1, NewTimeOfDay(10, 0), NewTimeOfDay(11, 0))
	disabled.IsAvailable = false

	open := ResolveOpenSlots(monday, []AvailabilityWindow{mondayMorning, tuesdayMorning, disabled}, nil, nil, uuid.Nil)
	if len(open) != 1 {
		t.Fatalf("len(open) = %d, want 1", len(open))
	}
	if open[0].ID != mondayMorning.ID {
		t.Fatalf("open[0].ID = %s, want %s", open[0].ID, mondayMorning.ID)
	}
}

func TestResolveOpenSlots_NoAvailabilityConfigured(t *testing.T) {
	open := ResolveOpenSlots(monday, nil, nil, nil, uuid.Nil)
	if len(open) != 0 {
		t.Fatalf("len(open) = %d, want 0", len(open))
	}
}

func TestResolveOpenSlots_SortedByStartTime(t *testing.T) {
	late := window("00000000-0000-0000-0000-000000000001", 1, NewTimeOfDay(15, 0), NewTimeOfDay(16, 0))
	early := window("00000000-0000-0000-0000-000000000002", 1, NewTimeOfDay(8, 0), NewTimeOfDay(9, 0))
	mid := window("00000000-0000-0000-0000-000000000003", 1, NewTimeOfDay(11, 0), NewTimeOfDay(12, 0))

	open := ResolveOpenSlots(monday, []AvailabilityWindow{late, early, mid}, nil, nil, uuid.Nil)
	if len(open) != 3 {
		t.Fatalf("len(open) = %d, want 3", len(open))
	}
	for i := 1; i < len(open); i++ {
		if open[i-1].StartTime >= open[i].StartTime {
			t.Fatalf("slots not sorted: %v before %v", open[i-1].StartTime, open[i].StartTime)
		}
	}
}

func TestResolveOpenSlots_BlockContainment(t *testing.T) {
	w := window("00000000-0000-0000-0000-000000000001", 1, NewTimeOfDay(9, 0), NewTimeOfDay(10, 0))

	t.Run("exact cover removes window", func(t *testing.T) {
		blocks := []ScheduleBlock{{
			ProviderID: "p1",
			BlockDate:  monday,
			StartTime:  NewTimeOfDay(9, 0),
			EndTime:    NewTimeOfDay(10, 0),
		}}
		open := ResolveOpenSlots(monday, []AvailabilityWindow{w}, blocks, nil, uuid.Nil)
		if len(open) != 0 {
			t.Fatalf("len(open) = %d, want 0", len(open))
		}
	})

	t.Run("wider cover removes window", func(t *testing.T) {
		blocks := []ScheduleBlock{{
			ProviderID: "p1",
			BlockDate:  monday,
			StartTime:  NewTimeOfDay(8, 0),
			EndTime:    NewTimeOfDay(12, 0),
		}}
		open := ResolveOpenSlots(monday, []AvailabilityWindow{w}, blocks, nil, uuid.Nil)
		if len(open) != 0 {
			t.Fatalf("len(open) = %d, want 0", len(open))
		}
	})

	t.Run("partial overlap keeps window", func(t *testing.T) {
		blocks := []ScheduleBlock{{
			ProviderID: "p1",
			BlockDate:  monday,
			StartTime:  NewTimeOfDay(9, 30),
			EndTime:    NewTimeOfDay(11, 0),
		}}
		open := ResolveOpenSlots(monday, []AvailabilityWindow{w}, blocks, nil, uuid.Nil)
		if len(open) != 1 {
			t.Fatalf("len(open) = %d, want 1", len(open))
		}
	})

	t.Run("block on another date keeps window", func(t *testing.T) {
		blocks := []ScheduleBlock{{
			ProviderID: "p1",
			BlockDate:  tuesday,
			StartTime:  NewTimeOfDay(9, 0),
			EndTime:    NewTimeOfDay(10, 0),
		}}
		open := ResolveOpenSlots(monday, []AvailabilityWindow{w}, blocks, nil, uuid.Nil)
		if len(open) != 1 {
			t.Fatalf("len(open) = %d, want 1", len(open))
		}
	})
}

func TestResolveOpenSlots_TakenSlots(t *testing.T) {
	w := window("00000000-0000-0000-0000-000000000001", 1, NewTimeOfDay(8, 0), NewTimeOfDay(9, 0))
	apptID := uuid.MustParse("00000000-0000-0000-0000-000000000101")

	appt := func(status AppointmentStatus) Appointment {
		return Appointment{
			ID:         apptID,
			ProviderID: "p1",
			PatientID:  "pt1",
			Date:       monday,
			StartTime:  NewTimeOfDay(8, 0),
			EndTime:    NewTimeOfDay(9, 0),
			Status:     status,
		}
	}

	t.Run("pending payment occupies slot", func(t *testing.T) {
		open := ResolveOpenSlots(monday, []AvailabilityWindow{w}, nil, []Appointment{appt(AppointmentPendingPayment)}, uuid.Nil)
		if len(open) != 0 {
			t.Fatalf("len(open) = %d, want 0", len(open))
		}
	})

	t.Run("confirmed occupies slot", func(t *testing.T) {
		open := ResolveOpenSlots(monday, []AvailabilityWindow{w}, nil, []Appointment{appt(AppointmentConfirmed)}, uuid.Nil)
		if len(open) != 0 {
			t.Fatalf("len(open) = %d, want 0", len(open))
		}
	})

	t.Run("cancelled frees slot", func(t *testing.T) {
		open := ResolveOpenSlots(monday, []AvailabilityWindow{w}, nil, []Appointment{appt(AppointmentCancelled)}, uuid.Nil)
		if len(open) != 1 {
			t.Fatalf("len(open) = %d, want 1", len(open))
		}
	})

	t.Run("completed frees slot", func(t *testing.T) {
		open := ResolveOpenSlots(monday, []AvailabilityWindow{w}, nil, []Appointment{appt(AppointmentCompleted)}, uuid.Nil)
		if len(open) != 1 {
			t.Fatalf("len(open) = %d, want 1", len(open))
		}
	})

	t.Run("excluded appointment does not occupy its own slot", func(t *testing.T) {
		open := ResolveOpenSlots(monday, []AvailabilityWindow{w}, nil, []Appointment{appt(AppointmentConfirmed)}, apptID)
		if len(open) != 1 {
			t.Fatalf("len(open) = %d, want 1", len(open))
		}
	})

	t.Run("appointment on another date keeps slot", func(t *testing.T) {
		a := appt(AppointmentConfirmed)
		a.Date = tuesday
		open := ResolveOpenSlots(monday, []AvailabilityWindow{w}, nil, []Appointment{a}, uuid.Nil)
		if len(open) != 1 {
			t.Fatalf("len(open) = %d, want 1", len(open))
		}
	})

	t.Run("different start time keeps slot", func(t *testing.T) {
		a := appt(AppointmentConfirmed)
		a.StartTime = NewTimeOfDay(9, 0)
		a.EndTime = NewTimeOfDay(10, 0)
		open := ResolveOpenSlots(monday, []AvailabilityWindow{w}, nil, []Appointment{a}, uuid.Nil)
		if len(open) != 1 {
			t.Fatalf("len(open) = %d, want 1", len(open))
		}
	})
}

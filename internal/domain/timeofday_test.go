package domain

import (
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "08:00", want: NewTimeOfDay(8, 0)},
		{in: "23:59", want: NewTimeOfDay(23, 59)},
		{in: "00:00", want: 0},
		{in: "09:30:00", want: NewTimeOfDay(9, 30)},
		{in: " 10:15 ", want: NewTimeOfDay(10, 15)},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseTimeOfDay(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseTimeOfDay(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseTimeOfDay(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestTimeOfDayString(t *testing.T) {
	if s := NewTimeOfDay(8, 5).String(); s != "08:05" {
		t.Fatalf("String() = %q, want %q", s, "08:05")
	}
	if s := TimeOfDay(0).String(); s != "00:00" {
		t.Fatalf("String() = %q, want %q", s, "00:00")
	}
}

func TestTimeOfDayScan(t *testing.T) {
	var tod TimeOfDay

	if err := tod.Scan("14:30:00"); err != nil {
		t.Fatalf("Scan(string) error: %v", err)
	}
	if tod != NewTimeOfDay(14, 30) {
		t.Fatalf("Scan(string) = %v, want %v", tod, NewTimeOfDay(14, 30))
	}

	if err := tod.Scan([]byte("09:15")); err != nil {
		t.Fatalf("Scan([]byte) error: %v", err)
	}
	if tod != NewTimeOfDay(9, 15) {
		t.Fatalf("Scan([]byte) = %v, want %v", tod, NewTimeOfDay(9, 15))
	}

	if err := tod.Scan(time.Date(2000, 1, 1, 16, 45, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Scan(time.Time) error: %v", err)
	}
	if tod != NewTimeOfDay(16, 45) {
		t.Fatalf("Scan(time.Time) = %v, want %v", tod, NewTimeOfDay(16, 45))
	}

	if err := tod.Scan(42); err == nil {
		t.Fatalf("Scan(int) expected error")
	}
}

func TestTimeOfDayValue(t *testing.T) {
	v, err := NewTimeOfDay(8, 0).Value()
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}
	if v != "08:00:00" {
		t.Fatalf("Value() = %v, want %q", v, "08:00:00")
	}

	if _, err := TimeOfDay(MinutesPerDay).Value(); err == nil {
		t.Fatalf("Value() out of range expected error")
	}
}

func TestDateOnly(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatalf("LoadLocation error: %v", err)
	}

	in := time.Date(2026, 1, 5, 23, 30, 0, 0, loc)
	got := DateOnly(in)
	want := time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("DateOnly = %v, want %v", got, want)
	}

	if !SameDate(got, want.Add(5*time.Hour)) {
		t.Fatalf("SameDate expected true")
	}
	if SameDate(got, want.AddDate(0, 0, 1)) {
		t.Fatalf("SameDate expected false across days")
	}
}

func TestParseAppointmentStatus(t *testing.T) {
	for _, s := range []string{"pending_payment", "confirmed", "completed", "cancelled"} {
		status, err := ParseAppointmentStatus(s)
		if err != nil {
			t.Fatalf("ParseAppointmentStatus(%q) error: %v", s, err)
		}
		if string(status) != s {
			t.Fatalf("status = %q, want %q", status, s)
		}
	}
	if _, err := ParseAppointmentStatus("booked"); err == nil {
		t.Fatalf("expected error for unknown status")
	}

	if !AppointmentPendingPayment.IsLive() || !AppointmentConfirmed.IsLive() {
		t.Fatalf("live statuses misclassified")
	}
	if AppointmentCompleted.IsLive() || AppointmentCancelled.IsLive() {
		t.Fatalf("terminal statuses classified as live")
	}
	if !AppointmentCompleted.IsTerminal() || !AppointmentCancelled.IsTerminal() {
		t.Fatalf("terminal statuses misclassified")
	}
}

func TestParsePaymentStatus(t *testing.T) {
	for _, s := range []string{"pending", "processing", "paid"} {
		status, err := ParsePaymentStatus(s)
		if err != nil {
			t.Fatalf("ParsePaymentStatus(%q) error: %v", s, err)
		}
		if string(status) != s {
			t.Fatalf("status = %q, want %q", status, s)
		}
	}
	if _, err := ParsePaymentStatus("refunded"); err == nil {
		t.Fatalf("expected error for unknown payment status")
	}
}

package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"mindwell/backend/internal/store"
)

func TestTranslateAppointmentError(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{
			name: "live slot unique violation",
			in:   &pgconn.PgError{Code: "23505", ConstraintName: liveSlotConstraint},
			want: store.ErrConflict,
		},
		{
			name: "wrapped live slot violation",
			in:   fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505", ConstraintName: liveSlotConstraint}),
			want: store.ErrConflict,
		},
		{
			name: "unique violation on another constraint",
			in:   &pgconn.PgError{Code: "23505", ConstraintName: "appointments_pkey"},
		},
		{
			name: "check violation",
			in:   &pgconn.PgError{Code: "23514", ConstraintName: liveSlotConstraint},
		},
		{
			name: "plain error",
			in:   errors.New("connection reset"),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := translateAppointmentError(tc.in)
			if tc.want != nil {
				if !errors.Is(got, tc.want) {
					t.Fatalf("translateAppointmentError = %v, want %v", got, tc.want)
				}
				return
			}
			if !errors.Is(got, tc.in) {
				t.Fatalf("translateAppointmentError = %v, want original %v", got, tc.in)
			}
			if errors.Is(got, store.ErrConflict) {
				t.Fatalf("unexpected conflict mapping for %v", tc.in)
			}
		})
	}
}

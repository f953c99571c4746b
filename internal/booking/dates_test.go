package booking

import (
	"errors"
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestValidateRange(t *testing.T) {
	if err := ValidateRange(day(1), day(5)); err != nil {
		t.Fatalf("ValidateRange(1,5) = %v, want nil", err)
	}
	if err := ValidateRange(day(5), day(5)); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("ValidateRange(5,5) = %v, want ErrInvalidRange", err)
	}
	if err := ValidateRange(day(5), day(1)); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("ValidateRange(5,1) = %v, want ErrInvalidRange", err)
	}
}

func TestFindConflict(t *testing.T) {
	existing := []DateRange{
		{ReservationID: 1, CheckIn: day(1), CheckOut: day(5)},
		{ReservationID: 2, CheckIn: day(10), CheckOut: day(15)},
	}

	tests := []struct {
		name     string
		checkIn  int
		checkOut int
		exclude  uint64
		wantID   uint64
		wantHit  bool
	}{
		{name: "back-to-back at checkout boundary is free", checkIn: 5, checkOut: 8},
		{name: "back-to-back at checkin boundary is free", checkIn: 8, checkOut: 10},
		{name: "gap between stays is free", checkIn: 6, checkOut: 9},
		{name: "partial overlap at the tail conflicts", checkIn: 4, checkOut: 8, wantID: 1, wantHit: true},
		{name: "partial overlap at the head conflicts", checkIn: 8, checkOut: 11, wantID: 2, wantHit: true},
		{name: "enclosing range conflicts", checkIn: 9, checkOut: 16, wantID: 2, wantHit: true},
		{name: "contained range conflicts", checkIn: 2, checkOut: 3, wantID: 1, wantHit: true},
		{name: "identical range conflicts", checkIn: 1, checkOut: 5, wantID: 1, wantHit: true},
		{name: "excluded reservation does not collide with itself", checkIn: 1, checkOut: 5, exclude: 1},
		{name: "exclusion still catches other reservations", checkIn: 4, checkOut: 12, exclude: 1, wantID: 2, wantHit: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, hit := FindConflict(existing, day(tt.checkIn), day(tt.checkOut), tt.exclude)
			if hit != tt.wantHit || id != tt.wantID {
				t.Errorf("FindConflict() = (%d, %v), want (%d, %v)", id, hit, tt.wantID, tt.wantHit)
			}
		})
	}
}

package booking

import (
	"errors"
	"time"
)

// ErrInvalidRange is returned when check_out is not strictly after check_in.
var ErrInvalidRange = errors.New("check_out must be after check_in")

// DateRange is the stay interval of an existing reservation, used when
// checking a candidate range against a department's bookings.
type DateRange struct {
	ReservationID uint64
	CheckIn       time.Time
	CheckOut      time.Time
}

// ValidateRange rejects empty or inverted stay intervals.
func ValidateRange(checkIn, checkOut time.Time) error {
	if !checkOut.After(checkIn) {
		return ErrInvalidRange
	}
	return nil
}

// FindConflict reports the first existing reservation whose stay overlaps the
// candidate [checkIn, checkOut) interval. Ranges are half-open: a stay that
// checks out exactly when another checks in does not conflict. excludeID
// skips the reservation being updated so it never collides with itself; pass
// 0 on creation.
func FindConflict(ranges []DateRange, checkIn, checkOut time.Time, excludeID uint64) (uint64, bool) {
	for _, r := range ranges {
		if excludeID != 0 && r.ReservationID == excludeID {
			continue
		}
		if r.CheckOut.After(checkIn) && r.CheckIn.Before(checkOut) {
			return r.ReservationID, true
		}
	}
	return 0, false
}

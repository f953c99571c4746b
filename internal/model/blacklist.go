package model

import "time"

// BlacklistEntry flags a guest that should not be accepted again.
// Record-only: the core never consults the blacklist automatically, staff
// check it by hand when taking a booking.
type BlacklistEntry struct {
	ID         uint64    `json:"id"`          // blacklist.id
	GuestName  string    `json:"guest_name"`  // blacklist.guest_name
	GuestPhone *string   `json:"guest_phone"` // blacklist.guest_phone (nullable)
	Reason     string    `json:"reason"`      // blacklist.reason
	DateAdded  time.Time `json:"date_added"`  // blacklist.date_added
}

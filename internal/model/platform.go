package model

// BookingPlatform is an external channel a reservation originated from
// (Airbnb, Booking, and so on). Names are unique. Reservations reference a
// platform through origin_platform_id; direct bookings carry a null
// reference instead of a zero id.
//
// Fields:
//  ID   – primary key identifier.
//  Name – unique platform name.
//  URL  – optional link to the platform listing.
//  Icon – optional URL or path of the platform icon.
type BookingPlatform struct {
	ID   uint64  `json:"id"`   // booking_platforms.id
	Name string  `json:"name"` // booking_platforms.name
	URL  *string `json:"url"`  // booking_platforms.url (nullable)
	Icon *string `json:"icon"` // booking_platforms.icon (nullable)
}

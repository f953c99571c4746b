package model

import (
	"time"

	"github.com/iliyamo/rental-backoffice/internal/booking"
)

// Reservation records a guest's stay in a department over a half-open
// [check_in, check_out) date interval, together with the normalized
// financial ledger for the stay. For a fixed department no two reservations
// may have overlapping intervals; amount_due and payment_status are always
// kept consistent with total_revenue_ars and down_payment_ars by the
// booking.Normalizer before anything is persisted.
//
// Fields:
//  ID                        – primary key identifier.
//  GuestName                 – name of the booking guest.
//  GuestPhone                – optional contact phone.
//  CheckIn                   – arrival date (DATE column, UTC midnight).
//  CheckOut                  – departure date, strictly after CheckIn.
//  PeopleCount               – number of guests staying.
//  Beds                      – number of beds required.
//  OriginPlatformID          – optional booking platform reference; nil for
//                              direct bookings.
//  AmountUSD                 – optional charged amount in USD.
//  AmountARS                 – charged amount in ARS, never null once stored.
//  TotalRevenueARS           – resolved total revenue in ARS.
//  DownPaymentARS            – advance payment (seña); zero when none.
//  AmountDue                 – outstanding balance.
//  PaymentStatus             – pending, deposit or complete.
//  IsBlockedOnOtherPlatforms – whether the dates were blocked on the other
//                              listing channels.
//  DepartmentID              – owning department, required.
type Reservation struct {
	ID                        uint64                `json:"id"`                            // reservations.id
	GuestName                 string                `json:"guest_name"`                    // reservations.guest_name
	GuestPhone                *string               `json:"guest_phone"`                   // reservations.guest_phone (nullable)
	CheckIn                   time.Time             `json:"check_in"`                      // reservations.check_in
	CheckOut                  time.Time             `json:"check_out"`                     // reservations.check_out
	PeopleCount               int                   `json:"people_count"`                  // reservations.people_count
	Beds                      int                   `json:"beds"`                          // reservations.beds
	OriginPlatformID          *uint64               `json:"origin_platform_id"`            // reservations.origin_platform_id (nullable)
	AmountUSD                 *float64              `json:"amount_usd"`                    // reservations.amount_usd (nullable)
	AmountARS                 float64               `json:"amount_ars"`                    // reservations.amount_ars
	TotalRevenueARS           float64               `json:"total_revenue_ars"`             // reservations.total_revenue_ars
	DownPaymentARS            float64               `json:"down_payment_ars"`              // reservations.down_payment_ars
	AmountDue                 float64               `json:"amount_due"`                    // reservations.amount_due
	PaymentStatus             booking.PaymentStatus `json:"payment_status"`                // reservations.payment_status
	IsBlockedOnOtherPlatforms bool                  `json:"is_blocked_on_other_platforms"` // reservations.is_blocked_on_other_platforms
	DepartmentID              uint64                `json:"department_id"`                 // reservations.department_id
	CreatedAt                 time.Time             `json:"created_at"`                    // reservations.created_at
	UpdatedAt                 time.Time             `json:"updated_at"`                    // reservations.updated_at
}

// Ledger extracts the financial fields in the form the normalizer works on.
func (r *Reservation) Ledger() booking.Ledger {
	return booking.Ledger{
		AmountUSD:       r.AmountUSD,
		AmountARS:       r.AmountARS,
		TotalRevenueARS: r.TotalRevenueARS,
		DownPaymentARS:  r.DownPaymentARS,
		AmountDue:       r.AmountDue,
		Status:          r.PaymentStatus,
	}
}

// SetLedger writes a resolved ledger back onto the reservation.
func (r *Reservation) SetLedger(led booking.Ledger) {
	r.AmountUSD = led.AmountUSD
	r.AmountARS = led.AmountARS
	r.TotalRevenueARS = led.TotalRevenueARS
	r.DownPaymentARS = led.DownPaymentARS
	r.AmountDue = led.AmountDue
	r.PaymentStatus = led.Status
}

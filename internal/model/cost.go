package model

import "time"

// ReservationCost is one operational expense booked against a reservation
// (cleaning, laundry, welcome basket). Costs can be created, updated and
// deleted independently but always reference an existing reservation; the
// optional department override attributes the expense to a unit other than
// the reservation's own.
//
// Fields:
//  ID            – primary key identifier.
//  Category      – expense category label.
//  Description   – optional free-form detail.
//  Amount        – expense amount in ARS.
//  Date          – day the expense was incurred.
//  ReservationID – owning reservation, required.
//  DepartmentID  – optional department override.
type ReservationCost struct {
	ID            uint64    `json:"id"`            // reservation_costs.id
	Category      string    `json:"category"`      // reservation_costs.category
	Description   *string   `json:"description"`   // reservation_costs.description (nullable)
	Amount        float64   `json:"amount"`        // reservation_costs.amount
	Date          time.Time `json:"date"`          // reservation_costs.incurred_on
	ReservationID uint64    `json:"reservation_id"` // reservation_costs.reservation_id
	DepartmentID  *uint64   `json:"department_id"` // reservation_costs.department_id (nullable)
}

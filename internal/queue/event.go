// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/rental-backoffice/internal/model"
)

// ReservationCreatedEvent is published when a reservation is successfully
// created. It carries enough information for downstream consumers to log or
// notify without querying the primary database.
type ReservationCreatedEvent struct {
	EventID         string   `json:"event_id"`
	ReservationID   uint64   `json:"reservation_id"`
	GuestName       string   `json:"guest_name"`
	DepartmentID    uint64   `json:"department_id"`
	CheckIn         string   `json:"check_in"`
	CheckOut        string   `json:"check_out"`
	PeopleCount     int      `json:"people_count"`
	AmountARS       float64  `json:"amount_ars"`
	TotalRevenueARS float64  `json:"total_revenue_ars"`
	AmountDue       float64  `json:"amount_due"`
	PaymentStatus   string   `json:"payment_status"`
	OriginPlatform  *uint64  `json:"origin_platform_id,omitempty"`
	CreatedAt       string   `json:"created_at"`
}

// NewReservationCreatedEvent builds the event for a stored reservation.
// Each event gets a fresh UUID so consumers can deduplicate redeliveries.
func NewReservationCreatedEvent(r *model.Reservation) ReservationCreatedEvent {
	return ReservationCreatedEvent{
		EventID:         uuid.NewString(),
		ReservationID:   r.ID,
		GuestName:       r.GuestName,
		DepartmentID:    r.DepartmentID,
		CheckIn:         r.CheckIn.Format("2006-01-02"),
		CheckOut:        r.CheckOut.Format("2006-01-02"),
		PeopleCount:     r.PeopleCount,
		AmountARS:       r.AmountARS,
		TotalRevenueARS: r.TotalRevenueARS,
		AmountDue:       r.AmountDue,
		PaymentStatus:   string(r.PaymentStatus),
		OriginPlatform:  r.OriginPlatformID,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	}
}

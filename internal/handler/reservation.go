package handler

// Reservation lifecycle endpoints. Every write runs in a single transaction
// that locks the target department row first and the department's existing
// stay intervals second, so two concurrent writes against the same unit are
// serialized and can never both pass the overlap check. Financial fields are
// resolved through booking.Normalizer before anything is persisted.

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/rental-backoffice/internal/booking"
	"github.com/iliyamo/rental-backoffice/internal/model"
	"github.com/iliyamo/rental-backoffice/internal/queue"
	"github.com/iliyamo/rental-backoffice/internal/repository"
	queue_publisher "github.com/iliyamo/rental-backoffice/internal/service"
)

// ReservationHandler groups the repositories the reservation lifecycle
// touches. The ReservationRepo's DB handle is used to start transactions.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Departments  *repository.DepartmentRepo
	Platforms    *repository.PlatformRepo
	Normalizer   booking.Normalizer
	PublishEvent bool
}

// NewReservationHandler constructs a ReservationHandler. All repositories
// must be non-nil.
func NewReservationHandler(res *repository.ReservationRepo, dep *repository.DepartmentRepo, plat *repository.PlatformRepo, norm booking.Normalizer, publish bool) *ReservationHandler {
	if res == nil || dep == nil || plat == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{Reservations: res, Departments: dep, Platforms: plat, Normalizer: norm, PublishEvent: publish}
}

type reservationCreateReq struct {
	GuestName                 string   `json:"guest_name"`
	GuestPhone                *string  `json:"guest_phone"`
	CheckIn                   string   `json:"check_in"`
	CheckOut                  string   `json:"check_out"`
	PeopleCount               int      `json:"people_count"`
	Beds                      int      `json:"beds"`
	OriginPlatformID          *uint64  `json:"origin_platform_id"`
	AmountUSD                 *float64 `json:"amount_usd"`
	AmountARS                 *float64 `json:"amount_ars"`
	TotalRevenueARS           *float64 `json:"total_revenue_ars"`
	DownPaymentARS            *float64 `json:"down_payment_ars"`
	PaymentStatus             string   `json:"payment_status"`
	IsBlockedOnOtherPlatforms bool     `json:"is_blocked_on_other_platforms"`
	DepartmentID              uint64   `json:"department_id"`
}

type reservationUpdateReq struct {
	GuestName                 booking.OptString `json:"guest_name"`
	GuestPhone                booking.OptString `json:"guest_phone"`
	CheckIn                   booking.OptString `json:"check_in"`
	CheckOut                  booking.OptString `json:"check_out"`
	PeopleCount               booking.OptUint   `json:"people_count"`
	Beds                      booking.OptUint   `json:"beds"`
	OriginPlatformID          booking.OptUint   `json:"origin_platform_id"`
	AmountUSD                 booking.OptFloat  `json:"amount_usd"`
	AmountARS                 booking.OptFloat  `json:"amount_ars"`
	TotalRevenueARS           booking.OptFloat  `json:"total_revenue_ars"`
	DownPaymentARS            booking.OptFloat  `json:"down_payment_ars"`
	PaymentStatus             booking.OptString `json:"payment_status"`
	IsBlockedOnOtherPlatforms booking.OptBool   `json:"is_blocked_on_other_platforms"`
	DepartmentID              booking.OptUint   `json:"department_id"`
}

// financeStatus validates an optional payment_status value from a payload.
func financeStatus(raw string) (booking.PaymentStatus, error) {
	if raw == "" {
		return "", nil
	}
	st := booking.PaymentStatus(raw)
	if !booking.ValidStatus(st) {
		return "", fmt.Errorf("unknown payment_status %q", raw)
	}
	return st, nil
}

// Create handles POST /v1/reservations.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req reservationCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.GuestName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "guest_name required"})
	}
	if req.DepartmentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "department_id required"})
	}
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in: " + err.Error()})
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out: " + err.Error()})
	}
	if err := booking.ValidateRange(checkIn, checkOut); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	status, err := financeStatus(req.PaymentStatus)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	led, err := h.Normalizer.Normalize(booking.FinanceInput{
		AmountUSD:       req.AmountUSD,
		AmountARS:       req.AmountARS,
		TotalRevenueARS: req.TotalRevenueARS,
		DownPaymentARS:  req.DownPaymentARS,
		Status:          status,
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the department first; every writer for this unit queues here.
	if err := h.Departments.ExistsForUpdateTx(ctx, tx, req.DepartmentID); err != nil {
		if errors.Is(err, repository.ErrUnknownDepartment) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown department"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "department lookup failed"})
	}
	if req.OriginPlatformID != nil {
		if *req.OriginPlatformID == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid origin_platform_id"})
		}
		if err := h.Platforms.ExistsTx(ctx, tx, *req.OriginPlatformID); err != nil {
			if errors.Is(err, repository.ErrUnknownPlatform) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown origin platform"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "platform lookup failed"})
		}
	}

	ranges, err := h.Reservations.RangesForUpdateTx(ctx, tx, req.DepartmentID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load existing stays"})
	}
	if conflictID, clash := booking.FindConflict(ranges, checkIn, checkOut, 0); clash {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":       "dates overlap an existing reservation",
			"conflict_id": conflictID,
		})
	}

	res := &model.Reservation{
		GuestName:                 req.GuestName,
		GuestPhone:                req.GuestPhone,
		CheckIn:                   checkIn,
		CheckOut:                  checkOut,
		PeopleCount:               req.PeopleCount,
		Beds:                      req.Beds,
		OriginPlatformID:          req.OriginPlatformID,
		IsBlockedOnOtherPlatforms: req.IsBlockedOnOtherPlatforms,
		DepartmentID:              req.DepartmentID,
	}
	res.SetLedger(led)
	if err := h.Reservations.CreateTx(ctx, tx, res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	if h.PublishEvent {
		ev := queue.NewReservationCreatedEvent(res)
		go func() {
			// Fire and forget; a broker outage must not fail the booking.
			pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer pubCancel()
			if err := queue_publisher.PublishReservationCreated(pubCtx, ev); err != nil {
				log.Printf("reservation %d: publish event failed: %v", res.ID, err)
			}
		}()
	}

	return c.JSON(http.StatusCreated, res)
}

// List handles GET /v1/reservations. The optional ?department_id= query
// restricts the listing to one unit.
func (h *ReservationHandler) List(c echo.Context) error {
	var departmentID uint64
	if raw := c.QueryParam("department_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid department_id"})
		}
		departmentID = id
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	items, err := h.Reservations.List(ctx, departmentID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// Get handles GET /v1/reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reservation"})
	}
	return c.JSON(http.StatusOK, res)
}

// Update handles PATCH /v1/reservations/:id. Omitted fields keep their
// stored value; explicit nulls clear or re-derive per the ledger rules.
func (h *ReservationHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req reservationUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	var status booking.PaymentStatus
	if req.PaymentStatus.Set && req.PaymentStatus.Valid {
		status, err = financeStatus(req.PaymentStatus.Value)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := h.Reservations.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reservation"})
	}

	// Plain field merges.
	if req.GuestName.Set && req.GuestName.Valid && req.GuestName.Value != "" {
		res.GuestName = req.GuestName.Value
	}
	if req.GuestPhone.Set {
		if req.GuestPhone.Valid {
			p := req.GuestPhone.Value
			res.GuestPhone = &p
		} else {
			res.GuestPhone = nil
		}
	}
	if req.PeopleCount.Set && req.PeopleCount.Valid {
		res.PeopleCount = int(req.PeopleCount.Value)
	}
	if req.Beds.Set && req.Beds.Valid {
		res.Beds = int(req.Beds.Value)
	}
	if req.IsBlockedOnOtherPlatforms.Set && req.IsBlockedOnOtherPlatforms.Valid {
		res.IsBlockedOnOtherPlatforms = req.IsBlockedOnOtherPlatforms.Value
	}

	// Origin platform: null clears it, zero is rejected, anything else must
	// reference an existing platform.
	if req.OriginPlatformID.Set {
		switch {
		case !req.OriginPlatformID.Valid:
			res.OriginPlatformID = nil
		case req.OriginPlatformID.Value == 0:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid origin_platform_id"})
		default:
			if err := h.Platforms.ExistsTx(ctx, tx, req.OriginPlatformID.Value); err != nil {
				if errors.Is(err, repository.ErrUnknownPlatform) {
					return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown origin platform"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "platform lookup failed"})
			}
			pid := req.OriginPlatformID.Value
			res.OriginPlatformID = &pid
		}
	}

	// Dates and department. A change to any of the three re-runs the overlap
	// check against the (possibly new) department under its row lock.
	checkIn, checkOut := res.CheckIn, res.CheckOut
	if req.CheckIn.Set && req.CheckIn.Valid {
		if checkIn, err = parseDate(req.CheckIn.Value); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in: " + err.Error()})
		}
	}
	if req.CheckOut.Set && req.CheckOut.Valid {
		if checkOut, err = parseDate(req.CheckOut.Value); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out: " + err.Error()})
		}
	}
	departmentID := res.DepartmentID
	if req.DepartmentID.Set {
		if !req.DepartmentID.Valid || req.DepartmentID.Value == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid department_id"})
		}
		departmentID = req.DepartmentID.Value
	}
	rangeChanged := !checkIn.Equal(res.CheckIn) || !checkOut.Equal(res.CheckOut) || departmentID != res.DepartmentID
	if rangeChanged {
		if err := booking.ValidateRange(checkIn, checkOut); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := h.Departments.ExistsForUpdateTx(ctx, tx, departmentID); err != nil {
			if errors.Is(err, repository.ErrUnknownDepartment) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown department"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "department lookup failed"})
		}
		ranges, err := h.Reservations.RangesForUpdateTx(ctx, tx, departmentID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load existing stays"})
		}
		if conflictID, clash := booking.FindConflict(ranges, checkIn, checkOut, res.ID); clash {
			return c.JSON(http.StatusConflict, echo.Map{
				"error":       "dates overlap an existing reservation",
				"conflict_id": conflictID,
			})
		}
		res.CheckIn, res.CheckOut, res.DepartmentID = checkIn, checkOut, departmentID
	}

	led, err := h.Normalizer.ApplyPatch(res.Ledger(), booking.FinancePatch{
		AmountUSD:       req.AmountUSD,
		AmountARS:       req.AmountARS,
		TotalRevenueARS: req.TotalRevenueARS,
		DownPaymentARS:  req.DownPaymentARS,
		Status:          status,
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	res.SetLedger(led)

	if err := h.Reservations.UpdateTx(ctx, tx, res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update reservation"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusOK, res)
}

// Delete handles DELETE /v1/reservations/:id. The reservation's cost rows
// are removed in the same transaction.
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := h.Reservations.DeleteTx(ctx, tx, id); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete reservation"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.NoContent(http.StatusNoContent)
}

// NetProfit handles GET /v1/reservations/:id/net-profit. Income minus the
// sum of the reservation's tracked costs.
func (h *ReservationHandler) NetProfit(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reservation"})
	}
	totalCost, err := h.Reservations.SumCosts(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to sum costs"})
	}
	report := booking.NetProfit(res.ID, res.TotalRevenueARS, res.AmountARS, totalCost)
	return c.JSON(http.StatusOK, report)
}

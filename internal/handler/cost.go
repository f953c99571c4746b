package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/rental-backoffice/internal/model"
	"github.com/iliyamo/rental-backoffice/internal/repository"
)

// CostHandler serves the per-reservation expense endpoints. Writes validate
// the referenced reservation (and optional department) inside the same
// transaction as the insert or update.
type CostHandler struct {
	Costs        *repository.CostRepo
	Reservations *repository.ReservationRepo
	Departments  *repository.DepartmentRepo
}

func NewCostHandler(costs *repository.CostRepo, res *repository.ReservationRepo, dep *repository.DepartmentRepo) *CostHandler {
	if costs == nil || res == nil || dep == nil {
		panic("nil repository passed to NewCostHandler")
	}
	return &CostHandler{Costs: costs, Reservations: res, Departments: dep}
}

type costReq struct {
	Category      string   `json:"category"`
	Description   *string  `json:"description"`
	Amount        *float64 `json:"amount"`
	Date          string   `json:"date"`
	ReservationID uint64   `json:"reservation_id"`
	DepartmentID  *uint64  `json:"department_id"`
}

func (h *CostHandler) bindAndValidate(c echo.Context) (*model.ReservationCost, int, string) {
	var req costReq
	if err := c.Bind(&req); err != nil {
		return nil, http.StatusBadRequest, "invalid body"
	}
	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		return nil, http.StatusBadRequest, "category required"
	}
	if req.Amount == nil || *req.Amount < 0 {
		return nil, http.StatusBadRequest, "amount must be a non-negative number"
	}
	if req.ReservationID == 0 {
		return nil, http.StatusBadRequest, "reservation_id required"
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, http.StatusBadRequest, "date: " + err.Error()
	}
	return &model.ReservationCost{
		Category:      req.Category,
		Description:   req.Description,
		Amount:        *req.Amount,
		Date:          date,
		ReservationID: req.ReservationID,
		DepartmentID:  req.DepartmentID,
	}, 0, ""
}

var errInvalidDepartmentRef = errors.New("invalid department_id")

// checkRefsTx validates the cost's reservation and optional department
// references inside the transaction. The returned error is one of the
// repository sentinels or errInvalidDepartmentRef; respondRefErr maps it.
func (h *CostHandler) checkRefsTx(ctx context.Context, tx *txLike, cost *model.ReservationCost) error {
	if err := h.Reservations.ExistsTx(ctx, tx.tx, cost.ReservationID); err != nil {
		return err
	}
	if cost.DepartmentID != nil {
		if *cost.DepartmentID == 0 {
			return errInvalidDepartmentRef
		}
		if err := h.Departments.ExistsForUpdateTx(ctx, tx.tx, *cost.DepartmentID); err != nil {
			return err
		}
	}
	return nil
}

func respondRefErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrReservationNotFound):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown reservation"})
	case errors.Is(err, errInvalidDepartmentRef):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid department_id"})
	case errors.Is(err, repository.ErrUnknownDepartment):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown department"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reference lookup failed"})
}

// Create handles POST /v1/reservation-costs.
func (h *CostHandler) Create(c echo.Context) error {
	cost, code, msg := h.bindAndValidate(c)
	if cost == nil {
		return c.JSON(code, echo.Map{"error": msg})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	tx, err := newTx(ctx, h.Costs.DB())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	defer tx.rollbackUnlessCommitted()
	if err := h.checkRefsTx(ctx, tx, cost); err != nil {
		return respondRefErr(c, err)
	}
	if err := h.Costs.CreateTx(ctx, tx.tx, cost); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create cost"})
	}
	if err := tx.commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	return c.JSON(http.StatusCreated, cost)
}

// List handles GET /v1/reservation-costs with an optional ?reservation_id=
// filter, and GET /v1/reservations/:id/costs via ListForReservation.
func (h *CostHandler) List(c echo.Context) error {
	var reservationID uint64
	if raw := c.QueryParam("reservation_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation_id"})
		}
		reservationID = id
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	items, err := h.Costs.List(ctx, reservationID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load costs"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// ListForReservation handles GET /v1/reservations/:id/costs.
func (h *CostHandler) ListForReservation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	if _, err := h.Reservations.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reservation"})
	}
	items, err := h.Costs.List(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load costs"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// Get handles GET /v1/reservation-costs/:id.
func (h *CostHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	cost, err := h.Costs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCostNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cost not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch cost"})
	}
	return c.JSON(http.StatusOK, cost)
}

// Update handles PUT /v1/reservation-costs/:id.
func (h *CostHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	cost, code, msg := h.bindAndValidate(c)
	if cost == nil {
		return c.JSON(code, echo.Map{"error": msg})
	}
	cost.ID = id
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	tx, err := newTx(ctx, h.Costs.DB())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	defer tx.rollbackUnlessCommitted()
	if err := h.checkRefsTx(ctx, tx, cost); err != nil {
		return respondRefErr(c, err)
	}
	if err := h.Costs.UpdateTx(ctx, tx.tx, cost); err != nil {
		if errors.Is(err, repository.ErrCostNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cost not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update cost"})
	}
	if err := tx.commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	return c.JSON(http.StatusOK, cost)
}

// Delete handles DELETE /v1/reservation-costs/:id.
func (h *CostHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	if err := h.Costs.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCostNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cost not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete cost"})
	}
	return c.NoContent(http.StatusNoContent)
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/rental-backoffice/internal/model"
	"github.com/iliyamo/rental-backoffice/internal/repository"
)

// DepartmentHandler serves the rental-unit endpoints, including the per-unit
// inventory listing.
type DepartmentHandler struct {
	Departments *repository.DepartmentRepo
	Inventory   *repository.InventoryRepo
}

func NewDepartmentHandler(dep *repository.DepartmentRepo, inv *repository.InventoryRepo) *DepartmentHandler {
	if dep == nil || inv == nil {
		panic("nil repository passed to NewDepartmentHandler")
	}
	return &DepartmentHandler{Departments: dep, Inventory: inv}
}

type departmentReq struct {
	Name      string `json:"name"`
	Direction string `json:"direction"`
}

type inventoryReq struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Create handles POST /v1/departments.
func (h *DepartmentHandler) Create(c echo.Context) error {
	var req departmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	d := &model.Department{Name: req.Name, Direction: strings.TrimSpace(req.Direction)}
	if err := h.Departments.Create(ctx, d); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create department"})
	}
	return c.JSON(http.StatusCreated, d)
}

// List handles GET /v1/departments.
func (h *DepartmentHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	items, err := h.Departments.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load departments"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// Get handles GET /v1/departments/:id.
func (h *DepartmentHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	d, err := h.Departments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDepartmentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "department not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch department"})
	}
	return c.JSON(http.StatusOK, d)
}

// Update handles PUT /v1/departments/:id.
func (h *DepartmentHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req departmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	d := &model.Department{ID: id, Name: req.Name, Direction: strings.TrimSpace(req.Direction)}
	if err := h.Departments.Update(ctx, d); err != nil {
		if errors.Is(err, repository.ErrDepartmentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "department not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update department"})
	}
	return c.JSON(http.StatusOK, d)
}

// Delete handles DELETE /v1/departments/:id.
func (h *DepartmentHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	if err := h.Departments.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrDepartmentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "department not found"})
		}
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "department has reservations"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete department"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ---- inventory ----

// AddInventory handles POST /v1/departments/:id/inventory. The owning
// department is validated in the same transaction as the insert.
func (h *DepartmentHandler) AddInventory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req inventoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if req.Quantity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be non-negative"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	tx, err := h.Inventory.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := h.Departments.ExistsForUpdateTx(ctx, tx, id); err != nil {
		if errors.Is(err, repository.ErrUnknownDepartment) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "department not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "department lookup failed"})
	}
	it := &model.InventoryItem{Name: req.Name, Quantity: req.Quantity, DepartmentID: id}
	if err := h.Inventory.CreateTx(ctx, tx, it); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add inventory item"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusCreated, it)
}

// ListInventory handles GET /v1/departments/:id/inventory.
func (h *DepartmentHandler) ListInventory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	if _, err := h.Departments.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrDepartmentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "department not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch department"})
	}
	items, err := h.Inventory.ListByDepartment(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load inventory"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// UpdateInventory handles PUT /v1/inventory/:id.
func (h *DepartmentHandler) UpdateInventory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req inventoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if req.Quantity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be non-negative"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	it := &model.InventoryItem{ID: id, Name: req.Name, Quantity: req.Quantity}
	if err := h.Inventory.Update(ctx, it); err != nil {
		if errors.Is(err, repository.ErrInventoryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "inventory item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update inventory item"})
	}
	stored, err := h.Inventory.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch inventory item"})
	}
	return c.JSON(http.StatusOK, stored)
}

// DeleteInventory handles DELETE /v1/inventory/:id.
func (h *DepartmentHandler) DeleteInventory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	if err := h.Inventory.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrInventoryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "inventory item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete inventory item"})
	}
	return c.NoContent(http.StatusNoContent)
}

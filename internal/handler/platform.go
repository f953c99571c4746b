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

// PlatformHandler serves the booking-platform catalog endpoints.
type PlatformHandler struct {
	Platforms *repository.PlatformRepo
}

func NewPlatformHandler(p *repository.PlatformRepo) *PlatformHandler {
	if p == nil {
		panic("nil repository passed to NewPlatformHandler")
	}
	return &PlatformHandler{Platforms: p}
}

type platformReq struct {
	Name string  `json:"name"`
	URL  *string `json:"url"`
	Icon *string `json:"icon"`
}

// Create handles POST /v1/platforms. Platform names are unique.
func (h *PlatformHandler) Create(c echo.Context) error {
	var req platformReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	p := &model.BookingPlatform{Name: req.Name, URL: req.URL, Icon: req.Icon}
	if err := h.Platforms.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrPlatformExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "platform name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create platform"})
	}
	return c.JSON(http.StatusCreated, p)
}

// List handles GET /v1/platforms.
func (h *PlatformHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	items, err := h.Platforms.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load platforms"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// Get handles GET /v1/platforms/:id.
func (h *PlatformHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	p, err := h.Platforms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPlatformNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "platform not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch platform"})
	}
	return c.JSON(http.StatusOK, p)
}

// Update handles PUT /v1/platforms/:id.
func (h *PlatformHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req platformReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	p := &model.BookingPlatform{ID: id, Name: req.Name, URL: req.URL, Icon: req.Icon}
	if err := h.Platforms.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrPlatformNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "platform not found"})
		}
		if errors.Is(err, repository.ErrPlatformExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "platform name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update platform"})
	}
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /v1/platforms/:id. Reservations that referenced the
// platform keep running; the foreign key nulls out on delete.
func (h *PlatformHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	if err := h.Platforms.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPlatformNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "platform not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete platform"})
	}
	return c.NoContent(http.StatusNoContent)
}

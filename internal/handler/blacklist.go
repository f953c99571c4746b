package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/rental-backoffice/internal/model"
	"github.com/iliyamo/rental-backoffice/internal/repository"
)

// BlacklistHandler serves the banned-guest endpoints.
type BlacklistHandler struct {
	Blacklist *repository.BlacklistRepo
}

func NewBlacklistHandler(b *repository.BlacklistRepo) *BlacklistHandler {
	if b == nil {
		panic("nil repository passed to NewBlacklistHandler")
	}
	return &BlacklistHandler{Blacklist: b}
}

type blacklistReq struct {
	GuestName  string  `json:"guest_name"`
	GuestPhone *string `json:"guest_phone"`
	Reason     string  `json:"reason"`
}

// Create handles POST /v1/blacklist. The entry date defaults to today.
func (h *BlacklistHandler) Create(c echo.Context) error {
	var req blacklistReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.GuestName = strings.TrimSpace(req.GuestName)
	req.Reason = strings.TrimSpace(req.Reason)
	if req.GuestName == "" || req.Reason == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "guest_name and reason required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	now := time.Now().UTC()
	e := &model.BlacklistEntry{
		GuestName:  req.GuestName,
		GuestPhone: req.GuestPhone,
		Reason:     req.Reason,
		DateAdded:  time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}
	if err := h.Blacklist.Create(ctx, e); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create blacklist entry"})
	}
	return c.JSON(http.StatusCreated, e)
}

// List handles GET /v1/blacklist.
func (h *BlacklistHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	items, err := h.Blacklist.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load blacklist"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// Get handles GET /v1/blacklist/:id.
func (h *BlacklistHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	e, err := h.Blacklist.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBlacklistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "blacklist entry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch blacklist entry"})
	}
	return c.JSON(http.StatusOK, e)
}

// Delete handles DELETE /v1/blacklist/:id.
func (h *BlacklistHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	if err := h.Blacklist.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBlacklistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "blacklist entry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete blacklist entry"})
	}
	return c.NoContent(http.StatusNoContent)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cineseat/movie-hall-booking/internal/booking"
	"github.com/cineseat/movie-hall-booking/internal/seating"
)

// AllocationHandler exposes the seat engine: automatic allocation for a
// group and validation of a hand-picked selection. Neither endpoint
// changes seat state; booking happens in a separate commit step.
type AllocationHandler struct {
	Bookings *booking.Service
}

func NewAllocationHandler(svc *booking.Service) *AllocationHandler {
	if svc == nil {
		panic("nil booking service passed to NewAllocationHandler")
	}
	return &AllocationHandler{Bookings: svc}
}

type allocateReq struct {
	Constraints seating.GroupConstraints `json:"constraints"`
}

type validateReq struct {
	Constraints seating.GroupConstraints `json:"constraints"`
	SeatIDs     []string                 `json:"seat_ids"`
}

// Allocate handles POST /v1/movies/:id/allocate. On success it returns
// the chosen seat ids plus a human-readable summary; when the hall
// cannot satisfy the group it answers 422 with the engine's reason.
func (h *AllocationHandler) Allocate(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req allocateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	inv, err := h.Bookings.Inventory(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	alloc, err := seating.Allocate(inv, req.Constraints)
	if err != nil {
		switch {
		case errors.Is(err, seating.ErrInvalidConstraints):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, seating.ErrInsufficientSeats):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "allocation failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"seat_ids":  alloc.SeatIDs,
		"message":   alloc.Message,
		"locations": alloc.Locations,
	})
}

// Validate handles POST /v1/movies/:id/validate. It judges a manual
// selection against the same rules the allocator uses, so a selection
// that validates here will also commit unless someone books it first.
func (h *AllocationHandler) Validate(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req validateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	inv, err := h.Bookings.Inventory(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	if err := seating.ValidateSelection(inv, req.Constraints, req.SeatIDs); err != nil {
		switch {
		case errors.Is(err, seating.ErrInvalidConstraints):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, seating.ErrSelectionMismatch):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"valid": false, "error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "validation failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"valid": true})
}

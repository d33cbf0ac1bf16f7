package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cineseat/movie-hall-booking/internal/booking"
	"github.com/cineseat/movie-hall-booking/internal/repository"
	"github.com/cineseat/movie-hall-booking/internal/seating"
)

// BookingHandler commits validated selections, lists bookings and
// handles cancellation.
type BookingHandler struct {
	Bookings *booking.Service
	Movies   *repository.MovieRepo
}

func NewBookingHandler(svc *booking.Service, movies *repository.MovieRepo) *BookingHandler {
	if svc == nil || movies == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: svc, Movies: movies}
}

type commitReq struct {
	Constraints seating.GroupConstraints `json:"constraints"`
	SeatIDs     []string                 `json:"seat_ids"`
}

// Create handles POST /v1/movies/:id/bookings. The selection is
// re-validated against a fresh seat snapshot before the conditional
// update; a lost race answers 409 and the client should re-fetch the
// seat map.
func (h *BookingHandler) Create(c echo.Context) error {
	movieID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req commitReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx := c.Request().Context()
	movie, err := h.Movies.GetByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	rec, err := h.Bookings.Commit(ctx, movieID, movie.Title, userID, req.Constraints, req.SeatIDs)
	if err != nil {
		switch {
		case errors.Is(err, seating.ErrInvalidConstraints):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, seating.ErrSelectionMismatch):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
		case errors.Is(err, booking.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		case errors.Is(err, booking.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": rec})
}

// ListMine handles GET /v1/my-bookings.
func (h *BookingHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	recs, err := h.Bookings.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if recs == nil {
		recs = []booking.Record{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": recs, "count": len(recs)})
}

// ListAll handles GET /v1/bookings (admin).
func (h *BookingHandler) ListAll(c echo.Context) error {
	recs, err := h.Bookings.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if recs == nil {
		recs = []booking.Record{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": recs, "count": len(recs)})
}

// Cancel handles DELETE /v1/bookings/:id. Cancelling twice, or
// cancelling a booking that never existed, still answers 204.
func (h *BookingHandler) Cancel(c echo.Context) error {
	bookingID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	if err := h.Bookings.Cancel(c.Request().Context(), bookingID, userID, isAdmin(c)); err != nil {
		if errors.Is(err, booking.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your booking"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

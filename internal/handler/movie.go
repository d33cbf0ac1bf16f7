package handler

import (
	"errors"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cineseat/movie-hall-booking/internal/repository"
	"github.com/cineseat/movie-hall-booking/internal/seating"
)

// MovieHandler serves the public movie catalog, the public seat map,
// and the admin CRUD endpoints. Creating a movie also seeds its seat
// inventory from a hall layout, so every movie is bookable from the
// moment it appears in the catalog.
type MovieHandler struct {
	Movies *repository.MovieRepo
	Seats  *repository.SeatRepo
}

func NewMovieHandler(movies *repository.MovieRepo, seats *repository.SeatRepo) *MovieHandler {
	if movies == nil || seats == nil {
		panic("nil repository passed to NewMovieHandler")
	}
	return &MovieHandler{Movies: movies, Seats: seats}
}

type movieReq struct {
	Title       string                `json:"title"`
	Description *string               `json:"description,omitempty"`
	PosterURL   *string               `json:"poster_url,omitempty"`
	DurationMin *uint32               `json:"duration_min,omitempty"`
	Layout      *seating.LayoutConfig `json:"layout,omitempty"` // create only; default hall when absent
}

// List handles GET /v1/movies.
func (h *MovieHandler) List(c echo.Context) error {
	movies, err := h.Movies.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if movies == nil {
		movies = []repository.Movie{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": movies, "count": len(movies)})
}

// Get handles GET /v1/movies/:id.
func (h *MovieHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	m, err := h.Movies.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": m})
}

// SeatMap handles GET /v1/movies/:id/seats. It returns the ordered seat
// grid with status, category and age annotations for the presentation
// layer to render.
func (h *MovieHandler) SeatMap(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Movies.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	seats, err := h.Seats.GetByMovie(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	inv := seating.NewInventory(seats)
	available := 0
	for _, s := range inv.Seats() {
		if s.Status == seating.StatusAvailable {
			available++
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"movie_id":  id,
		"count":     inv.Size(),
		"available": available,
		"items":     inv.Seats(),
	})
}

// Create handles POST /v1/movies (admin). The seat inventory is
// generated from the supplied layout, or the default hall, and
// persisted with the movie.
func (h *MovieHandler) Create(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}

	layout := seating.DefaultLayout()
	if req.Layout != nil {
		layout = *req.Layout
	}
	seats, err := seating.Generate(layout, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	m := &repository.Movie{
		Title:       req.Title,
		Description: req.Description,
		PosterURL:   req.PosterURL,
		DurationMin: req.DurationMin,
	}
	if err := h.Movies.Create(ctx, m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create movie failed"})
	}
	if err := h.Seats.CreateBulk(ctx, m.ID, seats); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "seed seats failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": m, "seats": len(seats)})
}

// Update handles PUT /v1/movies/:id (admin). The hall layout is fixed
// at creation; only catalog fields change here.
func (h *MovieHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}

	m := &repository.Movie{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		PosterURL:   req.PosterURL,
		DurationMin: req.DurationMin,
	}
	if err := h.Movies.Update(c.Request().Context(), m); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update movie failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": m})
}

// Delete handles DELETE /v1/movies/:id (admin). The seat inventory goes
// with the movie in the same transaction; existing bookings keep their
// audit rows.
func (h *MovieHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	if err := h.Movies.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete movie failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

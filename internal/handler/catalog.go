package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
)

// CatalogHandler serves the public movie and screening listings.  These
// routes need no authentication and sit behind the response cache.
type CatalogHandler struct {
	catalog Catalog
}

func NewCatalogHandler(catalog Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type movieDTO struct {
	ID              uint64 `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	DurationMinutes int    `json:"duration_minutes"`
}

type screeningDTO struct {
	ID         uint64    `json:"id"`
	Movie      movieDTO  `json:"movie"`
	HallID     uint64    `json:"hall_id"`
	HallName   string    `json:"hall_name"`
	StartTime  time.Time `json:"start_time"`
	PriceCents int64     `json:"price_cents"`
	Price      string    `json:"price"`
}

func toMovieDTO(m model.Movie) movieDTO {
	return movieDTO{ID: m.ID, Title: m.Title, Description: m.Description, DurationMinutes: m.DurationMinutes}
}

func toScreeningDTO(d model.ScreeningDetail) screeningDTO {
	return screeningDTO{
		ID:         d.Screening.ID,
		Movie:      toMovieDTO(d.Movie),
		HallID:     d.Hall.ID,
		HallName:   d.Hall.Name,
		StartTime:  d.Screening.StartTime,
		PriceCents: d.Screening.PriceCents,
		Price:      model.FormatPrice(d.Screening.PriceCents),
	}
}

// ListMovies handles GET /v1/movies.
func (h *CatalogHandler) ListMovies(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	movies, err := h.catalog.Movies(ctx)
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]movieDTO, 0, len(movies))
	for _, m := range movies {
		out = append(out, toMovieDTO(m))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetMovie handles GET /v1/movies/:id.
func (h *CatalogHandler) GetMovie(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	m, err := h.catalog.Movie(ctx, id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, toMovieDTO(*m))
}

// ListScreenings handles GET /v1/screenings.  The optional movie_id query
// parameter narrows the list to one movie.  Only screenings that have
// not started are listed.
func (h *CatalogHandler) ListScreenings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	var (
		list []model.ScreeningDetail
		err  error
	)
	if raw := c.QueryParam("movie_id"); raw != "" {
		movieID, perr := strconv.ParseUint(raw, 10, 64)
		if perr != nil || movieID == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie_id"})
		}
		list, err = h.catalog.ScreeningsForMovie(ctx, movieID)
	} else {
		list, err = h.catalog.UpcomingScreenings(ctx)
	}
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]screeningDTO, 0, len(list))
	for _, d := range list {
		out = append(out, toScreeningDTO(d))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetScreening handles GET /v1/screenings/:id.
func (h *CatalogHandler) GetScreening(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	d, err := h.catalog.Screening(ctx, id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, toScreeningDTO(*d))
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/repository"
	"github.com/iliyamo/cinema-seat-booking/internal/service"
	"github.com/iliyamo/cinema-seat-booking/internal/utils"
)

// requestTimeout bounds the database work of a single request.
const requestTimeout = 5 * time.Second

// Catalog is the read side used by the browse, seat map, hold and
// booking handlers.
type Catalog interface {
	Movies(ctx context.Context) ([]model.Movie, error)
	Movie(ctx context.Context, id uint64) (*model.Movie, error)
	UpcomingScreenings(ctx context.Context) ([]model.ScreeningDetail, error)
	ScreeningsForMovie(ctx context.Context, movieID uint64) ([]model.ScreeningDetail, error)
	Screening(ctx context.Context, id uint64) (*model.ScreeningDetail, error)
}

// LayoutBuilder produces seat maps.
type LayoutBuilder interface {
	BuildLayout(ctx context.Context, screeningID uint64, hall model.Hall) (*model.Layout, error)
}

// parseID reads a positive numeric path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id != 0
}

type positionDTO struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

func toPositions(in []positionDTO) []model.Position {
	out := make([]model.Position, 0, len(in))
	for _, p := range in {
		out = append(out, model.Position{Row: p.Row, Seat: p.Seat})
	}
	return out
}

func fromPositions(in []model.Position) []positionDTO {
	out := make([]positionDTO, 0, len(in))
	for _, p := range in {
		out = append(out, positionDTO{Row: p.Row, Seat: p.Seat})
	}
	return out
}

// statusFor maps domain errors to HTTP status codes.  Anything unknown is
// an internal error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrScreeningNotFound),
		errors.Is(err, repository.ErrMovieNotFound),
		errors.Is(err, repository.ErrHallNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrBatchSize),
		errors.Is(err, service.ErrUsernameTooShort),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, utils.ErrPasswordTooLong),
		errors.Is(err, model.ErrInvalidPurchaser),
		errors.Is(err, model.ErrBadPosition):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorJSON writes err as {"error": msg}.  Internal errors are not echoed
// to the client; they are logged by the request logger instead.
func errorJSON(c echo.Context, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.Set("error", err.Error())
		return c.JSON(status, echo.Map{"error": "internal error"})
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}

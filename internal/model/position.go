package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iliyamo/cinema-seat-booking/internal/pkg/errs"
)

// Position addresses a seat in a hall grid.  Both coordinates are
// 1-based, the way customers read them off the seat map.
type Position struct {
	Row  int
	Seat int
}

// String renders the position the way booking failures are reported,
// e.g. "Row 1, Seat 2".
func (p Position) String() string {
	return fmt.Sprintf("Row %d, Seat %d", p.Row, p.Seat)
}

// ErrBadPosition is returned by ParsePosition for malformed input.
var ErrBadPosition = errs.New("position must look like ROW:SEAT with positive numbers")

// ParsePosition reads "3:7" (or "3,7" / "3-7") into a Position.
func ParsePosition(s string) (Position, error) {
	s = strings.TrimSpace(s)
	sep := strings.IndexAny(s, ":,-")
	if sep <= 0 || sep == len(s)-1 {
		return Position{}, errs.Wrapf(ErrBadPosition, "parse %q", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(s[:sep]))
	if err != nil || row < 1 {
		return Position{}, errs.Wrapf(ErrBadPosition, "parse %q", s)
	}
	seat, err := strconv.Atoi(strings.TrimSpace(s[sep+1:]))
	if err != nil || seat < 1 {
		return Position{}, errs.Wrapf(ErrBadPosition, "parse %q", s)
	}
	return Position{Row: row, Seat: seat}, nil
}

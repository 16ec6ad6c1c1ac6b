package model

import (
	"fmt"
	"time"
)

// Screening is one showing of a movie in a hall.  Screenings are
// immutable once created; the price is flat for every seat.
//
// Fields:
//
//	ID         – primary key identifier.
//	MovieID    – movie being shown.
//	HallID     – hall it is shown in.
//	StartTime  – start of the showing (UTC).
//	PriceCents – price per seat in minor currency units.
type Screening struct {
	ID         uint64    // screenings.id
	MovieID    uint64    // screenings.movie_id
	HallID     uint64    // screenings.hall_id
	StartTime  time.Time // screenings.start_time
	PriceCents int64     // screenings.price_cents
}

// ScreeningDetail joins a screening with its movie and hall for display.
type ScreeningDetail struct {
	Screening Screening
	Movie     Movie
	Hall      Hall
}

// FormatPrice renders an amount in minor units as "95.00".
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

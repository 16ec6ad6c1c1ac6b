package model

import "time"

// SeatHold is a temporary, advisory marker on a seat for one
// screening.  There is at most one hold per (screening, seat); writing
// a new one replaces the expiry.  Holds carry no owner, so any session
// can observe or extend them.  The booking ledger, not the hold, decides
// who gets the seat.
//
// Fields:
//
//	ScreeningID – screening the hold applies to.
//	SeatID      – seat being held.
//	ExpiresAt   – instant after which the hold no longer counts.
type SeatHold struct {
	ScreeningID uint64    // seat_holds.screening_id
	SeatID      uint64    // seat_holds.seat_id
	ExpiresAt   time.Time // seat_holds.expires_at
}

// Active reports whether the hold still marks its seat as taken at now.
func (h SeatHold) Active(now time.Time) bool {
	return h.ExpiresAt.After(now)
}

package model

import "time"

// Booking is a committed seat reservation.  For a given screening a seat
// id appears in at most one booking, ever.  Bookings are never updated
// or deleted.
//
// Fields:
//
//	ID          – primary key identifier.
//	ScreeningID – screening the seat is sold for.
//	SeatID      – seat sold.
//	BookedAt    – commit time (UTC).
//	Purchaser   – user or guest identity.
type Booking struct {
	ID          uint64    // bookings.id
	ScreeningID uint64    // bookings.screening_id
	SeatID      uint64    // bookings.seat_id
	BookedAt    time.Time // bookings.booked_at
	Purchaser   Purchaser // bookings.user_id | bookings.guest_name + guest_email
}

// BookingDetail is a booking joined with everything needed to show it
// in a customer's history.
type BookingDetail struct {
	Booking   Booking
	Seat      Seat
	Screening Screening
	Movie     Movie
	Hall      Hall
}

// SeatStatus is the final state of one requested seat in a batch.
type SeatStatus string

const (
	SeatCommitted       SeatStatus = "committed"
	SeatRejectedTaken   SeatStatus = "rejected_taken"
	SeatRejectedInvalid SeatStatus = "rejected_invalid"
)

// SeatOutcome records what happened to one requested position.
type SeatOutcome struct {
	Position Position
	SeatID   uint64
	Status   SeatStatus
}

// BookingResult reports a batch booking.  Succeeded and Failed keep the
// order in which positions were requested.  A batch with failures is a
// normal result, not an error.
type BookingResult struct {
	AllSucceeded bool
	Succeeded    []Position
	Failed       []string
	Outcomes     []SeatOutcome
}

// CommittedSeatIDs returns the seat ids that were booked by the batch.
func (r *BookingResult) CommittedSeatIDs() []uint64 {
	var ids []uint64
	for _, o := range r.Outcomes {
		if o.Status == SeatCommitted {
			ids = append(ids, o.SeatID)
		}
	}
	return ids
}

package model

// Seat describes a physical seat in a hall.  The triple (hall, row,
// number) is unique and is how a seat is resolved from a position
// typed by a customer.
//
// Fields:
//
//	ID     – primary key identifier; never zero for a stored seat.
//	HallID – hall to which this seat belongs.
//	Row    – 1-based row number.
//	Number – 1-based seat number within the row.
type Seat struct {
	ID     uint64 // seats.id
	HallID uint64 // seats.hall_id
	Row    int    // seats.row_num
	Number int    // seats.seat_number
}

// Position returns the grid address of the seat.
func (s Seat) Position() Position {
	return Position{Row: s.Row, Seat: s.Number}
}

// NoSeat is the seat id recorded for grid positions that have no
// provisioned seat.
const NoSeat uint64 = 0

// SeatOccupancy is a seat together with whether it is already booked
// for a particular screening.
type SeatOccupancy struct {
	Seat   Seat
	Booked bool
}

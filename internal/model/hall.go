package model

// Hall is a screening room.  Its seating grid is fixed at creation:
// Rows rows of SeatsPerRow seats, both 1-based when addressed.
//
// Fields:
//
//	ID          – primary key identifier.
//	Name        – display name (e.g. "Hall A").
//	Rows        – number of seat rows.
//	SeatsPerRow – number of seats in every row.
type Hall struct {
	ID          uint64 // halls.id
	Name        string // halls.name
	Rows        int    // halls.seat_rows
	SeatsPerRow int    // halls.seat_cols
}

// Contains reports whether p lies inside the hall's declared grid.
func (h Hall) Contains(p Position) bool {
	return p.Row >= 1 && p.Row <= h.Rows && p.Seat >= 1 && p.Seat <= h.SeatsPerRow
}

// Capacity is the number of grid positions, provisioned or not.
func (h Hall) Capacity() int {
	if h.Rows <= 0 || h.SeatsPerRow <= 0 {
		return 0
	}
	return h.Rows * h.SeatsPerRow
}

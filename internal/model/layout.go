package model

// Layout is a point-in-time availability snapshot for one screening.
// Occupied and SeatIDs are indexed [row-1][seat-1].  A seat id of NoSeat
// marks a grid position with no provisioned seat.  The snapshot may be
// stale by the time it is acted on; commits are re-validated by the
// booking ledger.
type Layout struct {
	ScreeningID uint64
	Rows        int
	SeatsPerRow int
	Occupied    [][]bool
	SeatIDs     [][]uint64
}

// NewLayout allocates an all-free grid with no seats.
func NewLayout(screeningID uint64, rows, seatsPerRow int) *Layout {
	if rows < 0 {
		rows = 0
	}
	if seatsPerRow < 0 {
		seatsPerRow = 0
	}
	l := &Layout{
		ScreeningID: screeningID,
		Rows:        rows,
		SeatsPerRow: seatsPerRow,
		Occupied:    make([][]bool, rows),
		SeatIDs:     make([][]uint64, rows),
	}
	for r := 0; r < rows; r++ {
		l.Occupied[r] = make([]bool, seatsPerRow)
		l.SeatIDs[r] = make([]uint64, seatsPerRow)
	}
	return l
}

func (l *Layout) inBounds(p Position) bool {
	return p.Row >= 1 && p.Row <= l.Rows && p.Seat >= 1 && p.Seat <= l.SeatsPerRow
}

// SeatID resolves p to a seat id, NoSeat when p is outside the grid or
// unprovisioned.
func (l *Layout) SeatID(p Position) uint64 {
	if !l.inBounds(p) {
		return NoSeat
	}
	return l.SeatIDs[p.Row-1][p.Seat-1]
}

// Taken reports whether p was booked or held when the snapshot was read.
func (l *Layout) Taken(p Position) bool {
	if !l.inBounds(p) {
		return false
	}
	return l.Occupied[p.Row-1][p.Seat-1]
}

// SeatStats summarises a layout.
type SeatStats struct {
	Total     int
	Taken     int
	Available int
	Occupancy float64 // percent, 0..100
}

// Stats counts provisioned seats only.
func (l *Layout) Stats() SeatStats {
	var s SeatStats
	for r := 0; r < l.Rows; r++ {
		for c := 0; c < l.SeatsPerRow; c++ {
			if l.SeatIDs[r][c] == NoSeat {
				continue
			}
			s.Total++
			if l.Occupied[r][c] {
				s.Taken++
			}
		}
	}
	s.Available = s.Total - s.Taken
	if s.Total > 0 {
		s.Occupancy = float64(s.Taken) * 100 / float64(s.Total)
	}
	return s
}

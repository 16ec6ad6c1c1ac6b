// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCommittedEvent is published after a booking batch committed at
// least one seat.  It carries enough for consumers to log or notify
// without querying the database.
type BookingCommittedEvent struct {
	EventID     string   `json:"event_id"`
	ScreeningID uint64   `json:"screening_id"`
	UserID      uint64   `json:"user_id,omitempty"`
	GuestName   string   `json:"guest_name,omitempty"`
	GuestEmail  string   `json:"guest_email,omitempty"`
	SeatIDs     []uint64 `json:"seat_ids"`
	SeatLabels  []string `json:"seats"`
	Failed      []string `json:"failed,omitempty"`
	CommittedAt string   `json:"committed_at"`
}

package model

import (
	"fmt"
	"strings"

	"github.com/iliyamo/cinema-seat-booking/internal/pkg/errs"
)

// ErrInvalidPurchaser is returned when a purchaser names both a user
// and a guest, or neither.
var ErrInvalidPurchaser = errs.New("purchaser must be either a user or a guest with name and email")

// Purchaser identifies who a booking is made for: a registered user or
// a guest identified by name and email, never both.  Build one with
// ForUser or ForGuest.
type Purchaser struct {
	UserID     uint64
	GuestName  string
	GuestEmail string
}

// ForUser returns a purchaser for a registered account.
func ForUser(userID uint64) Purchaser {
	return Purchaser{UserID: userID}
}

// ForGuest returns a purchaser for an anonymous customer.
func ForGuest(name, email string) Purchaser {
	return Purchaser{GuestName: strings.TrimSpace(name), GuestEmail: strings.TrimSpace(email)}
}

// IsGuest reports whether the purchaser is a guest.
func (p Purchaser) IsGuest() bool {
	return p.UserID == 0
}

// Validate enforces the exactly-one-identity rule.
func (p Purchaser) Validate() error {
	hasUser := p.UserID != 0
	hasGuestName := strings.TrimSpace(p.GuestName) != ""
	hasGuestEmail := strings.TrimSpace(p.GuestEmail) != ""
	switch {
	case hasUser && !hasGuestName && !hasGuestEmail:
		return nil
	case !hasUser && hasGuestName && hasGuestEmail:
		return nil
	default:
		return ErrInvalidPurchaser
	}
}

// String is used in logs and events.
func (p Purchaser) String() string {
	if p.IsGuest() {
		return fmt.Sprintf("guest %s <%s>", p.GuestName, p.GuestEmail)
	}
	return fmt.Sprintf("user %d", p.UserID)
}

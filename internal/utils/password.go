package utils

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/cinema-seat-booking/internal/pkg/errs"
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

var ErrPasswordTooLong = errs.New("password must be at most 72 bytes")

// HashPassword hashes plain with bcrypt.  A cost outside bcrypt's range
// is replaced by bcrypt.DefaultCost.
func HashPassword(plain string, cost int) (string, error) {
	if len(plain) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", errs.Wrap(err, "bcrypt")
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches the stored hash.  A
// malformed hash counts as a mismatch.
func VerifyPassword(hash, plain string) bool {
	if hash == "" || len(plain) > MaxPasswordBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

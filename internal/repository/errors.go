// Package repository implements the MySQL data access layer.  Each
// repository wraps a *sql.DB and exposes context-aware methods.  Sentinel
// errors defined here let the service and handler layers tell "not found"
// and "already exists" apart from infrastructure failures, which are
// wrapped with context and returned as-is.
package repository

import (
	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/cinema-seat-booking/internal/pkg/errs"
)

// Sentinel lookup errors.  Handlers translate these into 404/409.
var (
	ErrHallNotFound      = errs.New("hall not found")
	ErrMovieNotFound     = errs.New("movie not found")
	ErrScreeningNotFound = errs.New("screening not found")
	ErrUserNotFound      = errs.New("user not found")
	ErrUsernameTaken     = errs.New("username already exists")
)

// MySQL server error numbers that signal an integrity rejection of the
// written row rather than a broken connection or schema.
const (
	mysqlErrBadNull             = 1048
	mysqlErrDupEntry            = 1062
	mysqlErrRowIsReferenced     = 1451
	mysqlErrNoReferencedRow     = 1452
	mysqlErrCheckConstraintFail = 3819
)

// isDuplicateKey reports whether err is a unique index violation.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errs.As(err, &me) && me.Number == mysqlErrDupEntry
}

// isIntegrityViolation reports whether the server refused the row because
// of a constraint: unique, foreign key, not-null or check.
func isIntegrityViolation(err error) bool {
	var me *mysql.MySQLError
	if !errs.As(err, &me) {
		return false
	}
	switch me.Number {
	case mysqlErrDupEntry, mysqlErrNoReferencedRow, mysqlErrRowIsReferenced,
		mysqlErrBadNull, mysqlErrCheckConstraintFail:
		return true
	}
	return false
}

package database

import (
	"context"
	"database/sql"

	"github.com/iliyamo/cinema-seat-booking/internal/pkg/errs"
)

// schema is applied in order.  Every statement is idempotent.
//
// uq_bookings_screening_seat is what keeps a seat from being sold twice;
// the booking ledger relies on it instead of checking before inserting.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		username      VARCHAR(64)  NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role          VARCHAR(16)  NOT NULL DEFAULT 'customer',
		created_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_username (username)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS movies (
		id               BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		title            VARCHAR(255) NOT NULL,
		description      TEXT         NOT NULL,
		duration_minutes INT UNSIGNED NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS halls (
		id        BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name      VARCHAR(64)  NOT NULL,
		seat_rows INT UNSIGNED NOT NULL,
		seat_cols INT UNSIGNED NOT NULL,
		UNIQUE KEY uq_halls_name (name),
		CONSTRAINT chk_halls_grid CHECK (seat_rows > 0 AND seat_cols > 0)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS seats (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		hall_id     BIGINT UNSIGNED NOT NULL,
		row_num     INT UNSIGNED    NOT NULL,
		seat_number INT UNSIGNED    NOT NULL,
		UNIQUE KEY uq_seats_position (hall_id, row_num, seat_number),
		CONSTRAINT fk_seats_hall FOREIGN KEY (hall_id) REFERENCES halls (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS screenings (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		movie_id    BIGINT UNSIGNED NOT NULL,
		hall_id     BIGINT UNSIGNED NOT NULL,
		start_time  DATETIME        NOT NULL,
		price_cents BIGINT          NOT NULL,
		KEY idx_screenings_start (start_time),
		CONSTRAINT fk_screenings_movie FOREIGN KEY (movie_id) REFERENCES movies (id),
		CONSTRAINT fk_screenings_hall  FOREIGN KEY (hall_id)  REFERENCES halls (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id           BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		screening_id BIGINT UNSIGNED NOT NULL,
		seat_id      BIGINT UNSIGNED NOT NULL,
		user_id      BIGINT UNSIGNED NULL,
		guest_name   VARCHAR(255)    NULL,
		guest_email  VARCHAR(255)    NULL,
		booked_at    DATETIME        NOT NULL,
		UNIQUE KEY uq_bookings_screening_seat (screening_id, seat_id),
		KEY idx_bookings_user (user_id),
		CONSTRAINT fk_bookings_screening FOREIGN KEY (screening_id) REFERENCES screenings (id),
		CONSTRAINT fk_bookings_seat      FOREIGN KEY (seat_id)      REFERENCES seats (id),
		CONSTRAINT fk_bookings_user      FOREIGN KEY (user_id)      REFERENCES users (id),
		CONSTRAINT chk_bookings_purchaser CHECK (
			(user_id IS NOT NULL AND guest_name IS NULL AND guest_email IS NULL) OR
			(user_id IS NULL AND guest_name IS NOT NULL AND guest_email IS NOT NULL)
		)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS seat_holds (
		screening_id BIGINT UNSIGNED NOT NULL,
		seat_id      BIGINT UNSIGNED NOT NULL,
		expires_at   DATETIME(6)     NOT NULL,
		PRIMARY KEY (screening_id, seat_id),
		KEY idx_seat_holds_expires (expires_at),
		CONSTRAINT fk_seat_holds_screening FOREIGN KEY (screening_id) REFERENCES screenings (id),
		CONSTRAINT fk_seat_holds_seat      FOREIGN KEY (seat_id)      REFERENCES seats (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates every table that does not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errs.Wrapf(err, "apply schema statement %d", i+1)
		}
	}
	return nil
}

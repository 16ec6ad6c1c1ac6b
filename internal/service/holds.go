package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/iliyamo/cinema-seat-booking/internal/pkg/clock"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/errs"
)

// DefaultHoldTTL is how long a hold lasts unless configured otherwise.
const DefaultHoldTTL = 5 * time.Minute

// HoldManager grants and reclaims seat holds.  Holds are advisory: Hold
// overwrites whatever hold exists for the seat, and the booking ledger
// alone decides who gets it.
//
// A stricter variant (grant only when the seat is free or already held by
// the same session) would need an owner column and a conditional write;
// it is not implemented.
type HoldManager struct {
	store      HoldStore
	clock      clock.Clock
	defaultTTL time.Duration
	log        *slog.Logger
}

// NewHoldManager returns a manager over store.  A non-positive
// defaultTTL falls back to DefaultHoldTTL.
func NewHoldManager(store HoldStore, clk clock.Clock, defaultTTL time.Duration, log *slog.Logger) *HoldManager {
	if defaultTTL <= 0 {
		defaultTTL = DefaultHoldTTL
	}
	return &HoldManager{store: store, clock: clk, defaultTTL: defaultTTL, log: log}
}

// DefaultTTL reports the TTL used by HoldDefault.
func (m *HoldManager) DefaultTTL() time.Duration { return m.defaultTTL }

// Hold sets the seat's hold to expire at now+ttl, replacing any existing
// hold.  A ttl of zero or less writes a hold that is already expired.
// It returns false when the store refuses the row (unknown screening or
// seat) and an error when the store is unavailable.
func (m *HoldManager) Hold(ctx context.Context, screeningID, seatID uint64, ttl time.Duration) (bool, error) {
	if ttl < 0 {
		ttl = 0
	}
	ok, err := m.store.Upsert(ctx, screeningID, seatID, m.clock.Now().Add(ttl))
	if err != nil {
		return false, errs.Wrapf(err, "hold seat %d of screening %d", seatID, screeningID)
	}
	return ok, nil
}

// HoldDefault is Hold with the manager's default TTL.
func (m *HoldManager) HoldDefault(ctx context.Context, screeningID, seatID uint64) (bool, error) {
	return m.Hold(ctx, screeningID, seatID, m.defaultTTL)
}

// ExpireStaleHolds deletes every hold whose expiry has passed.  Calling
// it repeatedly has the same effect as calling it once.
func (m *HoldManager) ExpireStaleHolds(ctx context.Context) error {
	n, err := m.store.DeleteExpired(ctx, m.clock.Now())
	if err != nil {
		return errs.Wrap(err, "expire stale holds")
	}
	if n > 0 && m.log != nil {
		m.log.Debug("expired stale holds", slog.Int64("count", n))
	}
	return nil
}

// RunSweeper calls ExpireStaleHolds every interval until ctx is done.
// Sweep failures are logged and retried on the next tick.
func (m *HoldManager) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if m.log != nil {
		m.log.Info("hold sweeper started", slog.Duration("interval", interval))
	}
	for {
		select {
		case <-ctx.Done():
			if m.log != nil {
				m.log.Info("hold sweeper stopped")
			}
			return
		case <-ticker.C:
			if err := m.ExpireStaleHolds(ctx); err != nil && ctx.Err() == nil && m.log != nil {
				m.log.Error("hold sweep failed", slog.String("error", err.Error()))
			}
		}
	}
}

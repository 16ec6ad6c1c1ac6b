package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/clock"
)

func TestHoldUpsertIsLastWriterWins(t *testing.T) {
	store := newMemStore()
	clk := clock.NewMockClock(t0)
	m := NewHoldManager(store, clk, 0, discardLogger())
	assert.Equal(t, DefaultHoldTTL, m.DefaultTTL())

	ok, err := m.HoldDefault(context.Background(), 7, 100)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, t0.Add(5*time.Minute), store.holds[[2]uint64{7, 100}])

	clk.Add(time.Minute)
	ok, err = m.Hold(context.Background(), 7, 100, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, t0.Add(2*time.Minute), store.holds[[2]uint64{7, 100}], "a second hold replaces the expiry")
}

func TestZeroTTLHoldDoesNotOccupySeat(t *testing.T) {
	store := newMemStore()
	hall := store.provision(1, 1, 2, 100)
	clk := clock.NewMockClock(t0)
	m := NewHoldManager(store, clk, time.Minute, discardLogger())
	view := NewAvailabilityService(store, store, clk, discardLogger())

	_, err := m.Hold(context.Background(), 7, 100, 0)
	require.NoError(t, err)

	layout, err := view.BuildLayout(context.Background(), 7, hall)
	require.NoError(t, err)
	assert.False(t, layout.Taken(model.Position{Row: 1, Seat: 1}))
}

func TestHoldExpiresWithTime(t *testing.T) {
	store := newMemStore()
	hall := store.provision(1, 1, 2, 100)
	clk := clock.NewMockClock(t0)
	m := NewHoldManager(store, clk, time.Minute, discardLogger())
	view := NewAvailabilityService(store, store, clk, discardLogger())

	_, err := m.HoldDefault(context.Background(), 7, 101)
	require.NoError(t, err)
	layout, err := view.BuildLayout(context.Background(), 7, hall)
	require.NoError(t, err)
	assert.True(t, layout.Taken(model.Position{Row: 1, Seat: 2}))

	clk.Add(2 * time.Minute)
	layout, err = view.BuildLayout(context.Background(), 7, hall)
	require.NoError(t, err)
	assert.False(t, layout.Taken(model.Position{Row: 1, Seat: 2}))
}

func TestExpireStaleHoldsIsIdempotent(t *testing.T) {
	store := newMemStore()
	hall := store.provision(1, 1, 3, 100)
	clk := clock.NewMockClock(t0)
	m := NewHoldManager(store, clk, time.Minute, discardLogger())
	view := NewAvailabilityService(store, store, clk, discardLogger())

	_, _ = m.Hold(context.Background(), 7, 100, time.Minute)
	_, _ = m.Hold(context.Background(), 7, 101, 10*time.Minute)
	clk.Add(5 * time.Minute)

	require.NoError(t, m.ExpireStaleHolds(context.Background()))
	once, err := view.BuildLayout(context.Background(), 7, hall)
	require.NoError(t, err)
	assert.Equal(t, 1, store.holdCount())

	require.NoError(t, m.ExpireStaleHolds(context.Background()))
	twice, err := view.BuildLayout(context.Background(), 7, hall)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestExpireStaleHoldsPropagatesFailure(t *testing.T) {
	store := newMemStore()
	store.failWith = errors.New("connection refused")
	m := NewHoldManager(store, clock.NewMockClock(t0), time.Minute, discardLogger())

	assert.ErrorIs(t, m.ExpireStaleHolds(context.Background()), store.failWith)
	_, err := m.HoldDefault(context.Background(), 7, 100)
	assert.ErrorIs(t, err, store.failWith)
}

func TestRunSweeperStopsWithContext(t *testing.T) {
	store := newMemStore()
	clk := clock.NewMockClock(t0)
	m := NewHoldManager(store, clk, time.Minute, discardLogger())
	_, _ = m.Hold(context.Background(), 7, 100, time.Second)
	clk.Add(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.RunSweeper(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return store.holdCount() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

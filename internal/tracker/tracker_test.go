package tracker

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/geopits/internal/world"
)

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestRouteWrapsAround(t *testing.T) {
	route := NewRoute(world.Point{Lat: 1}, world.Point{Lat: 2})
	ctx := context.Background()

	var got []float64
	for i := 0; i < 5; i++ {
		p, err := route.Position(ctx)
		require.NoError(t, err)
		got = append(got, p.Lat)
	}
	assert.Equal(t, []float64{1, 2, 1, 2, 1}, got)
	assert.Equal(t, 2, route.Len())
}

func TestEmptyRoute(t *testing.T) {
	_, err := NewRoute().Position(context.Background())
	assert.ErrorIs(t, err, ErrEmptyRoute)
}

// waitFix receives one fix or fails the test.
func waitFix(t *testing.T, fixes <-chan world.Point) world.Point {
	t.Helper()
	select {
	case p := <-fixes:
		return p
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for position fix")
		return world.Point{}
	}
}

func TestTrackerPollsOnTicks(t *testing.T) {
	mockClock := quartz.NewMock(t)
	route := NewRoute(world.Point{Lat: 1}, world.Point{Lat: 2}, world.Point{Lat: 3})
	tr := New(route, time.Second, mockClock, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fixes := make(chan world.Point, 10)
	done := make(chan error, 1)
	go func() {
		done <- tr.Run(ctx, func(p world.Point) { fixes <- p })
	}()

	// The first fix arrives before any tick, after the ticker exists.
	assert.Equal(t, 1.0, waitFix(t, fixes).Lat)

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()

	mockClock.Advance(time.Second).MustWait(waitCtx)
	assert.Equal(t, 2.0, waitFix(t, fixes).Lat)

	mockClock.Advance(time.Second).MustWait(waitCtx)
	assert.Equal(t, 3.0, waitFix(t, fixes).Lat)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("tracker did not stop after cancel")
	}
}

func TestRouteResumesAfterRestart(t *testing.T) {
	route := NewRoute(world.Point{Lat: 1}, world.Point{Lat: 2}, world.Point{Lat: 3})

	for _, want := range []float64{1, 2, 3, 1} {
		tr := New(route, time.Second, quartz.NewMock(t), discardLogger())
		ctx, cancel := context.WithCancel(context.Background())

		fixes := make(chan world.Point, 1)
		done := make(chan error, 1)
		go func() {
			done <- tr.Run(ctx, func(p world.Point) { fixes <- p })
		}()

		assert.Equal(t, want, waitFix(t, fixes).Lat)
		cancel()
		require.NoError(t, <-done)
	}
}

type failingSource struct{ calls int }

func (f *failingSource) Position(ctx context.Context) (world.Point, error) {
	f.calls++
	return world.Point{}, errors.New("no signal")
}

func TestTrackerSkipsErrors(t *testing.T) {
	mockClock := quartz.NewMock(t)
	source := &failingSource{}
	tr := New(source, time.Second, mockClock, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	require.NoError(t, tr.Run(ctx, func(world.Point) { called = true }))
	assert.False(t, called)
	assert.Equal(t, 1, source.calls)
}

func TestTrackerRejectsZeroInterval(t *testing.T) {
	tr := New(NewRoute(world.Point{}), 0, quartz.NewMock(t), discardLogger())
	assert.Error(t, tr.Run(context.Background(), func(world.Point) {}))
}

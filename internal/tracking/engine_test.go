package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/medireach/storefront/internal/models"
)

func testConfig() *models.Config {
	return &models.Config{
		TickInterval:     time.Millisecond,
		CourierStep:      0.004,
		ArrivalThreshold: 0.0005,
		CourierOffsetLat: 0.02,
		CourierOffsetLng: -0.02,
		DefaultCity:      "douala",
	}
}

func TestAdvance_DistanceNonIncreasing(t *testing.T) {
	cfg := testConfig()
	dest := cityCoordinates["douala"]
	courier := models.Location{Lat: dest.Lat + cfg.CourierOffsetLat, Lng: dest.Lng + cfg.CourierOffsetLng}

	prev := PlanarDistance(courier, dest)
	arrived := false
	ticks := 0
	for !arrived {
		ticks++
		require.Less(t, ticks, 1000, "courier must arrive in finite ticks")
		courier, arrived = advance(courier, dest, cfg.CourierStep, cfg.ArrivalThreshold)
		d := PlanarDistance(courier, dest)
		assert.LessOrEqual(t, d, prev, "distance must not increase tick over tick")
		prev = d
	}
	assert.LessOrEqual(t, prev, cfg.ArrivalThreshold+cfg.CourierStep)
}

func TestAdvance_ArrivalFromVariousOffsets(t *testing.T) {
	cfg := testConfig()
	dest := cityCoordinates["yaounde"]
	offsets := []models.Location{
		{Lat: 0.02, Lng: -0.02},
		{Lat: -0.05, Lng: 0.01},
		{Lat: 0.0004, Lng: 0},       // already within threshold
		{Lat: 0.003, Lng: -0.0001},  // inside one step
		{Lat: 0.1, Lng: 0.1},        // far corner of the bounded region
	}
	for _, off := range offsets {
		courier := models.Location{Lat: dest.Lat + off.Lat, Lng: dest.Lng + off.Lng}
		arrived := false
		for ticks := 0; !arrived; ticks++ {
			require.Less(t, ticks, 5000)
			courier, arrived = advance(courier, dest, cfg.CourierStep, cfg.ArrivalThreshold)
		}
	}
}

func TestAdvance_ArrivedIsTerminal(t *testing.T) {
	cfg := testConfig()
	dest := cityCoordinates["douala"]
	courier := models.Location{Lat: dest.Lat + 0.0001, Lng: dest.Lng}

	courier, arrived := advance(courier, dest, cfg.CourierStep, cfg.ArrivalThreshold)
	require.True(t, arrived)

	// Further ticks must not move the courier.
	next, arrived := advance(courier, dest, cfg.CourierStep, cfg.ArrivalThreshold)
	assert.True(t, arrived)
	assert.Equal(t, courier, next)
}

func TestAdvance_NoOvershoot(t *testing.T) {
	cfg := testConfig()
	dest := cityCoordinates["douala"]
	// One step away plus a hair: the next move must land on or before the
	// destination, never past it.
	courier := models.Location{Lat: dest.Lat + cfg.CourierStep*0.9, Lng: dest.Lng}

	next, arrived := advance(courier, dest, cfg.CourierStep, cfg.ArrivalThreshold)
	assert.True(t, arrived)
	assert.Equal(t, dest, next)
}

func TestDestinationForCity(t *testing.T) {
	assert.Equal(t, cityCoordinates["yaounde"], DestinationForCity("Yaoundé", "douala"))
	assert.Equal(t, cityCoordinates["bafoussam"], DestinationForCity("  BAFOUSSAM ", "douala"))
	// Unrecognized city falls back to the default rather than failing.
	assert.Equal(t, cityCoordinates["douala"], DestinationForCity("Garoua", "douala"))
	assert.Equal(t, cityCoordinates["douala"], DestinationForCity("", ""))
}

func TestSession_RunsToArrivalAndStopsTicking(t *testing.T) {
	engine := NewEngine(testConfig(), nil, zap.NewNop())

	var updates []models.CourierPositionUpdate
	ch := make(chan models.CourierPositionUpdate, 64)
	session := engine.Start("ORD-TESTTEST1", "douala", func(u models.CourierPositionUpdate) {
		ch <- u
	})

	select {
	case <-session.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("session did not reach arrival")
	}
	close(ch)
	for u := range ch {
		updates = append(updates, u)
	}

	require.NotEmpty(t, updates)
	last := updates[len(updates)-1]
	assert.True(t, last.Arrived)

	prev := PlanarDistance(updates[0].Courier, updates[0].Destination)
	for _, u := range updates[1:] {
		d := PlanarDistance(u.Courier, u.Destination)
		assert.LessOrEqual(t, d, prev)
		prev = d
	}

	_, arrived := session.Position()
	assert.True(t, arrived)

	// Stop after natural arrival is a safe no-op.
	session.Stop()
}

func TestSession_StopCancelsTicker(t *testing.T) {
	cfg := testConfig()
	cfg.TickInterval = time.Hour // never fires; Stop must still return promptly
	engine := NewEngine(cfg, nil, zap.NewNop())

	session := engine.Start("ORD-TESTTEST2", "yaounde", nil)
	done := make(chan struct{})
	go func() {
		session.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not cancel the tick timer")
	}

	// Stop is idempotent.
	session.Stop()
}

func TestSession_SwitchingOrdersLeavesNoOrphanTicker(t *testing.T) {
	engine := NewEngine(testConfig(), nil, zap.NewNop())

	first := engine.Start("ORD-AAAAAAAAA", "douala", nil)
	first.Stop()

	second := engine.Start("ORD-BBBBBBBBB", "yaounde", nil)
	defer second.Stop()

	select {
	case <-first.Done():
	default:
		t.Fatal("stopped session must have shut down its ticker")
	}
}

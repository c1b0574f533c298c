package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medireach/storefront/internal/models"
)

func TestPlanarDistance(t *testing.T) {
	a := models.Location{Lat: 4.0, Lng: 9.0}
	assert.Equal(t, 0.0, PlanarDistance(a, a))

	b := models.Location{Lat: 4.0, Lng: 9.5}
	assert.InDelta(t, 0.5, PlanarDistance(a, b), 1e-12)

	c := models.Location{Lat: 4.3, Lng: 9.4}
	assert.InDelta(t, 0.5, PlanarDistance(a, c), 1e-12)
}

func TestHaversineKm_ZeroDistance(t *testing.T) {
	a := cityCoordinates["douala"]
	d := HaversineKm(a, a)
	assert.InDelta(t, 0, d, 1e-9)
}

func TestHaversineKm_DoualaYaounde(t *testing.T) {
	d := HaversineKm(cityCoordinates["douala"], cityCoordinates["yaounde"])
	// Roughly 194 km between the two city centers.
	assert.InDelta(t, 194, d, 10)
}

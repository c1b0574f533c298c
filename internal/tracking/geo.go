package tracking

import (
	"math"
	"strings"

	"github.com/medireach/storefront/internal/models"
)

const earthRadiusKm = 6371.0

// cityCoordinates is the delivery-area lookup table. Address resolution is a
// fixed table plus a fallback, not geocoding; unknown cities land on the
// default city's coordinates.
var cityCoordinates = map[string]models.Location{
	"douala":    {Lat: 4.0511, Lng: 9.7679},
	"yaounde":   {Lat: 3.8480, Lng: 11.5021},
	"bafoussam": {Lat: 5.4737, Lng: 10.4179},
}

// DestinationForCity resolves a city name to drop-off coordinates, falling
// back to defaultCity (and then to Douala) when the city is unrecognized.
func DestinationForCity(city, defaultCity string) models.Location {
	if loc, ok := cityCoordinates[normalizeCity(city)]; ok {
		return loc
	}
	if loc, ok := cityCoordinates[normalizeCity(defaultCity)]; ok {
		return loc
	}
	return cityCoordinates["douala"]
}

func normalizeCity(city string) string {
	s := strings.ToLower(strings.TrimSpace(city))
	// Accept the accented spelling of the capital.
	s = strings.ReplaceAll(s, "é", "e")
	return s
}

// PlanarDistance is the straight-line distance in coordinate degrees, the
// unit the simulation's step and arrival threshold are expressed in.
func PlanarDistance(a, b models.Location) float64 {
	return math.Hypot(a.Lat-b.Lat, a.Lng-b.Lng)
}

// HaversineKm is the great-circle distance in kilometers, for distances shown
// to the user.
func HaversineKm(a, b models.Location) float64 {
	lat1 := degreesToRadians(a.Lat)
	lng1 := degreesToRadians(a.Lng)
	lat2 := degreesToRadians(b.Lat)
	lng2 := degreesToRadians(b.Lng)

	dlat := lat2 - lat1
	dlng := lng2 - lng1
	h := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlng/2), 2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

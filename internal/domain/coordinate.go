package domain

import (
	"fmt"
	"math"
)

// Mean Earth radius in feet (roughly 3,959 miles).
const earthRadiusFeet = 20_902_231.0

// Coordinate is an immutable (latitude, longitude) pair in decimal degrees.
// It is comparable and used directly as a map key, so equality is exact
// float64 equality: two inputs within floating-point noise of each other are
// distinct points, and exact duplicates collapse to a single point.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.Latitude, c.Longitude)
}

// Distance returns the great-circle distance to other in feet, using the
// haversine formula. The haversine intermediate is clamped into [0, 1] before
// the inverse sine so floating-point overshoot near identical or antipodal
// points cannot leave the function's domain.
func (c Coordinate) Distance(other Coordinate) float64 {
	lat1 := radians(c.Latitude)
	lat2 := radians(other.Latitude)
	dLat := radians(other.Latitude - c.Latitude)
	dLon := radians(other.Longitude - c.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}

	return earthRadiusFeet * 2 * math.Asin(math.Sqrt(a))
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

package services

import (
	"math"

	"survey-route-service/internal/domain"
	"survey-route-service/internal/ports"
)

// planar treats (latitude, longitude) as plane coordinates. The routing logic
// is metric-agnostic, so tests use it for hand-checkable geometry.
func planar(a, b domain.Coordinate) float64 {
	return math.Hypot(a.Latitude-b.Latitude, a.Longitude-b.Longitude)
}

// singleRegion classifies every point into one region, disabling lock-in.
var singleRegion = ports.RegionFunc(func(domain.Coordinate) domain.Region {
	return "everywhere"
})

func pt(lat, lon float64) domain.Coordinate {
	return domain.Coordinate{Latitude: lat, Longitude: lon}
}

// unitSquare is the canonical four-corner scenario.
func unitSquare() []domain.Coordinate {
	return []domain.Coordinate{pt(0, 0), pt(0, 1), pt(1, 0), pt(1, 1)}
}

// lineWithRegions is five collinear points: region A at longitudes 0, 1 and
// 5, region B at longitudes 2 and 3. Starting in A, lock-in must drag the
// route past the nearer B points until A is exhausted.
func lineWithRegions() ([]domain.Coordinate, ports.RegionClassifier) {
	points := []domain.Coordinate{pt(0, 0), pt(0, 1), pt(0, 2), pt(0, 3), pt(0, 5)}
	classifier := ports.RegionFunc(func(c domain.Coordinate) domain.Region {
		if c.Longitude == 2 || c.Longitude == 3 {
			return "B"
		}
		return "A"
	})
	return points, classifier
}

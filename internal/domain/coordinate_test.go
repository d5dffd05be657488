package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	c := Coordinate{Latitude: 40.7128, Longitude: -74.0060}
	assert.Equal(t, 0.0, c.Distance(c))
}

func TestDistanceSymmetric(t *testing.T) {
	a := Coordinate{Latitude: 40.7128, Longitude: -74.0060}
	b := Coordinate{Latitude: 40.7580, Longitude: -73.9855}
	assert.Equal(t, a.Distance(b), b.Distance(a))
}

func TestDistanceKnownValue(t *testing.T) {
	// Times Square to the Empire State Building is roughly 0.7 miles.
	a := Coordinate{Latitude: 40.7580, Longitude: -73.9855}
	b := Coordinate{Latitude: 40.7484, Longitude: -73.9857}

	d := a.Distance(b)
	require.Greater(t, d, 3000.0)
	require.Less(t, d, 4500.0)
}

func TestDistanceNearIdenticalPointsIsFinite(t *testing.T) {
	a := Coordinate{Latitude: 40.7128, Longitude: -74.0060}
	b := Coordinate{Latitude: 40.7128 + 1e-13, Longitude: -74.0060 - 1e-13}

	d := a.Distance(b)
	require.False(t, math.IsNaN(d))
	require.GreaterOrEqual(t, d, 0.0)
}

func TestDistanceNearAntipodalPointsIsFinite(t *testing.T) {
	a := Coordinate{Latitude: 0, Longitude: 0}
	b := Coordinate{Latitude: 0, Longitude: 180}

	d := a.Distance(b)
	require.False(t, math.IsNaN(d))
	// Half the Earth's circumference, within a percent.
	assert.InEpsilon(t, math.Pi*earthRadiusFeet, d, 0.01)
}

func TestDistanceGrowsWithSeparation(t *testing.T) {
	origin := Coordinate{Latitude: 40.0, Longitude: -74.0}
	near := Coordinate{Latitude: 40.1, Longitude: -74.0}
	far := Coordinate{Latitude: 41.0, Longitude: -74.0}

	assert.Less(t, origin.Distance(near), origin.Distance(far))
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survey-route-service/internal/domain"
)

func TestKMeansPartitionsExactly(t *testing.T) {
	points := []domain.Coordinate{
		pt(0, 0), pt(0, 1), pt(1, 0), pt(1, 1),
		pt(10, 10), pt(10, 11), pt(11, 10),
	}

	clusters := KMeans(points, 2, 42)
	require.Len(t, clusters, 2)

	seen := make(map[domain.Coordinate]int)
	total := 0
	for _, c := range clusters {
		total += len(c.Members)
		for _, p := range c.Members {
			seen[p]++
		}
	}
	assert.Equal(t, len(points), total)
	for _, p := range points {
		assert.Equal(t, 1, seen[p], "point %v", p)
	}
}

func TestKMeansSeparatesDistantGroups(t *testing.T) {
	points := []domain.Coordinate{
		pt(0, 0), pt(0, 1), pt(1, 0),
		pt(100, 100), pt(100, 101), pt(101, 100),
	}

	clusters := KMeans(points, 2, 7)
	require.Len(t, clusters, 2)

	// Each cluster holds exactly one of the two well-separated groups.
	for _, c := range clusters {
		require.Len(t, c.Members, 3)
		nearOrigin := c.Members[0].Latitude < 50
		for _, p := range c.Members {
			assert.Equal(t, nearOrigin, p.Latitude < 50)
		}
	}
}

func TestKMeansSingleClusterCentroidIsMean(t *testing.T) {
	points := []domain.Coordinate{pt(0, 0), pt(0, 2), pt(2, 0), pt(2, 2)}

	clusters := KMeans(points, 1, 1)
	require.Len(t, clusters, 1)
	assert.InDelta(t, 1.0, clusters[0].Centroid.Latitude, 1e-9)
	assert.InDelta(t, 1.0, clusters[0].Centroid.Longitude, 1e-9)
	assert.Len(t, clusters[0].Members, 4)
}

func TestKMeansClampsToPointCount(t *testing.T) {
	points := []domain.Coordinate{pt(0, 0), pt(5, 5)}

	clusters := KMeans(points, 10, 3)
	require.Len(t, clusters, 2)
}

func TestKMeansDeterministicForSeed(t *testing.T) {
	points := []domain.Coordinate{
		pt(0, 0), pt(0, 3), pt(3, 0), pt(6, 6), pt(6, 7), pt(7, 6),
	}

	first := KMeans(points, 3, 99)
	second := KMeans(points, 3, 99)
	require.Equal(t, first, second)
}

func TestKMeansEmptyInput(t *testing.T) {
	assert.Nil(t, KMeans(nil, 3, 1))
	assert.Nil(t, KMeans([]domain.Coordinate{pt(1, 1)}, 0, 1))
}

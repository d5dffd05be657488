package services

import (
	"math/rand"

	"survey-route-service/internal/domain"
)

const maxKMeansIterations = 100

// KMeans partitions points into at most k clusters with Lloyd's algorithm on
// the raw (latitude, longitude) pairs. Initial centroids are sampled from the
// points with the given seed, so a fixed (points, k, seed) triple always
// yields the same partition. k is clamped to the number of points.
//
// Assignment uses squared distance in degree space: the partition only needs
// to group nearby points, not measure them, so great-circle accuracy is not
// required here.
func KMeans(points []domain.Coordinate, k int, seed int64) []domain.Cluster {
	if len(points) == 0 || k <= 0 {
		return nil
	}
	if k > len(points) {
		k = len(points)
	}

	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(len(points))
	centroids := make([]domain.Coordinate, k)
	for i := range centroids {
		centroids[i] = points[perm[i]]
	}

	assign := make([]int, len(points))
	for i := range assign {
		assign[i] = -1
	}

	for iter := 0; iter < maxKMeansIterations; iter++ {
		changed := false
		for i, p := range points {
			best := 0
			bestDist := squaredDegreeDistance(p, centroids[0])
			for c := 1; c < k; c++ {
				if d := squaredDegreeDistance(p, centroids[c]); d < bestDist {
					best = c
					bestDist = d
				}
			}
			if assign[i] != best {
				assign[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}

		sumLat := make([]float64, k)
		sumLon := make([]float64, k)
		counts := make([]int, k)
		for i, p := range points {
			c := assign[i]
			sumLat[c] += p.Latitude
			sumLon[c] += p.Longitude
			counts[c]++
		}
		for c := 0; c < k; c++ {
			// An emptied cluster keeps its previous centroid.
			if counts[c] == 0 {
				continue
			}
			centroids[c] = domain.Coordinate{
				Latitude:  sumLat[c] / float64(counts[c]),
				Longitude: sumLon[c] / float64(counts[c]),
			}
		}
	}

	clusters := make([]domain.Cluster, k)
	for c := 0; c < k; c++ {
		clusters[c] = domain.Cluster{ID: c, Centroid: centroids[c]}
	}
	for i, p := range points {
		c := assign[i]
		clusters[c].Members = append(clusters[c].Members, p)
	}
	return clusters
}

func squaredDegreeDistance(a, b domain.Coordinate) float64 {
	dLat := a.Latitude - b.Latitude
	dLon := a.Longitude - b.Longitude
	return dLat*dLat + dLon*dLon
}

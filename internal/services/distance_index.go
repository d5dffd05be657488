package services

import (
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"survey-route-service/internal/domain"
)

// DistanceFunc computes the distance between two coordinates. Production
// callers use GreatCircle; tests substitute simpler planar metrics.
type DistanceFunc func(a, b domain.Coordinate) float64

// GreatCircle is the haversine distance in feet.
func GreatCircle(a, b domain.Coordinate) float64 { return a.Distance(b) }

// BuildDistanceIndex computes, for every point, its distance to every other
// point, sorted ascending with ties broken by (latitude, longitude). This is
// the O(n²) dominant cost of a planning run; the index is built exactly once
// per point set and shared by every router and optimizer invocation.
//
// Exact duplicate coordinates collapse to a single indexed point, matching
// Coordinate's map-key equality.
//
// The outer loop fans out across at most workers goroutines. Each goroutine
// owns one point's neighbor slice and sorts it before publishing, so the
// result is identical regardless of scheduling.
func BuildDistanceIndex(points []domain.Coordinate, dist DistanceFunc, workers int) domain.DistanceIndex {
	if dist == nil {
		dist = GreatCircle
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	seen := make(map[domain.Coordinate]struct{}, len(points))
	uniq := make([]domain.Coordinate, 0, len(points))
	for _, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		uniq = append(uniq, p)
	}

	lists := make([][]domain.Neighbor, len(uniq))

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range uniq {
		g.Go(func() error {
			origin := uniq[i]
			neighbors := make([]domain.Neighbor, 0, len(uniq)-1)
			for _, other := range uniq {
				if other == origin {
					continue
				}
				neighbors = append(neighbors, domain.Neighbor{
					Distance: dist(origin, other),
					Point:    other,
				})
			}
			sortNeighbors(neighbors)
			lists[i] = neighbors
			return nil
		})
	}
	// The group has no failure mode; Wait only synchronizes the fan-out.
	_ = g.Wait()

	index := make(domain.DistanceIndex, len(uniq))
	for i, p := range uniq {
		index[p] = lists[i]
	}
	return index
}

func sortNeighbors(neighbors []domain.Neighbor) {
	sort.Slice(neighbors, func(i, j int) bool {
		a, b := neighbors[i], neighbors[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		if a.Point.Latitude != b.Point.Latitude {
			return a.Point.Latitude < b.Point.Latitude
		}
		return a.Point.Longitude < b.Point.Longitude
	})
}

// sortedPoints returns the indexed points in (latitude, longitude) order.
// Map iteration order is not deterministic, so anything that seeds or
// enumerates from the index goes through this.
func sortedPoints(index domain.DistanceIndex) []domain.Coordinate {
	points := make([]domain.Coordinate, 0, len(index))
	for p := range index {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Latitude != points[j].Latitude {
			return points[i].Latitude < points[j].Latitude
		}
		return points[i].Longitude < points[j].Longitude
	})
	return points
}

package services

import (
	"fmt"

	"survey-route-service/internal/domain"
	"survey-route-service/internal/ports"
)

// DefaultClusterCount is the cluster count used when a caller does not choose
// one explicitly.
const DefaultClusterCount = 5

// ClusterRouter partitions the point set with seeded k-means and works
// through one cluster at a time. The candidate filter at every step is a
// two-tier preference:
//
//  1. Region lock-in, the highest-priority rule: while the current point's
//     region has unvisited members, the next step must stay in that region
//     regardless of cluster membership.
//  2. Otherwise the nearest unvisited member of the current point's cluster;
//     when that cluster is exhausted, the unvisited cluster whose centroid is
//     nearest to the current point.
//
// If no candidate survives the active rules the router falls back to the
// globally nearest unvisited point, so the route always reaches full
// coverage. Cluster membership is fixed at partition time; only the router's
// notion of which cluster it is working through changes.
//
// The decomposition trades total distance for spatial coherence: fewer
// long-range jumps, sometimes at the cost of a longer overall route than
// unconstrained greedy.
type ClusterRouter struct {
	classifier   ports.RegionClassifier
	clusterCount int
	seed         int64
	dist         DistanceFunc
}

func NewClusterRouter(classifier ports.RegionClassifier, clusterCount int, seed int64) *ClusterRouter {
	if clusterCount <= 0 {
		clusterCount = DefaultClusterCount
	}
	return &ClusterRouter{
		classifier:   classifier,
		clusterCount: clusterCount,
		seed:         seed,
		dist:         GreatCircle,
	}
}

// WithDistanceFunc overrides the metric used for centroid proximity. Tests
// use it to pair the router with a planar-distance index.
func (r *ClusterRouter) WithDistanceFunc(dist DistanceFunc) *ClusterRouter {
	if dist != nil {
		r.dist = dist
	}
	return r
}

func (r *ClusterRouter) BuildRoute(start domain.Coordinate, index domain.DistanceIndex) (domain.Route, error) {
	if len(index) == 0 {
		return domain.Route{}, nil
	}
	if !index.Contains(start) {
		return domain.Route{}, fmt.Errorf("build cluster route: start %v is not in the distance index", start)
	}

	regions, err := snapshotRegions(index, r.classifier)
	if err != nil {
		return domain.Route{}, fmt.Errorf("build cluster route: %w", err)
	}

	clusters := KMeans(sortedPoints(index), r.clusterCount, r.seed)
	clusterOf := make(map[domain.Coordinate]int, len(index))
	remaining := make([]int, len(clusters))
	for _, c := range clusters {
		for _, p := range c.Members {
			clusterOf[p] = c.ID
		}
		remaining[c.ID] = len(c.Members)
	}

	visited := make(map[domain.Coordinate]struct{}, len(index))
	visited[start] = struct{}{}
	regions.visit(start)
	remaining[clusterOf[start]]--

	steps := make([]domain.RouteStep, 0, len(index)-1)
	current := start

	for len(visited) < len(index) {
		next, ok := r.nextStop(current, index, visited, regions, clusters, clusterOf, remaining)
		if !ok {
			return domain.Route{Start: start, End: current, Steps: steps}, ErrIncompleteRoute
		}

		steps = append(steps, domain.RouteStep{From: current, To: next.Point, Distance: next.Distance})
		visited[next.Point] = struct{}{}
		regions.visit(next.Point)
		remaining[clusterOf[next.Point]]--
		current = next.Point
	}

	return domain.Route{Start: start, End: current, Steps: steps}, nil
}

func (r *ClusterRouter) nextStop(
	current domain.Coordinate,
	index domain.DistanceIndex,
	visited map[domain.Coordinate]struct{},
	regions *regionState,
	clusters []domain.Cluster,
	clusterOf map[domain.Coordinate]int,
	remaining []int,
) (domain.Neighbor, bool) {
	neighbors := index[current]

	// Tier 1: region lock-in overrides cluster preference.
	if regions.lockedIn(current) {
		if next, ok := nearestEligible(neighbors, visited, func(candidate domain.Coordinate) bool {
			return regions.sameRegion(current, candidate)
		}); ok {
			return next, true
		}
	} else {
		// Tier 2: stay inside the current cluster while it has unvisited
		// members; otherwise target the unvisited cluster with the nearest
		// centroid.
		target := clusterOf[current]
		if remaining[target] == 0 {
			target = r.nearestUnvisitedCluster(current, clusters, remaining)
		}
		if target >= 0 {
			if next, ok := nearestEligible(neighbors, visited, func(candidate domain.Coordinate) bool {
				return clusterOf[candidate] == target
			}); ok {
				return next, true
			}
		}
	}

	// Fallback: globally nearest unvisited point, ignoring region and cluster
	// preference, so coverage is always reached.
	return nearestEligible(neighbors, visited, func(domain.Coordinate) bool { return true })
}

func (r *ClusterRouter) nearestUnvisitedCluster(current domain.Coordinate, clusters []domain.Cluster, remaining []int) int {
	best := -1
	var bestDist float64
	for _, c := range clusters {
		if remaining[c.ID] == 0 {
			continue
		}
		d := r.dist(current, c.Centroid)
		if best < 0 || d < bestDist {
			best = c.ID
			bestDist = d
		}
	}
	return best
}

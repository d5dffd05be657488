package services

import (
	"errors"
	"fmt"

	"survey-route-service/internal/domain"
	"survey-route-service/internal/ports"
)

// ErrIncompleteRoute reports that route construction stopped before visiting
// every point. The partial route is returned alongside it so callers can log
// or render it; the validator flags the missing points. With a complete
// distance index this cannot fire and exists as a defensive fallback.
var ErrIncompleteRoute = errors.New("route construction ended before visiting every point")

// GreedyRouter builds a route by always stepping to the nearest unvisited
// point, under the region lock-in rule: while the current point's region
// still has unvisited members, the next step must go to the nearest unvisited
// member of that region. Only once the region is exhausted may the route
// leave it, again by nearest distance.
//
// For a fixed start, index and classifier the output is fully deterministic;
// equal distances are resolved by the index's (latitude, longitude) tie
// order.
type GreedyRouter struct {
	classifier ports.RegionClassifier
}

func NewGreedyRouter(classifier ports.RegionClassifier) *GreedyRouter {
	return &GreedyRouter{classifier: classifier}
}

func (r *GreedyRouter) BuildRoute(start domain.Coordinate, index domain.DistanceIndex) (domain.Route, error) {
	if len(index) == 0 {
		return domain.Route{}, nil
	}
	if !index.Contains(start) {
		return domain.Route{}, fmt.Errorf("build route: start %v is not in the distance index", start)
	}

	regions, err := snapshotRegions(index, r.classifier)
	if err != nil {
		return domain.Route{}, fmt.Errorf("build route: %w", err)
	}

	visited := make(map[domain.Coordinate]struct{}, len(index))
	visited[start] = struct{}{}
	regions.visit(start)

	steps := make([]domain.RouteStep, 0, len(index)-1)
	current := start

	for len(visited) < len(index) {
		next, ok := nearestEligible(index[current], visited, func(candidate domain.Coordinate) bool {
			return !regions.lockedIn(current) || regions.sameRegion(current, candidate)
		})
		if !ok {
			return domain.Route{Start: start, End: current, Steps: steps}, ErrIncompleteRoute
		}

		steps = append(steps, domain.RouteStep{From: current, To: next.Point, Distance: next.Distance})
		visited[next.Point] = struct{}{}
		regions.visit(next.Point)
		current = next.Point
	}

	return domain.Route{Start: start, End: current, Steps: steps}, nil
}

// nearestEligible scans a sorted neighbor list for the first unvisited
// candidate accepted by the eligibility predicate. The list's ascending order
// makes "first accepted" equal "nearest eligible". The neighbor entry is
// returned whole so the caller can record its indexed distance on the step.
func nearestEligible(
	neighbors []domain.Neighbor,
	visited map[domain.Coordinate]struct{},
	eligible func(domain.Coordinate) bool,
) (domain.Neighbor, bool) {
	for _, nb := range neighbors {
		if _, ok := visited[nb.Point]; ok {
			continue
		}
		if eligible(nb.Point) {
			return nb, true
		}
	}
	return domain.Neighbor{}, false
}

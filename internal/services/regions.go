package services

import (
	"errors"
	"fmt"

	"survey-route-service/internal/domain"
	"survey-route-service/internal/ports"
)

// regionState is a router's per-invocation snapshot of the region classifier:
// each point's region plus a countdown of unvisited members per region. The
// classifier is called exactly once per point, so an unstable classifier
// cannot change a route mid-build.
type regionState struct {
	regionOf  map[domain.Coordinate]domain.Region
	remaining map[domain.Region]int
}

func snapshotRegions(index domain.DistanceIndex, classifier ports.RegionClassifier) (*regionState, error) {
	if classifier == nil {
		return nil, errors.New("snapshot regions: region classifier must not be nil")
	}

	state := &regionState{
		regionOf:  make(map[domain.Coordinate]domain.Region, len(index)),
		remaining: make(map[domain.Region]int),
	}
	for _, p := range sortedPoints(index) {
		region := classifier.Classify(p)
		if region == "" {
			return nil, fmt.Errorf("snapshot regions: classifier returned empty region for %v", p)
		}
		state.regionOf[p] = region
		state.remaining[region]++
	}
	return state, nil
}

// visit marks p as visited for lock-in accounting.
func (s *regionState) visit(p domain.Coordinate) {
	s.remaining[s.regionOf[p]]--
}

// lockedIn reports whether the region of current still has unvisited members.
// While true, the next step must stay inside that region.
func (s *regionState) lockedIn(current domain.Coordinate) bool {
	return s.remaining[s.regionOf[current]] > 0
}

func (s *regionState) sameRegion(a, b domain.Coordinate) bool {
	return s.regionOf[a] == s.regionOf[b]
}

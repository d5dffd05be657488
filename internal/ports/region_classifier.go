package ports

import "survey-route-service/internal/domain"

// Contract for mapping a coordinate to its region.
//
// Implementations must be total and stable: every coordinate classifies to a
// non-empty region, and repeated calls with the same coordinate return the
// same region. The routers' region lock-in rule depends on both properties;
// a violation is a caller-contract breach, not a routing failure.
type RegionClassifier interface {
	Classify(c domain.Coordinate) domain.Region
}

// RegionFunc adapts a plain function to the RegionClassifier interface.
type RegionFunc func(domain.Coordinate) domain.Region

func (f RegionFunc) Classify(c domain.Coordinate) domain.Region { return f(c) }

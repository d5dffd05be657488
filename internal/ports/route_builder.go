package ports

import "survey-route-service/internal/domain"

// Contract for route construction strategies.
//
// BuildRoute visits every point in the index exactly once, starting at start.
// Implementations are deterministic for a fixed start and index, and read the
// index without mutating it, so a single index may serve concurrent builds.
type RouteBuilder interface {
	BuildRoute(start domain.Coordinate, index domain.DistanceIndex) (domain.Route, error)
}

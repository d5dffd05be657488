package ports

import (
	"context"

	"survey-route-service/internal/domain"
)

// Site is one visit location: its coordinate plus the region label it was
// loaded with.
type Site struct {
	Coordinate domain.Coordinate
	Region     domain.Region
}

// Contract for loading the set of sites to visit.
type LocationSource interface {
	LoadSites(ctx context.Context) ([]Site, error)
}

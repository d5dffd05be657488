package region

import (
	"survey-route-service/internal/domain"
	"survey-route-service/internal/ports"
)

// FallbackRegion is returned for coordinates that were not part of the loaded
// site table. Returning a fixed non-empty label keeps the classifier total,
// as the routing core requires.
const FallbackRegion domain.Region = "unclassified"

// TableClassifier answers region lookups from the loaded site table. The site
// file carries each location's region label, so classification is a pure map
// lookup and trivially stable.
type TableClassifier struct {
	regions map[domain.Coordinate]domain.Region
}

func NewTableClassifier(sites []ports.Site) *TableClassifier {
	regions := make(map[domain.Coordinate]domain.Region, len(sites))
	for _, s := range sites {
		r := s.Region
		if r == "" {
			r = FallbackRegion
		}
		regions[s.Coordinate] = r
	}
	return &TableClassifier{regions: regions}
}

func (t *TableClassifier) Classify(c domain.Coordinate) domain.Region {
	if r, ok := t.regions[c]; ok {
		return r
	}
	return FallbackRegion
}

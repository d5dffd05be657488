package region

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"survey-route-service/internal/domain"
	"survey-route-service/internal/ports"
)

func TestTableClassifierLookup(t *testing.T) {
	sites := []ports.Site{
		{Coordinate: domain.Coordinate{Latitude: 1, Longitude: 2}, Region: "Manhattan"},
		{Coordinate: domain.Coordinate{Latitude: 3, Longitude: 4}, Region: "Queens"},
	}
	classifier := NewTableClassifier(sites)

	assert.Equal(t, domain.Region("Manhattan"), classifier.Classify(domain.Coordinate{Latitude: 1, Longitude: 2}))
	assert.Equal(t, domain.Region("Queens"), classifier.Classify(domain.Coordinate{Latitude: 3, Longitude: 4}))
}

func TestTableClassifierUnknownCoordinateFallsBack(t *testing.T) {
	classifier := NewTableClassifier(nil)
	assert.Equal(t, FallbackRegion, classifier.Classify(domain.Coordinate{Latitude: 9, Longitude: 9}))
}

func TestTableClassifierEmptyLabelFallsBack(t *testing.T) {
	sites := []ports.Site{
		{Coordinate: domain.Coordinate{Latitude: 1, Longitude: 2}, Region: ""},
	}
	classifier := NewTableClassifier(sites)
	assert.Equal(t, FallbackRegion, classifier.Classify(domain.Coordinate{Latitude: 1, Longitude: 2}))
}

func TestTableClassifierStable(t *testing.T) {
	sites := []ports.Site{
		{Coordinate: domain.Coordinate{Latitude: 1, Longitude: 2}, Region: "Bronx"},
	}
	classifier := NewTableClassifier(sites)

	c := domain.Coordinate{Latitude: 1, Longitude: 2}
	assert.Equal(t, classifier.Classify(c), classifier.Classify(c))
}

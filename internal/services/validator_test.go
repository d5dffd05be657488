package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survey-route-service/internal/domain"
)

func routeThrough(points ...domain.Coordinate) domain.Route {
	steps := make([]domain.RouteStep, 0, len(points)-1)
	for i := 0; i < len(points)-1; i++ {
		steps = append(steps, domain.RouteStep{From: points[i], To: points[i+1]})
	}
	return domain.Route{Start: points[0], End: points[len(points)-1], Steps: steps}
}

func TestValidateRoutePasses(t *testing.T) {
	points := []domain.Coordinate{pt(0, 0), pt(0, 1), pt(1, 1)}
	route := routeThrough(points...)

	report := ValidateRoute(route, points)
	assert.True(t, report.Valid)
	assert.Empty(t, report.Problems)
}

func TestValidateRouteDetectsDuplicateVisit(t *testing.T) {
	route := routeThrough(pt(0, 0), pt(0, 1), pt(0, 0))

	report := ValidateRoute(route, []domain.Coordinate{pt(0, 0), pt(0, 1)})
	require.False(t, report.Valid)
	assert.Contains(t, report.Problems[0], "visited more than once")
}

func TestValidateRouteDetectsMissingAndExtra(t *testing.T) {
	route := routeThrough(pt(0, 0), pt(9, 9))
	expected := []domain.Coordinate{pt(0, 0), pt(0, 1)}

	report := ValidateRoute(route, expected)
	require.False(t, report.Valid)
	require.Len(t, report.Problems, 2)
	assert.Contains(t, report.Problems[0], "missing expected point")
	assert.Contains(t, report.Problems[1], "not in the expected point set")
}

func TestValidateRouteDetectsDiscontinuity(t *testing.T) {
	route := domain.Route{
		Start: pt(0, 0),
		End:   pt(2, 2),
		Steps: []domain.RouteStep{
			{From: pt(0, 0), To: pt(1, 1)},
			{From: pt(5, 5), To: pt(2, 2)},
		},
	}
	expected := []domain.Coordinate{pt(0, 0), pt(1, 1), pt(5, 5), pt(2, 2)}

	report := ValidateRoute(route, expected)
	require.False(t, report.Valid)

	found := false
	for _, p := range report.Problems {
		if strings.Contains(p, "discontinuity") {
			found = true
		}
	}
	assert.True(t, found, "problems: %v", report.Problems)
}

func TestValidateRouteDetectsEndpointMismatch(t *testing.T) {
	route := routeThrough(pt(0, 0), pt(0, 1), pt(1, 1))
	route.Start = pt(9, 9)
	route.End = pt(8, 8)

	report := ValidateRoute(route, []domain.Coordinate{pt(0, 0), pt(0, 1), pt(1, 1)})
	require.False(t, report.Valid)
	require.Len(t, report.Problems, 2)
	assert.Contains(t, report.Problems[0], "declares start")
	assert.Contains(t, report.Problems[1], "declares end")
}

func TestValidateRouteZeroSteps(t *testing.T) {
	assert.True(t, ValidateRoute(domain.Route{}, nil).Valid)
	assert.True(t, ValidateRoute(domain.Route{}, []domain.Coordinate{pt(1, 1)}).Valid)

	report := ValidateRoute(domain.Route{}, []domain.Coordinate{pt(1, 1), pt(2, 2)})
	require.False(t, report.Valid)
	assert.Contains(t, report.Problems[0], "no steps")
}

func TestValidateRouteCollapsedDuplicateExpectation(t *testing.T) {
	// Duplicate inputs collapse to one point; a route visiting the shared
	// value once is valid against the deduplicated expectation.
	route := routeThrough(pt(0, 0), pt(0, 1))
	expected := []domain.Coordinate{pt(0, 0), pt(0, 1), pt(0, 0)}

	report := ValidateRoute(route, expected)
	assert.True(t, report.Valid, "problems: %v", report.Problems)
}

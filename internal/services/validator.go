package services

import (
	"fmt"

	"survey-route-service/internal/domain"
)

// Report is the outcome of validating a route: overall pass/fail plus every
// problem found. Checks are reported independently rather than
// short-circuited, so one validation surfaces all defects of a run.
type Report struct {
	Valid    bool
	Problems []string
}

// ValidateRoute checks that route visits exactly the expected points once
// each, as a continuous path matching its declared start and end.
//
// Failures are returned as data, never as an error: a caller may want to
// render or log an invalid route for debugging. Duplicate coordinates in
// expected collapse to one point, per Coordinate equality.
func ValidateRoute(route domain.Route, expected []domain.Coordinate) Report {
	var problems []string

	expectedSet := make(map[domain.Coordinate]struct{}, len(expected))
	expectedOrder := make([]domain.Coordinate, 0, len(expected))
	for _, p := range expected {
		if _, ok := expectedSet[p]; ok {
			continue
		}
		expectedSet[p] = struct{}{}
		expectedOrder = append(expectedOrder, p)
	}

	if len(route.Steps) == 0 {
		// A trivial route is acceptable only for at most one point.
		if len(expectedSet) > 1 {
			problems = append(problems, fmt.Sprintf(
				"route has no steps but %d points were expected", len(expectedSet)))
		}
		return Report{Valid: len(problems) == 0, Problems: problems}
	}

	touched := route.Points()

	visited := make(map[domain.Coordinate]struct{}, len(touched))
	for _, p := range touched {
		if _, ok := visited[p]; ok {
			problems = append(problems, fmt.Sprintf("coordinate %v is visited more than once", p))
		}
		visited[p] = struct{}{}
	}

	for _, p := range expectedOrder {
		if _, ok := visited[p]; !ok {
			problems = append(problems, fmt.Sprintf("route is missing expected point %v", p))
		}
	}
	for _, p := range touched {
		if _, ok := expectedSet[p]; !ok {
			problems = append(problems, fmt.Sprintf("route visits %v, which is not in the expected point set", p))
		}
	}

	for i := 0; i < len(route.Steps)-1; i++ {
		if route.Steps[i].To != route.Steps[i+1].From {
			problems = append(problems, fmt.Sprintf(
				"discontinuity between step %d and step %d: %v != %v",
				i, i+1, route.Steps[i].To, route.Steps[i+1].From))
		}
	}

	if route.Steps[0].From != route.Start {
		problems = append(problems, fmt.Sprintf(
			"first step starts at %v, route declares start %v", route.Steps[0].From, route.Start))
	}
	if last := route.Steps[len(route.Steps)-1].To; last != route.End {
		problems = append(problems, fmt.Sprintf(
			"last step ends at %v, route declares end %v", last, route.End))
	}

	return Report{Valid: len(problems) == 0, Problems: problems}
}

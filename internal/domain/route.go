package domain

// RouteStep is a directed edge between two coordinates. The step distance is
// fixed at construction, which keeps steps immutable once a router returns
// them (the optimizer reads candidate routes from multiple goroutines).
type RouteStep struct {
	From     Coordinate
	To       Coordinate
	Distance float64
}

// NewRouteStep builds a step with the great-circle distance between its
// endpoints. Routers carry the distance over from their index instead, so a
// route's total always agrees with the metric the route was planned under.
func NewRouteStep(from, to Coordinate) RouteStep {
	return RouteStep{From: from, To: to, Distance: from.Distance(to)}
}

// Route is an ordered sequence of steps visiting a point set exactly once,
// with declared start and end points. It is a simple path: the last step does
// not return to Start. Routes are produced by a router invocation and never
// mutated afterwards.
type Route struct {
	Start Coordinate
	End   Coordinate
	Steps []RouteStep
}

func (r Route) TotalDistance() float64 {
	var total float64
	for _, s := range r.Steps {
		total += s.Distance
	}
	return total
}

// Points returns every coordinate the route touches, in visiting order: the
// first step's origin followed by each step's destination. A zero-step route
// touches nothing.
func (r Route) Points() []Coordinate {
	if len(r.Steps) == 0 {
		return nil
	}
	points := make([]Coordinate, 0, len(r.Steps)+1)
	points = append(points, r.Steps[0].From)
	for _, s := range r.Steps {
		points = append(points, s.To)
	}
	return points
}

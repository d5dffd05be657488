package domain

// Neighbor pairs another point with its distance from the owning point.
type Neighbor struct {
	Distance float64
	Point    Coordinate
}

// DistanceIndex maps every point in a set to all other points in the set,
// sorted by ascending distance (ties broken by latitude, then longitude).
// For a set of n points every entry holds exactly n-1 neighbors. The index is
// built once per point set and read-only afterwards; routers and the
// optimizer share a single index across invocations.
type DistanceIndex map[Coordinate][]Neighbor

// Contains reports whether p is one of the indexed points.
func (idx DistanceIndex) Contains(p Coordinate) bool {
	_, ok := idx[p]
	return ok
}

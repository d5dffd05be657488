package domain

// Cluster is one cell of a k-means partition: a centroid plus the member
// coordinates assigned to it. A clustering's cells partition the input point
// set exactly (no overlap, no omission), and membership is fixed once the
// partition is built.
type Cluster struct {
	ID       int
	Centroid Coordinate
	Members  []Coordinate
}

package domain

// Region is an opaque, stable label for the area a coordinate belongs to
// (e.g. a borough name). Classifying the same coordinate twice must yield the
// same region.
type Region string

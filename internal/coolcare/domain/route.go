package domain

// RouteResult is a proposed visiting order for a set of jobs.
type RouteResult struct {
	Order           []string
	Jobs            []Job
	TotalDistanceKm float64
}

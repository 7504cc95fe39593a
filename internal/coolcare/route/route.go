// Package route orders a day's jobs into a visiting sequence.
//
// The planner is a greedy nearest-neighbour walk: start at the first job,
// always move to the closest unvisited one. It is O(n²), not optimal, and
// fully deterministic for a given input order.
package route

import (
	"slices"
	"time"

	"github.com/coolcare/coolcare/internal/coolcare/domain"
	"github.com/coolcare/coolcare/pkg/geox"
)

// Plan orders the jobs that carry both coordinates. Jobs without
// coordinates are dropped. With fewer than two candidates the input order
// is kept and the distance is zero. Ties go to the job listed first.
func Plan(jobs []domain.Job) domain.RouteResult {
	candidates := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.HasCoordinates() {
			candidates = append(candidates, j)
		}
	}

	if len(candidates) < 2 {
		return result(candidates, 0)
	}

	ordered := make([]domain.Job, 0, len(candidates))
	remaining := slices.Clone(candidates[1:])
	current := candidates[0]
	ordered = append(ordered, current)

	var total float64
	for len(remaining) > 0 {
		best := 0
		bestDist := geox.HaversineKm(point(current), point(remaining[0]))
		for i := 1; i < len(remaining); i++ {
			if d := geox.HaversineKm(point(current), point(remaining[i])); d < bestDist {
				best, bestDist = i, d
			}
		}

		total += bestDist
		current = remaining[best]
		ordered = append(ordered, current)
		remaining = slices.Delete(remaining, best, best+1)
	}

	return result(ordered, geox.Round2(total))
}

// Compute plans the jobs scheduled on the calendar day of day in loc.
// jobs are expected in scheduled_at ascending order.
func Compute(jobs []domain.Job, day time.Time, loc *time.Location) domain.RouteResult {
	onDay := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.ScheduledOn(day, loc) {
			onDay = append(onDay, j)
		}
	}
	return Plan(onDay)
}

func point(j domain.Job) geox.Point {
	return geox.Point{Lat: *j.Latitude, Lon: *j.Longitude}
}

func result(jobs []domain.Job, km float64) domain.RouteResult {
	order := make([]string, len(jobs))
	for i, j := range jobs {
		order[i] = j.ID
	}
	return domain.RouteResult{Order: order, Jobs: jobs, TotalDistanceKm: km}
}

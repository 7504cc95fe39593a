package domain

import "time"

type DashboardStats struct {
	TotalJobs     int
	TodayJobs     int
	ScheduledJobs int
	ActiveJobs    int
	CompletedJobs int
	CancelledJobs int
	TotalRevenue  float64
	TodayRevenue  float64
}

// ComputeStats aggregates jobs. "Today" is the calendar day of now in loc;
// revenue counts completed jobs only.
func ComputeStats(jobs []Job, now time.Time, loc *time.Location) DashboardStats {
	var s DashboardStats
	s.TotalJobs = len(jobs)

	for _, j := range jobs {
		today := j.ScheduledOn(now, loc)
		if today {
			s.TodayJobs++
		}

		switch j.Status {
		case StatusScheduled:
			s.ScheduledJobs++
		case StatusActive:
			s.ActiveJobs++
		case StatusCancelled:
			s.CancelledJobs++
		case StatusCompleted:
			s.CompletedJobs++
			if j.Price != nil {
				s.TotalRevenue += *j.Price
				if today {
					s.TodayRevenue += *j.Price
				}
			}
		}
	}
	return s
}

package coolcaresdk

import (
	"context"
	"net/http"
	"net/url"
)

// Jobs lists the caller's jobs, newest scheduled first. An empty status
// returns all of them.
func (s *Session) Jobs(ctx context.Context, status string) ([]Job, error) {
	path := "/jobs"
	if status != "" {
		path += "?" + url.Values{"status": {status}}.Encode()
	}
	return s.jobList(ctx, path)
}

// TodayJobs lists today's jobs in visiting-time order.
func (s *Session) TodayJobs(ctx context.Context) ([]Job, error) {
	return s.jobList(ctx, "/jobs/today")
}

func (s *Session) Job(ctx context.Context, id string) (*Job, error) {
	return s.jobCall(ctx, http.MethodGet, "/jobs/"+url.PathEscape(id), nil)
}

func (s *Session) CreateJob(ctx context.Context, req JobRequest) (*Job, error) {
	return s.jobCall(ctx, http.MethodPost, "/jobs", req)
}

func (s *Session) UpdateJob(ctx context.Context, id string, req JobRequest) (*Job, error) {
	return s.jobCall(ctx, http.MethodPut, "/jobs/"+url.PathEscape(id), req)
}

func (s *Session) DeleteJob(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/jobs/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	var out MessageResponse
	return decodeJSON(resp, &out, http.StatusOK)
}

// DashboardStats returns the caller's counters and revenue.
func (s *Session) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	return s.stats(ctx, "/dashboard/stats")
}

// OptimizeRoute proposes a visiting order for the caller's jobs on date
// (YYYY-MM-DD).
func (s *Session) OptimizeRoute(ctx context.Context, date string) (*RouteResponse, error) {
	path := "/jobs/route/optimize?" + url.Values{"date": {date}}.Encode()
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out RouteResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) jobList(ctx context.Context, path string) ([]Job, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var jobs []Job
	if err := decodeJSON(resp, &jobs, http.StatusOK); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *Session) jobCall(ctx context.Context, method, path string, payload any) (*Job, error) {
	resp, err := s.doAuthRequest(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}

	var job Job
	if err := decodeJSON(resp, &job, http.StatusOK); err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *Session) stats(ctx context.Context, path string) (*DashboardStats, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out DashboardStats
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

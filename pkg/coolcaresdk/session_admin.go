package coolcaresdk

import (
	"context"
	"net/http"
	"net/url"
)

// Dispatcher operations. All of them require the admin role.

// AdminJobs lists every worker's jobs.
func (s *Session) AdminJobs(ctx context.Context, status string) ([]Job, error) {
	path := "/admin/jobs"
	if status != "" {
		path += "?" + url.Values{"status": {status}}.Encode()
	}
	return s.jobList(ctx, path)
}

// AdminCreateJob creates a job for req.UserID, or for the caller when unset.
func (s *Session) AdminCreateJob(ctx context.Context, req JobRequest) (*Job, error) {
	return s.jobCall(ctx, http.MethodPost, "/admin/jobs", req)
}

func (s *Session) AdminUpdateJob(ctx context.Context, id string, req JobRequest) (*Job, error) {
	return s.jobCall(ctx, http.MethodPut, "/admin/jobs/"+url.PathEscape(id), req)
}

func (s *Session) AdminDeleteJob(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/admin/jobs/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	var out MessageResponse
	return decodeJSON(resp, &out, http.StatusOK)
}

// AdminStats aggregates over all workers.
func (s *Session) AdminStats(ctx context.Context) (*DashboardStats, error) {
	return s.stats(ctx, "/admin/stats")
}

func (s *Session) AdminUsers(ctx context.Context) ([]User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/admin/users", nil)
	if err != nil {
		return nil, err
	}

	var users []User
	if err := decodeJSON(resp, &users, http.StatusOK); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Session) AdminUpdateUser(ctx context.Context, id string, req AdminUpdateUserRequest) (*User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/admin/users/"+url.PathEscape(id), req)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/coolcare/coolcare/internal/coolcare/domain"
	"github.com/coolcare/coolcare/internal/coolcare/store"
	"github.com/coolcare/coolcare/pkg/clock"
	"github.com/coolcare/coolcare/pkg/phonex"
	"github.com/coolcare/coolcare/pkg/slogx"
)

// AdminService backs the dispatcher console. Callers are expected to have
// checked the admin role already.
type AdminService struct {
	Store    store.Store
	Clock    clock.Clock
	Location *time.Location
}

func (s *AdminService) AllJobs(ctx context.Context, status string) ([]domain.Job, error) {
	if status != "" && !domain.ValidStatus(status) {
		return nil, &domain.ValidationError{Field: "status", Reason: "unknown status"}
	}
	return s.Store.Jobs().ListJobs(ctx, store.JobFilter{Status: status})
}

// CreateJob creates a job on behalf of a worker.
func (s *AdminService) CreateJob(ctx context.Context, ownerID string, p domain.JobPatch) (domain.Job, error) {
	if ownerID == "" {
		return domain.Job{}, &domain.ValidationError{Field: "user_id", Reason: "required"}
	}
	if _, err := s.Store.Users().GetUserByID(ctx, ownerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Job{}, ErrUserNotFound
		}
		return domain.Job{}, err
	}
	return createJob(ctx, s.Store, clock.Or(s.Clock), ownerID, p)
}

// UpdateJob patches any job. A non-empty newOwnerID reassigns it.
func (s *AdminService) UpdateJob(ctx context.Context, jobID, newOwnerID string, p domain.JobPatch) (domain.Job, error) {
	j, err := s.Store.Jobs().GetJob(ctx, jobID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Job{}, ErrJobNotFound
	}
	if err != nil {
		return domain.Job{}, err
	}

	if newOwnerID != "" && newOwnerID != j.UserID {
		if _, err := s.Store.Users().GetUserByID(ctx, newOwnerID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.Job{}, ErrUserNotFound
			}
			return domain.Job{}, err
		}
		j.UserID = newOwnerID
		// Force a write even when nothing else changed.
		if p.Empty() {
			j.UpdatedAt = clock.Or(s.Clock).Now().UTC()
			if err := s.Store.Jobs().UpdateJob(ctx, j); err != nil {
				return domain.Job{}, err
			}
			return j, nil
		}
	}
	return updateJob(ctx, s.Store, clock.Or(s.Clock), j, p)
}

func (s *AdminService) DeleteJob(ctx context.Context, jobID string) error {
	return deleteJob(ctx, s.Store, jobID)
}

// SystemStats aggregates over every worker's jobs.
func (s *AdminService) SystemStats(ctx context.Context) (domain.DashboardStats, error) {
	jobs, err := s.Store.Jobs().ListJobs(ctx, store.JobFilter{})
	if err != nil {
		return domain.DashboardStats{}, err
	}
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	return domain.ComputeStats(jobs, clock.Or(s.Clock).Now(), loc), nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

func (s *AdminService) UpdateUser(ctx context.Context, userID string, p domain.UserPatch) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}

	if err := p.Apply(&u); err != nil {
		return domain.User{}, err
	}
	u.UpdatedAt = clock.Or(s.Clock).Now().UTC()
	if err := s.Store.Users().UpdateUser(ctx, u); err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user updated by admin",
		slog.String("user_id", u.ID),
		slog.String("role", u.Role),
		slog.Bool("is_active", u.IsActive),
	)
	return u, nil
}

// PromoteByPhone grants the admin role to the user with phone.
func (s *AdminService) PromoteByPhone(ctx context.Context, rawPhone string) (domain.User, error) {
	phone := phonex.Normalize(rawPhone)
	if !phonex.Valid(phone) {
		return domain.User{}, ErrInvalidPhone
	}

	u, err := s.Store.Users().GetUserByPhone(ctx, phone)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}

	role := domain.RoleAdmin
	return s.UpdateUser(ctx, u.ID, domain.UserPatch{Role: &role})
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/coolcare/coolcare/internal/coolcare/domain"
	"github.com/coolcare/coolcare/internal/coolcare/route"
	"github.com/coolcare/coolcare/internal/coolcare/store"
	"github.com/coolcare/coolcare/pkg/clock"
	"github.com/coolcare/coolcare/pkg/idx"
	"github.com/coolcare/coolcare/pkg/slogx"
)

// JobService is a worker's view of their own jobs. Jobs owned by someone
// else behave as if they did not exist.
type JobService struct {
	Store store.Store
	Clock clock.Clock
	// Location decides calendar days for "today", stats and routes.
	Location *time.Location
}

func (s *JobService) loc() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

func (s *JobService) List(ctx context.Context, userID, status string) ([]domain.Job, error) {
	if status != "" && !domain.ValidStatus(status) {
		return nil, &domain.ValidationError{Field: "status", Reason: "unknown status"}
	}
	return s.Store.Jobs().ListJobs(ctx, store.JobFilter{UserID: userID, Status: status})
}

func (s *JobService) Get(ctx context.Context, userID, jobID string) (domain.Job, error) {
	j, err := s.Store.Jobs().GetJob(ctx, jobID)
	if errors.Is(err, store.ErrNotFound) || (err == nil && j.UserID != userID) {
		return domain.Job{}, ErrJobNotFound
	}
	return j, err
}

func (s *JobService) Create(ctx context.Context, userID string, p domain.JobPatch) (domain.Job, error) {
	return createJob(ctx, s.Store, clock.Or(s.Clock), userID, p)
}

func (s *JobService) Update(ctx context.Context, userID, jobID string, p domain.JobPatch) (domain.Job, error) {
	current, err := s.Get(ctx, userID, jobID)
	if err != nil {
		return domain.Job{}, err
	}
	return updateJob(ctx, s.Store, clock.Or(s.Clock), current, p)
}

func (s *JobService) Delete(ctx context.Context, userID, jobID string) error {
	if _, err := s.Get(ctx, userID, jobID); err != nil {
		return err
	}
	return deleteJob(ctx, s.Store, jobID)
}

// Today returns the user's jobs on the current calendar day, earliest first.
func (s *JobService) Today(ctx context.Context, userID string) ([]domain.Job, error) {
	return s.onDay(ctx, userID, clock.Or(s.Clock).Now())
}

func (s *JobService) onDay(ctx context.Context, userID string, day time.Time) ([]domain.Job, error) {
	from, to := domain.DayBounds(day, s.loc())
	return s.Store.Jobs().ListJobs(ctx, store.JobFilter{
		UserID: userID,
		From:   &from,
		To:     &to,
		Order:  store.ScheduledAsc,
	})
}

func (s *JobService) Stats(ctx context.Context, userID string) (domain.DashboardStats, error) {
	jobs, err := s.Store.Jobs().ListJobs(ctx, store.JobFilter{UserID: userID})
	if err != nil {
		return domain.DashboardStats{}, err
	}
	return domain.ComputeStats(jobs, clock.Or(s.Clock).Now(), s.loc()), nil
}

// OptimizeRoute orders the user's jobs on date (YYYY-MM-DD).
func (s *JobService) OptimizeRoute(ctx context.Context, userID, date string) (domain.RouteResult, error) {
	day, err := domain.ParseDate(date, s.loc())
	if err != nil {
		return domain.RouteResult{}, ErrInvalidDate
	}

	jobs, err := s.onDay(ctx, userID, day)
	if err != nil {
		return domain.RouteResult{}, err
	}
	res := route.Compute(jobs, day, s.loc())

	slogx.FromContext(ctx).Debug("route computed",
		slog.String("date", date),
		slog.Int("stops", len(res.Order)),
		slog.Float64("km", res.TotalDistanceKm),
	)
	return res, nil
}

func createJob(ctx context.Context, st store.Store, c clock.Clock, userID string, p domain.JobPatch) (domain.Job, error) {
	now := c.Now().UTC()
	j, err := domain.NewJob(idx.NewAt(now).String(), userID, p, now)
	if err != nil {
		return domain.Job{}, err
	}
	if err := st.Jobs().CreateJob(ctx, j); err != nil {
		return domain.Job{}, fmt.Errorf("create job: %w", err)
	}
	slogx.FromContext(ctx).Info("job created", slog.String("job_id", j.ID), slog.String("owner", userID))
	return j, nil
}

func updateJob(ctx context.Context, st store.Store, c clock.Clock, j domain.Job, p domain.JobPatch) (domain.Job, error) {
	if p.Empty() {
		return j, nil
	}
	if err := p.Apply(&j); err != nil {
		return domain.Job{}, err
	}
	if p.Status != nil && *p.Status == domain.StatusCompleted && p.CompletedAt == nil && j.CompletedAt == nil {
		now := c.Now().UTC()
		j.CompletedAt = &now
	}
	j.UpdatedAt = c.Now().UTC()

	if err := st.Jobs().UpdateJob(ctx, j); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Job{}, ErrJobNotFound
		}
		return domain.Job{}, fmt.Errorf("update job: %w", err)
	}
	return j, nil
}

func deleteJob(ctx context.Context, st store.Store, jobID string) error {
	err := st.Jobs().DeleteJob(ctx, jobID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrJobNotFound
	}
	if err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("job deleted", slog.String("job_id", jobID))
	return nil
}

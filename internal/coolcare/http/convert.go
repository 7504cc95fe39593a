package http

import (
	"strings"
	"time"

	"github.com/coolcare/coolcare/internal/coolcare/domain"
	"github.com/coolcare/coolcare/pkg/coolcaresdk"
)

func toUser(u domain.User) coolcaresdk.User {
	return coolcaresdk.User{
		ID:         u.ID,
		Phone:      u.Phone,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func toUsers(us []domain.User) []coolcaresdk.User {
	out := make([]coolcaresdk.User, len(us))
	for i, u := range us {
		out[i] = toUser(u)
	}
	return out
}

func toJob(j domain.Job) coolcaresdk.Job {
	services := make([]coolcaresdk.ServiceItem, len(j.Services))
	for i, s := range j.Services {
		services[i] = coolcaresdk.ServiceItem{
			Description: s.Description,
			Price:       coolcaresdk.Amount(s.Price),
			Quantity:    coolcaresdk.Quantity(s.Quantity),
		}
	}
	return coolcaresdk.Job{
		ID:            j.ID,
		UserID:        j.UserID,
		CustomerName:  j.CustomerName,
		Title:         j.Title,
		Description:   j.Description,
		Notes:         j.Notes,
		Address:       j.Address,
		CustomerPhone: j.CustomerPhone,
		Latitude:      j.Latitude,
		Longitude:     j.Longitude,
		ScheduledAt:   j.ScheduledAt,
		CompletedAt:   j.CompletedAt,
		Price:         j.Price,
		Status:        j.Status,
		Priority:      j.Priority,
		JobType:       j.JobType,
		Services:      services,
		CreatedAt:     j.CreatedAt,
		UpdatedAt:     j.UpdatedAt,
	}
}

func toJobs(js []domain.Job) []coolcaresdk.Job {
	out := make([]coolcaresdk.Job, len(js))
	for i, j := range js {
		out[i] = toJob(j)
	}
	return out
}

func toStats(s domain.DashboardStats) coolcaresdk.DashboardStats {
	return coolcaresdk.DashboardStats{
		TotalJobs:     s.TotalJobs,
		TodayJobs:     s.TodayJobs,
		ScheduledJobs: s.ScheduledJobs,
		ActiveJobs:    s.ActiveJobs,
		CompletedJobs: s.CompletedJobs,
		CancelledJobs: s.CancelledJobs,
		TotalRevenue:  s.TotalRevenue,
		TodayRevenue:  s.TodayRevenue,
	}
}

// jobPatch converts a wire request into a patch. Empty timestamp strings
// are ignored; unparsable ones are rejected.
func jobPatch(req coolcaresdk.JobRequest, loc *time.Location) (domain.JobPatch, error) {
	p := domain.JobPatch{
		CustomerName:  req.CustomerName,
		Title:         req.Title,
		Description:   req.Description,
		Notes:         req.Notes,
		Address:       req.Address,
		CustomerPhone: req.CustomerPhone,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Status:        req.Status,
		Priority:      req.Priority,
		JobType:       req.JobType,
	}

	var err error
	if p.ScheduledAt, err = timestamp("scheduled_at", req.ScheduledAt, loc); err != nil {
		return domain.JobPatch{}, err
	}
	if p.CompletedAt, err = timestamp("completed_at", req.CompletedAt, loc); err != nil {
		return domain.JobPatch{}, err
	}

	if req.Price != nil {
		price := float64(*req.Price)
		p.Price = &price
	}
	if req.Services != nil {
		items := make([]domain.ServiceItem, len(*req.Services))
		for i, s := range *req.Services {
			items[i] = domain.ServiceItem{
				Description: s.Description,
				Price:       float64(s.Price),
				Quantity:    int(s.Quantity),
			}
		}
		p.Services = &items
	}
	return p, nil
}

func timestamp(field string, raw *string, loc *time.Location) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := domain.ParseTimestamp(*raw, loc)
	if err != nil {
		return nil, &domain.ValidationError{Field: field, Reason: "expected RFC 3339 or YYYY-MM-DDTHH:MM[:SS]"}
	}
	return &t, nil
}

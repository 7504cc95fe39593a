package domain

import (
	"slices"
	"strings"
	"time"
)

// Job statuses.
const (
	StatusScheduled = "scheduled"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Job priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Job types.
const (
	JobTypeRepair       = "repair"
	JobTypeInstallation = "installation"
	JobTypeDiagnostics  = "diagnostics"
	JobTypeMaintenance  = "maintenance"
)

var (
	statuses   = []string{StatusScheduled, StatusActive, StatusCompleted, StatusCancelled}
	priorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
	jobTypes   = []string{JobTypeRepair, JobTypeInstallation, JobTypeDiagnostics, JobTypeMaintenance}
)

func ValidStatus(s string) bool   { return slices.Contains(statuses, s) }
func ValidPriority(s string) bool { return slices.Contains(priorities, s) }
func ValidJobType(s string) bool  { return slices.Contains(jobTypes, s) }

// Open reports whether a job with status s still needs a visit.
func Open(s string) bool {
	return s != StatusCompleted && s != StatusCancelled
}

// ServiceItem is one billed line on a job.
type ServiceItem struct {
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type Job struct {
	ID            string
	UserID        string
	CustomerName  *string
	Title         *string
	Description   *string
	Notes         *string
	Address       *string
	CustomerPhone *string
	Latitude      *float64
	Longitude     *float64
	ScheduledAt   *time.Time
	CompletedAt   *time.Time
	Price         *float64
	Status        string
	Priority      string
	JobType       string
	Services      []ServiceItem
	RemindedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasCoordinates reports whether both latitude and longitude are set.
func (j Job) HasCoordinates() bool {
	return j.Latitude != nil && j.Longitude != nil
}

// ScheduledOn reports whether the job is scheduled on the calendar day of
// day as seen in loc.
func (j Job) ScheduledOn(day time.Time, loc *time.Location) bool {
	if j.ScheduledAt == nil {
		return false
	}
	y1, m1, d1 := j.ScheduledAt.In(loc).Date()
	y2, m2, d2 := day.In(loc).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// InLocation returns a copy with all timestamps expressed in loc.
func (j Job) InLocation(loc *time.Location) Job {
	in := func(t *time.Time) *time.Time {
		if t == nil {
			return nil
		}
		v := t.In(loc)
		return &v
	}
	j.ScheduledAt = in(j.ScheduledAt)
	j.CompletedAt = in(j.CompletedAt)
	j.RemindedAt = in(j.RemindedAt)
	j.CreatedAt = j.CreatedAt.In(loc)
	j.UpdatedAt = j.UpdatedAt.In(loc)
	return j
}

// CustomerLabel is the customer name or a generic fallback.
func (j Job) CustomerLabel() string {
	if j.CustomerName != nil && strings.TrimSpace(*j.CustomerName) != "" {
		return strings.TrimSpace(*j.CustomerName)
	}
	return "Клиент"
}

// JobPatch carries optional field changes. It is used both to build a new
// job (applied over defaults) and to update an existing one. Nil means keep.
type JobPatch struct {
	CustomerName  *string
	Title         *string
	Description   *string
	Notes         *string
	Address       *string
	CustomerPhone *string
	Latitude      *float64
	Longitude     *float64
	ScheduledAt   *time.Time
	CompletedAt   *time.Time
	Price         *float64
	Status        *string
	Priority      *string
	JobType       *string
	Services      *[]ServiceItem
}

// Empty reports whether the patch changes nothing.
func (p JobPatch) Empty() bool {
	return p == (JobPatch{})
}

// Validate checks enum values and coordinate ranges.
func (p JobPatch) Validate() error {
	if p.Status != nil && !ValidStatus(*p.Status) {
		return &ValidationError{Field: "status", Reason: "must be one of " + strings.Join(statuses, ", ")}
	}
	if p.Priority != nil && !ValidPriority(*p.Priority) {
		return &ValidationError{Field: "priority", Reason: "must be one of " + strings.Join(priorities, ", ")}
	}
	if p.JobType != nil && !ValidJobType(*p.JobType) {
		return &ValidationError{Field: "job_type", Reason: "must be one of " + strings.Join(jobTypes, ", ")}
	}
	if p.Latitude != nil && (*p.Latitude < -90 || *p.Latitude > 90) {
		return &ValidationError{Field: "latitude", Reason: "must be within [-90, 90]"}
	}
	if p.Longitude != nil && (*p.Longitude < -180 || *p.Longitude > 180) {
		return &ValidationError{Field: "longitude", Reason: "must be within [-180, 180]"}
	}
	if p.Price != nil && *p.Price < 0 {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if p.Services != nil {
		for _, s := range *p.Services {
			if s.Price < 0 || s.Quantity < 0 {
				return &ValidationError{Field: "services", Reason: "price and quantity must not be negative"}
			}
		}
	}
	return nil
}

// Apply validates p and copies every set field onto j.
func (p JobPatch) Apply(j *Job) error {
	if err := p.Validate(); err != nil {
		return err
	}

	setStr := func(dst **string, src *string) {
		if src != nil {
			v := *src
			*dst = &v
		}
	}
	setStr(&j.CustomerName, p.CustomerName)
	setStr(&j.Title, p.Title)
	setStr(&j.Description, p.Description)
	setStr(&j.Notes, p.Notes)
	setStr(&j.Address, p.Address)
	setStr(&j.CustomerPhone, p.CustomerPhone)

	if p.Latitude != nil {
		v := *p.Latitude
		j.Latitude = &v
	}
	if p.Longitude != nil {
		v := *p.Longitude
		j.Longitude = &v
	}
	if p.ScheduledAt != nil {
		v := p.ScheduledAt.UTC()
		// A rescheduled job deserves a fresh reminder.
		if j.ScheduledAt == nil || !j.ScheduledAt.Equal(v) {
			j.RemindedAt = nil
		}
		j.ScheduledAt = &v
	}
	if p.CompletedAt != nil {
		v := p.CompletedAt.UTC()
		j.CompletedAt = &v
	}
	if p.Price != nil {
		v := *p.Price
		j.Price = &v
	}
	if p.Status != nil {
		j.Status = *p.Status
	}
	if p.Priority != nil {
		j.Priority = *p.Priority
	}
	if p.JobType != nil {
		j.JobType = *p.JobType
	}
	if p.Services != nil {
		j.Services = slices.Clone(*p.Services)
	}
	return nil
}

// NewJob builds a job owned by userID from p over the default status,
// priority and type.
func NewJob(id, userID string, p JobPatch, now time.Time) (Job, error) {
	j := Job{
		ID:        id,
		UserID:    userID,
		Status:    StatusScheduled,
		Priority:  PriorityMedium,
		JobType:   JobTypeRepair,
		Services:  []ServiceItem{},
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	if err := p.Apply(&j); err != nil {
		return Job{}, err
	}
	return j, nil
}

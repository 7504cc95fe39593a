package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/coolcare/coolcare/internal/coolcare/domain"
	"github.com/coolcare/coolcare/internal/coolcare/store"
)

const jobColumns = `id, user_id, customer_name, title, description, notes, address, customer_phone,
	latitude, longitude, scheduled_at, completed_at, price, status, priority, job_type,
	services, reminded_at, created_at, updated_at`

type jobsRepo struct {
	db dbtx
}

func (r *jobsRepo) CreateJob(ctx context.Context, j domain.Job) error {
	services, err := json.Marshal(nonNil(j.Services))
	if err != nil {
		return fmt.Errorf("postgres: encode services: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO jobs (`+jobColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17::jsonb, $18, $19, $20)`,
		j.ID, j.UserID,
		nullString(j.CustomerName), nullString(j.Title), nullString(j.Description),
		nullString(j.Notes), nullString(j.Address), nullString(j.CustomerPhone),
		nullFloat(j.Latitude), nullFloat(j.Longitude),
		nullTime(j.ScheduledAt), nullTime(j.CompletedAt), nullFloat(j.Price),
		j.Status, j.Priority, j.JobType, string(services), nullTime(j.RemindedAt),
		j.CreatedAt.UTC(), j.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *jobsRepo) GetJob(ctx context.Context, id string) (domain.Job, error) {
	return scanJob(r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
}

func (r *jobsRepo) UpdateJob(ctx context.Context, j domain.Job) error {
	services, err := json.Marshal(nonNil(j.Services))
	if err != nil {
		return fmt.Errorf("postgres: encode services: %w", err)
	}

	return requireAffected(r.db.ExecContext(ctx, `
		UPDATE jobs SET
			user_id = $1, customer_name = $2, title = $3, description = $4, notes = $5, address = $6,
			customer_phone = $7, latitude = $8, longitude = $9, scheduled_at = $10, completed_at = $11,
			price = $12, status = $13, priority = $14, job_type = $15, services = $16::jsonb,
			reminded_at = $17, updated_at = $18
		WHERE id = $19`,
		j.UserID,
		nullString(j.CustomerName), nullString(j.Title), nullString(j.Description),
		nullString(j.Notes), nullString(j.Address), nullString(j.CustomerPhone),
		nullFloat(j.Latitude), nullFloat(j.Longitude),
		nullTime(j.ScheduledAt), nullTime(j.CompletedAt), nullFloat(j.Price),
		j.Status, j.Priority, j.JobType, string(services), nullTime(j.RemindedAt),
		j.UpdatedAt.UTC(), j.ID,
	))
}

func (r *jobsRepo) DeleteJob(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id))
}

func (r *jobsRepo) ListJobs(ctx context.Context, f store.JobFilter) ([]domain.Job, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		where = append(where, strings.Replace(cond, "?", "$"+strconv.Itoa(len(args)), 1))
	}
	if f.UserID != "" {
		add("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		add("status = ?", f.Status)
	}
	if f.From != nil {
		add("scheduled_at >= ?", f.From.UTC())
	}
	if f.To != nil {
		add("scheduled_at < ?", f.To.UTC())
	}

	query := `SELECT ` + jobColumns + ` FROM jobs`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	if f.Order == store.ScheduledAsc {
		query += ` ORDER BY scheduled_at ASC NULLS LAST, id ASC`
	} else {
		query += ` ORDER BY scheduled_at DESC NULLS LAST, id DESC`
	}
	return r.list(ctx, query, args...)
}

func (r *jobsRepo) ListReminderCandidates(ctx context.Context, from, to time.Time) ([]domain.Job, error) {
	return r.list(ctx, `
		SELECT `+jobColumns+` FROM jobs
		WHERE reminded_at IS NULL
		  AND status NOT IN ('completed', 'cancelled')
		  AND scheduled_at BETWEEN $1 AND $2
		ORDER BY scheduled_at ASC, id ASC`,
		from.UTC(), to.UTC(),
	)
}

func (r *jobsRepo) MarkJobReminded(ctx context.Context, id string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET reminded_at = $1 WHERE id = $2 AND reminded_at IS NULL`, at.UTC(), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

func (r *jobsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Job, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func scanJob(row scanner) (domain.Job, error) {
	var (
		j                                                domain.Job
		customerName, title, description, notes, address sql.NullString
		customerPhone                                    sql.NullString
		latitude, longitude, price                       sql.NullFloat64
		scheduledAt, completedAt, remindedAt             sql.NullTime
		services                                         []byte
	)
	err := row.Scan(
		&j.ID, &j.UserID, &customerName, &title, &description, &notes, &address, &customerPhone,
		&latitude, &longitude, &scheduledAt, &completedAt, &price, &j.Status, &j.Priority, &j.JobType,
		&services, &remindedAt, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return domain.Job{}, mapNotFound(err)
	}

	j.CustomerName = stringPtr(customerName)
	j.Title = stringPtr(title)
	j.Description = stringPtr(description)
	j.Notes = stringPtr(notes)
	j.Address = stringPtr(address)
	j.CustomerPhone = stringPtr(customerPhone)
	j.Latitude = floatPtr(latitude)
	j.Longitude = floatPtr(longitude)
	j.Price = floatPtr(price)
	j.ScheduledAt = timePtr(scheduledAt)
	j.CompletedAt = timePtr(completedAt)
	j.RemindedAt = timePtr(remindedAt)
	j.CreatedAt = j.CreatedAt.UTC()
	j.UpdatedAt = j.UpdatedAt.UTC()

	j.Services = []domain.ServiceItem{}
	if len(services) > 0 {
		if err := json.Unmarshal(services, &j.Services); err != nil {
			return domain.Job{}, fmt.Errorf("postgres: decode services: %w", err)
		}
	}
	return j, nil
}

func nonNil(items []domain.ServiceItem) []domain.ServiceItem {
	if items == nil {
		return []domain.ServiceItem{}
	}
	return items
}

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
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
	services, err := encodeServices(j.Services)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO jobs (`+jobColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.UserID,
		mapOptionalString(j.CustomerName), mapOptionalString(j.Title), mapOptionalString(j.Description),
		mapOptionalString(j.Notes), mapOptionalString(j.Address), mapOptionalString(j.CustomerPhone),
		mapOptionalFloat(j.Latitude), mapOptionalFloat(j.Longitude),
		encodeTimePtr(j.ScheduledAt), encodeTimePtr(j.CompletedAt), mapOptionalFloat(j.Price),
		j.Status, j.Priority, j.JobType, services, encodeTimePtr(j.RemindedAt),
		encodeTime(j.CreatedAt), encodeTime(j.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *jobsRepo) GetJob(ctx context.Context, id string) (domain.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	return scanJob(row)
}

func (r *jobsRepo) UpdateJob(ctx context.Context, j domain.Job) error {
	services, err := encodeServices(j.Services)
	if err != nil {
		return err
	}

	return requireAffected(r.db.ExecContext(ctx, `
		UPDATE jobs SET
			user_id = ?, customer_name = ?, title = ?, description = ?, notes = ?, address = ?,
			customer_phone = ?, latitude = ?, longitude = ?, scheduled_at = ?, completed_at = ?,
			price = ?, status = ?, priority = ?, job_type = ?, services = ?, reminded_at = ?,
			updated_at = ?
		WHERE id = ?`,
		j.UserID,
		mapOptionalString(j.CustomerName), mapOptionalString(j.Title), mapOptionalString(j.Description),
		mapOptionalString(j.Notes), mapOptionalString(j.Address), mapOptionalString(j.CustomerPhone),
		mapOptionalFloat(j.Latitude), mapOptionalFloat(j.Longitude),
		encodeTimePtr(j.ScheduledAt), encodeTimePtr(j.CompletedAt), mapOptionalFloat(j.Price),
		j.Status, j.Priority, j.JobType, services, encodeTimePtr(j.RemindedAt),
		encodeTime(j.UpdatedAt), j.ID,
	))
}

func (r *jobsRepo) DeleteJob(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id))
}

func (r *jobsRepo) ListJobs(ctx context.Context, f store.JobFilter) ([]domain.Job, error) {
	var (
		where []string
		args  []any
	)
	if f.UserID != "" {
		where = append(where, "user_id = ?")
		args = append(args, f.UserID)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}
	if f.From != nil {
		where = append(where, "scheduled_at >= ?")
		args = append(args, encodeTime(*f.From))
	}
	if f.To != nil {
		where = append(where, "scheduled_at < ?")
		args = append(args, encodeTime(*f.To))
	}

	query := `SELECT ` + jobColumns + ` FROM jobs`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	switch f.Order {
	case store.ScheduledAsc:
		query += ` ORDER BY scheduled_at ASC NULLS LAST, id ASC`
	default:
		query += ` ORDER BY scheduled_at DESC NULLS LAST, id DESC`
	}

	return r.list(ctx, query, args...)
}

func (r *jobsRepo) ListReminderCandidates(ctx context.Context, from, to time.Time) ([]domain.Job, error) {
	return r.list(ctx, `
		SELECT `+jobColumns+` FROM jobs
		WHERE reminded_at IS NULL
		  AND status NOT IN ('completed', 'cancelled')
		  AND scheduled_at >= ? AND scheduled_at <= ?
		ORDER BY scheduled_at ASC, id ASC`,
		encodeTime(from), encodeTime(to),
	)
}

func (r *jobsRepo) MarkJobReminded(ctx context.Context, id string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET reminded_at = ? WHERE id = ? AND reminded_at IS NULL`,
		encodeTime(at), id,
	)
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
		j                                                   domain.Job
		customerName, title, description, notes, address    sql.NullString
		customerPhone, scheduledAt, completedAt, remindedAt sql.NullString
		latitude, longitude, price                          sql.NullFloat64
		services, createdAt, updatedAt                      string
	)
	err := row.Scan(
		&j.ID, &j.UserID, &customerName, &title, &description, &notes, &address, &customerPhone,
		&latitude, &longitude, &scheduledAt, &completedAt, &price, &j.Status, &j.Priority, &j.JobType,
		&services, &remindedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return domain.Job{}, mapNotFound(err)
	}

	j.CustomerName = mapNullStringPtr(customerName)
	j.Title = mapNullStringPtr(title)
	j.Description = mapNullStringPtr(description)
	j.Notes = mapNullStringPtr(notes)
	j.Address = mapNullStringPtr(address)
	j.CustomerPhone = mapNullStringPtr(customerPhone)
	j.Latitude = mapNullFloatPtr(latitude)
	j.Longitude = mapNullFloatPtr(longitude)
	j.Price = mapNullFloatPtr(price)

	if j.ScheduledAt, err = decodeTimePtr(scheduledAt); err != nil {
		return domain.Job{}, err
	}
	if j.CompletedAt, err = decodeTimePtr(completedAt); err != nil {
		return domain.Job{}, err
	}
	if j.RemindedAt, err = decodeTimePtr(remindedAt); err != nil {
		return domain.Job{}, err
	}
	if j.CreatedAt, err = decodeTime(createdAt); err != nil {
		return domain.Job{}, err
	}
	if j.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return domain.Job{}, err
	}
	if j.Services, err = decodeServices(services); err != nil {
		return domain.Job{}, err
	}
	return j, nil
}

func encodeServices(items []domain.ServiceItem) (string, error) {
	if items == nil {
		items = []domain.ServiceItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("sqlite: encode services: %w", err)
	}
	return string(b), nil
}

func decodeServices(s string) ([]domain.ServiceItem, error) {
	items := []domain.ServiceItem{}
	if strings.TrimSpace(s) == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, fmt.Errorf("sqlite: decode services: %w", err)
	}
	return items, nil
}

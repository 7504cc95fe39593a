package postgres

import (
	"context"
	"database/sql"

	"github.com/coolcare/coolcare/internal/coolcare/domain"
)

const userColumns = `id, phone, name, email, role, is_active, is_verified, created_at, updated_at`

type usersRepo struct {
	db dbtx
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *usersRepo) GetUserByPhone(ctx context.Context, phone string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE phone = $1`, phone))
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, phone, name, email, role, is_active, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.Phone, nullString(u.Name), nullString(u.Email), u.Role,
		u.IsActive, u.IsVerified, u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	return requireAffected(r.db.ExecContext(ctx, `
		UPDATE users
		SET name = $1, email = $2, role = $3, is_active = $4, is_verified = $5, updated_at = $6
		WHERE id = $7`,
		nullString(u.Name), nullString(u.Email), u.Role, u.IsActive, u.IsVerified, u.UpdatedAt.UTC(), u.ID,
	))
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func scanUser(row scanner) (domain.User, error) {
	var (
		u           domain.User
		name, email sql.NullString
	)
	if err := row.Scan(&u.ID, &u.Phone, &name, &email, &u.Role, &u.IsActive, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Name = stringPtr(name)
	u.Email = stringPtr(email)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}

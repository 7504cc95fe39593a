package sqlite

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
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByPhone(ctx context.Context, phone string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE phone = ?`, phone)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, phone, name, email, role, is_active, is_verified, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Phone, mapOptionalString(u.Name), mapOptionalString(u.Email), u.Role,
		u.IsActive, u.IsVerified, encodeTime(u.CreatedAt), encodeTime(u.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	return requireAffected(r.db.ExecContext(ctx, `
		UPDATE users
		SET name = ?, email = ?, role = ?, is_active = ?, is_verified = ?, updated_at = ?
		WHERE id = ?`,
		mapOptionalString(u.Name), mapOptionalString(u.Email), u.Role,
		u.IsActive, u.IsVerified, encodeTime(u.UpdatedAt), u.ID,
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
		u                    domain.User
		name, email          sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(&u.ID, &u.Phone, &name, &email, &u.Role, &u.IsActive, &u.IsVerified, &createdAt, &updatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.Name = mapNullStringPtr(name)
	u.Email = mapNullStringPtr(email)
	if u.CreatedAt, err = decodeTime(createdAt); err != nil {
		return domain.User{}, err
	}
	if u.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

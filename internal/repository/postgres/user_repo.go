package postgres

import (
	"context"
	"database/sql"

	"planpact/internal/domain"
)

type userRepository struct {
	DB DBTX
}

func NewUserRepository(db DBTX) domain.UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `id, name, email, password_hash, is_active, last_login_at, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	u.Email = domain.NormalizeEmail(u.Email)
	err := r.DB.QueryRowContext(ctx, query, u.Name, u.Email, u.PasswordHash, u.IsActive, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, domain.NormalizeEmail(email)))
	if err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `
		UPDATE users
		SET name = $1, email = $2, password_hash = $3, is_active = $4, last_login_at = $5, updated_at = $6
		WHERE id = $7
	`
	u.Email = domain.NormalizeEmail(u.Email)
	result, err := r.DB.ExecContext(ctx, query, u.Name, u.Email, u.PasswordHash, u.IsActive, u.LastLoginAt, u.UpdatedAt, u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return notFound(err, domain.ErrUserNotFound)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanUser(s scanner) (*domain.User, error) {
	u := &domain.User{}
	var lastLogin sql.NullTime
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsActive, &lastLogin, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		u.LastLoginAt = &lastLogin.Time
	}
	return u, nil
}

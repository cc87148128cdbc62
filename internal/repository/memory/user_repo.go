package memory

import (
	"context"

	"planpact/internal/domain"
)

type userRepository struct {
	v view
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	return r.v.write(ctx, func(d *data) error {
		email := domain.NormalizeEmail(u.Email)
		for _, existing := range d.users {
			if existing.Email == email {
				return domain.ErrDuplicateEmail
			}
		}
		u.ID = newID()
		u.Email = email
		d.users = append(d.users, copyUser(u))
		return nil
	})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	var out *domain.User
	err := r.v.read(ctx, func(d *data) error {
		for _, u := range d.users {
			if u.Email == email {
				out = copyUser(u)
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
	return out, err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var out *domain.User
	err := r.v.read(ctx, func(d *data) error {
		for _, u := range d.users {
			if u.ID == id {
				out = copyUser(u)
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
	return out, err
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	return r.v.write(ctx, func(d *data) error {
		email := domain.NormalizeEmail(u.Email)
		idx := -1
		for i, existing := range d.users {
			if existing.ID == u.ID {
				idx = i
				continue
			}
			if existing.Email == email {
				return domain.ErrDuplicateEmail
			}
		}
		if idx < 0 {
			return domain.ErrUserNotFound
		}
		u.Email = email
		d.users[idx] = copyUser(u)
		return nil
	})
}

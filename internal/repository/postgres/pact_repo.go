package postgres

import (
	"context"
	"database/sql"

	"planpact/internal/domain"
)

type pactRepository struct {
	DB DBTX
}

func NewPactRepository(db DBTX) domain.PactRepository {
	return &pactRepository{DB: db}
}

const pactColumns = `p.id, p.host_id, p.title, p.description, p.event_date, p.event_time, p.location, p.address,
	p.rsvp_deadline, p.send_reminders, p.allow_plus_ones, p.max_attendees, p.status, p.created_at, p.updated_at`

func (r *pactRepository) Create(ctx context.Context, p *domain.Pact) error {
	query := `
		INSERT INTO pacts (host_id, title, description, event_date, event_time, location, address,
			rsvp_deadline, send_reminders, allow_plus_ones, max_attendees, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		p.HostID, p.Title, p.Description, p.EventDate, p.EventTime, p.Location, p.Address,
		p.RSVPDeadline, p.SendReminders, p.AllowPlusOnes, p.MaxAttendees, string(p.Status), p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
}

func (r *pactRepository) GetByID(ctx context.Context, id string) (*domain.Pact, error) {
	query := `SELECT ` + pactColumns + ` FROM pacts p WHERE p.id = $1`
	p, err := scanPact(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, domain.ErrPactNotFound)
	}
	return p, nil
}

func (r *pactRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Pact, error) {
	query := `SELECT ` + pactColumns + ` FROM pacts p WHERE p.id = $1 FOR UPDATE`
	p, err := scanPact(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, domain.ErrPactNotFound)
	}
	return p, nil
}

func (r *pactRepository) ListForUser(ctx context.Context, userID, email string) ([]*domain.Pact, error) {
	query := `
		SELECT ` + pactColumns + `
		FROM pacts p
		WHERE p.host_id = $1
		   OR EXISTS (
			SELECT 1 FROM guests g
			WHERE g.pact_id = p.id AND (g.user_id = $1 OR g.email = $2)
		   )
		ORDER BY p.created_at, p.id
	`
	rows, err := r.DB.QueryContext(ctx, query, userID, domain.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	pacts := make([]*domain.Pact, 0)
	for rows.Next() {
		p, err := scanPact(rows)
		if err != nil {
			return nil, err
		}
		pacts = append(pacts, p)
	}
	return pacts, rows.Err()
}

func (r *pactRepository) Update(ctx context.Context, p *domain.Pact) error {
	query := `
		UPDATE pacts
		SET title = $1, description = $2, event_date = $3, event_time = $4, location = $5, address = $6,
			rsvp_deadline = $7, send_reminders = $8, allow_plus_ones = $9, max_attendees = $10,
			status = $11, updated_at = $12
		WHERE id = $13
	`
	result, err := r.DB.ExecContext(ctx, query,
		p.Title, p.Description, p.EventDate, p.EventTime, p.Location, p.Address,
		p.RSVPDeadline, p.SendReminders, p.AllowPlusOnes, p.MaxAttendees,
		string(p.Status), p.UpdatedAt, p.ID,
	)
	if err != nil {
		return notFound(err, domain.ErrPactNotFound)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrPactNotFound
	}
	return nil
}

// Delete relies on ON DELETE CASCADE to remove guests and RSVPs.
func (r *pactRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM pacts WHERE id = $1`, id)
	if err != nil {
		return notFound(err, domain.ErrPactNotFound)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrPactNotFound
	}
	return nil
}

func scanPact(s scanner) (*domain.Pact, error) {
	p := &domain.Pact{}
	var deadline sql.NullTime
	var maxAttendees sql.NullInt64
	var status string
	err := s.Scan(
		&p.ID, &p.HostID, &p.Title, &p.Description, &p.EventDate, &p.EventTime, &p.Location, &p.Address,
		&deadline, &p.SendReminders, &p.AllowPlusOnes, &maxAttendees, &status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Status = domain.PactStatus(status)
	if deadline.Valid {
		p.RSVPDeadline = &deadline.Time
	}
	if maxAttendees.Valid {
		n := int(maxAttendees.Int64)
		p.MaxAttendees = &n
	}
	return p, nil
}

package postgres

import (
	"context"
	"database/sql"

	"planpact/internal/domain"
)

type rsvpRepository struct {
	DB DBTX
}

func NewRSVPRepository(db DBTX) domain.RSVPRepository {
	return &rsvpRepository{DB: db}
}

func (r *rsvpRepository) Create(ctx context.Context, rs *domain.RSVP) error {
	query := `
		INSERT INTO rsvps (guest_id, pact_id, status, plus_ones, message, responded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, rs.GuestID, rs.PactID, string(rs.Status), rs.PlusOnes, rs.Message, rs.RespondedAt).Scan(&rs.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *rsvpRepository) GetByGuestID(ctx context.Context, guestID string) (*domain.RSVP, error) {
	query := `
		SELECT id, guest_id, pact_id, status, plus_ones, message, responded_at
		FROM rsvps
		WHERE guest_id = $1
	`
	rs := &domain.RSVP{}
	var status string
	var message sql.NullString
	var respondedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, guestID).Scan(&rs.ID, &rs.GuestID, &rs.PactID, &status, &rs.PlusOnes, &message, &respondedAt)
	if err != nil {
		return nil, notFound(err, domain.ErrRSVPNotFound)
	}
	rs.Status = domain.RSVPStatus(status)
	if message.Valid {
		rs.Message = &message.String
	}
	if respondedAt.Valid {
		rs.RespondedAt = &respondedAt.Time
	}
	return rs, nil
}

func (r *rsvpRepository) Update(ctx context.Context, rs *domain.RSVP) error {
	query := `
		UPDATE rsvps
		SET status = $1, plus_ones = $2, message = $3, responded_at = $4
		WHERE id = $5
	`
	result, err := r.DB.ExecContext(ctx, query, string(rs.Status), rs.PlusOnes, rs.Message, rs.RespondedAt, rs.ID)
	if err != nil {
		return notFound(err, domain.ErrRSVPNotFound)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrRSVPNotFound
	}
	return nil
}

func (r *rsvpRepository) ListByPactID(ctx context.Context, pactID string) ([]*domain.RSVPWithGuest, error) {
	query := `
		SELECT r.id, r.guest_id, r.pact_id, r.status, r.plus_ones, r.message, r.responded_at, g.name, g.email
		FROM rsvps r
		JOIN guests g ON g.id = r.guest_id
		WHERE r.pact_id = $1
		ORDER BY r.responded_at DESC NULLS LAST, g.name
	`
	rows, err := r.DB.QueryContext(ctx, query, pactID)
	if err != nil {
		return nil, notFound(err, domain.ErrPactNotFound)
	}
	defer rows.Close()
	list := make([]*domain.RSVPWithGuest, 0)
	for rows.Next() {
		rs := &domain.RSVP{}
		item := &domain.RSVPWithGuest{RSVP: rs}
		var status string
		var message sql.NullString
		var respondedAt sql.NullTime
		if err := rows.Scan(&rs.ID, &rs.GuestID, &rs.PactID, &status, &rs.PlusOnes, &message, &respondedAt, &item.GuestName, &item.GuestEmail); err != nil {
			return nil, err
		}
		rs.Status = domain.RSVPStatus(status)
		if message.Valid {
			rs.Message = &message.String
		}
		if respondedAt.Valid {
			rs.RespondedAt = &respondedAt.Time
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

package postgres

import (
	"context"
	"database/sql"

	"planpact/internal/domain"
)

type guestRepository struct {
	DB DBTX
}

func NewGuestRepository(db DBTX) domain.GuestRepository {
	return &guestRepository{DB: db}
}

const guestColumns = `g.id, g.pact_id, g.email, g.name, g.user_id, g.is_host, g.invited_at`

// Upsert keeps user_id and is_host of an existing row; xmax = 0 only for freshly inserted tuples.
func (r *guestRepository) Upsert(ctx context.Context, g *domain.Guest) (bool, error) {
	query := `
		INSERT INTO guests (pact_id, email, name, user_id, is_host, invited_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (pact_id, email) DO UPDATE
		SET name = EXCLUDED.name, invited_at = EXCLUDED.invited_at
		RETURNING id, user_id, is_host, (xmax = 0) AS inserted
	`
	g.Email = domain.NormalizeEmail(g.Email)
	var userID sql.NullString
	var inserted bool
	err := r.DB.QueryRowContext(ctx, query, g.PactID, g.Email, g.Name, g.UserID, g.IsHost, g.InvitedAt).
		Scan(&g.ID, &userID, &g.IsHost, &inserted)
	if err != nil {
		return false, err
	}
	g.UserID = nil
	if userID.Valid {
		g.UserID = &userID.String
	}
	return inserted, nil
}

func (r *guestRepository) GetByPactAndUser(ctx context.Context, pactID, userID string) (*domain.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guests g WHERE g.pact_id = $1 AND g.user_id = $2`
	g, err := scanGuest(r.DB.QueryRowContext(ctx, query, pactID, userID))
	if err != nil {
		return nil, notFound(err, domain.ErrGuestNotFound)
	}
	return g, nil
}

func (r *guestRepository) GetByPactAndEmail(ctx context.Context, pactID, email string) (*domain.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guests g WHERE g.pact_id = $1 AND g.email = $2`
	g, err := scanGuest(r.DB.QueryRowContext(ctx, query, pactID, domain.NormalizeEmail(email)))
	if err != nil {
		return nil, notFound(err, domain.ErrGuestNotFound)
	}
	return g, nil
}

func (r *guestRepository) ListByPactID(ctx context.Context, pactID string) ([]*domain.GuestWithRSVP, error) {
	query := `
		SELECT ` + guestColumns + `,
			r.id, r.status, r.plus_ones, r.message, r.responded_at
		FROM guests g
		LEFT JOIN rsvps r ON r.guest_id = g.id
		WHERE g.pact_id = $1
		ORDER BY g.name, g.invited_at
	`
	rows, err := r.DB.QueryContext(ctx, query, pactID)
	if err != nil {
		return nil, notFound(err, domain.ErrPactNotFound)
	}
	defer rows.Close()
	list := make([]*domain.GuestWithRSVP, 0)
	for rows.Next() {
		g := &domain.Guest{}
		var userID, rsvpID, status, message sql.NullString
		var plusOnes sql.NullInt64
		var respondedAt sql.NullTime
		if err := rows.Scan(
			&g.ID, &g.PactID, &g.Email, &g.Name, &userID, &g.IsHost, &g.InvitedAt,
			&rsvpID, &status, &plusOnes, &message, &respondedAt,
		); err != nil {
			return nil, err
		}
		if userID.Valid {
			g.UserID = &userID.String
		}
		item := &domain.GuestWithRSVP{Guest: g}
		if rsvpID.Valid {
			item.RSVP = &domain.RSVP{
				ID:       rsvpID.String,
				GuestID:  g.ID,
				PactID:   g.PactID,
				Status:   domain.RSVPStatus(status.String),
				PlusOnes: int(plusOnes.Int64),
			}
			if message.Valid {
				item.RSVP.Message = &message.String
			}
			if respondedAt.Valid {
				item.RSVP.RespondedAt = &respondedAt.Time
			}
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

func scanGuest(s scanner) (*domain.Guest, error) {
	g := &domain.Guest{}
	var userID sql.NullString
	if err := s.Scan(&g.ID, &g.PactID, &g.Email, &g.Name, &userID, &g.IsHost, &g.InvitedAt); err != nil {
		return nil, err
	}
	if userID.Valid {
		g.UserID = &userID.String
	}
	return g, nil
}

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/streamchat-api/internal/domain/entity"
	"github.com/oksasatya/streamchat-api/internal/domain/repository"
)

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO contacts (owner_id, contact_id)
		VALUES ($1, $2)
		RETURNING id, added_at
	`, c.OwnerID, c.ContactID)

	if err := row.Scan(&c.ID, &c.AddedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *ContactRepository) Exists(ctx context.Context, ownerID, contactID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM contacts WHERE owner_id = $1 AND contact_id = $2
		)
	`, ownerID, contactID).Scan(&exists)
	return exists, err
}

// ListByOwner joins edges with the target users at the store level. Ordering
// by added_at then id keeps the result deterministic for a fixed store state.
func (r *ContactRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.ContactListing, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.contact_id, u.name, u.email, u.phone_number, u.profile_photo, c.added_at
		FROM contacts c
		JOIN users u ON u.id = c.contact_id
		WHERE c.owner_id = $1
		ORDER BY c.added_at, c.id
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.ContactListing, 0)
	for rows.Next() {
		var l entity.ContactListing
		if err := rows.Scan(&l.ContactID, &l.Name, &l.Email, &l.PhoneNumber,
			&l.ProfilePhoto, &l.AddedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *ContactRepository) Delete(ctx context.Context, ownerID, contactID string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM contacts WHERE owner_id = $1 AND contact_id = $2
	`, ownerID, contactID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ContactRepository = (*ContactRepository)(nil)

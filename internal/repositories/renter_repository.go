package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/nguyensartoro/property-management-system-backend/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type RenterRepository interface {
	Create(ctx context.Context, rt *models.Renter) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Renter, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Renter, error)
	ListByRoomID(ctx context.Context, roomID uuid.UUID) ([]*models.Renter, error)
	ListAll(ctx context.Context) ([]*models.Renter, error)
	Update(ctx context.Context, rt *models.Renter) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type renterRepo struct {
	db DB
}

func NewRenterRepository(db DB) RenterRepository {
	return &renterRepo{db: db}
}

func baseSelectRenter() string {
	return `
        SELECT id, room_id, user_id, name, email, phone, created_at, updated_at
        FROM renters
    `
}

func scanRenter(row pgx.Row) (*models.Renter, error) {
	var rt models.Renter
	err := row.Scan(
		&rt.ID,
		&rt.RoomID,
		&rt.UserID,
		&rt.Name,
		&rt.Email,
		&rt.Phone,
		&rt.CreatedAt,
		&rt.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rt, nil
}

func (r *renterRepo) Create(ctx context.Context, rt *models.Renter) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO renters (id, room_id, user_id, name, email, phone, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,NOW(),NOW())
    `,
		rt.ID,
		rt.RoomID,
		rt.UserID,
		rt.Name,
		rt.Email,
		rt.Phone,
	)
	return err
}

func (r *renterRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Renter, error) {
	row := r.db.QueryRow(ctx, baseSelectRenter()+" WHERE id=$1", id)
	return scanRenter(row)
}

func (r *renterRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Renter, error) {
	row := r.db.QueryRow(ctx, baseSelectRenter()+" WHERE user_id=$1", userID)
	return scanRenter(row)
}

func (r *renterRepo) ListByRoomID(ctx context.Context, roomID uuid.UUID) ([]*models.Renter, error) {
	rows, err := r.db.Query(ctx, baseSelectRenter()+" WHERE room_id=$1 ORDER BY created_at", roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Renter
	for rows.Next() {
		rt, err := scanRenter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r *renterRepo) ListAll(ctx context.Context) ([]*models.Renter, error) {
	rows, err := r.db.Query(ctx, baseSelectRenter()+" ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Renter
	for rows.Next() {
		rt, err := scanRenter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r *renterRepo) Update(ctx context.Context, rt *models.Renter) error {
	_, err := r.db.Exec(ctx, `
        UPDATE renters SET room_id=$1, user_id=$2, name=$3, email=$4, phone=$5, updated_at=NOW()
        WHERE id=$6
    `,
		rt.RoomID,
		rt.UserID,
		rt.Name,
		rt.Email,
		rt.Phone,
		rt.ID,
	)
	return err
}

func (r *renterRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM renters WHERE id=$1`, id)
	return err
}

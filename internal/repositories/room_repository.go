package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/nguyensartoro/property-management-system-backend/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type RoomRepository interface {
	Create(ctx context.Context, rm *models.Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error)

	// GetByIDForUpdate takes a row lock; only meaningful when the
	// repository is bound to a transaction.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Room, error)

	ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.Room, error)

	Update(ctx context.Context, rm *models.Room) error
	UpdateIfVersion(ctx context.Context, rm *models.Room, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Room) error) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.RoomStatusType) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type roomRepo struct {
	*BaseVersionedRepo[*models.Room]
	db DB
}

func NewRoomRepository(db DB) RoomRepository {
	r := &roomRepo{db: db}
	selectStmt := baseSelectRoom() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanRoom)
	return r
}

func baseSelectRoom() string {
	return `
        SELECT id, property_id, number, floor, price, status,
               created_at, updated_at, row_version
        FROM rooms
    `
}

func scanRoom(row pgx.Row) (*models.Room, error) {
	var rm models.Room
	err := row.Scan(
		&rm.ID,
		&rm.PropertyID,
		&rm.Number,
		&rm.Floor,
		&rm.Price,
		&rm.Status,
		&rm.CreatedAt,
		&rm.UpdatedAt,
		&rm.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rm, nil
}

func (r *roomRepo) Create(ctx context.Context, rm *models.Room) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO rooms (id, property_id, number, floor, price, status,
                           created_at, updated_at, row_version)
        VALUES ($1,$2,$3,$4,$5,$6,NOW(),NOW(),1)
    `,
		rm.ID,
		rm.PropertyID,
		rm.Number,
		rm.Floor,
		rm.Price,
		rm.Status,
	)
	return err
}

func (r *roomRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *roomRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	row := r.db.QueryRow(ctx, baseSelectRoom()+" WHERE id=$1 FOR UPDATE", id)
	return scanRoom(row)
}

func (r *roomRepo) ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.Room, error) {
	rows, err := r.db.Query(ctx, baseSelectRoom()+" WHERE property_id=$1 ORDER BY number", propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

func (r *roomRepo) Update(ctx context.Context, rm *models.Room) error {
	_, err := r.update(ctx, rm, false, 0)
	return err
}

func (r *roomRepo) UpdateIfVersion(ctx context.Context, rm *models.Room, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, rm, true, expected)
}

func (r *roomRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Room) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *roomRepo) update(ctx context.Context, rm *models.Room, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
        UPDATE rooms SET
            number=$1, floor=$2, price=$3, status=$4, updated_at=NOW()
    `
	args := []any{rm.Number, rm.Floor, rm.Price, rm.Status}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$5 AND row_version=$6`
		args = append(args, rm.ID, expected)
	} else {
		sql += ` WHERE id=$5`
		args = append(args, rm.ID)
	}

	return r.db.Exec(ctx, sql, args...)
}

func (r *roomRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.RoomStatusType) error {
	_, err := r.db.Exec(ctx, `
        UPDATE rooms SET status=$1, row_version=row_version+1, updated_at=NOW()
        WHERE id=$2
    `, status, id)
	return err
}

func (r *roomRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM rooms WHERE id=$1`, id)
	return err
}

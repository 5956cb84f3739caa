package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/nguyensartoro/property-management-system-backend/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type ContractRepository interface {
	Create(ctx context.Context, c *models.Contract) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Contract, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Contract, error)

	ListByRoomID(ctx context.Context, roomID uuid.UUID) ([]*models.Contract, error)
	ListByRenterID(ctx context.Context, renterID uuid.UUID) ([]*models.Contract, error)
	ListActiveByRoomID(ctx context.Context, roomID uuid.UUID) ([]*models.Contract, error)

	// ListActiveEndedBefore feeds the expiry sweep: ACTIVE contracts whose
	// end date has passed.
	ListActiveEndedBefore(ctx context.Context, cutoff time.Time) ([]*models.Contract, error)

	Update(ctx context.Context, c *models.Contract) error
	UpdateIfVersion(ctx context.Context, c *models.Contract, expected int64) (pgconn.CommandTag, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type contractRepo struct {
	db DB
}

func NewContractRepository(db DB) ContractRepository {
	return &contractRepo{db: db}
}

func baseSelectContract() string {
	return `
        SELECT id, room_id, renter_ids, start_date, end_date, amount, status,
               termination_reason, termination_date,
               created_at, updated_at, row_version
        FROM contracts
    `
}

func scanContract(row pgx.Row) (*models.Contract, error) {
	var c models.Contract
	var renterIDs []uuid.UUID
	err := row.Scan(
		&c.ID,
		&c.RoomID,
		&renterIDs,
		&c.StartDate,
		&c.EndDate,
		&c.Amount,
		&c.Status,
		&c.TerminationReason,
		&c.TerminationDate,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	c.RenterIDs = renterIDs
	return &c, nil
}

func (r *contractRepo) Create(ctx context.Context, c *models.Contract) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO contracts (
            id, room_id, renter_ids, start_date, end_date, amount, status,
            termination_reason, termination_date,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,NULL,NULL,NOW(),NOW(),1)
    `,
		c.ID,
		c.RoomID,
		c.RenterIDs,
		c.StartDate,
		c.EndDate,
		c.Amount,
		c.Status,
	)
	return err
}

func (r *contractRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	row := r.db.QueryRow(ctx, baseSelectContract()+" WHERE id=$1", id)
	return scanContract(row)
}

func (r *contractRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	row := r.db.QueryRow(ctx, baseSelectContract()+" WHERE id=$1 FOR UPDATE", id)
	return scanContract(row)
}

func (r *contractRepo) ListByRoomID(ctx context.Context, roomID uuid.UUID) ([]*models.Contract, error) {
	return r.list(ctx, baseSelectContract()+" WHERE room_id=$1 ORDER BY created_at", roomID)
}

func (r *contractRepo) ListByRenterID(ctx context.Context, renterID uuid.UUID) ([]*models.Contract, error) {
	return r.list(ctx, baseSelectContract()+" WHERE $1 = ANY(renter_ids) ORDER BY created_at", renterID)
}

func (r *contractRepo) ListActiveByRoomID(ctx context.Context, roomID uuid.UUID) ([]*models.Contract, error) {
	return r.list(ctx, baseSelectContract()+" WHERE room_id=$1 AND status=$2 ORDER BY created_at",
		roomID, models.ContractStatusActive)
}

func (r *contractRepo) ListActiveEndedBefore(ctx context.Context, cutoff time.Time) ([]*models.Contract, error) {
	return r.list(ctx, baseSelectContract()+" WHERE status=$1 AND end_date < $2 ORDER BY end_date",
		models.ContractStatusActive, cutoff)
}

func (r *contractRepo) list(ctx context.Context, query string, args ...any) ([]*models.Contract, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *contractRepo) Update(ctx context.Context, c *models.Contract) error {
	_, err := r.update(ctx, c, false, 0)
	return err
}

func (r *contractRepo) UpdateIfVersion(ctx context.Context, c *models.Contract, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, c, true, expected)
}

func (r *contractRepo) update(ctx context.Context, c *models.Contract, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
        UPDATE contracts SET
            renter_ids=$1, start_date=$2, end_date=$3, amount=$4, status=$5,
            termination_reason=$6, termination_date=$7, updated_at=NOW()
    `
	args := []any{
		c.RenterIDs, c.StartDate, c.EndDate, c.Amount, c.Status,
		c.TerminationReason, c.TerminationDate,
	}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$8 AND row_version=$9`
		args = append(args, c.ID, expected)
	} else {
		sql += ` WHERE id=$8`
		args = append(args, c.ID)
	}

	return r.db.Exec(ctx, sql, args...)
}

func (r *contractRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM contracts WHERE id=$1`, id)
	return err
}

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

type PaymentRepository interface {
	Create(ctx context.Context, p *models.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Payment, error)

	ListByRenterID(ctx context.Context, renterID uuid.UUID) ([]*models.Payment, error)
	ListByContractID(ctx context.Context, contractID uuid.UUID) ([]*models.Payment, error)
	CountByContractID(ctx context.Context, contractID uuid.UUID) (int, error)

	// ListPendingDueBefore feeds the overdue sweep.
	ListPendingDueBefore(ctx context.Context, cutoff time.Time) ([]*models.Payment, error)

	Update(ctx context.Context, p *models.Payment) error
	UpdateIfVersion(ctx context.Context, p *models.Payment, expected int64) (pgconn.CommandTag, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type paymentRepo struct {
	db DB
}

func NewPaymentRepository(db DB) PaymentRepository {
	return &paymentRepo{db: db}
}

func baseSelectPayment() string {
	return `
        SELECT id, renter_id, contract_id, amount, due_date, status,
               paid_date, reference, created_at, updated_at, row_version
        FROM payments
    `
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	err := row.Scan(
		&p.ID,
		&p.RenterID,
		&p.ContractID,
		&p.Amount,
		&p.DueDate,
		&p.Status,
		&p.PaidDate,
		&p.Reference,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepo) Create(ctx context.Context, p *models.Payment) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO payments (
            id, renter_id, contract_id, amount, due_date, status,
            paid_date, reference, created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW(),NOW(),1)
    `,
		p.ID,
		p.RenterID,
		p.ContractID,
		p.Amount,
		p.DueDate,
		p.Status,
		p.PaidDate,
		p.Reference,
	)
	return err
}

func (r *paymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	row := r.db.QueryRow(ctx, baseSelectPayment()+" WHERE id=$1", id)
	return scanPayment(row)
}

func (r *paymentRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	row := r.db.QueryRow(ctx, baseSelectPayment()+" WHERE id=$1 FOR UPDATE", id)
	return scanPayment(row)
}

func (r *paymentRepo) ListByRenterID(ctx context.Context, renterID uuid.UUID) ([]*models.Payment, error) {
	return r.list(ctx, baseSelectPayment()+" WHERE renter_id=$1 ORDER BY due_date", renterID)
}

func (r *paymentRepo) ListByContractID(ctx context.Context, contractID uuid.UUID) ([]*models.Payment, error) {
	return r.list(ctx, baseSelectPayment()+" WHERE contract_id=$1 ORDER BY due_date", contractID)
}

func (r *paymentRepo) CountByContractID(ctx context.Context, contractID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM payments WHERE contract_id=$1`, contractID,
	).Scan(&n)
	return n, err
}

func (r *paymentRepo) ListPendingDueBefore(ctx context.Context, cutoff time.Time) ([]*models.Payment, error) {
	return r.list(ctx, baseSelectPayment()+" WHERE status=$1 AND due_date < $2 ORDER BY due_date",
		models.PaymentStatusPending, cutoff)
}

func (r *paymentRepo) list(ctx context.Context, query string, args ...any) ([]*models.Payment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *paymentRepo) Update(ctx context.Context, p *models.Payment) error {
	_, err := r.update(ctx, p, false, 0)
	return err
}

func (r *paymentRepo) UpdateIfVersion(ctx context.Context, p *models.Payment, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, p, true, expected)
}

func (r *paymentRepo) update(ctx context.Context, p *models.Payment, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
        UPDATE payments SET
            contract_id=$1, amount=$2, due_date=$3, status=$4,
            paid_date=$5, reference=$6, updated_at=NOW()
    `
	args := []any{p.ContractID, p.Amount, p.DueDate, p.Status, p.PaidDate, p.Reference}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$7 AND row_version=$8`
		args = append(args, p.ID, expected)
	} else {
		sql += ` WHERE id=$7`
		args = append(args, p.ID)
	}

	return r.db.Exec(ctx, sql, args...)
}

func (r *paymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM payments WHERE id=$1`, id)
	return err
}

package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/nguyensartoro/property-management-system-backend/internal/models"
)

type DocumentRepository interface {
	Create(ctx context.Context, d *models.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error)
	ListByRenterID(ctx context.Context, renterID uuid.UUID) ([]*models.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentRepo struct {
	db DB
}

func NewDocumentRepository(db DB) DocumentRepository {
	return &documentRepo{db: db}
}

func baseSelectDocument() string {
	return `
        SELECT id, renter_id, room_id, name, type, path, created_at
        FROM documents
    `
}

func scanDocument(row pgx.Row) (*models.Document, error) {
	var d models.Document
	err := row.Scan(
		&d.ID,
		&d.RenterID,
		&d.RoomID,
		&d.Name,
		&d.Type,
		&d.Path,
		&d.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *documentRepo) Create(ctx context.Context, d *models.Document) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO documents (id, renter_id, room_id, name, type, path, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,NOW())
    `,
		d.ID,
		d.RenterID,
		d.RoomID,
		d.Name,
		d.Type,
		d.Path,
	)
	return err
}

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	row := r.db.QueryRow(ctx, baseSelectDocument()+" WHERE id=$1", id)
	return scanDocument(row)
}

func (r *documentRepo) ListByRenterID(ctx context.Context, renterID uuid.UUID) ([]*models.Document, error) {
	rows, err := r.db.Query(ctx, baseSelectDocument()+" WHERE renter_id=$1 ORDER BY created_at DESC", renterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *documentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id=$1`, id)
	return err
}

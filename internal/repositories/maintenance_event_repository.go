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

type MaintenanceEventRepository interface {
	Create(ctx context.Context, m *models.MaintenanceEvent) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceEvent, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.MaintenanceEvent, error)

	ListByRoomID(ctx context.Context, roomID uuid.UUID) ([]*models.MaintenanceEvent, error)
	CountInProgressByRoomID(ctx context.Context, roomID uuid.UUID) (int, error)

	Update(ctx context.Context, m *models.MaintenanceEvent) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type maintenanceEventRepo struct {
	db DB
}

func NewMaintenanceEventRepository(db DB) MaintenanceEventRepository {
	return &maintenanceEventRepo{db: db}
}

func baseSelectMaintenanceEvent() string {
	return `
        SELECT id, room_id, title, description, status,
               reported_date, completed_date, created_at, updated_at
        FROM maintenance_events
    `
}

func scanMaintenanceEvent(row pgx.Row) (*models.MaintenanceEvent, error) {
	var m models.MaintenanceEvent
	err := row.Scan(
		&m.ID,
		&m.RoomID,
		&m.Title,
		&m.Description,
		&m.Status,
		&m.ReportedDate,
		&m.CompletedDate,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *maintenanceEventRepo) Create(ctx context.Context, m *models.MaintenanceEvent) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO maintenance_events (
            id, room_id, title, description, status,
            reported_date, completed_date, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,NOW(),NOW())
    `,
		m.ID,
		m.RoomID,
		m.Title,
		m.Description,
		m.Status,
		m.ReportedDate,
		m.CompletedDate,
	)
	return err
}

func (r *maintenanceEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceEvent, error) {
	row := r.db.QueryRow(ctx, baseSelectMaintenanceEvent()+" WHERE id=$1", id)
	return scanMaintenanceEvent(row)
}

func (r *maintenanceEventRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.MaintenanceEvent, error) {
	row := r.db.QueryRow(ctx, baseSelectMaintenanceEvent()+" WHERE id=$1 FOR UPDATE", id)
	return scanMaintenanceEvent(row)
}

func (r *maintenanceEventRepo) ListByRoomID(ctx context.Context, roomID uuid.UUID) ([]*models.MaintenanceEvent, error) {
	rows, err := r.db.Query(ctx, baseSelectMaintenanceEvent()+" WHERE room_id=$1 ORDER BY reported_date DESC", roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.MaintenanceEvent
	for rows.Next() {
		m, err := scanMaintenanceEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *maintenanceEventRepo) CountInProgressByRoomID(ctx context.Context, roomID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM maintenance_events WHERE room_id=$1 AND status=$2`,
		roomID, models.MaintenanceStatusInProgress,
	).Scan(&n)
	return n, err
}

func (r *maintenanceEventRepo) Update(ctx context.Context, m *models.MaintenanceEvent) error {
	_, err := r.db.Exec(ctx, `
        UPDATE maintenance_events SET
            title=$1, description=$2, status=$3,
            reported_date=$4, completed_date=$5, updated_at=NOW()
        WHERE id=$6
    `,
		m.Title,
		m.Description,
		m.Status,
		m.ReportedDate,
		m.CompletedDate,
		m.ID,
	)
	return err
}

func (r *maintenanceEventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM maintenance_events WHERE id=$1`, id)
	return err
}

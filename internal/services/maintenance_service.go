package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nguyensartoro/property-management-system-backend/internal/dtos"
	"github.com/nguyensartoro/property-management-system-backend/internal/models"
	"github.com/nguyensartoro/property-management-system-backend/internal/repositories"
	"github.com/nguyensartoro/property-management-system-backend/internal/security"
	"github.com/nguyensartoro/property-management-system-backend/internal/utils"
)

// MaintenanceService runs the maintenance half of the room lifecycle.
// An event entering IN_PROGRESS puts its room into MAINTENANCE whatever
// the room was doing; leaving IN_PROGRESS hands the room back to
// AVAILABLE once no other event on the room is still in progress.
type MaintenanceService struct {
	store repositories.Store
	eval  *security.PermissionEvaluator
}

func NewMaintenanceService(store repositories.Store, eval *security.PermissionEvaluator) *MaintenanceService {
	return &MaintenanceService{store: store, eval: eval}
}

func (s *MaintenanceService) GetMaintenanceEvent(ctx context.Context, subject *security.Subject, id uuid.UUID) (*models.MaintenanceEvent, error) {
	if err := s.eval.Authorize(ctx, subject, security.ResourceMaintenance, security.ActionRead, &id); err != nil {
		return nil, err
	}
	event, err := s.store.Maintenance().GetByID(ctx, id)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if event == nil {
		return nil, utils.NewNotFound("Maintenance event")
	}
	return event, nil
}

func (s *MaintenanceService) ListMaintenanceEventsByRoom(ctx context.Context, subject *security.Subject, roomID uuid.UUID) ([]*models.MaintenanceEvent, error) {
	if err := s.eval.Authorize(ctx, subject, security.ResourceRoom, security.ActionRead, &roomID); err != nil {
		return nil, err
	}
	events, err := s.store.Maintenance().ListByRoomID(ctx, roomID)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	return events, nil
}

func (s *MaintenanceService) CreateMaintenanceEvent(ctx context.Context, subject *security.Subject, req dtos.CreateMaintenanceEventRequest) (*models.MaintenanceEvent, error) {
	if err := s.eval.Authorize(ctx, subject, security.ResourceMaintenance, security.ActionCreate, &req.RoomID); err != nil {
		return nil, err
	}

	status := models.MaintenanceStatusPending
	if req.Status != nil {
		status = *req.Status
	}

	event := &models.MaintenanceEvent{
		ID:           uuid.New(),
		RoomID:       req.RoomID,
		Title:        req.Title,
		Description:  req.Description,
		Status:       status,
		ReportedDate: time.Now(),
	}

	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		room, err := tx.Rooms().GetByIDForUpdate(ctx, req.RoomID)
		if err != nil {
			return utils.NewInternal(err)
		}
		if room == nil {
			return utils.NewNotFound("Room")
		}

		if err := tx.Maintenance().Create(ctx, event); err != nil {
			return utils.NewInternal(err)
		}
		if event.Status == models.MaintenanceStatusInProgress {
			if err := tx.Rooms().UpdateStatus(ctx, room.ID, models.RoomStatusMaintenance); err != nil {
				return utils.NewInternal(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *MaintenanceService) UpdateMaintenanceEvent(ctx context.Context, subject *security.Subject, id uuid.UUID, req dtos.UpdateMaintenanceEventRequest) (*models.MaintenanceEvent, error) {
	if err := s.eval.Authorize(ctx, subject, security.ResourceMaintenance, security.ActionUpdate, &id); err != nil {
		return nil, err
	}

	var updated *models.MaintenanceEvent
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		event, err := tx.Maintenance().GetByIDForUpdate(ctx, id)
		if err != nil {
			return utils.NewInternal(err)
		}
		if event == nil {
			return utils.NewNotFound("Maintenance event")
		}

		previous := event.Status

		if req.Title != nil {
			event.Title = *req.Title
		}
		if req.Description != nil {
			event.Description = *req.Description
		}
		if req.Status != nil {
			event.Status = *req.Status
		}

		if event.Status == models.MaintenanceStatusCompleted && event.CompletedDate == nil {
			now := time.Now()
			event.CompletedDate = &now
		}

		if err := tx.Maintenance().Update(ctx, event); err != nil {
			return utils.NewInternal(err)
		}

		if req.Status != nil && event.Status != previous {
			if err := s.syncRoomStatus(ctx, tx, event); err != nil {
				return err
			}
		}

		updated = event
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *MaintenanceService) DeleteMaintenanceEvent(ctx context.Context, subject *security.Subject, id uuid.UUID) error {
	if err := s.eval.Authorize(ctx, subject, security.ResourceMaintenance, security.ActionDelete, &id); err != nil {
		return err
	}

	return s.store.WithinTx(ctx, func(tx repositories.Store) error {
		event, err := tx.Maintenance().GetByIDForUpdate(ctx, id)
		if err != nil {
			return utils.NewInternal(err)
		}
		if event == nil {
			return utils.NewNotFound("Maintenance event")
		}
		if event.Status == models.MaintenanceStatusInProgress {
			return utils.NewConflict("maintenance event is IN_PROGRESS and cannot be deleted")
		}
		if err := tx.Maintenance().Delete(ctx, id); err != nil {
			return utils.NewInternal(err)
		}
		return nil
	})
}

// syncRoomStatus applies a status transition's effect on the room, with
// the room row locked. Entering IN_PROGRESS always claims the room for
// maintenance. A finished event releases a MAINTENANCE room only when no
// other event on it is still in progress.
func (s *MaintenanceService) syncRoomStatus(ctx context.Context, tx repositories.Store, event *models.MaintenanceEvent) error {
	room, err := tx.Rooms().GetByIDForUpdate(ctx, event.RoomID)
	if err != nil {
		return utils.NewInternal(err)
	}
	if room == nil {
		return utils.NewNotFound("Room")
	}

	if event.Status == models.MaintenanceStatusInProgress {
		return mapInternal(tx.Rooms().UpdateStatus(ctx, room.ID, models.RoomStatusMaintenance))
	}

	finished := event.Status == models.MaintenanceStatusCompleted || event.Status == models.MaintenanceStatusCancelled
	if finished && room.Status == models.RoomStatusMaintenance {
		remaining, err := tx.Maintenance().CountInProgressByRoomID(ctx, event.RoomID)
		if err != nil {
			return utils.NewInternal(err)
		}
		if remaining == 0 {
			return mapInternal(tx.Rooms().UpdateStatus(ctx, room.ID, models.RoomStatusAvailable))
		}
	}
	return nil
}

func mapInternal(err error) error {
	if err != nil {
		return utils.NewInternal(err)
	}
	return nil
}

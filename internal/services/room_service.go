package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/nguyensartoro/property-management-system-backend/internal/dtos"
	"github.com/nguyensartoro/property-management-system-backend/internal/models"
	"github.com/nguyensartoro/property-management-system-backend/internal/repositories"
	"github.com/nguyensartoro/property-management-system-backend/internal/security"
	"github.com/nguyensartoro/property-management-system-backend/internal/utils"
)

// RoomService covers room CRUD. Room status is deliberately absent from
// the update surface; only the contract and maintenance lifecycles move
// it.
type RoomService struct {
	store repositories.Store
	eval  *security.PermissionEvaluator
}

func NewRoomService(store repositories.Store, eval *security.PermissionEvaluator) *RoomService {
	return &RoomService{store: store, eval: eval}
}

func (s *RoomService) GetRoom(ctx context.Context, subject *security.Subject, id uuid.UUID) (*models.Room, error) {
	if err := s.eval.Authorize(ctx, subject, security.ResourceRoom, security.ActionRead, &id); err != nil {
		return nil, err
	}
	room, err := s.store.Rooms().GetByID(ctx, id)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if room == nil {
		return nil, utils.NewNotFound("Room")
	}
	return room, nil
}

func (s *RoomService) ListRoomsByProperty(ctx context.Context, subject *security.Subject, propertyID uuid.UUID) ([]*models.Room, error) {
	if err := s.eval.Authorize(ctx, subject, security.ResourceProperty, security.ActionRead, &propertyID); err != nil {
		return nil, err
	}
	rooms, err := s.store.Rooms().ListByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	return rooms, nil
}

func (s *RoomService) CreateRoom(ctx context.Context, subject *security.Subject, req dtos.CreateRoomRequest) (*models.Room, error) {
	if err := s.eval.Authorize(ctx, subject, security.ResourceRoom, security.ActionCreate, &req.PropertyID); err != nil {
		return nil, err
	}

	property, err := s.store.Properties().GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if property == nil {
		return nil, utils.NewNotFound("Property")
	}

	room := &models.Room{
		ID:         uuid.New(),
		PropertyID: req.PropertyID,
		Number:     req.Number,
		Floor:      req.Floor,
		Price:      req.Price,
		Status:     models.RoomStatusAvailable,
	}
	if err := s.store.Rooms().Create(ctx, room); err != nil {
		return nil, utils.NewInternal(err)
	}
	return room, nil
}

func (s *RoomService) UpdateRoom(ctx context.Context, subject *security.Subject, id uuid.UUID, req dtos.UpdateRoomRequest) (*models.Room, error) {
	if err := s.eval.Authorize(ctx, subject, security.ResourceRoom, security.ActionUpdate, &id); err != nil {
		return nil, err
	}

	// Detail patches never touch status, so optimistic locking with retry
	// is enough; lifecycle transitions are the only writers that need a
	// row lock.
	err := s.store.Rooms().UpdateWithRetry(ctx, id, func(room *models.Room) error {
		if req.Number != nil {
			room.Number = *req.Number
		}
		if req.Floor != nil {
			room.Floor = *req.Floor
		}
		if req.Price != nil {
			room.Price = *req.Price
		}
		return nil
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, utils.NewNotFound("Room")
		}
		return nil, utils.NewInternal(err)
	}

	room, err := s.store.Rooms().GetByID(ctx, id)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if room == nil {
		return nil, utils.NewNotFound("Room")
	}
	return room, nil
}

func (s *RoomService) DeleteRoom(ctx context.Context, subject *security.Subject, id uuid.UUID) error {
	if err := s.eval.Authorize(ctx, subject, security.ResourceRoom, security.ActionDelete, &id); err != nil {
		return err
	}

	return s.store.WithinTx(ctx, func(tx repositories.Store) error {
		room, err := tx.Rooms().GetByIDForUpdate(ctx, id)
		if err != nil {
			return utils.NewInternal(err)
		}
		if room == nil {
			return utils.NewNotFound("Room")
		}

		actives, err := tx.Contracts().ListActiveByRoomID(ctx, id)
		if err != nil {
			return utils.NewInternal(err)
		}
		if len(actives) > 0 {
			return utils.NewConflict("room has an active contract")
		}

		if err := tx.Rooms().Delete(ctx, id); err != nil {
			return utils.NewInternal(err)
		}
		return nil
	})
}

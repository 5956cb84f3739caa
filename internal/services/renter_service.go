package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/nguyensartoro/property-management-system-backend/internal/dtos"
	"github.com/nguyensartoro/property-management-system-backend/internal/models"
	"github.com/nguyensartoro/property-management-system-backend/internal/repositories"
	"github.com/nguyensartoro/property-management-system-backend/internal/security"
	"github.com/nguyensartoro/property-management-system-backend/internal/utils"
)

type RenterService struct {
	store repositories.Store
	eval  *security.PermissionEvaluator
}

func NewRenterService(store repositories.Store, eval *security.PermissionEvaluator) *RenterService {
	return &RenterService{store: store, eval: eval}
}

func (s *RenterService) GetRenter(ctx context.Context, subject *security.Subject, id uuid.UUID) (*models.Renter, error) {
	if err := s.eval.Authorize(ctx, subject, security.ResourceRenter, security.ActionRead, &id); err != nil {
		return nil, err
	}
	renter, err := s.store.Renters().GetByID(ctx, id)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if renter == nil {
		return nil, utils.NewNotFound("Renter")
	}
	return renter, nil
}

func (s *RenterService) CreateRenter(ctx context.Context, subject *security.Subject, req dtos.CreateRenterRequest) (*models.Renter, error) {
	if err := s.eval.Authorize(ctx, subject, security.ResourceRenter, security.ActionCreate, nil); err != nil {
		return nil, err
	}

	if req.RoomID != nil {
		room, err := s.store.Rooms().GetByID(ctx, *req.RoomID)
		if err != nil {
			return nil, utils.NewInternal(err)
		}
		if room == nil {
			return nil, utils.NewNotFound("Room")
		}
	}

	renter := &models.Renter{
		ID:     uuid.New(),
		RoomID: req.RoomID,
		UserID: req.UserID,
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
	}
	if err := s.store.Renters().Create(ctx, renter); err != nil {
		return nil, utils.NewInternal(err)
	}
	return renter, nil
}

func (s *RenterService) UpdateRenter(ctx context.Context, subject *security.Subject, id uuid.UUID, req dtos.UpdateRenterRequest) (*models.Renter, error) {
	if err := s.eval.Authorize(ctx, subject, security.ResourceRenter, security.ActionUpdate, &id); err != nil {
		return nil, err
	}

	renter, err := s.store.Renters().GetByID(ctx, id)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if renter == nil {
		return nil, utils.NewNotFound("Renter")
	}

	if req.Name != nil {
		renter.Name = *req.Name
	}
	if req.Email != nil {
		renter.Email = *req.Email
	}
	if req.Phone != nil {
		renter.Phone = *req.Phone
	}
	if req.RoomID != nil {
		room, err := s.store.Rooms().GetByID(ctx, *req.RoomID)
		if err != nil {
			return nil, utils.NewInternal(err)
		}
		if room == nil {
			return nil, utils.NewNotFound("Room")
		}
		renter.RoomID = req.RoomID
	}

	if err := s.store.Renters().Update(ctx, renter); err != nil {
		return nil, utils.NewInternal(err)
	}
	return renter, nil
}

func (s *RenterService) DeleteRenter(ctx context.Context, subject *security.Subject, id uuid.UUID) error {
	if err := s.eval.Authorize(ctx, subject, security.ResourceRenter, security.ActionDelete, &id); err != nil {
		return err
	}

	return s.store.WithinTx(ctx, func(tx repositories.Store) error {
		renter, err := tx.Renters().GetByID(ctx, id)
		if err != nil {
			return utils.NewInternal(err)
		}
		if renter == nil {
			return utils.NewNotFound("Renter")
		}

		contracts, err := tx.Contracts().ListByRenterID(ctx, id)
		if err != nil {
			return utils.NewInternal(err)
		}
		for _, c := range contracts {
			if c.Status == models.ContractStatusActive {
				return utils.NewConflict("renter has an active contract")
			}
		}

		if err := tx.Renters().Delete(ctx, id); err != nil {
			return utils.NewInternal(err)
		}
		return nil
	})
}

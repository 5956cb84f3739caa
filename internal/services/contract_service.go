package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nguyensartoro/property-management-system-backend/internal/dtos"
	"github.com/nguyensartoro/property-management-system-backend/internal/models"
	"github.com/nguyensartoro/property-management-system-backend/internal/repositories"
	"github.com/nguyensartoro/property-management-system-backend/internal/security"
	"github.com/nguyensartoro/property-management-system-backend/internal/utils"
)

// ContractService runs the contract half of the room lifecycle. Every
// mutation authorizes first, then executes inside one transaction with
// the room row locked, so room status and contract status can never be
// observed out of step.
type ContractService struct {
	store    repositories.Store
	eval     *security.PermissionEvaluator
	notifier Notifier

	// releaseAnyActive widens the room-release check from "no other
	// ACTIVE contract sharing a renter" to "no other ACTIVE contract on
	// the room at all".
	releaseAnyActive bool
}

func NewContractService(store repositories.Store, eval *security.PermissionEvaluator, notifier Notifier, releaseAnyActive bool) *ContractService {
	return &ContractService{
		store:            store,
		eval:             eval,
		notifier:         notifier,
		releaseAnyActive: releaseAnyActive,
	}
}

func (s *ContractService) GetContract(ctx context.Context, subject *security.Subject, id uuid.UUID) (*models.Contract, error) {
	if err := s.eval.Authorize(ctx, subject, security.ResourceContract, security.ActionRead, &id); err != nil {
		return nil, err
	}
	contract, err := s.store.Contracts().GetByID(ctx, id)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if contract == nil {
		return nil, utils.NewNotFound("Contract")
	}
	return contract, nil
}

func (s *ContractService) ListContractsByRoom(ctx context.Context, subject *security.Subject, roomID uuid.UUID) ([]*models.Contract, error) {
	if err := s.eval.Authorize(ctx, subject, security.ResourceRoom, security.ActionRead, &roomID); err != nil {
		return nil, err
	}
	contracts, err := s.store.Contracts().ListByRoomID(ctx, roomID)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	return contracts, nil
}

// CreateContract creates a contract on an AVAILABLE room and flips the
// room to OCCUPIED in the same transaction.
func (s *ContractService) CreateContract(ctx context.Context, subject *security.Subject, req dtos.CreateContractRequest) (*models.Contract, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, utils.NewValidation("end_date must not be before start_date")
	}
	if req.Amount <= 0 {
		return nil, utils.NewValidation("amount must be greater than zero")
	}
	if len(req.RenterIDs) == 0 {
		return nil, utils.NewValidation("at least one renter is required")
	}

	if err := s.eval.Authorize(ctx, subject, security.ResourceContract, security.ActionCreate, &req.RoomID); err != nil {
		return nil, err
	}

	status := models.ContractStatusActive
	if req.Status != nil {
		status = *req.Status
	}

	contract := &models.Contract{
		ID:        uuid.New(),
		RoomID:    req.RoomID,
		RenterIDs: req.RenterIDs,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Amount:    req.Amount,
		Status:    status,
	}

	var renters []*models.Renter
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		room, err := tx.Rooms().GetByIDForUpdate(ctx, req.RoomID)
		if err != nil {
			return utils.NewInternal(err)
		}
		if room == nil {
			return utils.NewNotFound("Room")
		}
		if room.Status != models.RoomStatusAvailable {
			return utils.NewConflict(fmt.Sprintf("room is %s, not AVAILABLE", room.Status))
		}

		for _, renterID := range req.RenterIDs {
			renter, err := tx.Renters().GetByID(ctx, renterID)
			if err != nil {
				return utils.NewInternal(err)
			}
			if renter == nil {
				return utils.NewNotFound("Renter")
			}
			renters = append(renters, renter)
		}

		if err := tx.Contracts().Create(ctx, contract); err != nil {
			return utils.NewInternal(err)
		}
		if err := tx.Rooms().UpdateStatus(ctx, room.ID, models.RoomStatusOccupied); err != nil {
			return utils.NewInternal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, renter := range renters {
		_ = s.notifier.ContractCreated(ctx, renter, contract)
	}
	return contract, nil
}

// UpdateContract applies a patch. When the patch moves the contract into
// a terminal status, the room is released if no other contract holds it.
func (s *ContractService) UpdateContract(ctx context.Context, subject *security.Subject, id uuid.UUID, req dtos.UpdateContractRequest) (*models.Contract, error) {
	if err := s.eval.Authorize(ctx, subject, security.ResourceContract, security.ActionUpdate, &id); err != nil {
		return nil, err
	}

	var updated *models.Contract
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		contract, err := tx.Contracts().GetByIDForUpdate(ctx, id)
		if err != nil {
			return utils.NewInternal(err)
		}
		if contract == nil {
			return utils.NewNotFound("Contract")
		}

		wasTerminal := contract.Status.IsTerminal()

		if req.RenterIDs != nil {
			if len(*req.RenterIDs) == 0 {
				return utils.NewValidation("at least one renter is required")
			}
			contract.RenterIDs = *req.RenterIDs
		}
		if req.StartDate != nil {
			contract.StartDate = *req.StartDate
		}
		if req.EndDate != nil {
			contract.EndDate = *req.EndDate
		}
		if contract.EndDate.Before(contract.StartDate) {
			return utils.NewValidation("end_date must not be before start_date")
		}
		if req.Amount != nil {
			contract.Amount = *req.Amount
		}
		if req.Status != nil {
			contract.Status = *req.Status
		}

		if err := tx.Contracts().Update(ctx, contract); err != nil {
			return utils.NewInternal(err)
		}

		if !wasTerminal && contract.Status.IsTerminal() {
			if err := s.releaseRoomIfUnheld(ctx, tx, contract); err != nil {
				return err
			}
		}

		updated = contract
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// TerminateContract moves a contract to TERMINATED with a mandatory
// reason and releases the room if no other contract holds it.
func (s *ContractService) TerminateContract(ctx context.Context, subject *security.Subject, id uuid.UUID, req dtos.TerminateContractRequest) (*models.Contract, error) {
	if req.Reason == "" {
		return nil, utils.NewValidation("termination reason is required")
	}

	if err := s.eval.Authorize(ctx, subject, security.ResourceContract, security.ActionUpdate, &id); err != nil {
		return nil, err
	}

	var terminated *models.Contract
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		contract, err := tx.Contracts().GetByIDForUpdate(ctx, id)
		if err != nil {
			return utils.NewInternal(err)
		}
		if contract == nil {
			return utils.NewNotFound("Contract")
		}
		if contract.Status.IsTerminal() {
			return utils.NewConflict(fmt.Sprintf("contract is already %s", contract.Status))
		}

		when := time.Now()
		if req.TerminationDate != nil {
			when = *req.TerminationDate
		}
		contract.Status = models.ContractStatusTerminated
		contract.TerminationReason = &req.Reason
		contract.TerminationDate = &when

		if err := tx.Contracts().Update(ctx, contract); err != nil {
			return utils.NewInternal(err)
		}
		if err := s.releaseRoomIfUnheld(ctx, tx, contract); err != nil {
			return err
		}

		terminated = contract
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyContractEnded(ctx, terminated)
	return terminated, nil
}

// DeleteContract removes a contract that has no payments. Contracts with
// money against them must be terminated instead.
func (s *ContractService) DeleteContract(ctx context.Context, subject *security.Subject, id uuid.UUID) error {
	if err := s.eval.Authorize(ctx, subject, security.ResourceContract, security.ActionDelete, &id); err != nil {
		return err
	}

	return s.store.WithinTx(ctx, func(tx repositories.Store) error {
		contract, err := tx.Contracts().GetByIDForUpdate(ctx, id)
		if err != nil {
			return utils.NewInternal(err)
		}
		if contract == nil {
			return utils.NewNotFound("Contract")
		}

		count, err := tx.Payments().CountByContractID(ctx, id)
		if err != nil {
			return utils.NewInternal(err)
		}
		if count > 0 {
			return utils.NewConflict("contract has payments and must be terminated, not deleted")
		}

		if err := tx.Contracts().Delete(ctx, id); err != nil {
			return utils.NewInternal(err)
		}

		// A deleted ACTIVE contract no longer holds the room.
		if contract.Status == models.ContractStatusActive {
			if err := s.releaseRoomIfUnheld(ctx, tx, contract); err != nil {
				return err
			}
		}
		return nil
	})
}

// releaseRoomIfUnheld flips the room back to AVAILABLE when no other
// ACTIVE contract still holds it. With releaseAnyActive off, only ACTIVE
// contracts sharing at least one renter with the ended contract count as
// holding the room. The room row is locked before the check; a room in
// MAINTENANCE stays there, the maintenance lifecycle owns that state.
func (s *ContractService) releaseRoomIfUnheld(ctx context.Context, tx repositories.Store, ended *models.Contract) error {
	room, err := tx.Rooms().GetByIDForUpdate(ctx, ended.RoomID)
	if err != nil {
		return utils.NewInternal(err)
	}
	if room == nil {
		return utils.NewNotFound("Room")
	}

	actives, err := tx.Contracts().ListActiveByRoomID(ctx, ended.RoomID)
	if err != nil {
		return utils.NewInternal(err)
	}

	for _, other := range actives {
		if other.ID == ended.ID {
			continue
		}
		if s.releaseAnyActive || other.SharesRenterWith(ended) {
			return nil
		}
	}

	if room.Status == models.RoomStatusOccupied {
		if err := tx.Rooms().UpdateStatus(ctx, room.ID, models.RoomStatusAvailable); err != nil {
			return utils.NewInternal(err)
		}
	}
	return nil
}

func (s *ContractService) notifyContractEnded(ctx context.Context, contract *models.Contract) {
	for _, renterID := range contract.RenterIDs {
		renter, err := s.store.Renters().GetByID(ctx, renterID)
		if err != nil || renter == nil {
			continue
		}
		_ = s.notifier.ContractEnded(ctx, renter, contract)
	}
}

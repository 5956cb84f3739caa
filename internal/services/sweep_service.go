package services

import (
	"context"
	"time"

	"github.com/nguyensartoro/property-management-system-backend/internal/models"
	"github.com/nguyensartoro/property-management-system-backend/internal/repositories"
	"github.com/nguyensartoro/property-management-system-backend/internal/utils"
)

// SweepService runs the scheduled lifecycle sweeps: expiring contracts
// whose end date has passed and flagging payments that have gone
// overdue. Both run system-initiated, so there is no subject and no
// authorization step; the same transactional guards as the interactive
// paths still apply.
type SweepService struct {
	store    repositories.Store
	contract *ContractService
	notifier Notifier
}

func NewSweepService(store repositories.Store, contract *ContractService, notifier Notifier) *SweepService {
	return &SweepService{store: store, contract: contract, notifier: notifier}
}

// ExpireContracts moves every ACTIVE contract past its end date to
// EXPIRED and releases rooms no longer held. Each contract is processed
// in its own transaction so one failure does not hold up the rest.
func (s *SweepService) ExpireContracts(ctx context.Context) {
	now := time.Now()
	candidates, err := s.store.Contracts().ListActiveEndedBefore(ctx, now)
	if err != nil {
		utils.Logger.WithError(err).Error("Contract expiry sweep: listing candidates failed")
		return
	}

	expired := 0
	for _, candidate := range candidates {
		err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
			contract, err := tx.Contracts().GetByIDForUpdate(ctx, candidate.ID)
			if err != nil {
				return err
			}
			// Re-check under the lock; an operator may have beaten us.
			if contract == nil || contract.Status != models.ContractStatusActive || contract.EndDate.After(now) {
				return nil
			}

			contract.Status = models.ContractStatusExpired
			if err := tx.Contracts().Update(ctx, contract); err != nil {
				return err
			}
			if err := s.contract.releaseRoomIfUnheld(ctx, tx, contract); err != nil {
				return err
			}
			expired++
			return nil
		})
		if err != nil {
			utils.Logger.WithError(err).Errorf("Contract expiry sweep: contract %s failed", candidate.ID)
			continue
		}
		s.contract.notifyContractEnded(ctx, candidate)
	}

	if expired > 0 {
		utils.Logger.Infof("Contract expiry sweep: expired %d contract(s)", expired)
	}
}

// MarkOverduePayments flags PENDING payments whose due date has passed
// and notifies the billed renter.
func (s *SweepService) MarkOverduePayments(ctx context.Context) {
	now := time.Now()
	candidates, err := s.store.Payments().ListPendingDueBefore(ctx, now)
	if err != nil {
		utils.Logger.WithError(err).Error("Payment overdue sweep: listing candidates failed")
		return
	}

	flagged := 0
	for _, candidate := range candidates {
		var overdue *models.Payment
		err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
			payment, err := tx.Payments().GetByIDForUpdate(ctx, candidate.ID)
			if err != nil {
				return err
			}
			if payment == nil || payment.Status != models.PaymentStatusPending || payment.DueDate.After(now) {
				return nil
			}

			payment.Status = models.PaymentStatusOverdue
			if err := tx.Payments().Update(ctx, payment); err != nil {
				return err
			}
			overdue = payment
			flagged++
			return nil
		})
		if err != nil {
			utils.Logger.WithError(err).Errorf("Payment overdue sweep: payment %s failed", candidate.ID)
			continue
		}
		if overdue == nil {
			continue
		}
		if renter, err := s.store.Renters().GetByID(ctx, overdue.RenterID); err == nil && renter != nil {
			_ = s.notifier.PaymentOverdue(ctx, renter, overdue)
		}
	}

	if flagged > 0 {
		utils.Logger.Infof("Payment overdue sweep: flagged %d payment(s)", flagged)
	}
}

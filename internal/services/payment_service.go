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

// PaymentService enforces the payment immutability rules: a PAID payment
// cannot be re-marked, modified, or deleted.
type PaymentService struct {
	store    repositories.Store
	eval     *security.PermissionEvaluator
	notifier Notifier
}

func NewPaymentService(store repositories.Store, eval *security.PermissionEvaluator, notifier Notifier) *PaymentService {
	return &PaymentService{store: store, eval: eval, notifier: notifier}
}

func (s *PaymentService) GetPayment(ctx context.Context, subject *security.Subject, id uuid.UUID) (*models.Payment, error) {
	if err := s.eval.Authorize(ctx, subject, security.ResourcePayment, security.ActionRead, &id); err != nil {
		return nil, err
	}
	payment, err := s.store.Payments().GetByID(ctx, id)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if payment == nil {
		return nil, utils.NewNotFound("Payment")
	}
	return payment, nil
}

func (s *PaymentService) ListPaymentsByRenter(ctx context.Context, subject *security.Subject, renterID uuid.UUID) ([]*models.Payment, error) {
	if err := s.eval.Authorize(ctx, subject, security.ResourceRenter, security.ActionRead, &renterID); err != nil {
		return nil, err
	}
	payments, err := s.store.Payments().ListByRenterID(ctx, renterID)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	return payments, nil
}

func (s *PaymentService) CreatePayment(ctx context.Context, subject *security.Subject, req dtos.CreatePaymentRequest) (*models.Payment, error) {
	if req.Amount <= 0 {
		return nil, utils.NewValidation("amount must be greater than zero")
	}

	if err := s.eval.Authorize(ctx, subject, security.ResourcePayment, security.ActionCreate, &req.RenterID); err != nil {
		return nil, err
	}

	payment := &models.Payment{
		ID:         uuid.New(),
		RenterID:   req.RenterID,
		ContractID: req.ContractID,
		Amount:     req.Amount,
		DueDate:    req.DueDate,
		Status:     models.PaymentStatusPending,
	}

	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		renter, err := tx.Renters().GetByID(ctx, req.RenterID)
		if err != nil {
			return utils.NewInternal(err)
		}
		if renter == nil {
			return utils.NewNotFound("Renter")
		}

		if req.ContractID != nil {
			if err := s.checkContractMembership(ctx, tx, *req.ContractID, req.RenterID); err != nil {
				return err
			}
		}
		if err := tx.Payments().Create(ctx, payment); err != nil {
			return utils.NewInternal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) UpdatePayment(ctx context.Context, subject *security.Subject, id uuid.UUID, req dtos.UpdatePaymentRequest) (*models.Payment, error) {
	if err := s.eval.Authorize(ctx, subject, security.ResourcePayment, security.ActionUpdate, &id); err != nil {
		return nil, err
	}

	var updated *models.Payment
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		payment, err := tx.Payments().GetByIDForUpdate(ctx, id)
		if err != nil {
			return utils.NewInternal(err)
		}
		if payment == nil {
			return utils.NewNotFound("Payment")
		}
		if payment.Status == models.PaymentStatusPaid {
			return utils.NewConflict("payment is already PAID and cannot be modified")
		}

		if req.ContractID != nil {
			if err := s.checkContractMembership(ctx, tx, *req.ContractID, payment.RenterID); err != nil {
				return err
			}
			payment.ContractID = req.ContractID
		}
		if req.Amount != nil {
			payment.Amount = *req.Amount
		}
		if req.DueDate != nil {
			payment.DueDate = *req.DueDate
		}

		if err := tx.Payments().Update(ctx, payment); err != nil {
			return utils.NewInternal(err)
		}
		updated = payment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// MarkPaymentAsPaid finalizes a payment. PAID is a one-way door.
func (s *PaymentService) MarkPaymentAsPaid(ctx context.Context, subject *security.Subject, id uuid.UUID, req dtos.MarkPaymentPaidRequest) (*models.Payment, error) {
	if err := s.eval.Authorize(ctx, subject, security.ResourcePayment, security.ActionUpdate, &id); err != nil {
		return nil, err
	}

	var paid *models.Payment
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		payment, err := tx.Payments().GetByIDForUpdate(ctx, id)
		if err != nil {
			return utils.NewInternal(err)
		}
		if payment == nil {
			return utils.NewNotFound("Payment")
		}
		if payment.Status == models.PaymentStatusPaid {
			return utils.NewConflict("payment is already PAID")
		}

		when := time.Now()
		if req.PaidDate != nil {
			when = *req.PaidDate
		}
		payment.Status = models.PaymentStatusPaid
		payment.PaidDate = &when
		payment.Reference = req.Reference

		if err := tx.Payments().Update(ctx, payment); err != nil {
			return utils.NewInternal(err)
		}
		paid = payment
		return nil
	})
	if err != nil {
		return nil, err
	}

	if renter, err := s.store.Renters().GetByID(ctx, paid.RenterID); err == nil && renter != nil {
		_ = s.notifier.PaymentReceived(ctx, renter, paid)
	}
	return paid, nil
}

func (s *PaymentService) DeletePayment(ctx context.Context, subject *security.Subject, id uuid.UUID) error {
	if err := s.eval.Authorize(ctx, subject, security.ResourcePayment, security.ActionDelete, &id); err != nil {
		return err
	}

	return s.store.WithinTx(ctx, func(tx repositories.Store) error {
		payment, err := tx.Payments().GetByIDForUpdate(ctx, id)
		if err != nil {
			return utils.NewInternal(err)
		}
		if payment == nil {
			return utils.NewNotFound("Payment")
		}
		if payment.Status == models.PaymentStatusPaid {
			return utils.NewConflict("payment is PAID and cannot be deleted")
		}
		if err := tx.Payments().Delete(ctx, id); err != nil {
			return utils.NewInternal(err)
		}
		return nil
	})
}

// checkContractMembership verifies the contract exists and bills one of
// its own renters.
func (s *PaymentService) checkContractMembership(ctx context.Context, tx repositories.Store, contractID, renterID uuid.UUID) error {
	contract, err := tx.Contracts().GetByID(ctx, contractID)
	if err != nil {
		return utils.NewInternal(err)
	}
	if contract == nil {
		return utils.NewValidation("referenced contract does not exist")
	}
	if !utils.ContainsUUID(contract.RenterIDs, renterID) {
		return utils.NewValidation(fmt.Sprintf("renter %s is not a party to contract %s", renterID, contractID))
	}
	return nil
}

package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/nguyensartoro/property-management-system-backend/internal/models"
	"github.com/nguyensartoro/property-management-system-backend/internal/repositories"
	"github.com/nguyensartoro/property-management-system-backend/internal/utils"
)

// memStore is an in-memory repositories.Store for service tests. Each
// repo embeds its interface and implements only what the services call.
// WithinTx hands the same store back; the transactional guarantees under
// test are the guard checks, not SQL isolation.
type memStore struct {
	users       memUserRepo
	properties  memPropertyRepo
	rooms       memRoomRepo
	renters     memRenterRepo
	contracts   memContractRepo
	payments    memPaymentRepo
	maintenance memMaintenanceRepo
	documents   memDocumentRepo
}

func newMemStore() *memStore {
	return &memStore{
		users:       memUserRepo{byID: map[uuid.UUID]*models.User{}},
		properties:  memPropertyRepo{byID: map[uuid.UUID]*models.Property{}},
		rooms:       memRoomRepo{byID: map[uuid.UUID]*models.Room{}},
		renters:     memRenterRepo{byID: map[uuid.UUID]*models.Renter{}},
		contracts:   memContractRepo{byID: map[uuid.UUID]*models.Contract{}},
		payments:    memPaymentRepo{byID: map[uuid.UUID]*models.Payment{}},
		maintenance: memMaintenanceRepo{byID: map[uuid.UUID]*models.MaintenanceEvent{}},
		documents:   memDocumentRepo{byID: map[uuid.UUID]*models.Document{}},
	}
}

func (m *memStore) Users() repositories.UserRepository                 { return &m.users }
func (m *memStore) Properties() repositories.PropertyRepository        { return &m.properties }
func (m *memStore) Rooms() repositories.RoomRepository                 { return &m.rooms }
func (m *memStore) Renters() repositories.RenterRepository             { return &m.renters }
func (m *memStore) Contracts() repositories.ContractRepository         { return &m.contracts }
func (m *memStore) Payments() repositories.PaymentRepository           { return &m.payments }
func (m *memStore) Maintenance() repositories.MaintenanceEventRepository {
	return &m.maintenance
}
func (m *memStore) Documents() repositories.DocumentRepository { return &m.documents }

func (m *memStore) WithinTx(_ context.Context, fn func(repositories.Store) error) error {
	return fn(m)
}

/* ------------------------------------------------------------------
   Users
------------------------------------------------------------------ */

type memUserRepo struct {
	repositories.UserRepository
	byID map[uuid.UUID]*models.User
}

func (r *memUserRepo) Create(_ context.Context, u *models.User) error {
	r.byID[u.ID] = u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	return r.byID[id], nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

/* ------------------------------------------------------------------
   Properties
------------------------------------------------------------------ */

type memPropertyRepo struct {
	repositories.PropertyRepository
	byID map[uuid.UUID]*models.Property
}

func (r *memPropertyRepo) Create(_ context.Context, p *models.Property) error {
	r.byID[p.ID] = p
	return nil
}

func (r *memPropertyRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Property, error) {
	return r.byID[id], nil
}

func (r *memPropertyRepo) ListAll(_ context.Context) ([]*models.Property, error) {
	var out []*models.Property
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

func (r *memPropertyRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]*models.Property, error) {
	var out []*models.Property
	for _, p := range r.byID {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPropertyRepo) Update(_ context.Context, p *models.Property) error {
	r.byID[p.ID] = p
	return nil
}

func (r *memPropertyRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

/* ------------------------------------------------------------------
   Rooms
------------------------------------------------------------------ */

type memRoomRepo struct {
	repositories.RoomRepository
	byID map[uuid.UUID]*models.Room
}

func (r *memRoomRepo) Create(_ context.Context, rm *models.Room) error {
	r.byID[rm.ID] = rm
	return nil
}

func (r *memRoomRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Room, error) {
	return r.byID[id], nil
}

func (r *memRoomRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	return r.GetByID(ctx, id)
}

func (r *memRoomRepo) ListByPropertyID(_ context.Context, propertyID uuid.UUID) ([]*models.Room, error) {
	var out []*models.Room
	for _, rm := range r.byID {
		if rm.PropertyID == propertyID {
			out = append(out, rm)
		}
	}
	return out, nil
}

func (r *memRoomRepo) Update(_ context.Context, rm *models.Room) error {
	r.byID[rm.ID] = rm
	return nil
}

func (r *memRoomRepo) UpdateWithRetry(_ context.Context, id uuid.UUID, mutate func(*models.Room) error) error {
	rm, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if err := mutate(rm); err != nil {
		return err
	}
	rm.RowVersion++
	return nil
}

func (r *memRoomRepo) UpdateStatus(_ context.Context, id uuid.UUID, status models.RoomStatusType) error {
	rm, ok := r.byID[id]
	if !ok {
		return utils.ErrNoRowsUpdated
	}
	rm.Status = status
	rm.RowVersion++
	return nil
}

func (r *memRoomRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

/* ------------------------------------------------------------------
   Renters
------------------------------------------------------------------ */

type memRenterRepo struct {
	repositories.RenterRepository
	byID map[uuid.UUID]*models.Renter
}

func (r *memRenterRepo) Create(_ context.Context, renter *models.Renter) error {
	r.byID[renter.ID] = renter
	return nil
}

func (r *memRenterRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Renter, error) {
	return r.byID[id], nil
}

func (r *memRenterRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*models.Renter, error) {
	for _, renter := range r.byID {
		if renter.UserID != nil && *renter.UserID == userID {
			return renter, nil
		}
	}
	return nil, nil
}

func (r *memRenterRepo) Update(_ context.Context, renter *models.Renter) error {
	r.byID[renter.ID] = renter
	return nil
}

func (r *memRenterRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

/* ------------------------------------------------------------------
   Contracts
------------------------------------------------------------------ */

type memContractRepo struct {
	repositories.ContractRepository
	byID map[uuid.UUID]*models.Contract
}

func (r *memContractRepo) Create(_ context.Context, c *models.Contract) error {
	r.byID[c.ID] = c
	return nil
}

func (r *memContractRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Contract, error) {
	return r.byID[id], nil
}

func (r *memContractRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	return r.GetByID(ctx, id)
}

func (r *memContractRepo) ListByRoomID(_ context.Context, roomID uuid.UUID) ([]*models.Contract, error) {
	return r.filter(func(c *models.Contract) bool { return c.RoomID == roomID }), nil
}

func (r *memContractRepo) ListByRenterID(_ context.Context, renterID uuid.UUID) ([]*models.Contract, error) {
	return r.filter(func(c *models.Contract) bool {
		return utils.ContainsUUID(c.RenterIDs, renterID)
	}), nil
}

func (r *memContractRepo) ListActiveByRoomID(_ context.Context, roomID uuid.UUID) ([]*models.Contract, error) {
	return r.filter(func(c *models.Contract) bool {
		return c.RoomID == roomID && c.Status == models.ContractStatusActive
	}), nil
}

func (r *memContractRepo) ListActiveEndedBefore(_ context.Context, cutoff time.Time) ([]*models.Contract, error) {
	return r.filter(func(c *models.Contract) bool {
		return c.Status == models.ContractStatusActive && c.EndDate.Before(cutoff)
	}), nil
}

func (r *memContractRepo) filter(keep func(*models.Contract) bool) []*models.Contract {
	var out []*models.Contract
	for _, c := range r.byID {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *memContractRepo) Update(_ context.Context, c *models.Contract) error {
	r.byID[c.ID] = c
	return nil
}

func (r *memContractRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

/* ------------------------------------------------------------------
   Payments
------------------------------------------------------------------ */

type memPaymentRepo struct {
	repositories.PaymentRepository
	byID map[uuid.UUID]*models.Payment
}

func (r *memPaymentRepo) Create(_ context.Context, p *models.Payment) error {
	r.byID[p.ID] = p
	return nil
}

func (r *memPaymentRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Payment, error) {
	return r.byID[id], nil
}

func (r *memPaymentRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	return r.GetByID(ctx, id)
}

func (r *memPaymentRepo) ListByRenterID(_ context.Context, renterID uuid.UUID) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range r.byID {
		if p.RenterID == renterID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPaymentRepo) CountByContractID(_ context.Context, contractID uuid.UUID) (int, error) {
	n := 0
	for _, p := range r.byID {
		if p.ContractID != nil && *p.ContractID == contractID {
			n++
		}
	}
	return n, nil
}

func (r *memPaymentRepo) ListPendingDueBefore(_ context.Context, cutoff time.Time) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range r.byID {
		if p.Status == models.PaymentStatusPending && p.DueDate.Before(cutoff) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPaymentRepo) Update(_ context.Context, p *models.Payment) error {
	r.byID[p.ID] = p
	return nil
}

func (r *memPaymentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

/* ------------------------------------------------------------------
   Maintenance events
------------------------------------------------------------------ */

type memMaintenanceRepo struct {
	repositories.MaintenanceEventRepository
	byID map[uuid.UUID]*models.MaintenanceEvent
}

func (r *memMaintenanceRepo) Create(_ context.Context, m *models.MaintenanceEvent) error {
	r.byID[m.ID] = m
	return nil
}

func (r *memMaintenanceRepo) GetByID(_ context.Context, id uuid.UUID) (*models.MaintenanceEvent, error) {
	return r.byID[id], nil
}

func (r *memMaintenanceRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.MaintenanceEvent, error) {
	return r.GetByID(ctx, id)
}

func (r *memMaintenanceRepo) ListByRoomID(_ context.Context, roomID uuid.UUID) ([]*models.MaintenanceEvent, error) {
	var out []*models.MaintenanceEvent
	for _, m := range r.byID {
		if m.RoomID == roomID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMaintenanceRepo) CountInProgressByRoomID(_ context.Context, roomID uuid.UUID) (int, error) {
	n := 0
	for _, m := range r.byID {
		if m.RoomID == roomID && m.Status == models.MaintenanceStatusInProgress {
			n++
		}
	}
	return n, nil
}

func (r *memMaintenanceRepo) Update(_ context.Context, m *models.MaintenanceEvent) error {
	r.byID[m.ID] = m
	return nil
}

func (r *memMaintenanceRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

/* ------------------------------------------------------------------
   Documents
------------------------------------------------------------------ */

type memDocumentRepo struct {
	repositories.DocumentRepository
	byID map[uuid.UUID]*models.Document
}

func (r *memDocumentRepo) Create(_ context.Context, d *models.Document) error {
	r.byID[d.ID] = d
	return nil
}

func (r *memDocumentRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Document, error) {
	return r.byID[id], nil
}

func (r *memDocumentRepo) ListByRenterID(_ context.Context, renterID uuid.UUID) ([]*models.Document, error) {
	var out []*models.Document
	for _, d := range r.byID {
		if d.RenterID != nil && *d.RenterID == renterID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memDocumentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

/* ------------------------------------------------------------------
   Notifier spy
------------------------------------------------------------------ */

type spyNotifier struct {
	contractCreated int
	contractEnded   int
	paymentReceived int
	paymentOverdue  int
}

func (n *spyNotifier) ContractCreated(context.Context, *models.Renter, *models.Contract) error {
	n.contractCreated++
	return nil
}

func (n *spyNotifier) ContractEnded(context.Context, *models.Renter, *models.Contract) error {
	n.contractEnded++
	return nil
}

func (n *spyNotifier) PaymentReceived(context.Context, *models.Renter, *models.Payment) error {
	n.paymentReceived++
	return nil
}

func (n *spyNotifier) PaymentOverdue(context.Context, *models.Renter, *models.Payment) error {
	n.paymentOverdue++
	return nil
}

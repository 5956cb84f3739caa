package repositories

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

// DB is the querying surface the repositories need. Both *pgxpool.Pool
// and pgx.Tx satisfy it, so a repository constructed over a transaction
// participates in that transaction transparently.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	BeginFunc(ctx context.Context, f func(pgx.Tx) error) error
}

/* ------------------------------------------------------------------
   Store
------------------------------------------------------------------ */

// Store bundles the per-entity repositories behind a single transactional
// boundary. WithinTx runs fn against a Store whose repositories all share
// one transaction; any error rolls the whole transaction back, so a
// multi-entity update is never observed half-applied.
type Store interface {
	Users() UserRepository
	Properties() PropertyRepository
	Rooms() RoomRepository
	Renters() RenterRepository
	Contracts() ContractRepository
	Payments() PaymentRepository
	Maintenance() MaintenanceEventRepository
	Documents() DocumentRepository

	WithinTx(ctx context.Context, fn func(Store) error) error
}

type sqlStore struct {
	db          DB
	users       UserRepository
	properties  PropertyRepository
	rooms       RoomRepository
	renters     RenterRepository
	contracts   ContractRepository
	payments    PaymentRepository
	maintenance MaintenanceEventRepository
	documents   DocumentRepository
}

func NewStore(db DB) Store {
	return &sqlStore{
		db:          db,
		users:       NewUserRepository(db),
		properties:  NewPropertyRepository(db),
		rooms:       NewRoomRepository(db),
		renters:     NewRenterRepository(db),
		contracts:   NewContractRepository(db),
		payments:    NewPaymentRepository(db),
		maintenance: NewMaintenanceEventRepository(db),
		documents:   NewDocumentRepository(db),
	}
}

func (s *sqlStore) Users() UserRepository                 { return s.users }
func (s *sqlStore) Properties() PropertyRepository        { return s.properties }
func (s *sqlStore) Rooms() RoomRepository                 { return s.rooms }
func (s *sqlStore) Renters() RenterRepository             { return s.renters }
func (s *sqlStore) Contracts() ContractRepository         { return s.contracts }
func (s *sqlStore) Payments() PaymentRepository           { return s.payments }
func (s *sqlStore) Maintenance() MaintenanceEventRepository { return s.maintenance }
func (s *sqlStore) Documents() DocumentRepository         { return s.documents }

func (s *sqlStore) WithinTx(ctx context.Context, fn func(Store) error) error {
	return s.db.BeginFunc(ctx, func(tx pgx.Tx) error {
		return fn(NewStore(tx))
	})
}

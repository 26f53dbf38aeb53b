package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/schoolops/school_finance_app/internal/core/ports/repositories"
)

// RepositoryContainer bundles all pgx-backed repositories for wiring in main.
type RepositoryContainer struct {
	Obligations  portsrepo.ObligationRepository
	Ledger       portsrepo.LedgerRepository
	Classes      portsrepo.ClassRepository
	FeeSchedules portsrepo.FeeScheduleRepository
	Students     portsrepo.StudentRepository
	Users        portsrepo.UserRepository
}

// NewRepositoryContainer creates all repositories against one pool.
func NewRepositoryContainer(db *pgxpool.Pool) *RepositoryContainer {
	return &RepositoryContainer{
		Obligations:  NewObligationRepository(db),
		Ledger:       NewLedgerRepository(db),
		Classes:      NewClassRepository(db),
		FeeSchedules: NewFeeScheduleRepository(db),
		Students:     NewStudentRepository(db),
		Users:        NewUserRepository(db),
	}
}

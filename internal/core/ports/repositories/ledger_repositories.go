package repositories

import (
	"context"

	"github.com/schoolops/school_finance_app/internal/core/domain"
)

// LedgerRepository is the persistence port for the append-only transaction
// ledger. Entries are written once and never updated or deleted.
type LedgerRepository interface {
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error
	// ListEntries returns entries matching the filter in insertion order.
	ListEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, error)
	// ListEntriesByObligation returns every entry linked to one obligation, in
	// insertion order.
	ListEntriesByObligation(ctx context.Context, obligationRef string) ([]domain.LedgerEntry, error)
}

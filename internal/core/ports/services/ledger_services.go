package services

import (
	"context"

	"github.com/schoolops/school_finance_app/internal/core/domain"
	"github.com/schoolops/school_finance_app/internal/dto"
)

// LedgerService appends and queries immutable ledger entries. Append rejects
// only structurally incomplete entries; there is no business validation.
type LedgerService interface {
	Append(ctx context.Context, req dto.CreateLedgerEntryRequest, createdBy domain.Role) (*domain.LedgerEntry, error)
	List(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, error)
	ListByObligation(ctx context.Context, obligationRef string) ([]domain.LedgerEntry, error)
}

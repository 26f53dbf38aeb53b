package services

import (
	"context"
	"time"

	"github.com/schoolops/school_finance_app/internal/core/domain"
)

// ReportingService computes dashboard aggregates on demand from current
// obligation and ledger state.
type ReportingService interface {
	FinancialSummary(ctx context.Context, from, to time.Time) (*domain.FinancialSummary, error)
	OutstandingByCategory(ctx context.Context, kind domain.ObligationKind) ([]domain.CategoryOutstanding, error)
	CollectionSummary(ctx context.Context) (*domain.CollectionSummary, error)
	// ReconciliationReport lists obligations whose ledger sum has drifted from
	// their paid amount.
	ReconciliationReport(ctx context.Context) ([]domain.ReconciliationRow, error)
}

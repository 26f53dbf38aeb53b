package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/schoolops/school_finance_app/internal/core/domain"
)

// ObligationFilter narrows an obligation listing. Nil fields mean "no constraint".
type ObligationFilter struct {
	Kind     *domain.ObligationKind
	Status   *domain.ObligationStatus
	Category *string
	Limit    int
	Offset   int
}

// ObligationRepository is the persistence port for obligations.
type ObligationRepository interface {
	// SaveObligation inserts a new obligation.
	SaveObligation(ctx context.Context, obligation domain.Obligation) error
	// FindObligationByID returns apperrors.ErrNotFound when absent.
	FindObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error)
	// ListObligations returns obligations matching the filter, newest first.
	ListObligations(ctx context.Context, filter ObligationFilter) ([]domain.Obligation, error)
	// ApplyPaymentUpdate sets the new paid amount and derived status, guarded by
	// the expected version. A stale version returns apperrors.ErrConflict and
	// leaves the row untouched.
	ApplyPaymentUpdate(ctx context.Context, obligationID string, newPaid decimal.Decimal, newStatus domain.ObligationStatus, expectedVersion int64, updatedBy string, updatedAt time.Time) error
	// UpdateObligation rewrites total amount and metadata, version-guarded the
	// same way as ApplyPaymentUpdate.
	UpdateObligation(ctx context.Context, obligation domain.Obligation, expectedVersion int64) error
}

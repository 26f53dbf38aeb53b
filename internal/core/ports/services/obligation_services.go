package services

import (
	"context"

	"github.com/schoolops/school_finance_app/internal/core/domain"
	portsrepo "github.com/schoolops/school_finance_app/internal/core/ports/repositories"
	"github.com/schoolops/school_finance_app/internal/dto"
)

// ObligationService manages the lifecycle of obligations outside of payments:
// creation, metadata/total edits, and reads.
type ObligationService interface {
	CreateObligation(ctx context.Context, req dto.CreateObligationRequest, creatorUserID string) (*domain.Obligation, error)
	GetObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error)
	ListObligations(ctx context.Context, filter portsrepo.ObligationFilter) ([]domain.Obligation, error)
	// UpdateObligation is the only path by which status can move backward:
	// raising the total above the paid amount re-derives a Paid obligation to
	// Partial Paid (lowering it to the paid amount or below derives Paid).
	UpdateObligation(ctx context.Context, obligationID string, req dto.UpdateObligationRequest, updaterUserID string) (*domain.Obligation, error)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/schoolops/school_finance_app/internal/apperrors"
	"github.com/schoolops/school_finance_app/internal/core/domain"
	portsrepo "github.com/schoolops/school_finance_app/internal/core/ports/repositories"
	portssvc "github.com/schoolops/school_finance_app/internal/core/ports/services"
	"github.com/schoolops/school_finance_app/internal/dto"
)

var (
	// ErrNegativeTotal rejects an obligation whose total amount is negative.
	ErrNegativeTotal = fmt.Errorf("%w: total amount must not be negative", apperrors.ErrValidation)
)

// obligationService manages obligation creation and edits. Payments are the
// only other mutation path and live in paymentService.
type obligationService struct {
	BaseService
	obligationRepo portsrepo.ObligationRepository
}

// NewObligationService creates a new ObligationService.
func NewObligationService(obligationRepo portsrepo.ObligationRepository) portssvc.ObligationService {
	return &obligationService{obligationRepo: obligationRepo}
}

var _ portssvc.ObligationService = (*obligationService)(nil)

// CreateObligation records a new obligation. Prepaid imports start with
// paidAmount equal to the total; everything else starts unpaid.
func (s *obligationService) CreateObligation(ctx context.Context, req dto.CreateObligationRequest, creatorUserID string) (*domain.Obligation, error) {
	logger := s.GetLogger(ctx)

	if req.TotalAmount.IsNegative() {
		return nil, ErrNegativeTotal
	}

	now := time.Now().UTC()
	paid := decimal.Zero
	if req.Prepaid {
		paid = req.TotalAmount
	}

	obligation := domain.Obligation{
		ObligationID:    uuid.NewString(),
		Kind:            req.Kind,
		Category:        req.Category,
		Description:     req.Description,
		TotalAmount:     req.TotalAmount,
		PaidAmount:      paid,
		CounterpartyRef: req.CounterpartyRef,
		Status:          domain.DeriveStatus(paid, req.TotalAmount),
		IssueDate:       req.IssueDate,
		DueDate:         req.DueDate,
		Version:         1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.obligationRepo.SaveObligation(ctx, obligation); err != nil {
		logger.Error("Failed to save obligation", slog.String("error", err.Error()), slog.String("kind", string(req.Kind)))
		return nil, fmt.Errorf("failed to save obligation: %w", err)
	}

	logger.Info("Obligation created",
		slog.String("obligation_id", obligation.ObligationID),
		slog.String("kind", string(obligation.Kind)),
		slog.String("total", obligation.TotalAmount.String()))
	return &obligation, nil
}

// GetObligationByID retrieves a single obligation.
func (s *obligationService) GetObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error) {
	obligation, err := s.obligationRepo.FindObligationByID(ctx, obligationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find obligation", slog.String("obligation_id", obligationID))
		}
		return nil, fmt.Errorf("failed to find obligation %s: %w", obligationID, err)
	}
	return obligation, nil
}

// ListObligations returns obligations matching the filter.
func (s *obligationService) ListObligations(ctx context.Context, filter portsrepo.ObligationFilter) ([]domain.Obligation, error) {
	obligations, err := s.obligationRepo.ListObligations(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list obligations")
		return nil, fmt.Errorf("failed to list obligations: %w", err)
	}
	return obligations, nil
}

// UpdateObligation edits the total amount and metadata of an obligation.
// Status is re-derived from the new total against the untouched paid amount:
// lowering the total to the paid amount or below derives Paid, and raising it
// above the paid amount is the one legitimate way a Paid obligation moves back
// to Partial Paid. Both happen through derivation, not special-casing.
func (s *obligationService) UpdateObligation(ctx context.Context, obligationID string, req dto.UpdateObligationRequest, updaterUserID string) (*domain.Obligation, error) {
	logger := s.GetLogger(ctx)

	obligation, err := s.obligationRepo.FindObligationByID(ctx, obligationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find obligation %s: %w", obligationID, err)
	}

	if req.Version != obligation.Version {
		logger.Warn("Obligation edit rejected due to stale version",
			slog.String("obligation_id", obligationID),
			slog.Int64("expected_version", req.Version),
			slog.Int64("current_version", obligation.Version))
		return nil, fmt.Errorf("%w: obligation was modified concurrently", apperrors.ErrConflict)
	}

	updated := false
	if req.TotalAmount != nil {
		if req.TotalAmount.IsNegative() {
			return nil, ErrNegativeTotal
		}
		obligation.TotalAmount = *req.TotalAmount
		updated = true
	}
	if req.Category != nil {
		obligation.Category = *req.Category
		updated = true
	}
	if req.Description != nil {
		obligation.Description = *req.Description
		updated = true
	}
	if req.CounterpartyRef != nil {
		obligation.CounterpartyRef = *req.CounterpartyRef
		updated = true
	}
	if req.DueDate != nil {
		obligation.DueDate = *req.DueDate
		updated = true
	}

	if !updated {
		logger.Debug("No fields provided for obligation update", slog.String("obligation_id", obligationID))
		return obligation, nil
	}

	now := time.Now().UTC()
	obligation.Status = domain.DeriveStatus(obligation.PaidAmount, obligation.TotalAmount)
	obligation.LastUpdatedAt = now
	obligation.LastUpdatedBy = updaterUserID

	if err := s.obligationRepo.UpdateObligation(ctx, *obligation, req.Version); err != nil {
		logger.Error("Failed to save obligation update", slog.String("error", err.Error()), slog.String("obligation_id", obligationID))
		return nil, fmt.Errorf("failed to save obligation update: %w", err)
	}
	obligation.Version++

	logger.Info("Obligation updated", slog.String("obligation_id", obligationID), slog.String("status", string(obligation.Status)))
	return obligation, nil
}

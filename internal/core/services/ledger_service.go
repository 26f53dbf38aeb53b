package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/schoolops/school_finance_app/internal/apperrors"
	"github.com/schoolops/school_finance_app/internal/core/domain"
	portsrepo "github.com/schoolops/school_finance_app/internal/core/ports/repositories"
	portssvc "github.com/schoolops/school_finance_app/internal/core/ports/services"
	"github.com/schoolops/school_finance_app/internal/dto"
)

var (
	// ErrEntryIncomplete rejects a ledger entry missing a structural field.
	// This is the only validation Append performs; the ledger never rejects on
	// business grounds.
	ErrEntryIncomplete = fmt.Errorf("%w: ledger entry is structurally incomplete", apperrors.ErrValidation)
)

// ledgerService appends and queries the append-only transaction ledger.
type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepository
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepository) portssvc.LedgerService {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

var _ portssvc.LedgerService = (*ledgerService)(nil)

// Append records one monetary event. The amount is stored exactly as given;
// the caller is responsible for the sign convention.
func (s *ledgerService) Append(ctx context.Context, req dto.CreateLedgerEntryRequest, createdBy domain.Role) (*domain.LedgerEntry, error) {
	logger := s.GetLogger(ctx)

	if req.Type != domain.EntryIncome && req.Type != domain.EntryExpense {
		return nil, fmt.Errorf("%w: unknown entry type %q", ErrEntryIncomplete, req.Type)
	}
	if req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: amount must be non-zero", ErrEntryIncomplete)
	}
	if req.Category == "" || req.PaymentMethod == "" || req.Date.IsZero() {
		return nil, ErrEntryIncomplete
	}

	status := req.Status
	if status == "" {
		status = domain.EntryCompleted
	}

	now := time.Now().UTC()
	entry := domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		Type:          req.Type,
		Amount:        req.Amount,
		Category:      req.Category,
		Description:   req.Description,
		OccurredAt:    req.Date,
		PaymentMethod: req.PaymentMethod,
		Status:        status,
		ObligationRef: req.ObligationRef,
		CreatedBy:     string(createdBy),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     string(createdBy),
			LastUpdatedAt: now,
			LastUpdatedBy: string(createdBy),
		},
	}

	if err := s.ledgerRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save ledger entry", slog.String("error", err.Error()), slog.String("type", string(req.Type)))
		return nil, fmt.Errorf("failed to save ledger entry: %w", err)
	}

	logger.Info("Ledger entry appended",
		slog.String("entry_id", entry.EntryID),
		slog.String("type", string(entry.Type)),
		slog.String("amount", entry.Amount.String()))
	return &entry, nil
}

// List returns entries matching the filter in insertion order.
func (s *ledgerService) List(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, error) {
	entries, err := s.ledgerRepo.ListEntries(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries")
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return entries, nil
}

// ListByObligation returns every entry linked to the given obligation.
func (s *ledgerService) ListByObligation(ctx context.Context, obligationRef string) ([]domain.LedgerEntry, error) {
	entries, err := s.ledgerRepo.ListEntriesByObligation(ctx, obligationRef)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries for obligation", slog.String("obligation_ref", obligationRef))
		return nil, fmt.Errorf("failed to list ledger entries for obligation %s: %w", obligationRef, err)
	}
	return entries, nil
}

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
	// ErrAmountInvalid rejects a payment that is not positive or exceeds the
	// remaining balance. Overpayments are rejected, never clamped.
	ErrAmountInvalid = fmt.Errorf("%w: payment amount must be positive and within the remaining balance", apperrors.ErrValidation)
	// ErrMissingPaymentMethod rejects a payment without a payment method.
	ErrMissingPaymentMethod = fmt.Errorf("%w: payment method is required", apperrors.ErrValidation)
	// ErrMissingDate rejects a payment without a valid date.
	ErrMissingDate = fmt.Errorf("%w: payment date is required", apperrors.ErrValidation)
	// ErrVersionStale rejects a payment whose expected obligation version has
	// already been superseded by a concurrent write.
	ErrVersionStale = fmt.Errorf("%w: obligation was modified concurrently", apperrors.ErrConflict)
)

// ledgerAppendTimeout bounds the best-effort ledger append so a slow ledger
// store cannot stall the payment path.
const ledgerAppendTimeout = 3 * time.Second

// paymentService applies payments against obligations and mirrors each one
// into the transaction ledger.
type paymentService struct {
	BaseService
	obligationRepo portsrepo.ObligationRepository
	ledgerRepo     portsrepo.LedgerRepository
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(obligationRepo portsrepo.ObligationRepository, ledgerRepo portsrepo.LedgerRepository) portssvc.PaymentService {
	return &paymentService{
		obligationRepo: obligationRepo,
		ledgerRepo:     ledgerRepo,
	}
}

var _ portssvc.PaymentService = (*paymentService)(nil)

// ApplyPayment validates the payment, increments the obligation's paid amount
// with the derived status under an optimistic version guard, and then attempts
// the ledger append. The append is a secondary effect: its failure is logged
// and surfaced as a warning on the receipt, never as an error, and never rolls
// back the committed obligation update.
func (s *paymentService) ApplyPayment(ctx context.Context, obligationID string, req dto.ApplyPaymentRequest, actorRole domain.Role) (*domain.PaymentReceipt, error) {
	logger := s.GetLogger(ctx)

	// --- Validation before any mutation ---
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrAmountInvalid
	}
	if req.PaymentMethod == "" {
		return nil, ErrMissingPaymentMethod
	}
	if req.Date.IsZero() {
		return nil, ErrMissingDate
	}

	obligation, err := s.obligationRepo.FindObligationByID(ctx, obligationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to fetch obligation for payment", slog.String("error", err.Error()), slog.String("obligation_id", obligationID))
		}
		return nil, fmt.Errorf("failed to find obligation %s: %w", obligationID, err)
	}

	if req.Version != nil && *req.Version != obligation.Version {
		logger.Warn("Payment rejected due to stale obligation version",
			slog.String("obligation_id", obligationID),
			slog.Int64("expected_version", *req.Version),
			slog.Int64("current_version", obligation.Version))
		return nil, ErrVersionStale
	}

	if req.Amount.GreaterThan(obligation.Remaining()) {
		return nil, fmt.Errorf("%w: amount %s exceeds remaining balance %s",
			ErrAmountInvalid, req.Amount.String(), obligation.Remaining().String())
	}

	// --- Primary mutation ---
	now := time.Now().UTC()
	newPaid := obligation.PaidAmount.Add(req.Amount)
	newStatus := domain.DeriveStatus(newPaid, obligation.TotalAmount)

	err = s.obligationRepo.ApplyPaymentUpdate(ctx, obligationID, newPaid, newStatus, obligation.Version, string(actorRole), now)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Concurrent payment detected, update rejected", slog.String("obligation_id", obligationID))
			return nil, ErrVersionStale
		}
		logger.Error("Failed to apply payment update", slog.String("error", err.Error()), slog.String("obligation_id", obligationID))
		return nil, fmt.Errorf("failed to apply payment: %w", err)
	}

	obligation.PaidAmount = newPaid
	obligation.Status = newStatus
	obligation.Version++
	obligation.LastUpdatedAt = now
	obligation.LastUpdatedBy = string(actorRole)

	receipt := &domain.PaymentReceipt{Obligation: *obligation}

	// --- Secondary effect: best-effort ledger append ---
	entry := domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		Type:          obligation.Kind.LedgerEntryType(),
		Amount:        obligation.Kind.SignedLedgerAmount(req.Amount),
		Category:      obligation.Category,
		Description:   s.entryDescription(obligation, req),
		OccurredAt:    req.Date,
		PaymentMethod: req.PaymentMethod,
		Status:        domain.EntryCompleted,
		ObligationRef: &obligation.ObligationID,
		CreatedBy:     string(actorRole),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     string(actorRole),
			LastUpdatedAt: now,
			LastUpdatedBy: string(actorRole),
		},
	}

	appendCtx, cancel := context.WithTimeout(ctx, ledgerAppendTimeout)
	defer cancel()
	if err := s.ledgerRepo.SaveEntry(appendCtx, entry); err != nil {
		logger.Warn("Ledger append failed after committed payment",
			slog.String("error", err.Error()),
			slog.String("obligation_id", obligationID),
			slog.String("entry_id", entry.EntryID))
		receipt.Warning = fmt.Sprintf("payment recorded, but ledger entry could not be written: %s", err.Error())
		return receipt, nil
	}

	receipt.EntryID = &entry.EntryID
	logger.Info("Payment applied",
		slog.String("obligation_id", obligationID),
		slog.String("amount", req.Amount.String()),
		slog.String("status", string(newStatus)),
		slog.String("entry_id", entry.EntryID))
	return receipt, nil
}

func (s *paymentService) entryDescription(o *domain.Obligation, req dto.ApplyPaymentRequest) string {
	if req.Notes != "" {
		return req.Notes
	}
	return fmt.Sprintf("Payment of %s towards %s (%s)", req.Amount.String(), o.Description, o.CounterpartyRef)
}

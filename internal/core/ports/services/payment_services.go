package services

import (
	"context"

	"github.com/schoolops/school_finance_app/internal/core/domain"
	"github.com/schoolops/school_finance_app/internal/dto"
)

// PaymentService applies payments against obligations.
type PaymentService interface {
	// ApplyPayment validates and applies one payment. The obligation update is
	// the primary effect; the ledger append is best-effort and its failure is
	// reported through the receipt's Warning, never as an error.
	ApplyPayment(ctx context.Context, obligationID string, req dto.ApplyPaymentRequest, actorRole domain.Role) (*domain.PaymentReceipt, error)
}

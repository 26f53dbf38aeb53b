package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/schoolops/school_finance_app/internal/core/domain"
)

// ApplyPaymentRequest defines the payload for paying against an obligation.
// Version is optional; when set, the payment is rejected if the obligation has
// moved past that version since the caller read it.
type ApplyPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required,dgt0"`
	PaymentMethod string          `json:"paymentMethod" binding:"required"`
	Date          time.Time       `json:"date" binding:"required"`
	Notes         string          `json:"notes"`
	Version       *int64          `json:"version"`
}

// PaymentResponse is the read-after-write result of a payment: the updated
// obligation plus the outcome of the best-effort ledger append.
type PaymentResponse struct {
	Obligation ObligationResponse `json:"obligation"`
	EntryID    *string            `json:"entryID,omitempty"`
	Warning    string             `json:"warning,omitempty"`
}

// ToPaymentResponse converts a domain.PaymentReceipt to its response DTO.
func ToPaymentResponse(r *domain.PaymentReceipt) PaymentResponse {
	return PaymentResponse{
		Obligation: ToObligationResponse(&r.Obligation),
		EntryID:    r.EntryID,
		Warning:    r.Warning,
	}
}

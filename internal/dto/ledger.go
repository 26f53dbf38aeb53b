package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/schoolops/school_finance_app/internal/core/domain"
)

// CreateLedgerEntryRequest defines the payload for recording a standalone
// monetary event (one not produced by a payment). Amount carries the caller's
// sign: positive for Income, negative for Expense.
type CreateLedgerEntryRequest struct {
	Type          domain.EntryType   `json:"type" binding:"required,oneof=Income Expense"`
	Amount        decimal.Decimal    `json:"amount" binding:"required"`
	Category      string             `json:"category" binding:"required"`
	Description   string             `json:"description"`
	Date          time.Time          `json:"date" binding:"required"`
	PaymentMethod string             `json:"paymentMethod" binding:"required"`
	Status        domain.EntryStatus `json:"status" binding:"omitempty,oneof=Pending Completed"`
	ObligationRef *string            `json:"obligationRef"`
}

// ListLedgerParams holds the query-side filters for the ledger.
type ListLedgerParams struct {
	From          *time.Time          `form:"from" time_format:"2006-01-02"`
	To            *time.Time          `form:"to" time_format:"2006-01-02"`
	Type          *domain.EntryType   `form:"type"`
	Category      *string             `form:"category"`
	ObligationRef *string             `form:"obligationRef"`
	Limit         int                 `form:"limit"`
	Offset        int                 `form:"offset"`
}

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	EntryID       string             `json:"entryID"`
	Type          domain.EntryType   `json:"type"`
	Amount        decimal.Decimal    `json:"amount"`
	Category      string             `json:"category"`
	Description   string             `json:"description"`
	OccurredAt    time.Time          `json:"occurredAt"`
	PaymentMethod string             `json:"paymentMethod"`
	Status        domain.EntryStatus `json:"status"`
	ObligationRef *string            `json:"obligationRef,omitempty"`
	CreatedBy     string             `json:"createdBy"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its response DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:       e.EntryID,
		Type:          e.Type,
		Amount:        e.Amount,
		Category:      e.Category,
		Description:   e.Description,
		OccurredAt:    e.OccurredAt,
		PaymentMethod: e.PaymentMethod,
		Status:        e.Status,
		ObligationRef: e.ObligationRef,
		CreatedBy:     e.CreatedBy,
		CreatedAt:     e.CreatedAt,
	}
}

// ToLedgerEntryResponses converts a slice of entries.
func ToLedgerEntryResponses(es []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(es))
	for i := range es {
		responses[i] = ToLedgerEntryResponse(&es[i])
	}
	return responses
}

// ToLedgerFilter maps the query params onto the domain filter.
func (p ListLedgerParams) ToLedgerFilter() domain.LedgerFilter {
	return domain.LedgerFilter{
		From:          p.From,
		To:            p.To,
		Type:          p.Type,
		Category:      p.Category,
		ObligationRef: p.ObligationRef,
		Limit:         p.Limit,
		Offset:        p.Offset,
	}
}

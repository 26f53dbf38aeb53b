package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/schoolops/school_finance_app/internal/core/domain"
)

// CreateObligationRequest defines the payload for recording a new obligation.
// Prepaid imports (e.g. an expense entered after the fact) set Prepaid so the
// paid amount starts at the total instead of zero.
type CreateObligationRequest struct {
	Kind            domain.ObligationKind `json:"kind" binding:"required,oneof=EXPENSE FEE_COLLECTION PAYROLL"`
	Category        string                `json:"category" binding:"required"`
	Description     string                `json:"description"`
	TotalAmount     decimal.Decimal       `json:"totalAmount" binding:"required,dgte0"`
	CounterpartyRef string                `json:"counterpartyRef" binding:"required"`
	IssueDate       time.Time             `json:"issueDate" binding:"required"`
	DueDate         time.Time             `json:"dueDate"`
	Prepaid         bool                  `json:"prepaid"`
}

// UpdateObligationRequest edits total amount and metadata. Nil fields are left
// unchanged. Version must match the current obligation version.
type UpdateObligationRequest struct {
	TotalAmount     *decimal.Decimal `json:"totalAmount"`
	Category        *string          `json:"category"`
	Description     *string          `json:"description"`
	CounterpartyRef *string          `json:"counterpartyRef"`
	DueDate         *time.Time       `json:"dueDate"`
	Version         int64            `json:"version" binding:"min=1"`
}

// ObligationResponse defines the data returned for an obligation.
type ObligationResponse struct {
	ObligationID    string                  `json:"obligationID"`
	Kind            domain.ObligationKind   `json:"kind"`
	Category        string                  `json:"category"`
	Description     string                  `json:"description"`
	TotalAmount     decimal.Decimal         `json:"totalAmount"`
	PaidAmount      decimal.Decimal         `json:"paidAmount"`
	Remaining       decimal.Decimal         `json:"remaining"`
	CounterpartyRef string                  `json:"counterpartyRef"`
	Status          domain.ObligationStatus `json:"status"`
	IssueDate       time.Time               `json:"issueDate"`
	DueDate         time.Time               `json:"dueDate"`
	Version         int64                   `json:"version"`
	CreatedAt       time.Time               `json:"createdAt"`
}

// ToObligationResponse converts a domain.Obligation to its response DTO.
func ToObligationResponse(o *domain.Obligation) ObligationResponse {
	return ObligationResponse{
		ObligationID:    o.ObligationID,
		Kind:            o.Kind,
		Category:        o.Category,
		Description:     o.Description,
		TotalAmount:     o.TotalAmount,
		PaidAmount:      o.PaidAmount,
		Remaining:       o.Remaining(),
		CounterpartyRef: o.CounterpartyRef,
		Status:          o.Status,
		IssueDate:       o.IssueDate,
		DueDate:         o.DueDate,
		Version:         o.Version,
		CreatedAt:       o.CreatedAt,
	}
}

// ToObligationResponses converts a slice of obligations.
func ToObligationResponses(os []domain.Obligation) []ObligationResponse {
	responses := make([]ObligationResponse, len(os))
	for i := range os {
		responses[i] = ToObligationResponse(&os[i])
	}
	return responses
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType classifies a ledger entry as money coming in or going out.
type EntryType string

const (
	EntryIncome  EntryType = "Income"
	EntryExpense EntryType = "Expense"
)

// EntryStatus tracks whether the underlying monetary event has settled.
type EntryStatus string

const (
	EntryPending   EntryStatus = "Pending"
	EntryCompleted EntryStatus = "Completed"
)

// LedgerEntry is one immutable monetary event. Amount carries the sign applied
// by the caller (positive for Income, negative for Expense); the ledger stores
// it as given and never mutates an entry after creation.
type LedgerEntry struct {
	EntryID       string          `json:"entryID"`
	Type          EntryType       `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	OccurredAt    time.Time       `json:"occurredAt"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        EntryStatus     `json:"status"`
	ObligationRef *string         `json:"obligationRef,omitempty"` // optional link to the obligation that produced this entry
	CreatedBy     string          `json:"createdBy"`               // role of the recording actor
	AuditFields
}

// LedgerFilter narrows a ledger query. Zero values mean "no constraint".
// Results always come back in insertion order.
type LedgerFilter struct {
	From          *time.Time
	To            *time.Time
	Type          *EntryType
	Category      *string
	ObligationRef *string
	Limit         int
	Offset        int
}

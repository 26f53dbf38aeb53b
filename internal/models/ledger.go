package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the database representation of one ledger row. Rows are
// insert-only; there is no update path.
type LedgerEntry struct {
	EntryID       string
	EntryType     string
	Amount        decimal.Decimal
	Category      string
	Description   string
	OccurredAt    time.Time
	PaymentMethod string
	Status        string
	ObligationRef *string
	RecordedBy    string
	AuditFields
}

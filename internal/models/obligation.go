package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Obligation is the database representation of a payment obligation.
type Obligation struct {
	ObligationID    string
	Kind            string
	Category        string
	Description     string
	TotalAmount     decimal.Decimal
	PaidAmount      decimal.Decimal
	CounterpartyRef string
	Status          string
	IssueDate       time.Time
	DueDate         time.Time
	Version         int64
	AuditFields
}

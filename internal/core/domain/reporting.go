package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialSummary is the dashboard roll-up over obligations and ledger
// entries. It is recomputed from current state on every call, never cached.
type FinancialSummary struct {
	TotalObligated   decimal.Decimal `json:"totalObligated"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	PeriodIncome     decimal.Decimal `json:"periodIncome"`
	PeriodExpense    decimal.Decimal `json:"periodExpense"` // absolute value of expense entries in the period
	PeriodNet        decimal.Decimal `json:"periodNet"`
	From             time.Time       `json:"from"`
	To               time.Time       `json:"to"`
}

// CategoryOutstanding is one row of the outstanding-by-category breakdown.
type CategoryOutstanding struct {
	Category    string          `json:"category"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Count       int             `json:"count"`
}

// CollectionSummary aggregates fee collection obligations.
// PendingCollection is the sum of remaining balances over unpaid and
// partially paid fees.
type CollectionSummary struct {
	TotalFees         decimal.Decimal `json:"totalFees"`
	Collected         decimal.Decimal `json:"collected"`
	PendingCollection decimal.Decimal `json:"pendingCollection"`
	UnpaidCount       int             `json:"unpaidCount"`
	PartialCount      int             `json:"partialCount"`
	PaidCount         int             `json:"paidCount"`
}

// ReconciliationRow reports one obligation whose ledger entry sum has drifted
// from its paid amount. Ledger-vs-obligation equality is a best-effort
// invariant, so drift is observable rather than impossible.
type ReconciliationRow struct {
	ObligationID string          `json:"obligationID"`
	Kind         ObligationKind  `json:"kind"`
	PaidAmount   decimal.Decimal `json:"paidAmount"`
	LedgerSum    decimal.Decimal `json:"ledgerSum"` // absolute value of the signed entry sum
	Drift        decimal.Decimal `json:"drift"`     // paidAmount - ledgerSum
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ObligationKind identifies which part of the school's finances an obligation
// belongs to. The kind decides the sign convention of its ledger entries.
type ObligationKind string

const (
	KindExpense       ObligationKind = "EXPENSE"        // money owed to a vendor
	KindFeeCollection ObligationKind = "FEE_COLLECTION" // money owed by a student
	KindPayroll       ObligationKind = "PAYROLL"        // money owed to an employee
)

// ObligationStatus is derived from the payment arithmetic and persisted only
// for query convenience. It is recomputed on every mutation.
type ObligationStatus string

const (
	StatusUnpaid      ObligationStatus = "Unpaid"
	StatusPartialPaid ObligationStatus = "Partial Paid"
	StatusPaid        ObligationStatus = "Paid"
)

// Obligation represents money owed by or to a counterparty, with a running
// paid amount that only payments may increase.
type Obligation struct {
	ObligationID    string           `json:"obligationID"`
	Kind            ObligationKind   `json:"kind"`
	Category        string           `json:"category"` // e.g. Utilities, Tuition, Salary
	Description     string           `json:"description"`
	TotalAmount     decimal.Decimal  `json:"totalAmount"`
	PaidAmount      decimal.Decimal  `json:"paidAmount"`
	CounterpartyRef string           `json:"counterpartyRef"` // vendor name, student ID or employee ID
	Status          ObligationStatus `json:"status"`
	IssueDate       time.Time        `json:"issueDate"`
	DueDate         time.Time        `json:"dueDate"`
	Version         int64            `json:"version"` // optimistic concurrency counter
	AuditFields
}

// Remaining returns the unpaid balance of the obligation.
func (o Obligation) Remaining() decimal.Decimal {
	return o.TotalAmount.Sub(o.PaidAmount)
}

// DeriveStatus computes the canonical status from the paid/total pair. It is a
// pure function: status is never stored as independent ground truth, and every
// mutation must re-derive it through here.
func DeriveStatus(paid, total decimal.Decimal) ObligationStatus {
	switch {
	case paid.LessThanOrEqual(decimal.Zero):
		return StatusUnpaid
	case paid.LessThan(total):
		return StatusPartialPaid
	default:
		return StatusPaid
	}
}

// LedgerEntryType returns the ledger entry type produced by paying an
// obligation of this kind.
func (k ObligationKind) LedgerEntryType() EntryType {
	if k == KindFeeCollection {
		return EntryIncome
	}
	return EntryExpense
}

// SignedLedgerAmount applies the domain sign convention to a payment amount:
// fee collections produce positive Income entries, expenses and payroll
// produce negative Expense entries. The ledger itself never re-derives sign.
func (k ObligationKind) SignedLedgerAmount(amount decimal.Decimal) decimal.Decimal {
	if k == KindFeeCollection {
		return amount
	}
	return amount.Neg()
}

// PaymentReceipt is the outcome of a successfully applied payment. The ledger
// append is a secondary effect: when it fails, EntryID is nil and Warning
// carries the reason, but the obligation update has still committed.
type PaymentReceipt struct {
	Obligation Obligation `json:"obligation"`
	EntryID    *string    `json:"entryID,omitempty"`
	Warning    string     `json:"warning,omitempty"`
}

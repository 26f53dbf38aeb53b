package mapping

import (
	"github.com/schoolops/school_finance_app/internal/core/domain"
	"github.com/schoolops/school_finance_app/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:       d.EntryID,
		EntryType:     string(d.Type),
		Amount:        d.Amount,
		Category:      d.Category,
		Description:   d.Description,
		OccurredAt:    d.OccurredAt,
		PaymentMethod: d.PaymentMethod,
		Status:        string(d.Status),
		ObligationRef: d.ObligationRef,
		RecordedBy:    d.CreatedBy,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:       m.EntryID,
		Type:          domain.EntryType(m.EntryType),
		Amount:        m.Amount,
		Category:      m.Category,
		Description:   m.Description,
		OccurredAt:    m.OccurredAt,
		PaymentMethod: m.PaymentMethod,
		Status:        domain.EntryStatus(m.Status),
		ObligationRef: m.ObligationRef,
		CreatedBy:     m.RecordedBy,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a slice of model LedgerEntries to domain LedgerEntries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}

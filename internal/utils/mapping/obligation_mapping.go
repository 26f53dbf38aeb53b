package mapping

import (
	"github.com/schoolops/school_finance_app/internal/core/domain"
	"github.com/schoolops/school_finance_app/internal/models"
)

// ToModelObligation converts a domain Obligation to a model Obligation
func ToModelObligation(d domain.Obligation) models.Obligation {
	return models.Obligation{
		ObligationID:    d.ObligationID,
		Kind:            string(d.Kind),
		Category:        d.Category,
		Description:     d.Description,
		TotalAmount:     d.TotalAmount,
		PaidAmount:      d.PaidAmount,
		CounterpartyRef: d.CounterpartyRef,
		Status:          string(d.Status),
		IssueDate:       d.IssueDate,
		DueDate:         d.DueDate,
		Version:         d.Version,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainObligation converts a model Obligation to a domain Obligation
func ToDomainObligation(m models.Obligation) domain.Obligation {
	return domain.Obligation{
		ObligationID:    m.ObligationID,
		Kind:            domain.ObligationKind(m.Kind),
		Category:        m.Category,
		Description:     m.Description,
		TotalAmount:     m.TotalAmount,
		PaidAmount:      m.PaidAmount,
		CounterpartyRef: m.CounterpartyRef,
		Status:          domain.ObligationStatus(m.Status),
		IssueDate:       m.IssueDate,
		DueDate:         m.DueDate,
		Version:         m.Version,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainObligationSlice converts a slice of model Obligations to domain Obligations
func ToDomainObligationSlice(ms []models.Obligation) []domain.Obligation {
	ds := make([]domain.Obligation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainObligation(m)
	}
	return ds
}

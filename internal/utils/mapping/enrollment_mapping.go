package mapping

import (
	"github.com/schoolops/school_finance_app/internal/core/domain"
	"github.com/schoolops/school_finance_app/internal/models"
)

// ToModelStudent converts a domain Student to a model Student
func ToModelStudent(d domain.Student) models.Student {
	return models.Student{
		StudentID:   d.StudentID,
		UserID:      d.UserID,
		ClassID:     d.ClassID,
		Name:        d.Name,
		Email:       d.Email,
		Grade:       d.Grade,
		Section:     d.Section,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStudent converts a model Student to a domain Student
func ToDomainStudent(m models.Student) domain.Student {
	return domain.Student{
		StudentID:   m.StudentID,
		UserID:      m.UserID,
		ClassID:     m.ClassID,
		Name:        m.Name,
		Email:       m.Email,
		Grade:       m.Grade,
		Section:     m.Section,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainClassSection converts a model ClassSection to a domain ClassSection
func ToDomainClassSection(m models.ClassSection) domain.ClassSection {
	return domain.ClassSection{
		ClassID:     m.ClassID,
		Grade:       m.Grade,
		Section:     m.Section,
		Capacity:    m.Capacity,
		Enrolled:    m.Enrolled,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFeeSchedule converts a model FeeSchedule to a domain FeeSchedule
func ToDomainFeeSchedule(m models.FeeSchedule) domain.FeeSchedule {
	return domain.FeeSchedule{
		Grade:        m.Grade,
		AdmissionFee: m.AdmissionFee,
		TuitionFee:   m.TuitionFee,
	}
}

package repositories

import (
	"context"

	"github.com/schoolops/school_finance_app/internal/core/domain"
)

// ClassRepository resolves class sections and tracks their enrollment counts.
type ClassRepository interface {
	// FindByGradeSection returns apperrors.ErrNotFound when no such class exists.
	FindByGradeSection(ctx context.Context, grade, section string) (*domain.ClassSection, error)
	// IncrementEnrollment bumps the current-enrollment counter by one.
	IncrementEnrollment(ctx context.Context, classID string) error
}

// FeeScheduleRepository looks up configured fee amounts per grade.
type FeeScheduleRepository interface {
	// FindByGrade returns apperrors.ErrNotFound when no schedule is configured
	// for the grade; callers fall back to default amounts.
	FindByGrade(ctx context.Context, grade string) (*domain.FeeSchedule, error)
}

// StudentRepository persists student records.
type StudentRepository interface {
	SaveStudent(ctx context.Context, student domain.Student) error
	FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error)
}

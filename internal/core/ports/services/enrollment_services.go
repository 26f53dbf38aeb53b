package services

import (
	"context"

	"github.com/schoolops/school_finance_app/internal/core/domain"
	"github.com/schoolops/school_finance_app/internal/dto"
)

// EnrollmentService runs the admission-approval workflow: user identity,
// student record, enrollment counter, and the two fee obligations.
type EnrollmentService interface {
	ApproveAdmission(ctx context.Context, req dto.ApproveAdmissionRequest, approverUserID string) (*domain.EnrollmentResult, error)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/schoolops/school_finance_app/internal/apperrors"
	"github.com/schoolops/school_finance_app/internal/core/domain"
	portsrepo "github.com/schoolops/school_finance_app/internal/core/ports/repositories"
	portssvc "github.com/schoolops/school_finance_app/internal/core/ports/services"
	"github.com/schoolops/school_finance_app/internal/dto"
	"github.com/schoolops/school_finance_app/internal/utils"
)

var (
	// ErrMissingAssignment aborts the workflow when no class section exists for
	// the requested grade/section.
	ErrMissingAssignment = errors.New("no class section assigned for the requested grade and section")
	// ErrCapacityExceeded aborts the workflow when the target class is full.
	ErrCapacityExceeded = errors.New("class section is at capacity")
)

// Fallback fee amounts used when no fee schedule is configured for a grade.
var (
	defaultAdmissionFee = decimal.NewFromInt(5000)
	defaultTuitionFee   = decimal.NewFromInt(3000)
)

// defaultStudentPassword is assigned to every generated student account; the
// student is expected to change it on first login.
const defaultStudentPassword = "student@123"

// Saga step names recorded in the enrollment result.
const (
	stepValidateAssignment  = "validate_assignment"
	stepCheckCapacity       = "check_capacity"
	stepCreateUser          = "create_user"
	stepCreateStudent       = "create_student"
	stepIncrementEnrollment = "increment_enrollment"
	stepResolveFeeSchedule  = "resolve_fee_schedule"
	stepCreateAdmissionFee  = "create_admission_fee"
	stepCreateTuitionFee    = "create_tuition_fee"
	stepLedgerAdmissionFee  = "ledger_admission_fee"
	stepLedgerTuitionFee    = "ledger_tuition_fee"
)

// enrollmentService runs the admission-approval saga. Steps 1-2 are hard
// preconditions, steps 3-4 abort on failure, and everything after is
// best-effort: failures are recorded as warnings so a human can remediate,
// never rolled back.
type enrollmentService struct {
	BaseService
	classRepo       portsrepo.ClassRepository
	feeScheduleRepo portsrepo.FeeScheduleRepository
	studentRepo     portsrepo.StudentRepository
	userRepo        portsrepo.UserRepository
	obligationRepo  portsrepo.ObligationRepository
	ledgerRepo      portsrepo.LedgerRepository

	admissionFee decimal.Decimal
	tuitionFee   decimal.Decimal
}

// EnrollmentServiceOption is a functional option for configuring the enrollment service.
type EnrollmentServiceOption func(*enrollmentService)

// WithDefaultFees overrides the fallback fee amounts used when no schedule is
// configured for a grade.
func WithDefaultFees(admission, tuition decimal.Decimal) EnrollmentServiceOption {
	return func(s *enrollmentService) {
		s.admissionFee = admission
		s.tuitionFee = tuition
	}
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(
	classRepo portsrepo.ClassRepository,
	feeScheduleRepo portsrepo.FeeScheduleRepository,
	studentRepo portsrepo.StudentRepository,
	userRepo portsrepo.UserRepository,
	obligationRepo portsrepo.ObligationRepository,
	ledgerRepo portsrepo.LedgerRepository,
	options ...EnrollmentServiceOption,
) portssvc.EnrollmentService {
	svc := &enrollmentService{
		classRepo:       classRepo,
		feeScheduleRepo: feeScheduleRepo,
		studentRepo:     studentRepo,
		userRepo:        userRepo,
		obligationRepo:  obligationRepo,
		ledgerRepo:      ledgerRepo,
		admissionFee:    defaultAdmissionFee,
		tuitionFee:      defaultTuitionFee,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.EnrollmentService = (*enrollmentService)(nil)

// ApproveAdmission executes the enrollment workflow and returns the recorded
// per-step outcomes. An error return means nothing durable was created beyond
// what the step outcomes say.
func (s *enrollmentService) ApproveAdmission(ctx context.Context, req dto.ApproveAdmissionRequest, approverUserID string) (*domain.EnrollmentResult, error) {
	logger := s.GetLogger(ctx)
	result := &domain.EnrollmentResult{}

	// Step 1: the class assignment must exist.
	class, err := s.classRepo.FindByGradeSection(ctx, req.Grade, req.Section)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			result.Steps = append(result.Steps, domain.StepOutcome{Step: stepValidateAssignment, Status: domain.StepFailed, Detail: "no class for grade/section"})
			return nil, fmt.Errorf("%w: grade %s section %s", ErrMissingAssignment, req.Grade, req.Section)
		}
		return nil, fmt.Errorf("failed to resolve class section: %w", err)
	}
	result.ClassID = class.ClassID
	result.Steps = append(result.Steps, domain.StepOutcome{Step: stepValidateAssignment, Status: domain.StepOK})

	// Step 2: the class must have a free seat.
	if class.Capacity > 0 && class.Enrolled >= class.Capacity {
		result.Steps = append(result.Steps, domain.StepOutcome{Step: stepCheckCapacity, Status: domain.StepFailed, Detail: "class full"})
		return nil, fmt.Errorf("%w: class %s has %d/%d seats filled", ErrCapacityExceeded, class.ClassID, class.Enrolled, class.Capacity)
	}
	result.Steps = append(result.Steps, domain.StepOutcome{Step: stepCheckCapacity, Status: domain.StepOK})

	now := time.Now().UTC()

	// Step 3: user identity. Failure aborts; a student cannot exist without it.
	username := generateUsername(req.ApplicantEmail, now)
	passwordHash, err := utils.HashPassword(defaultStudentPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash default password: %w", err)
	}
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		Name:         req.ApplicantName,
		Email:        req.ApplicantEmail,
		PasswordHash: passwordHash,
		Role:         domain.RoleStudent,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     approverUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: approverUserID,
		},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to create user identity for admission", slog.String("error", err.Error()), slog.String("username", username))
		result.Steps = append(result.Steps, domain.StepOutcome{Step: stepCreateUser, Status: domain.StepFailed, Detail: err.Error()})
		return nil, fmt.Errorf("failed to create user identity: %w", err)
	}
	result.UserID = user.UserID
	result.Username = username
	result.Steps = append(result.Steps, domain.StepOutcome{Step: stepCreateUser, Status: domain.StepOK})

	// Step 4: student record linked to the user and class. Failure aborts.
	student := domain.Student{
		StudentID: uuid.NewString(),
		UserID:    user.UserID,
		ClassID:   class.ClassID,
		Name:      req.ApplicantName,
		Email:     req.ApplicantEmail,
		Grade:     req.Grade,
		Section:   req.Section,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     approverUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: approverUserID,
		},
	}
	if err := s.studentRepo.SaveStudent(ctx, student); err != nil {
		logger.Error("Failed to create student record for admission", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		result.Steps = append(result.Steps, domain.StepOutcome{Step: stepCreateStudent, Status: domain.StepFailed, Detail: err.Error()})
		return nil, fmt.Errorf("failed to create student record: %w", err)
	}
	result.StudentID = student.StudentID
	result.Steps = append(result.Steps, domain.StepOutcome{Step: stepCreateStudent, Status: domain.StepOK})

	// Step 5: enrollment counter, best-effort from here on.
	if err := s.classRepo.IncrementEnrollment(ctx, class.ClassID); err != nil {
		s.recordWarning(ctx, result, stepIncrementEnrollment, fmt.Sprintf("enrollment counter not incremented for class %s: %s", class.ClassID, err.Error()))
	} else {
		result.Steps = append(result.Steps, domain.StepOutcome{Step: stepIncrementEnrollment, Status: domain.StepOK})
	}

	// Step 6: fee schedule lookup with documented fallbacks.
	admissionAmount, tuitionAmount := s.admissionFee, s.tuitionFee
	schedule, err := s.feeScheduleRepo.FindByGrade(ctx, req.Grade)
	switch {
	case err == nil:
		admissionAmount, tuitionAmount = schedule.AdmissionFee, schedule.TuitionFee
		result.Steps = append(result.Steps, domain.StepOutcome{Step: stepResolveFeeSchedule, Status: domain.StepOK})
	case errors.Is(err, apperrors.ErrNotFound):
		s.recordWarning(ctx, result, stepResolveFeeSchedule, fmt.Sprintf("no fee schedule for grade %s, using defaults %s/%s", req.Grade, admissionAmount.String(), tuitionAmount.String()))
	default:
		s.recordWarning(ctx, result, stepResolveFeeSchedule, fmt.Sprintf("fee schedule lookup failed, using defaults: %s", err.Error()))
	}

	// Steps 7-8: the two fee obligations and their pending ledger entries.
	result.AdmissionFeeID = s.createFeeObligation(ctx, result, student, "Admission", admissionAmount, now, approverUserID, stepCreateAdmissionFee, stepLedgerAdmissionFee)
	result.TuitionFeeID = s.createFeeObligation(ctx, result, student, "Tuition", tuitionAmount, now, approverUserID, stepCreateTuitionFee, stepLedgerTuitionFee)

	logger.Info("Admission approved",
		slog.String("student_id", student.StudentID),
		slog.String("class_id", class.ClassID),
		slog.Int("warnings", len(result.Warnings)))
	return result, nil
}

// createFeeObligation creates one fee obligation and its pending Income ledger
// entry. Both are best-effort: failures become warnings on the result.
func (s *enrollmentService) createFeeObligation(ctx context.Context, result *domain.EnrollmentResult, student domain.Student, category string, amount decimal.Decimal, now time.Time, approverUserID, obligationStep, ledgerStep string) string {
	obligation := domain.Obligation{
		ObligationID:    uuid.NewString(),
		Kind:            domain.KindFeeCollection,
		Category:        category,
		Description:     fmt.Sprintf("%s fee for %s (grade %s)", category, student.Name, student.Grade),
		TotalAmount:     amount,
		PaidAmount:      decimal.Zero,
		CounterpartyRef: student.StudentID,
		Status:          domain.StatusUnpaid,
		IssueDate:       now,
		DueDate:         now.AddDate(0, 1, 0),
		Version:         1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     approverUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: approverUserID,
		},
	}
	if err := s.obligationRepo.SaveObligation(ctx, obligation); err != nil {
		s.recordWarning(ctx, result, obligationStep, fmt.Sprintf("%s fee obligation not created for student %s: %s", category, student.StudentID, err.Error()))
		result.Steps = append(result.Steps, domain.StepOutcome{Step: ledgerStep, Status: domain.StepSkipped, Detail: "obligation missing"})
		return ""
	}
	result.Steps = append(result.Steps, domain.StepOutcome{Step: obligationStep, Status: domain.StepOK})

	entry := domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		Type:          domain.EntryIncome,
		Amount:        amount,
		Category:      category,
		Description:   obligation.Description,
		OccurredAt:    now,
		PaymentMethod: "N/A",
		Status:        domain.EntryPending,
		ObligationRef: &obligation.ObligationID,
		CreatedBy:     string(domain.RoleAdmin),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     approverUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: approverUserID,
		},
	}
	if err := s.ledgerRepo.SaveEntry(ctx, entry); err != nil {
		s.recordWarning(ctx, result, ledgerStep, fmt.Sprintf("pending ledger entry not written for %s fee %s: %s", category, obligation.ObligationID, err.Error()))
	} else {
		result.Steps = append(result.Steps, domain.StepOutcome{Step: ledgerStep, Status: domain.StepOK})
	}
	return obligation.ObligationID
}

func (s *enrollmentService) recordWarning(ctx context.Context, result *domain.EnrollmentResult, step, detail string) {
	s.LogWarn(ctx, "Enrollment step failed, continuing", slog.String("step", step), slog.String("detail", detail))
	result.Steps = append(result.Steps, domain.StepOutcome{Step: step, Status: domain.StepFailed, Detail: detail})
	result.Warnings = append(result.Warnings, detail)
}

// generateUsername derives a unique-enough username from the applicant's email
// local part plus a timestamp suffix to avoid collisions.
func generateUsername(email string, now time.Time) string {
	local := email
	if i := strings.Index(email, "@"); i > 0 {
		local = email[:i]
	}
	local = strings.ToLower(strings.TrimSpace(local))
	return fmt.Sprintf("%s%d", local, now.Unix())
}

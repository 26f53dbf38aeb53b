package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolops/school_finance_app/internal/apperrors"
	"github.com/schoolops/school_finance_app/internal/core/domain"
	portsrepo "github.com/schoolops/school_finance_app/internal/core/ports/repositories"
	"github.com/schoolops/school_finance_app/internal/models"
	"github.com/schoolops/school_finance_app/internal/utils/mapping"
)

type PgxFeeScheduleRepository struct {
	db *pgxpool.Pool
}

// NewFeeScheduleRepository creates a pgx-backed FeeScheduleRepository.
func NewFeeScheduleRepository(db *pgxpool.Pool) portsrepo.FeeScheduleRepository {
	return &PgxFeeScheduleRepository{db: db}
}

var _ portsrepo.FeeScheduleRepository = (*PgxFeeScheduleRepository)(nil)

func (r *PgxFeeScheduleRepository) FindByGrade(ctx context.Context, grade string) (*domain.FeeSchedule, error) {
	query := `SELECT grade, admission_fee, tuition_fee FROM fee_schedules WHERE grade = $1;`
	var m models.FeeSchedule
	err := r.db.QueryRow(ctx, query, grade).Scan(&m.Grade, &m.AdmissionFee, &m.TuitionFee)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fee schedule for grade %s: %w", grade, err)
	}
	d := mapping.ToDomainFeeSchedule(m)
	return &d, nil
}

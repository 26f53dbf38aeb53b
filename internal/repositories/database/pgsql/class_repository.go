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

type PgxClassRepository struct {
	db *pgxpool.Pool
}

// NewClassRepository creates a pgx-backed ClassRepository.
func NewClassRepository(db *pgxpool.Pool) portsrepo.ClassRepository {
	return &PgxClassRepository{db: db}
}

var _ portsrepo.ClassRepository = (*PgxClassRepository)(nil)

func (r *PgxClassRepository) FindByGradeSection(ctx context.Context, grade, section string) (*domain.ClassSection, error) {
	query := `
        SELECT class_id, grade, section, capacity, enrolled, created_at, created_by, last_updated_at, last_updated_by
        FROM class_sections
        WHERE grade = $1 AND section = $2;
    `
	var m models.ClassSection
	err := r.db.QueryRow(ctx, query, grade, section).Scan(
		&m.ClassID,
		&m.Grade,
		&m.Section,
		&m.Capacity,
		&m.Enrolled,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find class for grade %s section %s: %w", grade, section, err)
	}
	d := mapping.ToDomainClassSection(m)
	return &d, nil
}

func (r *PgxClassRepository) IncrementEnrollment(ctx context.Context, classID string) error {
	query := `UPDATE class_sections SET enrolled = enrolled + 1, last_updated_at = now() WHERE class_id = $1;`
	cmdTag, err := r.db.Exec(ctx, query, classID)
	if err != nil {
		return fmt.Errorf("failed to increment enrollment for class %s: %w", classID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

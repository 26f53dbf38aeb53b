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

type PgxStudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a pgx-backed StudentRepository.
func NewStudentRepository(db *pgxpool.Pool) portsrepo.StudentRepository {
	return &PgxStudentRepository{db: db}
}

var _ portsrepo.StudentRepository = (*PgxStudentRepository)(nil)

func (r *PgxStudentRepository) SaveStudent(ctx context.Context, student domain.Student) error {
	m := mapping.ToModelStudent(student)
	query := `
        INSERT INTO students (student_id, user_id, class_id, name, email, grade, section,
                              created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.db.Exec(ctx, query,
		m.StudentID,
		m.UserID,
		m.ClassID,
		m.Name,
		m.Email,
		m.Grade,
		m.Section,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save student: %w", err)
	}
	return nil
}

func (r *PgxStudentRepository) FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error) {
	query := `
        SELECT student_id, user_id, class_id, name, email, grade, section,
               created_at, created_by, last_updated_at, last_updated_by
        FROM students
        WHERE student_id = $1;
    `
	var m models.Student
	err := r.db.QueryRow(ctx, query, studentID).Scan(
		&m.StudentID,
		&m.UserID,
		&m.ClassID,
		&m.Name,
		&m.Email,
		&m.Grade,
		&m.Section,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find student by ID %s: %w", studentID, err)
	}
	d := mapping.ToDomainStudent(m)
	return &d, nil
}

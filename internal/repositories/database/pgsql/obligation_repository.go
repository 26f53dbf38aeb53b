package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/schoolops/school_finance_app/internal/apperrors"
	"github.com/schoolops/school_finance_app/internal/core/domain"
	portsrepo "github.com/schoolops/school_finance_app/internal/core/ports/repositories"
	"github.com/schoolops/school_finance_app/internal/models"
	"github.com/schoolops/school_finance_app/internal/utils/mapping"
)

type PgxObligationRepository struct {
	BaseRepository
}

// NewObligationRepository creates a pgx-backed ObligationRepository.
func NewObligationRepository(db *pgxpool.Pool) portsrepo.ObligationRepository {
	return &PgxObligationRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.ObligationRepository = (*PgxObligationRepository)(nil)

const obligationColumns = `obligation_id, kind, category, description, total_amount, paid_amount,
counterparty_ref, status, issue_date, due_date, version,
created_at, created_by, last_updated_at, last_updated_by`

func scanObligation(row pgx.Row) (*models.Obligation, error) {
	var m models.Obligation
	err := row.Scan(
		&m.ObligationID,
		&m.Kind,
		&m.Category,
		&m.Description,
		&m.TotalAmount,
		&m.PaidAmount,
		&m.CounterpartyRef,
		&m.Status,
		&m.IssueDate,
		&m.DueDate,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxObligationRepository) SaveObligation(ctx context.Context, obligation domain.Obligation) error {
	m := mapping.ToModelObligation(obligation)
	query := `
        INSERT INTO obligations (` + obligationColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.ObligationID,
		m.Kind,
		m.Category,
		m.Description,
		m.TotalAmount,
		m.PaidAmount,
		m.CounterpartyRef,
		m.Status,
		m.IssueDate,
		m.DueDate,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save obligation: %w", err)
	}
	return nil
}

func (r *PgxObligationRepository) FindObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error) {
	query := `SELECT ` + obligationColumns + ` FROM obligations WHERE obligation_id = $1;`
	m, err := scanObligation(r.Pool.QueryRow(ctx, query, obligationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find obligation by ID %s: %w", obligationID, err)
	}
	d := mapping.ToDomainObligation(*m)
	return &d, nil
}

func (r *PgxObligationRepository) ListObligations(ctx context.Context, filter portsrepo.ObligationFilter) ([]domain.Obligation, error) {
	query := `SELECT ` + obligationColumns + ` FROM obligations WHERE 1=1`
	args := []any{}
	argPos := 1

	if filter.Kind != nil {
		query += fmt.Sprintf(" AND kind = $%d", argPos)
		args = append(args, string(*filter.Kind))
		argPos++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, string(*filter.Status))
		argPos++
	}
	if filter.Category != nil {
		query += fmt.Sprintf(" AND category = $%d", argPos)
		args = append(args, *filter.Category)
		argPos++
	}

	query += " ORDER BY created_at DESC, obligation_id DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argPos)
		args = append(args, filter.Limit)
		argPos++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argPos)
		args = append(args, filter.Offset)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query obligations: %w", err)
	}
	defer rows.Close()

	ms := []models.Obligation{}
	for rows.Next() {
		m, err := scanObligation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan obligation row: %w", err)
		}
		ms = append(ms, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating obligation rows: %w", rows.Err())
	}

	return mapping.ToDomainObligationSlice(ms), nil
}

// ApplyPaymentUpdate commits the payment arithmetic under the optimistic
// version guard. Zero rows affected means either a missing obligation or a
// stale version; the existence check that tells the two apart runs in the
// same transaction as the update so a concurrent delete cannot slip between.
func (r *PgxObligationRepository) ApplyPaymentUpdate(ctx context.Context, obligationID string, newPaid decimal.Decimal, newStatus domain.ObligationStatus, expectedVersion int64, updatedBy string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
        UPDATE obligations
        SET paid_amount = $1, status = $2, version = version + 1, last_updated_at = $3, last_updated_by = $4
        WHERE obligation_id = $5 AND version = $6;
    `
	cmdTag, err := tx.Exec(ctx, query, newPaid, string(newStatus), updatedAt, updatedBy, obligationID, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to execute payment update: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.classifyGuardMiss(ctx, tx, obligationID)
	}
	return r.Commit(ctx, tx)
}

func (r *PgxObligationRepository) UpdateObligation(ctx context.Context, obligation domain.Obligation, expectedVersion int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	m := mapping.ToModelObligation(obligation)
	query := `
        UPDATE obligations
        SET category = $1, description = $2, total_amount = $3, counterparty_ref = $4,
            status = $5, due_date = $6, version = version + 1, last_updated_at = $7, last_updated_by = $8
        WHERE obligation_id = $9 AND version = $10;
    `
	cmdTag, err := tx.Exec(ctx, query,
		m.Category,
		m.Description,
		m.TotalAmount,
		m.CounterpartyRef,
		m.Status,
		m.DueDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.ObligationID,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to execute obligation update: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.classifyGuardMiss(ctx, tx, obligation.ObligationID)
	}
	return r.Commit(ctx, tx)
}

func (r *PgxObligationRepository) classifyGuardMiss(ctx context.Context, tx pgx.Tx, obligationID string) error {
	var exists bool
	err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM obligations WHERE obligation_id = $1);`, obligationID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to classify update miss for obligation %s: %w", obligationID, err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return apperrors.ErrConflict
}

package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolops/school_finance_app/internal/core/domain"
	portsrepo "github.com/schoolops/school_finance_app/internal/core/ports/repositories"
	"github.com/schoolops/school_finance_app/internal/models"
	"github.com/schoolops/school_finance_app/internal/utils/mapping"
)

type PgxLedgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a pgx-backed LedgerRepository.
func NewLedgerRepository(db *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{db: db}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

// seq is a bigserial used only for stable insertion ordering; entry_id stays
// the public identifier.
const ledgerColumns = `entry_id, entry_type, amount, category, description, occurred_at,
payment_method, status, obligation_ref, recorded_by,
created_at, created_by, last_updated_at, last_updated_by`

func scanLedgerEntry(row pgx.Row) (*models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryType,
		&m.Amount,
		&m.Category,
		&m.Description,
		&m.OccurredAt,
		&m.PaymentMethod,
		&m.Status,
		&m.ObligationRef,
		&m.RecordedBy,
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

func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	query := `
        INSERT INTO ledger_entries (` + ledgerColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
    `
	_, err := r.db.Exec(ctx, query,
		m.EntryID,
		m.EntryType,
		m.Amount,
		m.Category,
		m.Description,
		m.OccurredAt,
		m.PaymentMethod,
		m.Status,
		m.ObligationRef,
		m.RecordedBy,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save ledger entry: %w", err)
	}
	return nil
}

func (r *PgxLedgerRepository) ListEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE 1=1`
	args := []any{}
	argPos := 1

	if filter.From != nil {
		query += fmt.Sprintf(" AND occurred_at >= $%d", argPos)
		args = append(args, *filter.From)
		argPos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND occurred_at <= $%d", argPos)
		args = append(args, *filter.To)
		argPos++
	}
	if filter.Type != nil {
		query += fmt.Sprintf(" AND entry_type = $%d", argPos)
		args = append(args, string(*filter.Type))
		argPos++
	}
	if filter.Category != nil {
		query += fmt.Sprintf(" AND category = $%d", argPos)
		args = append(args, *filter.Category)
		argPos++
	}
	if filter.ObligationRef != nil {
		query += fmt.Sprintf(" AND obligation_ref = $%d", argPos)
		args = append(args, *filter.ObligationRef)
		argPos++
	}

	query += " ORDER BY seq ASC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argPos)
		args = append(args, filter.Limit)
		argPos++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argPos)
		args = append(args, filter.Offset)
	}

	return r.queryEntries(ctx, query, args...)
}

func (r *PgxLedgerRepository) ListEntriesByObligation(ctx context.Context, obligationRef string) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE obligation_ref = $1 ORDER BY seq ASC;`
	return r.queryEntries(ctx, query, obligationRef)
}

func (r *PgxLedgerRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.LedgerEntry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	ms := []models.LedgerEntry{}
	for rows.Next() {
		m, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		ms = append(ms, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", rows.Err())
	}

	return mapping.ToDomainLedgerEntrySlice(ms), nil
}

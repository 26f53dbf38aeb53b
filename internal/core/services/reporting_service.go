package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/schoolops/school_finance_app/internal/core/domain"
	portsrepo "github.com/schoolops/school_finance_app/internal/core/ports/repositories"
	portssvc "github.com/schoolops/school_finance_app/internal/core/ports/services"
)

// reportingService computes dashboard aggregates. Everything here is a pure
// read-side scan over current obligation and ledger state; nothing is cached.
type reportingService struct {
	BaseService
	obligationRepo portsrepo.ObligationRepository
	ledgerRepo     portsrepo.LedgerRepository
}

// NewReportingService creates a new ReportingService.
func NewReportingService(obligationRepo portsrepo.ObligationRepository, ledgerRepo portsrepo.LedgerRepository) portssvc.ReportingService {
	return &reportingService{
		obligationRepo: obligationRepo,
		ledgerRepo:     ledgerRepo,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// FinancialSummary rolls up obligation totals over all time and ledger
// movement within the given window.
func (s *reportingService) FinancialSummary(ctx context.Context, from, to time.Time) (*domain.FinancialSummary, error) {
	obligations, err := s.obligationRepo.ListObligations(ctx, portsrepo.ObligationFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to scan obligations for financial summary")
		return nil, fmt.Errorf("failed to retrieve obligations: %w", err)
	}

	summary := &domain.FinancialSummary{
		TotalObligated:   decimal.Zero,
		TotalPaid:        decimal.Zero,
		TotalOutstanding: decimal.Zero,
		PeriodIncome:     decimal.Zero,
		PeriodExpense:    decimal.Zero,
		From:             from,
		To:               to,
	}
	for _, o := range obligations {
		summary.TotalObligated = summary.TotalObligated.Add(o.TotalAmount)
		summary.TotalPaid = summary.TotalPaid.Add(o.PaidAmount)
		summary.TotalOutstanding = summary.TotalOutstanding.Add(o.Remaining())
	}

	entries, err := s.ledgerRepo.ListEntries(ctx, domain.LedgerFilter{From: &from, To: &to})
	if err != nil {
		s.LogError(ctx, err, "Failed to scan ledger for financial summary")
		return nil, fmt.Errorf("failed to retrieve ledger entries: %w", err)
	}
	for _, e := range entries {
		if e.Type == domain.EntryIncome {
			summary.PeriodIncome = summary.PeriodIncome.Add(e.Amount)
		} else {
			summary.PeriodExpense = summary.PeriodExpense.Add(e.Amount.Abs())
		}
	}
	summary.PeriodNet = summary.PeriodIncome.Sub(summary.PeriodExpense)

	s.LogInfo(ctx, "Financial summary computed",
		slog.Int("obligation_count", len(obligations)),
		slog.Int("entry_count", len(entries)))
	return summary, nil
}

// OutstandingByCategory breaks down remaining balances per category for one
// obligation kind. Fully paid obligations contribute nothing but still count.
func (s *reportingService) OutstandingByCategory(ctx context.Context, kind domain.ObligationKind) ([]domain.CategoryOutstanding, error) {
	obligations, err := s.obligationRepo.ListObligations(ctx, portsrepo.ObligationFilter{Kind: &kind})
	if err != nil {
		s.LogError(ctx, err, "Failed to scan obligations for category breakdown", slog.String("kind", string(kind)))
		return nil, fmt.Errorf("failed to retrieve obligations: %w", err)
	}

	byCategory := make(map[string]*domain.CategoryOutstanding)
	for _, o := range obligations {
		row, ok := byCategory[o.Category]
		if !ok {
			row = &domain.CategoryOutstanding{Category: o.Category, Outstanding: decimal.Zero}
			byCategory[o.Category] = row
		}
		row.Outstanding = row.Outstanding.Add(o.Remaining())
		row.Count++
	}

	rows := make([]domain.CategoryOutstanding, 0, len(byCategory))
	for _, row := range byCategory {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })
	return rows, nil
}

// CollectionSummary aggregates fee collection obligations: total fees,
// collected so far, and the pending collection over unpaid/partial fees.
func (s *reportingService) CollectionSummary(ctx context.Context) (*domain.CollectionSummary, error) {
	kind := domain.KindFeeCollection
	fees, err := s.obligationRepo.ListObligations(ctx, portsrepo.ObligationFilter{Kind: &kind})
	if err != nil {
		s.LogError(ctx, err, "Failed to scan fee obligations for collection summary")
		return nil, fmt.Errorf("failed to retrieve fee obligations: %w", err)
	}

	summary := &domain.CollectionSummary{
		TotalFees:         decimal.Zero,
		Collected:         decimal.Zero,
		PendingCollection: decimal.Zero,
	}
	for _, f := range fees {
		summary.TotalFees = summary.TotalFees.Add(f.TotalAmount)
		summary.Collected = summary.Collected.Add(f.PaidAmount)
		switch f.Status {
		case domain.StatusUnpaid:
			summary.UnpaidCount++
			summary.PendingCollection = summary.PendingCollection.Add(f.Remaining())
		case domain.StatusPartialPaid:
			summary.PartialCount++
			summary.PendingCollection = summary.PendingCollection.Add(f.Remaining())
		case domain.StatusPaid:
			summary.PaidCount++
		}
	}
	return summary, nil
}

// ReconciliationReport compares each obligation's paid amount against the
// absolute sum of its completed ledger entries and reports the rows that have
// drifted. Pending entries are excluded: they record money that is expected
// (a fee raised at admission) rather than money that moved, so a freshly
// approved admission with nothing paid yet is in balance, not in drift.
// An obligation with no completed entries at all and a non-zero paid amount
// is drift too: ledger appends are best-effort and can have been lost.
func (s *reportingService) ReconciliationReport(ctx context.Context) ([]domain.ReconciliationRow, error) {
	obligations, err := s.obligationRepo.ListObligations(ctx, portsrepo.ObligationFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to scan obligations for reconciliation")
		return nil, fmt.Errorf("failed to retrieve obligations: %w", err)
	}

	var rows []domain.ReconciliationRow
	for _, o := range obligations {
		entries, err := s.ledgerRepo.ListEntriesByObligation(ctx, o.ObligationID)
		if err != nil {
			s.LogError(ctx, err, "Failed to fetch ledger entries for reconciliation", slog.String("obligation_id", o.ObligationID))
			return nil, fmt.Errorf("failed to retrieve ledger entries for obligation %s: %w", o.ObligationID, err)
		}
		sum := decimal.Zero
		for _, e := range entries {
			if e.Status != domain.EntryCompleted {
				continue
			}
			sum = sum.Add(e.Amount)
		}
		ledgerSum := sum.Abs()
		drift := o.PaidAmount.Sub(ledgerSum)
		if !drift.IsZero() {
			rows = append(rows, domain.ReconciliationRow{
				ObligationID: o.ObligationID,
				Kind:         o.Kind,
				PaidAmount:   o.PaidAmount,
				LedgerSum:    ledgerSum,
				Drift:        drift,
			})
		}
	}

	if len(rows) > 0 {
		s.LogWarn(ctx, "Reconciliation drift detected", slog.Int("drifted_obligations", len(rows)))
	}
	return rows, nil
}

package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	portssvc "github.com/schoolops/school_finance_app/internal/core/ports/services"
)

const reconciliationRunTimeout = 2 * time.Minute

// ReconciliationJob periodically compares obligation paid amounts against the
// ledger and logs any drift it finds. It exists because ledger mirroring after
// a payment is best-effort and can silently miss entries.
type ReconciliationJob struct {
	reportingService portssvc.ReportingService
	logger           *slog.Logger
}

// NewReconciliationJob creates a new ReconciliationJob.
func NewReconciliationJob(rs portssvc.ReportingService, logger *slog.Logger) *ReconciliationJob {
	return &ReconciliationJob{
		reportingService: rs,
		logger:           logger,
	}
}

// Run executes one reconciliation pass and logs every drifted obligation.
func (j *ReconciliationJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), reconciliationRunTimeout)
	defer cancel()

	rows, err := j.reportingService.ReconciliationReport(ctx)
	if err != nil {
		j.logger.Error("Reconciliation run failed", slog.String("error", err.Error()))
		return
	}

	if len(rows) == 0 {
		j.logger.Info("Reconciliation run completed, no drift found")
		return
	}

	for _, row := range rows {
		j.logger.Warn("Ledger drift detected",
			slog.String("obligationID", row.ObligationID),
			slog.String("kind", string(row.Kind)),
			slog.String("paidAmount", row.PaidAmount.String()),
			slog.String("ledgerSum", row.LedgerSum.String()),
			slog.String("drift", row.Drift.String()),
		)
	}
	j.logger.Warn("Reconciliation run completed with drift", slog.Int("driftedObligations", len(rows)))
}

// StartScheduler registers the job on the given cron spec and starts the
// scheduler. The returned cron instance should be stopped on shutdown.
func StartScheduler(schedule string, job *ReconciliationJob, logger *slog.Logger) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddJob(schedule, job); err != nil {
		return nil, err
	}
	c.Start()
	logger.Info("Reconciliation scheduler started", slog.String("schedule", schedule))
	return c, nil
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/schoolops/school_finance_app/internal/core/domain"
	portssvc "github.com/schoolops/school_finance_app/internal/core/ports/services"
	"github.com/schoolops/school_finance_app/internal/middleware"
)

// reportingHandler handles HTTP requests for dashboard aggregates.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes for reporting and reconciliation.
func registerReportingRoutes(rg *gin.RouterGroup, rs portssvc.ReportingService) {
	h := newReportingHandler(rs)

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.financialSummary)
		reports.GET("/outstanding", h.outstandingByCategory)
		reports.GET("/collection", h.collectionSummary)
		reports.GET("/reconciliation", middleware.RequireRoles(domain.RoleAdmin, domain.RoleAccountant), h.reconciliation)
	}
}

// financialSummary godoc
// @Summary Financial summary for a period
// @Description Obligation totals over all time plus ledger movement within the window; defaults to the current month
// @Tags reports
// @Produce  json
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} domain.FinancialSummary
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) financialSummary(c *gin.Context) {
	from, to, err := parseWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.reportingService.FinancialSummary(c.Request.Context(), from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// outstandingByCategory godoc
// @Summary Outstanding balances grouped by category
// @Tags reports
// @Produce  json
// @Param   kind query string true "Obligation kind"
// @Success 200 {array} domain.CategoryOutstanding
// @Security BearerAuth
// @Router /reports/outstanding [get]
func (h *reportingHandler) outstandingByCategory(c *gin.Context) {
	kind := domain.ObligationKind(c.Query("kind"))
	if kind == "" {
		kind = domain.KindExpense
	}

	rows, err := h.reportingService.OutstandingByCategory(c.Request.Context(), kind)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// collectionSummary godoc
// @Summary Fee collection summary
// @Description Total fees, collected so far, and pending collection over unpaid and partially paid fees
// @Tags reports
// @Produce  json
// @Success 200 {object} domain.CollectionSummary
// @Security BearerAuth
// @Router /reports/collection [get]
func (h *reportingHandler) collectionSummary(c *gin.Context) {
	summary, err := h.reportingService.CollectionSummary(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// reconciliation godoc
// @Summary Ledger-vs-obligation drift report
// @Description Lists obligations whose ledger entry sum has drifted from their paid amount
// @Tags reports
// @Produce  json
// @Success 200 {array} domain.ReconciliationRow
// @Security BearerAuth
// @Router /reports/reconciliation [get]
func (h *reportingHandler) reconciliation(c *gin.Context) {
	rows, err := h.reportingService.ReconciliationReport(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	if rows == nil {
		rows = []domain.ReconciliationRow{}
	}
	c.JSON(http.StatusOK, rows)
}

// parseWindow reads the from/to query params, defaulting to the current month.
func parseWindow(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed
	}
	return from, to, nil
}

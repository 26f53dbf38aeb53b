package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolops/school_finance_app/internal/core/domain"
	portssvc "github.com/schoolops/school_finance_app/internal/core/ports/services"
	"github.com/schoolops/school_finance_app/internal/dto"
	"github.com/schoolops/school_finance_app/internal/middleware"
)

// ledgerHandler handles HTTP requests for the transaction ledger.
type ledgerHandler struct {
	ledgerService portssvc.LedgerService
}

func newLedgerHandler(ls portssvc.LedgerService) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers routes related to the transaction ledger.
func registerLedgerRoutes(rg *gin.RouterGroup, ls portssvc.LedgerService) {
	h := newLedgerHandler(ls)

	ledger := rg.Group("/ledger")
	{
		ledger.POST("", middleware.RequireRoles(domain.RoleAdmin, domain.RoleAccountant), h.appendEntry)
		ledger.GET("", h.listEntries)
		ledger.GET("/obligation/:obligationID", h.listByObligation)
	}
}

// appendEntry godoc
// @Summary Append a ledger entry
// @Description Records one monetary event; the signed amount is stored exactly as given
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateLedgerEntryRequest true "Ledger entry"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} map[string]string "Structurally incomplete entry"
// @Security BearerAuth
// @Router /ledger [post]
func (h *ledgerHandler) appendEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AppendEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	role, ok := middleware.GetUserRoleFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.ledgerService.Append(c.Request.Context(), req, role)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

// listEntries godoc
// @Summary Query the ledger
// @Description Lists ledger entries filtered by date range, type, category and obligation, in insertion order
// @Tags ledger
// @Produce  json
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Param   type query string false "Entry type (Income or Expense)"
// @Param   category query string false "Category"
// @Param   obligationRef query string false "Obligation ID"
// @Success 200 {array} dto.LedgerEntryResponse
// @Security BearerAuth
// @Router /ledger [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entries, err := h.ledgerService.List(c.Request.Context(), params.ToLedgerFilter())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponses(entries))
}

// listByObligation godoc
// @Summary List ledger entries for one obligation
// @Tags ledger
// @Produce  json
// @Param   obligationID path string true "Obligation ID"
// @Success 200 {array} dto.LedgerEntryResponse
// @Security BearerAuth
// @Router /ledger/obligation/{obligationID} [get]
func (h *ledgerHandler) listByObligation(c *gin.Context) {
	obligationID := c.Param("obligationID")
	entries, err := h.ledgerService.ListByObligation(c.Request.Context(), obligationID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponses(entries))
}

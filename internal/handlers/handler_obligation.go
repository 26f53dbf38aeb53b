package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/schoolops/school_finance_app/internal/apperrors"
	"github.com/schoolops/school_finance_app/internal/core/domain"
	portsrepo "github.com/schoolops/school_finance_app/internal/core/ports/repositories"
	portssvc "github.com/schoolops/school_finance_app/internal/core/ports/services"
	"github.com/schoolops/school_finance_app/internal/dto"
	"github.com/schoolops/school_finance_app/internal/middleware"
)

// obligationHandler handles HTTP requests related to obligations and payments.
type obligationHandler struct {
	obligationService portssvc.ObligationService
	paymentService    portssvc.PaymentService
}

func newObligationHandler(os portssvc.ObligationService, ps portssvc.PaymentService) *obligationHandler {
	return &obligationHandler{
		obligationService: os,
		paymentService:    ps,
	}
}

// registerObligationRoutes registers routes related to obligations.
func registerObligationRoutes(rg *gin.RouterGroup, os portssvc.ObligationService, ps portssvc.PaymentService) {
	h := newObligationHandler(os, ps)

	obligations := rg.Group("/obligations")
	{
		obligations.POST("", middleware.RequireRoles(domain.RoleAdmin, domain.RoleAccountant), h.createObligation)
		obligations.GET("", h.listObligations)
		obligations.GET("/:obligationID", h.getObligation)
		obligations.PUT("/:obligationID", middleware.RequireRoles(domain.RoleAdmin, domain.RoleAccountant), h.updateObligation)
		obligations.POST("/:obligationID/payments", middleware.RequireRoles(domain.RoleAdmin, domain.RoleAccountant), h.applyPayment)
	}
}

// createObligation godoc
// @Summary Create a new obligation
// @Description Records money owed by or to a counterparty
// @Tags obligations
// @Accept  json
// @Produce  json
// @Param   obligation body dto.CreateObligationRequest true "Obligation details"
// @Success 201 {object} dto.ObligationResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Security BearerAuth
// @Router /obligations [post]
func (h *obligationHandler) createObligation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateObligation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	obligation, err := h.obligationService.CreateObligation(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToObligationResponse(obligation))
}

// getObligation godoc
// @Summary Get an obligation by ID
// @Tags obligations
// @Produce  json
// @Param   obligationID path string true "Obligation ID"
// @Success 200 {object} dto.ObligationResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /obligations/{obligationID} [get]
func (h *obligationHandler) getObligation(c *gin.Context) {
	obligationID := c.Param("obligationID")
	obligation, err := h.obligationService.GetObligationByID(c.Request.Context(), obligationID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToObligationResponse(obligation))
}

// listObligations godoc
// @Summary List obligations
// @Description Lists obligations filtered by kind, status and category
// @Tags obligations
// @Produce  json
// @Param   kind query string false "Obligation kind"
// @Param   status query string false "Obligation status"
// @Param   category query string false "Category"
// @Success 200 {array} dto.ObligationResponse
// @Security BearerAuth
// @Router /obligations [get]
func (h *obligationHandler) listObligations(c *gin.Context) {
	filter := portsrepo.ObligationFilter{}
	if v := c.Query("kind"); v != "" {
		kind := domain.ObligationKind(v)
		filter.Kind = &kind
	}
	if v := c.Query("status"); v != "" {
		status := domain.ObligationStatus(v)
		filter.Status = &status
	}
	if v := c.Query("category"); v != "" {
		filter.Category = &v
	}
	if v := c.Query("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			filter.Limit = limit
		}
	}
	if v := c.Query("offset"); v != "" {
		if offset, err := strconv.Atoi(v); err == nil {
			filter.Offset = offset
		}
	}

	obligations, err := h.obligationService.ListObligations(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToObligationResponses(obligations))
}

// updateObligation godoc
// @Summary Edit an obligation's total amount or metadata
// @Description Status is re-derived from the edited total; payments never go through here
// @Tags obligations
// @Accept  json
// @Produce  json
// @Param   obligationID path string true "Obligation ID"
// @Param   obligation body dto.UpdateObligationRequest true "Fields to update"
// @Success 200 {object} dto.ObligationResponse
// @Failure 409 {object} map[string]string "Stale version"
// @Security BearerAuth
// @Router /obligations/{obligationID} [put]
func (h *obligationHandler) updateObligation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	obligationID := c.Param("obligationID")

	var req dto.UpdateObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateObligation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	obligation, err := h.obligationService.UpdateObligation(c.Request.Context(), obligationID, req, updaterUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToObligationResponse(obligation))
}

// applyPayment godoc
// @Summary Apply a payment against an obligation
// @Description Increments the paid amount and mirrors the payment into the ledger; a ledger failure surfaces as a warning, not an error
// @Tags obligations
// @Accept  json
// @Produce  json
// @Param   obligationID path string true "Obligation ID"
// @Param   payment body dto.ApplyPaymentRequest true "Payment details"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid amount or missing fields"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Security BearerAuth
// @Router /obligations/{obligationID}/payments [post]
func (h *obligationHandler) applyPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	obligationID := c.Param("obligationID")

	var req dto.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApplyPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	role, ok := middleware.GetUserRoleFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	receipt, err := h.paymentService.ApplyPayment(c.Request.Context(), obligationID, req, role)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(receipt))
}

// respondWithError maps service errors onto HTTP statuses.
func respondWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolops/school_finance_app/internal/core/domain"
	portssvc "github.com/schoolops/school_finance_app/internal/core/ports/services"
	"github.com/schoolops/school_finance_app/internal/core/services"
	"github.com/schoolops/school_finance_app/internal/dto"
	"github.com/schoolops/school_finance_app/internal/middleware"
)

// enrollmentHandler handles HTTP requests for admission approval.
type enrollmentHandler struct {
	enrollmentService portssvc.EnrollmentService
}

func newEnrollmentHandler(es portssvc.EnrollmentService) *enrollmentHandler {
	return &enrollmentHandler{enrollmentService: es}
}

// registerEnrollmentRoutes registers the admission approval route.
func registerEnrollmentRoutes(rg *gin.RouterGroup, es portssvc.EnrollmentService) {
	h := newEnrollmentHandler(es)

	admissions := rg.Group("/admissions")
	admissions.POST("/approve", middleware.RequireRoles(domain.RoleAdmin), h.approveAdmission)
}

// approveAdmission godoc
// @Summary Approve an admission application
// @Description Creates the user identity, student record and both fee obligations; best-effort step failures come back as warnings
// @Tags admissions
// @Accept  json
// @Produce  json
// @Param   admission body dto.ApproveAdmissionRequest true "Applicant details"
// @Success 201 {object} domain.EnrollmentResult
// @Failure 409 {object} map[string]string "Class at capacity"
// @Failure 422 {object} map[string]string "No class assignment"
// @Security BearerAuth
// @Router /admissions/approve [post]
func (h *enrollmentHandler) approveAdmission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ApproveAdmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApproveAdmission", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	approverUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.enrollmentService.ApproveAdmission(c.Request.Context(), req, approverUserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingAssignment):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrCapacityExceeded):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			respondWithError(c, err)
		}
		return
	}
	c.JSON(http.StatusCreated, result)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/edusuite/school_finance_app/internal/core/ports/services"
	"github.com/edusuite/school_finance_app/internal/dto"
)

type feeHandler struct {
	feeService portssvc.FeeSvcFacade
}

func newFeeHandler(feeService portssvc.FeeSvcFacade) *feeHandler {
	return &feeHandler{feeService: feeService}
}

// createFee godoc
// @Summary Assign a fee to a student
// @Description Creates a fee basket and derives its installment schedule from the organization's settings
// @Tags fees
// @Accept json
// @Produce json
// @Param fee body dto.CreateFeeRequest true "Fee payload"
// @Success 201 {object} dto.FeeResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /fees [post]
func (h *feeHandler) createFee(c *gin.Context) {
	organizationID, userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	fee, err := h.feeService.CreateStudentFee(c.Request.Context(), organizationID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create fee")
		return
	}
	c.JSON(http.StatusCreated, dto.ToFeeResponse(fee))
}

// getFee godoc
// @Summary Get a fee
// @Description Returns one fee with its installment schedule
// @Tags fees
// @Produce json
// @Param feeID path string true "Fee ID"
// @Success 200 {object} dto.FeeResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /fees/{feeID} [get]
func (h *feeHandler) getFee(c *gin.Context) {
	organizationID, _, ok := callerIdentity(c)
	if !ok {
		return
	}

	fee, err := h.feeService.GetFee(c.Request.Context(), organizationID, c.Param("feeID"))
	if err != nil {
		respondServiceError(c, err, "Failed to get fee")
		return
	}
	c.JSON(http.StatusOK, dto.ToFeeResponse(fee))
}

// listStudentFees godoc
// @Summary List a student's fees
// @Description Returns all fees assigned to the student, newest first
// @Tags fees
// @Produce json
// @Param studentID path string true "Student ID"
// @Success 200 {array} dto.FeeResponse
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /students/{studentID}/fees [get]
func (h *feeHandler) listStudentFees(c *gin.Context) {
	organizationID, _, ok := callerIdentity(c)
	if !ok {
		return
	}

	fees, err := h.feeService.ListFeesByStudent(c.Request.Context(), organizationID, c.Param("studentID"))
	if err != nil {
		respondServiceError(c, err, "Failed to list student fees")
		return
	}
	c.JSON(http.StatusOK, dto.ToFeeResponses(fees))
}

// cancelFee godoc
// @Summary Cancel a fee
// @Description Cancels the fee and its not-fully-paid installments; cancelling twice is a no-op
// @Tags fees
// @Produce json
// @Param feeID path string true "Fee ID"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /fees/{feeID}/cancel [post]
func (h *feeHandler) cancelFee(c *gin.Context) {
	organizationID, userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	if err := h.feeService.CancelFee(c.Request.Context(), organizationID, c.Param("feeID"), userID); err != nil {
		respondServiceError(c, err, "Failed to cancel fee")
		return
	}
	c.Status(http.StatusNoContent)
}

func registerFeeRoutes(rg *gin.RouterGroup, feeService portssvc.FeeSvcFacade) {
	h := newFeeHandler(feeService)
	rg.POST("/fees", h.createFee)
	rg.GET("/fees/:feeID", h.getFee)
	rg.GET("/students/:studentID/fees", h.listStudentFees)
	rg.POST("/fees/:feeID/cancel", h.cancelFee)
}

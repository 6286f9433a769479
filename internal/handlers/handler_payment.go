package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/edusuite/school_finance_app/internal/core/ports/services"
	"github.com/edusuite/school_finance_app/internal/dto"
)

type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(paymentService portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: paymentService}
}

// applyPayment godoc
// @Summary Apply a payment to a fee
// @Description Applies the payment oldest-installment-first as one atomic unit. Replaying a known
// @Description idempotency key returns the stored result with HTTP 200 instead of 201.
// @Tags payments
// @Accept json
// @Produce json
// @Param feeID path string true "Fee ID"
// @Param payment body dto.ApplyPaymentRequest true "Payment payload"
// @Success 200 {object} dto.ApplyPaymentResponse "Idempotent replay"
// @Success 201 {object} dto.ApplyPaymentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /fees/{feeID}/payments [post]
func (h *paymentHandler) applyPayment(c *gin.Context) {
	organizationID, userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	result, err := h.paymentService.ApplyPayment(c.Request.Context(), organizationID, c.Param("feeID"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to apply payment")
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

// listPayments godoc
// @Summary List a fee's payments
// @Description Returns the payment history of a fee, newest first, with allocations
// @Tags payments
// @Produce json
// @Param feeID path string true "Fee ID"
// @Success 200 {array} dto.PaymentResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /fees/{feeID}/payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	organizationID, _, ok := callerIdentity(c)
	if !ok {
		return
	}

	payments, err := h.paymentService.ListPaymentsByFee(c.Request.Context(), organizationID, c.Param("feeID"))
	if err != nil {
		respondServiceError(c, err, "Failed to list payments")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponses(payments))
}

func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)
	rg.POST("/fees/:feeID/payments", h.applyPayment)
	rg.GET("/fees/:feeID/payments", h.listPayments)
}

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/edusuite/school_finance_app/internal/core/ports/services"
	"github.com/edusuite/school_finance_app/internal/dto"
)

type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ledgerService portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ledgerService}
}

// recordTransaction godoc
// @Summary Record a transaction
// @Description Records a manual income or expense entry against an active account
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.RecordTransactionRequest true "Transaction payload"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /transactions [post]
func (h *ledgerHandler) recordTransaction(c *gin.Context) {
	organizationID, userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	txn, err := h.ledgerService.RecordTransaction(c.Request.Context(), organizationID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to record transaction")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List account transactions
// @Description Returns a page of the account's ledger, newest first, with a cursor for the next page
// @Tags transactions
// @Produce json
// @Param accountID path string true "Account ID"
// @Param limit query int false "Page size (max 100, default 50)"
// @Param nextToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /accounts/{accountID}/transactions [get]
func (h *ledgerHandler) listTransactions(c *gin.Context) {
	organizationID, _, ok := callerIdentity(c)
	if !ok {
		return
	}
	accountID := c.Param("accountID")

	params := dto.ListTransactionsParams{}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		params.Limit = limit
	}
	if token := c.Query("nextToken"); token != "" {
		params.NextToken = &token
	}

	page, err := h.ledgerService.ListTransactionsByAccount(c.Request.Context(), organizationID, accountID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, page)
}

// organizationBalance godoc
// @Summary Get the organization balance
// @Description Sums the derived balances of every active account
// @Tags transactions
// @Produce json
// @Param asOf query string false "Balance cutoff (RFC3339 or YYYY-MM-DD, defaults to now)"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /balance [get]
func (h *ledgerHandler) organizationBalance(c *gin.Context) {
	organizationID, _, ok := callerIdentity(c)
	if !ok {
		return
	}

	asOf, err := parseTimeParam(c.Query("asOf"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf parameter"})
		return
	}
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	balance, err := h.ledgerService.OrganizationBalance(c.Request.Context(), organizationID, asOf)
	if err != nil {
		respondServiceError(c, err, "Failed to compute organization balance")
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{BalanceMinor: balance, AsOf: asOf})
}

func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)
	rg.POST("/transactions", h.recordTransaction)
	rg.GET("/accounts/:accountID/transactions", h.listTransactions)
	rg.GET("/balance", h.organizationBalance)
}

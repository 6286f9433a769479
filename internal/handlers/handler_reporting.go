package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edusuite/school_finance_app/internal/core/domain"
	portssvc "github.com/edusuite/school_finance_app/internal/core/ports/services"
	"github.com/edusuite/school_finance_app/internal/dto"
)

type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
	settingsService  portssvc.SettingsSvcFacade
}

func newReportingHandler(reportingService portssvc.ReportingSvcFacade, settingsService portssvc.SettingsSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: reportingService, settingsService: settingsService}
}

func (h *reportingHandler) rangeFromQuery(c *gin.Context) (dto.ReportRange, bool) {
	from, err := parseTimeParam(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from parameter"})
		return dto.ReportRange{}, false
	}
	to, err := parseTimeParam(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to parameter"})
		return dto.ReportRange{}, false
	}
	return dto.ReportRange{From: from, To: to}, true
}

// financialSummary godoc
// @Summary Financial summary report
// @Description Returns income/expense totals, net, outstanding receivables and the overdue count
// @Tags reports
// @Produce json
// @Param from query string false "Range start (RFC3339 or YYYY-MM-DD)"
// @Param to query string false "Range end (RFC3339 or YYYY-MM-DD)"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) financialSummary(c *gin.Context) {
	organizationID, _, ok := callerIdentity(c)
	if !ok {
		return
	}
	rng, ok := h.rangeFromQuery(c)
	if !ok {
		return
	}

	summary, err := h.reportingService.FinancialSummary(c.Request.Context(), organizationID, rng)
	if err != nil {
		respondServiceError(c, err, "Failed to compute financial summary")
		return
	}

	settings, err := h.settingsService.GetSettings(c.Request.Context(), organizationID)
	if err != nil {
		respondServiceError(c, err, "Failed to load settings")
		return
	}
	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary, settings.CurrencyCode))
}

// monthlyTrends godoc
// @Summary Monthly trends report
// @Description Returns per-month income and expense totals, zero-filled across the range
// @Tags reports
// @Produce json
// @Param from query string false "Range start (RFC3339 or YYYY-MM-DD)"
// @Param to query string false "Range end (RFC3339 or YYYY-MM-DD)"
// @Success 200 {array} dto.TrendPointResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /reports/trends [get]
func (h *reportingHandler) monthlyTrends(c *gin.Context) {
	organizationID, _, ok := callerIdentity(c)
	if !ok {
		return
	}
	rng, ok := h.rangeFromQuery(c)
	if !ok {
		return
	}

	points, err := h.reportingService.MonthlyTrends(c.Request.Context(), organizationID, rng)
	if err != nil {
		respondServiceError(c, err, "Failed to compute monthly trends")
		return
	}
	c.JSON(http.StatusOK, dto.ToTrendResponses(points))
}

// categoryDistribution godoc
// @Summary Category distribution report
// @Description Returns per-category totals with percentage shares for one transaction type
// @Tags reports
// @Produce json
// @Param type query string false "Transaction type" Enums(INCOME, EXPENSE) default(EXPENSE)
// @Param from query string false "Range start (RFC3339 or YYYY-MM-DD)"
// @Param to query string false "Range end (RFC3339 or YYYY-MM-DD)"
// @Success 200 {object} dto.CategoryDistributionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /reports/categories [get]
func (h *reportingHandler) categoryDistribution(c *gin.Context) {
	organizationID, _, ok := callerIdentity(c)
	if !ok {
		return
	}
	rng, ok := h.rangeFromQuery(c)
	if !ok {
		return
	}

	categoryType := domain.CategoryExpense
	if raw := c.Query("type"); raw != "" {
		ct := domain.CategoryType(raw)
		if ct != domain.CategoryIncome && ct != domain.CategoryExpense {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid type parameter, expected INCOME or EXPENSE"})
			return
		}
		categoryType = ct
	}

	totals, err := h.reportingService.CategoryDistribution(c.Request.Context(), organizationID, categoryType, rng)
	if err != nil {
		respondServiceError(c, err, "Failed to compute category distribution")
		return
	}

	resp := dto.CategoryDistributionResponse{
		Type:       string(categoryType),
		Categories: make([]dto.CategoryTotalResponse, len(totals)),
	}
	for i, t := range totals {
		resp.TotalMinor += t.AmountMinor
		resp.Categories[i] = dto.CategoryTotalResponse{
			CategoryID:   t.CategoryID,
			CategoryName: t.CategoryName,
			AmountMinor:  t.AmountMinor,
			Percentage:   t.Percentage,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// overdueInstallments godoc
// @Summary Overdue installments report
// @Description Returns open installments due before today, oldest due date first
// @Tags reports
// @Produce json
// @Success 200 {array} dto.OverdueInstallmentResponse
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /reports/overdue [get]
func (h *reportingHandler) overdueInstallments(c *gin.Context) {
	organizationID, _, ok := callerIdentity(c)
	if !ok {
		return
	}

	rows, err := h.reportingService.OverdueInstallments(c.Request.Context(), organizationID, time.Now().UTC())
	if err != nil {
		respondServiceError(c, err, "Failed to list overdue installments")
		return
	}
	c.JSON(http.StatusOK, dto.ToOverdueResponses(rows))
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade, settingsService portssvc.SettingsSvcFacade) {
	h := newReportingHandler(reportingService, settingsService)
	rg.GET("/reports/summary", h.financialSummary)
	rg.GET("/reports/trends", h.monthlyTrends)
	rg.GET("/reports/categories", h.categoryDistribution)
	rg.GET("/reports/overdue", h.overdueInstallments)
}

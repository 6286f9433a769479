package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusuite/school_finance_app/internal/core/domain"
	portssvc "github.com/edusuite/school_finance_app/internal/core/ports/services"
	"github.com/edusuite/school_finance_app/internal/dto"
)

type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
}

func newCategoryHandler(categoryService portssvc.CategorySvcFacade) *categoryHandler {
	return &categoryHandler{categoryService: categoryService}
}

// createCategory godoc
// @Summary Create a category
// @Description Registers a new income or expense category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryRequest true "Category payload"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /categories [post]
func (h *categoryHandler) createCategory(c *gin.Context) {
	organizationID, userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), organizationID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// listCategories godoc
// @Summary List categories
// @Description Returns the organization's categories, optionally filtered by type
// @Tags categories
// @Produce json
// @Param type query string false "Category type filter" Enums(INCOME, EXPENSE)
// @Success 200 {array} dto.CategoryResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /categories [get]
func (h *categoryHandler) listCategories(c *gin.Context) {
	organizationID, _, ok := callerIdentity(c)
	if !ok {
		return
	}

	var typeFilter *domain.CategoryType
	if raw := c.Query("type"); raw != "" {
		ct := domain.CategoryType(raw)
		if ct != domain.CategoryIncome && ct != domain.CategoryExpense {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid type parameter, expected INCOME or EXPENSE"})
			return
		}
		typeFilter = &ct
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), organizationID, typeFilter)
	if err != nil {
		respondServiceError(c, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponses(categories))
}

func registerCategoryRoutes(rg *gin.RouterGroup, categoryService portssvc.CategorySvcFacade) {
	h := newCategoryHandler(categoryService)
	rg.POST("/categories", h.createCategory)
	rg.GET("/categories", h.listCategories)
}

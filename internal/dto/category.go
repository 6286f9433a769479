package dto

import "github.com/edusuite/school_finance_app/internal/core/domain"

// CreateCategoryRequest creates a new transaction category.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Icon string `json:"icon"`
}

// CategoryResponse is the API representation of a category.
type CategoryResponse struct {
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Icon       string `json:"icon,omitempty"`
}

// ToCategoryResponse converts a domain category to the API representation.
func ToCategoryResponse(c *domain.FinanceCategory) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		Type:       string(c.Type),
		Icon:       c.Icon,
	}
}

// ToCategoryResponses converts a slice of domain categories.
func ToCategoryResponses(cs []domain.FinanceCategory) []CategoryResponse {
	resp := make([]CategoryResponse, len(cs))
	for i := range cs {
		resp[i] = ToCategoryResponse(&cs[i])
	}
	return resp
}

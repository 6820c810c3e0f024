package dto

import (
	"github.com/shopspring/decimal"

	"stockroom/internal/domain/inventory"
)

// --- Request DTOs ---

// ItemRequest is the request body for add, update and validate.
// Absent fields stay nil or empty so the store reports them as missing.
type ItemRequest struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Category string           `json:"category"`
	Quantity *int             `json:"quantity"`
	Price    *decimal.Decimal `json:"price"`
	Supplier string           `json:"supplier"`
	Status   string           `json:"status"`
	Popular  *bool            `json:"popular"`
	Comment  *string          `json:"comment"`
}

// ToDraft converts the request into a draft. Unknown category or status
// values fail here with INVALID_INPUT.
func (r *ItemRequest) ToDraft() (inventory.Draft, error) {
	category, err := inventory.ParseCategory(r.Category)
	if err != nil {
		return inventory.Draft{}, err
	}
	status, err := inventory.ParseStatus(r.Status)
	if err != nil {
		return inventory.Draft{}, err
	}

	return inventory.Draft{
		ID:       r.ID,
		Name:     r.Name,
		Category: category,
		Quantity: r.Quantity,
		Price:    r.Price,
		Supplier: r.Supplier,
		Status:   status,
		Popular:  r.Popular,
		Comment:  r.Comment,
	}, nil
}

// ListItemsQuery holds list filters.
type ListItemsQuery struct {
	Search  string `form:"search"`
	Popular bool   `form:"popular"`
	Format  string `form:"format" binding:"omitempty,oneof=json html"`
}

// --- Response DTOs ---

// ItemResponse is the response body for an item.
type ItemResponse struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Category inventory.Category `json:"category"`
	Quantity int                `json:"quantity"`
	Price    decimal.Decimal    `json:"price"`
	Supplier string             `json:"supplier"`
	Status   inventory.Status   `json:"status"`
	Popular  bool               `json:"popular"`
	Comment  *string            `json:"comment,omitempty"`
}

// FromItem converts domain item to response DTO.
func FromItem(item inventory.Item) ItemResponse {
	return ItemResponse{
		ID:       item.ID,
		Name:     item.Name,
		Category: item.Category,
		Quantity: item.Quantity,
		Price:    item.Price,
		Supplier: item.Supplier,
		Status:   item.Status,
		Popular:  item.Popular,
		Comment:  item.Comment,
	}
}

// FromItems converts a slice of items.
func FromItems(items []inventory.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = FromItem(item)
	}
	return out
}

// Package inventory provides the inventory list: item records held in an owned,
// in-memory store with validated mutations and name-based lookups.
package inventory

import (
	"strings"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/types"
)

// Category classifies an item. The set is closed.
type Category string

const (
	CategoryElectronics   Category = "Electronics"
	CategoryFurniture     Category = "Furniture"
	CategoryClothing      Category = "Clothing"
	CategoryTools         Category = "Tools"
	CategoryMiscellaneous Category = "Miscellaneous"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryElectronics,
	CategoryFurniture,
	CategoryClothing,
	CategoryTools,
	CategoryMiscellaneous,
}

// Status is the stock status of an item. The set is closed.
type Status string

const (
	StatusInStock    Status = "In Stock"
	StatusLowStock   Status = "Low Stock"
	StatusOutOfStock Status = "Out of Stock"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusInStock, StatusLowStock, StatusOutOfStock}

// Item is a single inventory record.
type Item struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Category Category    `json:"category"`
	Quantity int         `json:"quantity"`
	Price    types.Money `json:"price"`
	Supplier string      `json:"supplier"`
	Status   Status      `json:"status"`
	Popular  bool        `json:"popular"`
	Comment  *string     `json:"comment,omitempty"`
}

// Draft is a candidate item as collected from user input. Nil pointers and
// empty strings mean the field was not supplied.
type Draft struct {
	ID       string
	Name     string
	Category Category
	Quantity *int
	Price    *types.Money
	Supplier string
	Status   Status
	Popular  *bool
	Comment  *string
}

// DraftOf returns a fully populated draft for item.
func DraftOf(item Item) Draft {
	qty := item.Quantity
	price := item.Price
	popular := item.Popular
	return Draft{
		ID:       item.ID,
		Name:     item.Name,
		Category: item.Category,
		Quantity: &qty,
		Price:    &price,
		Supplier: item.Supplier,
		Status:   item.Status,
		Popular:  &popular,
		Comment:  cloneString(item.Comment),
	}
}

// missingFields names the absent required fields in declaration order.
func (d Draft) missingFields() []string {
	var missing []string
	if d.ID == "" {
		missing = append(missing, "id")
	}
	if d.Name == "" {
		missing = append(missing, "name")
	}
	if d.Category == "" {
		missing = append(missing, "category")
	}
	if d.Quantity == nil {
		missing = append(missing, "quantity")
	}
	if d.Price == nil {
		missing = append(missing, "price")
	}
	if d.Supplier == "" {
		missing = append(missing, "supplier")
	}
	if d.Status == "" {
		missing = append(missing, "status")
	}
	if d.Popular == nil {
		missing = append(missing, "popular")
	}
	return missing
}

// item converts a complete draft. Callers must validate first.
func (d Draft) item() Item {
	return Item{
		ID:       d.ID,
		Name:     d.Name,
		Category: d.Category,
		Quantity: *d.Quantity,
		Price:    *d.Price,
		Supplier: d.Supplier,
		Status:   d.Status,
		Popular:  *d.Popular,
		Comment:  cloneString(d.Comment),
	}
}

// clone returns a copy that shares no pointers with item.
func (item Item) clone() Item {
	item.Comment = cloneString(item.Comment)
	return item
}

// CommentOr returns the comment or fallback when none is set.
func (item Item) CommentOr(fallback string) string {
	if item.Comment == nil || *item.Comment == "" {
		return fallback
	}
	return *item.Comment
}

// --- Boundary parsing ---

// ParseCategory converts external input into a Category.
// Matching ignores case and surrounding spaces; an empty string yields "" so the
// store can report the field as missing.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", apperror.NewInvalidInput("invalid category").
		WithDetail("field", "category").
		WithDetail("value", s)
}

// ParseStatus converts external input into a Status, with the same rules as ParseCategory.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, st := range Statuses {
		if strings.EqualFold(string(st), s) {
			return st, nil
		}
	}
	return "", apperror.NewInvalidInput("invalid status").
		WithDetail("field", "status").
		WithDetail("value", s)
}

// IsValid reports whether c belongs to the closed category set.
func (c Category) IsValid() bool {
	switch c {
	case CategoryElectronics, CategoryFurniture, CategoryClothing, CategoryTools, CategoryMiscellaneous:
		return true
	}
	return false
}

// IsValid reports whether s belongs to the closed status set.
func (s Status) IsValid() bool {
	switch s {
	case StatusInStock, StatusLowStock, StatusOutOfStock:
		return true
	}
	return false
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

package products

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andradelabs/motopecas-backend/pkg/db/models"
)

// VariantInput describes one color option on create/update.
type VariantInput struct {
	ColorName string
	ColorHex  string
	Stock     int
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	CategoryID  uuid.UUID
	Name        string
	Description *string
	Brand       string
	Price       decimal.Decimal
	Stock       int

	WeightKg decimal.Decimal
	HeightCm decimal.Decimal
	WidthCm  decimal.Decimal
	LengthCm decimal.Decimal

	IsActive   bool
	IsFeatured bool

	Variants  []VariantInput
	ImageURLs []string
	ModelIDs  []uuid.UUID
}

// UpdateProductInput holds optional mutation values for a product. Nil
// fields keep the stored value.
type UpdateProductInput struct {
	CategoryID  *uuid.UUID
	Name        *string
	Description *string
	Brand       *string
	Price       *decimal.Decimal
	Stock       *int

	WeightKg *decimal.Decimal
	HeightCm *decimal.Decimal
	WidthCm  *decimal.Decimal
	LengthCm *decimal.Decimal

	IsActive   *bool
	IsFeatured *bool

	ModelIDs *[]uuid.UUID
}

// ListProductsInput narrows and paginates the storefront listing.
type ListProductsInput struct {
	CategorySlug string
	ModelID      *uuid.UUID
	Brand        string
	Search       string
	FeaturedOnly bool
	Page         int
	PerPage      int
}

// ProductList is one page of the storefront catalog.
type ProductList struct {
	Items   []models.Product `json:"items"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	PerPage int              `json:"per_page"`
}
